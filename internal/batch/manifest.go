package batch

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Manifest is the manifest.json document written after a run.
type Manifest struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Files     []Result `json:"files"`
}

func NewManifest(results []Result) Manifest {
	m := Manifest{Total: len(results), Files: results}
	for _, r := range results {
		if r.Success {
			m.Succeeded++
		} else {
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(NewManifest(results), "", "  ")
	if err != nil {
		return errors.Wrap(err, "batch: manifest")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "batch: manifest")
}
