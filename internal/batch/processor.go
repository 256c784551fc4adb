package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"fmdl-tool/internal/fmdl"
	"fmdl-tool/internal/preview"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Decode    fmdl.Options
	Preview   bool
	Render    preview.Options
	Format    string
	Workers   int
	Logger    zerolog.Logger
	// ProgressEvery is the progress log interval; zero disables it.
	ProgressEvery time.Duration
}

// Result holds the outcome of decoding one file.
type Result struct {
	File     string         `json:"file"`
	Profile  string         `json:"profile,omitempty"`
	Sections map[string]int `json:"sections,omitempty"`
	Objects  int            `json:"objects"`
	Vertices int            `json:"vertices"`
	Warnings []string       `json:"warnings,omitempty"`
	Image    string         `json:"image,omitempty"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
}

// Find returns every *.fmdl file under dir, sorted, relative to dir.
func Find(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".fmdl") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "batch: scan %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// Run decodes all files using a worker pool. Each file is an independent
// decode; results keep the order of files.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.ProgressEvery > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ProgressEvery)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						cfg.Logger.Info().Int64("done", p).Int("total", total).Float64("per_sec", rate).Msg("progress")
					}
				}
			}
		}()
	}

	// Worker pool
	work := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, rel string) Result {
	res := Result{File: filepath.ToSlash(rel)}
	log := cfg.Logger.With().Str("file", res.File).Logger()

	opts := cfg.Decode
	opts.Logger = &log
	m, err := fmdl.DecodeFile(filepath.Join(cfg.InputDir, rel), opts)
	if err != nil {
		log.Error().Err(err).Str("kind", fmdl.ErrorKind(err)).Msg("decode failed")
		res.Error = err.Error()
		return res
	}

	res.Profile = string(m.Profile.Revision)
	res.Sections = make(map[string]int)
	for _, e := range m.Directory0 {
		if n := m.Count(e.ID); n >= 0 {
			res.Sections[e.ID.String()] = n
		}
	}
	res.Objects = len(m.Objects)
	res.Vertices = m.VertexCount()
	for _, w := range m.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}

	if cfg.Preview {
		img := preview.Render(m, cfg.Render)
		name := strings.TrimSuffix(res.File, filepath.Ext(res.File)) + preview.Ext(cfg.Format)
		if err := preview.WriteFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(name)), img, cfg.Format); err != nil {
			log.Error().Err(err).Msg("preview failed")
			res.Error = err.Error()
			return res
		}
		res.Image = name
	}

	log.Debug().Str("profile", res.Profile).Int("vertices", res.Vertices).Msg("decoded")
	res.Success = true
	return res
}
