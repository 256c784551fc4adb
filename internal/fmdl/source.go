package fmdl

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
)

// Source is a read-only memory-mapped model file.
type Source struct {
	*mmap.ReaderAt
	path string
}

// Open maps path read-only. The caller must Close the source once the decoded
// model is no longer being read from it; decoded models never alias the mapping.
func Open(path string) (*Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fmdl: open %s", path)
	}
	return &Source{ReaderAt: r, path: path}, nil
}

func (s *Source) Path() string { return s.path }

// Size returns the mapped length in bytes.
func (s *Source) Size() int64 { return int64(s.Len()) }

// DecodeFile opens, decodes and closes path.
func DecodeFile(path string, opts Options) (*Model, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	m, err := Decode(src, src.Size(), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "fmdl: decode %s", src.Path())
	}
	return m, nil
}
