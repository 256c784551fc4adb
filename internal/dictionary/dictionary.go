package dictionary

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Dictionary maps precomputed 64-bit hashes to the strings they were built from.
// It satisfies fmdl.Dictionary and is safe for concurrent use.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[uint64]string
}

func New() *Dictionary {
	return &Dictionary{entries: make(map[uint64]string)}
}

// Load reads every path into one dictionary. Directories are walked for
// *.txt and *.dict files. encoding is "utf-8" (or empty) or "windows-1252".
func Load(paths []string, encoding string) (*Dictionary, error) {
	d := New()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "dictionary: stat %s", p)
		}
		if !info.IsDir() {
			if err := d.LoadFile(p, encoding); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, e os.DirEntry, err error) error {
			if err != nil || e.IsDir() {
				return err
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".txt" && ext != ".dict" {
				return nil
			}
			return d.LoadFile(path, encoding)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "dictionary: walk %s", p)
		}
	}
	return d, nil
}

// LoadFile adds the entries of one dictionary file.
func (d *Dictionary) LoadFile(path, encoding string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "dictionary: open %s", path)
	}
	defer f.Close()

	r, err := decoder(f, encoding)
	if err != nil {
		return err
	}
	if err := d.Read(r); err != nil {
		return errors.Wrapf(err, "dictionary: %s", path)
	}
	return nil
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	}
	return nil, errors.Errorf("dictionary: unsupported encoding %q", encoding)
}

// Read parses lines of the form "<hex hash> <string>". Blank lines and lines
// starting with '#' are ignored. A later entry for the same hash wins.
func (d *Dictionary) Read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		sep := strings.IndexAny(text, " \t")
		if sep < 0 {
			return errors.Errorf("line %d: missing string after hash", line)
		}
		hexPart, name := text[:sep], text[sep+1:]
		hexPart = strings.TrimPrefix(strings.ToLower(hexPart), "0x")
		h, err := strconv.ParseUint(hexPart, 16, 64)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		d.Add(h, strings.TrimSpace(name))
	}
	return sc.Err()
}

func (d *Dictionary) Add(hash uint64, s string) {
	d.mu.Lock()
	d.entries[hash] = s
	d.mu.Unlock()
}

// Lookup returns the string for hash, or ("", false).
func (d *Dictionary) Lookup(hash uint64) (string, bool) {
	d.mu.RLock()
	s, ok := d.entries[hash]
	d.mu.RUnlock()
	return s, ok
}

// Len returns the number of known hashes.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
