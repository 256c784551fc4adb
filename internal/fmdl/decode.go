package fmdl

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AlignMode controls 16-byte alignment between per-object vertex blocks.
type AlignMode int

const (
	AlignProfile AlignMode = iota // follow the active profile
	AlignAlways
	AlignNever
)

// ParseAlignMode accepts "", "profile", "always" and "never".
func ParseAlignMode(s string) (AlignMode, error) {
	switch s {
	case "", "profile":
		return AlignProfile, nil
	case "always":
		return AlignAlways, nil
	case "never":
		return AlignNever, nil
	}
	return AlignProfile, errors.Errorf("fmdl: unknown vertex alignment %q", s)
}

// Options tunes a single decode. The zero value auto-detects everything.
type Options struct {
	// Profile forces a named revision ("rev1".."rev4"). Empty or "auto" detects.
	Profile   string
	Alignment AlignMode
	// BugCompatible stores every section-0x3 trailing field into record 1,
	// matching older tooling output.
	BugCompatible bool
	Logger        *zerolog.Logger
}

type decoder struct {
	c    *Cursor
	m    *Model
	opts Options
	log  zerolog.Logger
	bad  map[int]bool // dense indices whose entry does not fit the profile
}

// DecodeBytes decodes an in-memory model file.
func DecodeBytes(b []byte, opts Options) (*Model, error) {
	c := NewBytesCursor(b)
	return decode(c, opts)
}

// Decode reads a whole model from src, which holds size bytes. The returned
// model owns all of its data and does not reference src.
//
// Unplaceable sections are collected in Model.Warnings, but a missing
// directory1 vertex block and bug-compatible mode over a single section-0x3
// record abort the decode with IndexOutOfRangeError, since neither leaves
// usable geometry.
func Decode(src io.ReaderAt, size int64, opts Options) (*Model, error) {
	return decode(NewCursor(src, size), opts)
}

func decode(c *Cursor, opts Options) (*Model, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	var forced *FormatProfile
	if opts.Profile != "" && opts.Profile != "auto" {
		p, err := ProfileByName(opts.Profile)
		if err != nil {
			return nil, err
		}
		forced = p
	}

	words := 0
	if forced != nil {
		words = forced.ReservedWords
	} else {
		w, err := detectReservedWords(c)
		if err != nil {
			return nil, errors.Wrap(err, "fmdl: detect header layout")
		}
		words = w
	}

	h, err := ParseHeader(c, words)
	if err != nil {
		return nil, errors.Wrap(err, "fmdl: header")
	}
	dir0, dir1, err := ParseDirectories(c, &h)
	if err != nil {
		return nil, errors.Wrap(err, "fmdl: directory")
	}

	m := &Model{Header: h, Directory0: dir0, Directory1: dir1}
	if forced != nil {
		m.Profile = forced
	} else {
		m.Profile = selectProfile(words, dir0)
	}
	log.Debug().
		Str("profile", string(m.Profile.Revision)).
		Uint32("signature", h.Signature).
		Uint32("sections0", h.NumSections0).
		Uint32("sections1", h.NumSections1).
		Msg("header parsed")

	d := &decoder{c: c, m: m, opts: opts, log: log, bad: make(map[int]bool)}
	d.checkLayouts()

	if err := d.loadHashTables(); err != nil {
		return nil, err
	}
	for _, s := range sectionDecoders {
		if err := d.run(s.id, s.decode); err != nil {
			return nil, err
		}
	}
	if err := d.extractGeometry(); err != nil {
		return nil, errors.Wrap(err, "fmdl: geometry")
	}
	return m, nil
}

// checkLayouts records one UnsupportedSectionLayoutError per directory entry
// the active profile cannot place, including every repeat of an id.
func (d *decoder) checkLayouts() {
	p := d.m.Profile
	base := int64(d.m.Header.Section0Offset)
	for i, e := range d.m.Directory0 {
		ok := true
		if p.Revision == RevGeneric {
			ok = knownLayout(e.ID)
		} else if want, has := p.ID(i); !has || want != e.ID {
			ok = false
		}
		// A repeated id only owns its first slot.
		if dense, has := p.Dense(e.ID); !has || dense != i {
			ok = false
		}
		if ok {
			continue
		}
		d.bad[i] = true
		w := &UnsupportedSectionLayoutError{ID: e.ID, Index: i, Offset: base + int64(e.Offset), Profile: p.Revision}
		d.m.Warnings = append(d.m.Warnings, w)
		d.log.Warn().Err(w).Msg("section skipped")
	}
}

// seek positions the cursor at a section's records and returns their count.
// ok is false when the section is absent or unusable.
func (d *decoder) seek(id SectionID) (n int, ok bool, err error) {
	dense, has := d.m.Profile.Dense(id)
	if !has || dense >= len(d.m.Directory0) || d.bad[dense] {
		return 0, false, nil
	}
	e := d.m.Directory0[dense]
	pos := int64(e.Offset) + int64(d.m.Header.Section0Offset)
	if err := d.c.Seek(pos); err != nil {
		return 0, false, err
	}
	d.log.Debug().
		Str("id", id.String()).
		Int("dense", dense).
		Uint16("entries", e.NumEntries).
		Int64("offset", pos).
		Msg("section")
	return int(e.NumEntries), true, nil
}

func (d *decoder) run(id SectionID, fn sectionDecoder) error {
	n, ok, err := d.seek(id)
	if err != nil {
		return errors.Wrapf(err, "fmdl: section %s", id)
	}
	if !ok {
		return nil
	}
	if err := fn(d, n); err != nil {
		return errors.Wrapf(err, "fmdl: section %s", id)
	}
	return nil
}
