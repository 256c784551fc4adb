package fmdl

import (
	"github.com/pkg/errors"
)

// Revision names a known layout of the format.
type Revision string

const (
	Rev1       Revision = "rev1"
	Rev2       Revision = "rev2"
	Rev3       Revision = "rev3"
	Rev4       Revision = "rev4"
	RevGeneric Revision = "generic"
)

// maxSections bounds plausible directory counts during header detection.
const maxSections = 64

// coreSections appear in every revision.
var coreSections = []SectionID{
	SectionMeshGroups, SectionObjectAssignments, SectionObjectData,
	SectionTextureTypes, SectionMaterials,
	SectionUnknown10, SectionUnknown12, SectionUnknown14,
	SectionTextureHashes, SectionNameHashes,
}

// allSections is the final 20-section layout in dense order.
// Ids 0xC, 0xF and 0x13 are reserved and never populated.
var allSections = []SectionID{
	SectionUnknown0, SectionMeshGroups, SectionObjectAssignments, SectionObjectData,
	SectionUnknown4, SectionBoneGroups, SectionTextureAssignments, SectionTextureTypes,
	SectionMaterials, SectionUnknown9, SectionUnknownA, SectionUnknownB,
	SectionUnknownD, SectionUnknownE, SectionUnknown10, SectionUnknown11,
	SectionUnknown12, SectionUnknown14, SectionTextureHashes, SectionNameHashes,
}

// FormatProfile is one revision's layout: header width, geometry alignment and
// the dense enumeration of its section ids.
type FormatProfile struct {
	Revision      Revision
	ReservedWords int
	AlignVertices bool
	Sections      []SectionID

	toDense map[SectionID]int
}

func newProfile(rev Revision, words int, align bool, ids []SectionID) *FormatProfile {
	p := &FormatProfile{
		Revision:      rev,
		ReservedWords: words,
		AlignVertices: align,
		Sections:      ids,
		toDense:       make(map[SectionID]int, len(ids)),
	}
	for i, id := range ids {
		if _, dup := p.toDense[id]; !dup {
			p.toDense[id] = i
		}
	}
	return p
}

// subset returns allSections filtered to core plus extra, keeping dense order.
func subset(extra ...SectionID) []SectionID {
	keep := make(map[SectionID]bool, len(coreSections)+len(extra))
	for _, id := range coreSections {
		keep[id] = true
	}
	for _, id := range extra {
		keep[id] = true
	}
	var ids []SectionID
	for _, id := range allSections {
		if keep[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

var namedProfiles = []*FormatProfile{
	newProfile(Rev1, 2, false, subset()),
	newProfile(Rev2, 2, false, subset(SectionUnknown0, SectionUnknown11)),
	newProfile(Rev3, 1, false, subset(SectionUnknown0, SectionUnknown4, SectionBoneGroups,
		SectionTextureAssignments, SectionUnknown11)),
	newProfile(Rev4, 1, true, allSections),
}

// ProfileByName returns a named revision. "generic" is not accepted here because
// a generic profile is derived from a directory.
func ProfileByName(name string) (*FormatProfile, error) {
	for _, p := range namedProfiles {
		if string(p.Revision) == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("fmdl: unknown profile %q", name)
}

// Dense maps a sparse section id to its directory index.
func (p *FormatProfile) Dense(id SectionID) (int, bool) {
	i, ok := p.toDense[id]
	return i, ok
}

// ID maps a directory index back to its section id.
func (p *FormatProfile) ID(dense int) (SectionID, bool) {
	if dense < 0 || dense >= len(p.Sections) {
		return 0, false
	}
	return p.Sections[dense], true
}

func (p *FormatProfile) Len() int { return len(p.Sections) }

// matches reports whether dir has exactly this profile's dense id sequence.
func (p *FormatProfile) matches(dir []DirectoryEntry0) bool {
	if len(dir) != len(p.Sections) {
		return false
	}
	for i, e := range dir {
		if e.ID != p.Sections[i] {
			return false
		}
	}
	return true
}

// genericProfile builds the id table from the directory itself.
func genericProfile(words int, dir []DirectoryEntry0) *FormatProfile {
	ids := make([]SectionID, len(dir))
	for i, e := range dir {
		ids[i] = e.ID
	}
	return newProfile(RevGeneric, words, words == 1, ids)
}

// knownLayout reports whether id belongs to any revision's section set.
func knownLayout(id SectionID) bool {
	for _, s := range allSections {
		if s == id {
			return true
		}
	}
	return false
}

// detectReservedWords inspects the counts at the one-word header positions and
// falls back to the two-word layout when they are implausible.
func detectReservedWords(c *Cursor) (int, error) {
	narrow := headerSize(1)
	if c.Size() < narrow {
		return 1, nil
	}
	countsAt := narrow - 8 - 6*4
	if err := c.Seek(countsAt); err != nil {
		return 0, err
	}
	n0, err := c.U32()
	if err != nil {
		return 0, err
	}
	n1, err := c.U32()
	if err != nil {
		return 0, err
	}
	if n0 == 0 || n0 > maxSections || n1 > maxSections {
		return 2, nil
	}
	return 1, nil
}

// selectProfile picks the first named revision of the given width whose id
// sequence equals the directory, or derives a generic one.
func selectProfile(words int, dir []DirectoryEntry0) *FormatProfile {
	for _, p := range namedProfiles {
		if p.ReservedWords == words && p.matches(dir) {
			return p
		}
	}
	return genericProfile(words, dir)
}

// DetectProfile reads the header and directory at c and returns the revision
// Decode would select without a forced profile.
func DetectProfile(c *Cursor) (*FormatProfile, error) {
	words, err := detectReservedWords(c)
	if err != nil {
		return nil, err
	}
	h, err := ParseHeader(c, words)
	if err != nil {
		return nil, err
	}
	dir0, _, err := ParseDirectories(c, &h)
	if err != nil {
		return nil, err
	}
	return selectProfile(words, dir0), nil
}
