package fmdl

import "github.com/pkg/errors"

type sectionDecoder func(d *decoder, n int) error

// Hash tables are loaded separately by loadHashTables, ahead of these.
var sectionDecoders = []struct {
	id     SectionID
	decode sectionDecoder
}{
	{SectionMeshGroups, decodeMeshGroups},
	{SectionObjectAssignments, decodeObjectAssignments},
	{SectionObjectData, decodeObjectData},
	{SectionBoneGroups, decodeBoneGroups},
	{SectionTextureAssignments, pairDecoder(func(m *Model) *[]PairEntry { return &m.TextureAssignments })},
	{SectionTextureTypes, pairDecoder(func(m *Model) *[]PairEntry { return &m.TextureTypes })},
	{SectionMaterials, pairDecoder(func(m *Model) *[]PairEntry { return &m.MaterialAssignments })},
}

const (
	meshGroupStride        = 8
	objectAssignmentStride = 32
	objectDataStride       = 48
	boneGroupHead          = 4
	boneGroupPayload       = 0x40
	boneGroupStride        = boneGroupHead + boneGroupPayload
	maxBoneGroupEntries    = boneGroupPayload / 2
	pairStride             = 4
	hashStride             = 8
)

// RecordStride returns the on-disk record size of an interpreted section.
func RecordStride(id SectionID) (int, bool) {
	switch id {
	case SectionMeshGroups:
		return meshGroupStride, true
	case SectionObjectAssignments:
		return objectAssignmentStride, true
	case SectionObjectData:
		return objectDataStride, true
	case SectionBoneGroups:
		return boneGroupStride, true
	case SectionTextureAssignments, SectionTextureTypes, SectionMaterials:
		return pairStride, true
	case SectionTextureHashes, SectionNameHashes:
		return hashStride, true
	}
	return 0, false
}

// loadHashTables reads the raw texture (0x15) and name (0x16) hash arrays.
// Indices into them are only checked when resolved.
func (d *decoder) loadHashTables() error {
	for _, t := range []struct {
		id  SectionID
		dst *[]uint64
	}{
		{SectionTextureHashes, &d.m.TextureHashes},
		{SectionNameHashes, &d.m.NameHashes},
	} {
		n, ok, err := d.seek(t.id)
		if err != nil {
			return errors.Wrapf(err, "fmdl: hash table %s", t.id)
		}
		if !ok {
			continue
		}
		hashes := make([]uint64, n)
		for i := range hashes {
			if hashes[i], err = d.c.U64(); err != nil {
				return errors.Wrapf(err, "fmdl: hash table %s", t.id)
			}
		}
		*t.dst = hashes
	}
	return nil
}

func decodeMeshGroups(d *decoder, n int) error {
	out := make([]MeshGroupEntry, n)
	for i := range out {
		var err error
		e := &out[i]
		if e.NameID, err = d.c.U16(); err != nil {
			return err
		}
		if e.InvisibilityFlag, err = d.c.U16(); err != nil {
			return err
		}
		if e.Unknown, err = d.c.U32(); err != nil {
			return err
		}
	}
	d.m.MeshGroups = out
	return nil
}

func decodeObjectAssignments(d *decoder, n int) error {
	out := make([]ObjectAssignmentEntry, n)
	for i := range out {
		e := &out[i]
		if err := d.c.Skip(4); err != nil {
			return err
		}
		for _, dst := range []*uint16{&e.MeshGroupID, &e.NumObjects, &e.NumPrecedingObjects, &e.ID} {
			v, err := d.c.U16()
			if err != nil {
				return err
			}
			*dst = v
		}
		if err := d.c.Skip(4); err != nil {
			return err
		}
		v, err := d.c.U16()
		if err != nil {
			return err
		}
		e.MaterialID = v
		if err := d.c.Skip(0xE); err != nil {
			return err
		}
	}
	d.m.ObjectAssignments = out
	return nil
}

func decodeObjectData(d *decoder, n int) error {
	start := d.c.Pos()
	if d.opts.BugCompatible && n == 1 {
		return &IndexOutOfRangeError{Table: "section 0x3", Index: 1, Len: n, Offset: start}
	}

	out := make([]ObjectDataEntry, n)
	for i := range out {
		var err error
		e := &out[i]
		if e.Unknown0, err = d.c.U32(); err != nil {
			return err
		}
		for _, dst := range []*uint16{&e.Unknown1, &e.Unknown2, &e.ID, &e.NumVertices} {
			if *dst, err = d.c.U16(); err != nil {
				return err
			}
		}
		if err = d.c.Skip(4); err != nil {
			return err
		}
		if e.FaceOffset, err = d.c.U32(); err != nil {
			return err
		}
		if e.NumFaceVertices, err = d.c.U32(); err != nil {
			return err
		}
		u3, err := d.c.U64()
		if err != nil {
			return err
		}
		target := i
		if d.opts.BugCompatible {
			target = 1
		}
		out[target].Unknown3 = u3
		if err = d.c.Skip(0x10); err != nil {
			return err
		}

		if e.NumFaceVertices%3 != 0 {
			d.log.Warn().
				Int("object", i).
				Uint32("face_vertices", e.NumFaceVertices).
				Msg("face vertex count is not a multiple of 3")
		}
	}
	d.m.ObjectData = out
	return nil
}

// decodeBoneGroups reads the 0x5 records: a 4-byte head, numEntries inline
// values, then padding up to the fixed 0x40 payload.
func decodeBoneGroups(d *decoder, n int) error {
	out := make([]BoneGroupEntry, n)
	for i := range out {
		var err error
		e := &out[i]
		if e.Unknown0, err = d.c.U16(); err != nil {
			return err
		}
		count, err := d.c.U16()
		if err != nil {
			return err
		}
		if count > maxBoneGroupEntries {
			return &CorruptInputError{
				Offset: d.c.Pos() - 2,
				Reason: "section 0x5 entry count exceeds its 0x40-byte payload",
			}
		}
		e.Entries = make([]uint16, count)
		for j := range e.Entries {
			if e.Entries[j], err = d.c.U16(); err != nil {
				return err
			}
		}
		if err := d.c.Skip(boneGroupPayload - int64(count)*2); err != nil {
			return err
		}
	}
	d.m.BoneGroups = out
	return nil
}

func pairDecoder(field func(*Model) *[]PairEntry) sectionDecoder {
	return func(d *decoder, n int) error {
		out := make([]PairEntry, n)
		for i := range out {
			var err error
			if out[i].NameID, err = d.c.U16(); err != nil {
				return err
			}
			if out[i].SecondID, err = d.c.U16(); err != nil {
				return err
			}
		}
		*field(d.m) = out
		return nil
	}
}
