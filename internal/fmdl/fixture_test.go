package fmdl

import (
	"bytes"
	"encoding/binary"
	"math"
)

// fixtureSection is one directory-0 section in dense order.
type fixtureSection struct {
	id    SectionID
	count int
	data  []byte
}

// fixture builds a synthetic model file. Sections are packed from base
// (relative to section0Offset), each start rounded up to align.
type fixture struct {
	words    int
	sig      uint32
	sections []fixtureSection
	base     uint32
	align    uint32
	sec0Off  uint32 // 0 places section data after the directories
	sec1Off  uint32 // 0 places block data after the section data
	blocks   []DirectoryEntry1
	blockRaw []byte // data addressed by blocks, relative to section1Offset

	// filled by build
	dir0   []DirectoryEntry0
	dir0At int
}

func roundUp(v, align uint32) uint32 {
	if align <= 1 {
		return v
	}
	if rem := v % align; rem != 0 {
		v += align - rem
	}
	return v
}

func le(buf *bytes.Buffer, vals ...any) {
	for _, v := range vals {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
}

func (f *fixture) build() []byte {
	if f.words == 0 {
		f.words = 1
	}
	if f.sig == 0 {
		f.sig = 0x4C444D46 // "FMDL"
	}

	var body []byte
	f.dir0 = make([]DirectoryEntry0, len(f.sections))
	off := f.base
	for i, s := range f.sections {
		off = roundUp(off, f.align)
		for uint32(len(body)) < off {
			body = append(body, 0)
		}
		body = append(body, s.data...)
		f.dir0[i] = DirectoryEntry0{ID: s.id, NumEntries: uint16(s.count), Offset: off}
		off += uint32(len(s.data))
	}

	hdrSize := int(headerSize(f.words))
	dirEnd := hdrSize + 8*len(f.sections) + 12*len(f.blocks)
	sec0 := f.sec0Off
	if sec0 == 0 {
		sec0 = roundUp(uint32(dirEnd), 16)
	}
	sec1 := f.sec1Off
	if sec1 == 0 && f.blockRaw != nil {
		sec1 = roundUp(sec0+uint32(len(body)), 16)
	}

	var hdr bytes.Buffer
	le(&hdr, f.sig)
	for i := 0; i < f.words; i++ {
		le(&hdr, uint32(0))
	}
	le(&hdr, [3]uint64{})
	le(&hdr, uint32(len(f.sections)), uint32(len(f.blocks)))
	le(&hdr, sec0, uint32(len(body)), sec1, uint32(len(f.blockRaw)))
	le(&hdr, [8]byte{})
	f.dir0At = hdr.Len()
	hdr.Write(encodeDirectory0(f.dir0))
	for _, b := range f.blocks {
		le(&hdr, b.ID, b.Offset, b.Length)
	}

	size := hdr.Len()
	if end := int(sec0) + len(body); end > size {
		size = end
	}
	if end := int(sec1) + len(f.blockRaw); f.blockRaw != nil && end > size {
		size = end
	}
	out := make([]byte, size)
	copy(out, hdr.Bytes())
	// Bytes before base are never section data; they may overlap the directories.
	if int(f.base) < len(body) {
		copy(out[int(sec0)+int(f.base):], body[f.base:])
	}
	copy(out[sec1:], f.blockRaw)
	return out
}

func encodeDirectory0(dir []DirectoryEntry0) []byte {
	var buf bytes.Buffer
	for _, e := range dir {
		le(&buf, uint16(e.ID), e.NumEntries, e.Offset)
	}
	return buf.Bytes()
}

func meshGroupBytes(entries ...MeshGroupEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		le(&buf, e.NameID, e.InvisibilityFlag, e.Unknown)
	}
	return buf.Bytes()
}

func objectAssignmentBytes(entries ...ObjectAssignmentEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		le(&buf, [4]byte{0xAA, 0xAA, 0xAA, 0xAA})
		le(&buf, e.MeshGroupID, e.NumObjects, e.NumPrecedingObjects, e.ID)
		le(&buf, [4]byte{0xBB, 0xBB, 0xBB, 0xBB})
		le(&buf, e.MaterialID)
		le(&buf, [0xE]byte{})
	}
	return buf.Bytes()
}

func objectDataBytes(entries ...ObjectDataEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		le(&buf, e.Unknown0, e.Unknown1, e.Unknown2, e.ID, e.NumVertices)
		le(&buf, uint32(0xCCCCCCCC))
		le(&buf, e.FaceOffset, e.NumFaceVertices, e.Unknown3)
		le(&buf, [0x10]byte{})
	}
	return buf.Bytes()
}

func boneGroupBytes(entries ...BoneGroupEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		le(&buf, e.Unknown0, uint16(len(e.Entries)))
		if len(e.Entries) > 0 {
			le(&buf, e.Entries)
		}
		buf.Write(make([]byte, boneGroupPayload-2*len(e.Entries)))
	}
	return buf.Bytes()
}

func pairBytes(entries ...PairEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		le(&buf, e.NameID, e.SecondID)
	}
	return buf.Bytes()
}

func hashBytes(hashes ...uint64) []byte {
	var buf bytes.Buffer
	le(&buf, hashes)
	return buf.Bytes()
}

// vertexBytes encodes objects back to back, padding each to align when align > 1.
func vertexBytes(start uint32, align uint32, objects ...[]Vertex) []byte {
	var buf bytes.Buffer
	for _, obj := range objects {
		for _, v := range obj {
			le(&buf, math.Float32bits(v.X), math.Float32bits(v.Y), math.Float32bits(v.Z))
		}
		for pos := start + uint32(buf.Len()); roundUp(pos, align) != pos; pos++ {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

var (
	fixtureMeshGroups = []MeshGroupEntry{
		{NameID: 2, InvisibilityFlag: 0, Unknown: 0x11},
		{NameID: 1, InvisibilityFlag: 1, Unknown: 0x22},
	}
	fixtureAssignments = []ObjectAssignmentEntry{
		{MeshGroupID: 0, NumObjects: 1, NumPrecedingObjects: 0, ID: 0, MaterialID: 0},
		{MeshGroupID: 1, NumObjects: 1, NumPrecedingObjects: 1, ID: 1, MaterialID: 0},
	}
	fixtureObjectData = []ObjectDataEntry{
		{Unknown0: 0x80, Unknown1: 0, Unknown2: 0, ID: 0, NumVertices: 3, FaceOffset: 0, NumFaceVertices: 3, Unknown3: 0xA1},
		{Unknown0: 0x80, Unknown1: 1, Unknown2: 0, ID: 1, NumVertices: 2, FaceOffset: 3, NumFaceVertices: 6, Unknown3: 0xB2},
	}
	fixtureBoneGroups = []BoneGroupEntry{
		{Unknown0: 4, Entries: []uint16{1, 2, 3}},
	}
	fixtureTextureAssign = []PairEntry{{NameID: 0, SecondID: 1}}
	fixtureTextureTypes  = []PairEntry{{NameID: 0, SecondID: 0}, {NameID: 1, SecondID: 1}}
	fixtureMaterials     = []PairEntry{{NameID: 1, SecondID: 2}}
	fixtureTextureHashes = []uint64{TextureHashBias + 0xDEAD, TextureHashBias + 0xBEEF}
	fixtureNameHashes    = []uint64{0x1000000000000001, 0x2000000000000002, 0x3000000000000003}
	fixtureVertices      = [][]Vertex{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 3}, {X: -1, Y: 5, Z: 0.5}},
		{{X: 10, Y: -10, Z: 4}, {X: 7, Y: 8, Z: 9}},
	}
)

// rev4Fixture returns a complete 20-section file with two objects.
func rev4Fixture() *fixture {
	data := map[SectionID]fixtureSection{
		SectionMeshGroups:         {SectionMeshGroups, len(fixtureMeshGroups), meshGroupBytes(fixtureMeshGroups...)},
		SectionObjectAssignments:  {SectionObjectAssignments, len(fixtureAssignments), objectAssignmentBytes(fixtureAssignments...)},
		SectionObjectData:         {SectionObjectData, len(fixtureObjectData), objectDataBytes(fixtureObjectData...)},
		SectionBoneGroups:         {SectionBoneGroups, len(fixtureBoneGroups), boneGroupBytes(fixtureBoneGroups...)},
		SectionTextureAssignments: {SectionTextureAssignments, len(fixtureTextureAssign), pairBytes(fixtureTextureAssign...)},
		SectionTextureTypes:       {SectionTextureTypes, len(fixtureTextureTypes), pairBytes(fixtureTextureTypes...)},
		SectionMaterials:          {SectionMaterials, len(fixtureMaterials), pairBytes(fixtureMaterials...)},
		SectionTextureHashes:      {SectionTextureHashes, len(fixtureTextureHashes), hashBytes(fixtureTextureHashes...)},
		SectionNameHashes:         {SectionNameHashes, len(fixtureNameHashes), hashBytes(fixtureNameHashes...)},
	}
	f := &fixture{words: 1, align: 16}
	for _, id := range allSections {
		s, ok := data[id]
		if !ok {
			s = fixtureSection{id: id}
		}
		f.sections = append(f.sections, s)
	}
	f.blockRaw = vertexBytes(0, 16, fixtureVertices...)
	f.blocks = []DirectoryEntry1{
		{ID: 0, Offset: 0, Length: 0},
		{ID: 2, Offset: 0, Length: uint32(len(f.blockRaw))},
	}
	return f
}
