package fmdl

import "fmt"

// SectionID is the sparse id stored in a directory-0 entry.
type SectionID uint16

const (
	SectionUnknown0           SectionID = 0x0
	SectionMeshGroups         SectionID = 0x1
	SectionObjectAssignments  SectionID = 0x2
	SectionObjectData         SectionID = 0x3
	SectionUnknown4           SectionID = 0x4
	SectionBoneGroups         SectionID = 0x5
	SectionTextureAssignments SectionID = 0x6
	SectionTextureTypes       SectionID = 0x7
	SectionMaterials          SectionID = 0x8
	SectionUnknown9           SectionID = 0x9
	SectionUnknownA           SectionID = 0xA
	SectionUnknownB           SectionID = 0xB
	SectionUnknownD           SectionID = 0xD
	SectionUnknownE           SectionID = 0xE
	SectionUnknown10          SectionID = 0x10
	SectionUnknown11          SectionID = 0x11
	SectionUnknown12          SectionID = 0x12
	SectionUnknown14          SectionID = 0x14
	SectionTextureHashes      SectionID = 0x15
	SectionNameHashes         SectionID = 0x16
)

func (id SectionID) String() string {
	return fmt.Sprintf("0x%X", uint16(id))
}

// TextureHashBias is added by the format to every stored texture hash.
const TextureHashBias uint64 = 0x1568000000000000

// VertexBlock is the directory-1 index of the vertex stream descriptor.
const VertexBlock = 1

// FileHeader is the fixed preamble. Reserved holds one or two 32-bit words
// depending on the revision; ReservedWide is always three 64-bit words.
type FileHeader struct {
	Signature      uint32
	Reserved       []uint32
	ReservedWide   [3]uint64
	NumSections0   uint32
	NumSections1   uint32
	Section0Offset uint32
	Section0Length uint32
	Section1Offset uint32
	Section1Length uint32
}

// Size returns the encoded preamble size including trailing padding.
func (h *FileHeader) Size() int64 {
	return headerSize(len(h.Reserved))
}

func headerSize(reservedWords int) int64 {
	return 4 + 4*int64(reservedWords) + 3*8 + 6*4 + 8
}

// DirectoryEntry0 describes one small typed metadata section.
type DirectoryEntry0 struct {
	ID         SectionID
	NumEntries uint16
	Offset     uint32
}

// DirectoryEntry1 describes one large raw data block.
type DirectoryEntry1 struct {
	ID     uint32
	Offset uint32
	Length uint32
}

// MeshGroupEntry is a section 0x1 record.
type MeshGroupEntry struct {
	NameID           uint16
	InvisibilityFlag uint16
	Unknown          uint32
}

// ObjectAssignmentEntry is a section 0x2 record.
type ObjectAssignmentEntry struct {
	MeshGroupID         uint16
	NumObjects          uint16
	NumPrecedingObjects uint16
	ID                  uint16
	MaterialID          uint16
}

// ObjectDataEntry is a section 0x3 record.
type ObjectDataEntry struct {
	Unknown0        uint32
	Unknown1        uint16 // probably indexes section 0x4
	Unknown2        uint16 // probably indexes section 0x5
	ID              uint16
	NumVertices     uint16
	FaceOffset      uint32
	NumFaceVertices uint32
	Unknown3        uint64
}

// FaceCount is the number of triangles described by NumFaceVertices.
func (e ObjectDataEntry) FaceCount() int {
	return int(e.NumFaceVertices / 3)
}

// BoneGroupEntry is a section 0x5 record. Entries holds at most 32 values.
type BoneGroupEntry struct {
	Unknown0 uint16
	Entries  []uint16
}

// PairEntry is the shared layout of sections 0x6, 0x7 and 0x8. SecondID is a
// texture id for 0x6/0x7 and a material name id for 0x8.
type PairEntry struct {
	NameID   uint16
	SecondID uint16
}

type Vertex struct {
	X, Y, Z float32
}

type Face struct {
	V1, V2, V3 uint16
}

// Object is the geometry of one ObjectDataEntry. Faces stays empty: the
// observed layout gives no usable per-object face stream offset.
type Object struct {
	Vertices        []Vertex
	Faces           []Face
	FaceVertexCount uint32
}

// Model is the full result of one decode. It is never mutated after Decode returns.
type Model struct {
	Header     FileHeader
	Profile    *FormatProfile
	Directory0 []DirectoryEntry0
	Directory1 []DirectoryEntry1

	MeshGroups          []MeshGroupEntry
	ObjectAssignments   []ObjectAssignmentEntry
	ObjectData          []ObjectDataEntry
	BoneGroups          []BoneGroupEntry
	TextureAssignments  []PairEntry
	TextureTypes        []PairEntry
	MaterialAssignments []PairEntry
	TextureHashes       []uint64
	NameHashes          []uint64

	Objects []Object

	// Warnings collects recoverable per-section problems.
	Warnings []error
}

// Count returns the number of decoded records for a section, or -1 when the
// section is not interpreted.
func (m *Model) Count(id SectionID) int {
	switch id {
	case SectionMeshGroups:
		return len(m.MeshGroups)
	case SectionObjectAssignments:
		return len(m.ObjectAssignments)
	case SectionObjectData:
		return len(m.ObjectData)
	case SectionBoneGroups:
		return len(m.BoneGroups)
	case SectionTextureAssignments:
		return len(m.TextureAssignments)
	case SectionTextureTypes:
		return len(m.TextureTypes)
	case SectionMaterials:
		return len(m.MaterialAssignments)
	case SectionTextureHashes:
		return len(m.TextureHashes)
	case SectionNameHashes:
		return len(m.NameHashes)
	}
	return -1
}

// Resolver returns a name resolver over the model's hash tables. dict may be nil.
func (m *Model) Resolver(dict Dictionary) *Resolver {
	return NewResolver(m.NameHashes, m.TextureHashes, dict)
}
