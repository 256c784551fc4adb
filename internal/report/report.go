// Package report prints decoded models for humans. Every id is resolved
// through the model's hash tables; a dangling id prints as <unresolved: ...>
// instead of failing the whole dump.
package report

import (
	"fmt"
	"io"
	"strconv"

	"fmdl-tool/internal/fmdl"
)

const rule = "================================"

func unresolved(err error) string {
	return fmt.Sprintf("<unresolved: %v>", err)
}

func name(s string, err error) string {
	if err != nil {
		return unresolved(err)
	}
	return s
}

func hexHash(h uint64, err error) string {
	if err != nil {
		return unresolved(err)
	}
	return strconv.FormatUint(h, 16)
}

// Summary prints the profile, header, both directories and per-object geometry.
func Summary(w io.Writer, m *fmdl.Model) {
	h := m.Header
	fmt.Fprintf(w, "Profile: %s (header %d bytes)\n", m.Profile.Revision, h.Size())
	fmt.Fprintf(w, "Signature: %08x\n", h.Signature)
	fmt.Fprintf(w, "Sections: %d small, %d large\n", h.NumSections0, h.NumSections1)
	fmt.Fprintf(w, "Section0: offset=0x%x length=0x%x\n", h.Section0Offset, h.Section0Length)
	fmt.Fprintf(w, "Section1: offset=0x%x length=0x%x\n", h.Section1Offset, h.Section1Length)

	fmt.Fprintln(w, "Directory0:")
	for i, e := range m.Directory0 {
		fmt.Fprintf(w, "  [%2d] id=%-4s entries=%-5d offset=0x%x\n", i, e.ID, e.NumEntries, e.Offset)
	}
	fmt.Fprintln(w, "Directory1:")
	for i, e := range m.Directory1 {
		fmt.Fprintf(w, "  [%2d] id=%d offset=0x%x length=0x%x\n", i, e.ID, e.Offset, e.Length)
	}

	fmt.Fprintf(w, "Objects: %d, Vertices: %d\n", len(m.Objects), m.VertexCount())
	for i := range m.Objects {
		o := &m.Objects[i]
		faces := 0
		if i < len(m.ObjectData) {
			faces = m.ObjectData[i].FaceCount()
		}
		fmt.Fprintf(w, "  Object[%d]: verts=%d, face vertices=%d, faces=%d\n", i, len(o.Vertices), o.FaceVertexCount, faces)
		if min, max, ok := o.Bounds(); ok {
			fmt.Fprintf(w, "    BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
				min[0], max[0], min[1], max[1], min[2], max[2])
		}
	}
	for _, warn := range m.Warnings {
		fmt.Fprintf(w, "Warning: %v\n", warn)
	}
}

// ObjectAssignments prints the section 0x2 entries.
func ObjectAssignments(w io.Writer, m *fmdl.Model, r *fmdl.Resolver) {
	for _, e := range m.ObjectAssignments {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Entry ID: %d\n", e.ID)
		fmt.Fprintf(w, "Mesh Group: %s\n", name(m.MeshGroupName(r, e.MeshGroupID)))
		fmt.Fprintf(w, "Number of Objects: %d\n", e.NumObjects)
		fmt.Fprintf(w, "Number of Preceding Objects: %d\n", e.NumPrecedingObjects)
		fmt.Fprintf(w, "Material ID: %d\n", e.MaterialID)
	}
}

// TextureTypes prints the section 0x7 entries.
func TextureTypes(w io.Writer, m *fmdl.Model, r *fmdl.Resolver) {
	for i, e := range m.TextureTypes {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Entry No: %d\n", i)
		fmt.Fprintf(w, "Texture Type: %s\n", name(r.Name(e.NameID)))
		fmt.Fprintf(w, "Texture: %s\n", name(r.Texture(e.SecondID)))
	}
}

// MaterialAssignments prints the section 0x8 entries.
func MaterialAssignments(w io.Writer, m *fmdl.Model, r *fmdl.Resolver) {
	for i, e := range m.MaterialAssignments {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Entry No: %d\n", i)
		fmt.Fprintf(w, "Unknown: %s\n", name(r.Name(e.NameID)))
		fmt.Fprintf(w, "Material: %s\n", name(r.Name(e.SecondID)))
	}
}

// NameHashes prints the raw section 0x16 table.
func NameHashes(w io.Writer, m *fmdl.Model, r *fmdl.Resolver) {
	for i := range m.NameHashes {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Entry No: %d\n", i)
		fmt.Fprintf(w, "Hash: %s\n", hexHash(r.NameHash(uint16(i))))
	}
}

// ObjectStats prints the largest section 0x3 field values.
func ObjectStats(w io.Writer, m *fmdl.Model) {
	var u1, u2, id uint16
	var u3 uint64
	for _, e := range m.ObjectData {
		u1 = max(u1, e.Unknown1)
		u2 = max(u2, e.Unknown2)
		u3 = max(u3, e.Unknown3)
		id = max(id, e.ID)
	}
	fmt.Fprintf(w, "The greatest unknown1 is: %x\n", u1)
	fmt.Fprintf(w, "The greatest unknown2 is: %x\n", u2)
	fmt.Fprintf(w, "The greatest unknown3 is: %x\n", u3)
	fmt.Fprintf(w, "The greatest id is: %x\n", id)
}

// BoneGroupStats prints the largest section 0x5 values.
func BoneGroupStats(w io.Writer, m *fmdl.Model) {
	var u0, entry uint16
	for _, e := range m.BoneGroups {
		u0 = max(u0, e.Unknown0)
		for _, v := range e.Entries {
			entry = max(entry, v)
		}
	}
	fmt.Fprintf(w, "The greatest unknown0 is: %x\n", u0)
	fmt.Fprintf(w, "The greatest entry is: %x\n", entry)
}

// Dump writes the full report the fmdldump tool prints. debugStats adds the
// section 0x3/0x5 maxima and the raw name table.
func Dump(w io.Writer, m *fmdl.Model, r *fmdl.Resolver, debugStats bool) {
	Summary(w, m)
	ObjectAssignments(w, m, r)
	TextureTypes(w, m, r)
	MaterialAssignments(w, m, r)
	if debugStats {
		fmt.Fprintln(w, rule)
		ObjectStats(w, m)
		BoneGroupStats(w, m)
		NameHashes(w, m, r)
	}
}
