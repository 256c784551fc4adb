package fmdl

import (
	"github.com/chewxy/math32"
)

const vertexBlockAlign = 0x10

func (d *decoder) alignVertices() bool {
	switch d.opts.Alignment {
	case AlignAlways:
		return true
	case AlignNever:
		return false
	}
	return d.m.Profile.AlignVertices
}

// extractGeometry reads each object's vertices, in ObjectData order, from the
// vertex block described by directory1[VertexBlock].
func (d *decoder) extractGeometry() error {
	m := d.m
	m.Objects = make([]Object, len(m.ObjectData))

	total := 0
	for i, od := range m.ObjectData {
		m.Objects[i].FaceVertexCount = od.NumFaceVertices
		total += int(od.NumVertices)
	}
	if total == 0 {
		return nil
	}

	blk, err := m.Section1(VertexBlock)
	if err != nil {
		return err
	}
	if err := d.c.Seek(int64(blk.Offset) + int64(m.Header.Section1Offset)); err != nil {
		return err
	}
	align := d.alignVertices()
	d.log.Debug().Int64("offset", d.c.Pos()).Bool("align", align).Int("vertices", total).Msg("vertex block")

	for i, od := range m.ObjectData {
		if err := d.c.need(int64(od.NumVertices) * 12); err != nil {
			return err
		}
		verts := make([]Vertex, od.NumVertices)
		for j := range verts {
			v := &verts[j]
			for _, dst := range []*float32{&v.X, &v.Y, &v.Z} {
				if *dst, err = d.c.F32(); err != nil {
					return err
				}
			}
		}
		m.Objects[i].Vertices = verts
		if align {
			if err := d.c.Align(vertexBlockAlign); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the object's vertices.
func (o *Object) Bounds() (min, max [3]float32, ok bool) {
	if len(o.Vertices) == 0 {
		return min, max, false
	}
	min = [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	max = [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for _, v := range o.Vertices {
		p := [3]float32{v.X, v.Y, v.Z}
		for k := 0; k < 3; k++ {
			min[k] = math32.Min(min[k], p[k])
			max[k] = math32.Max(max[k], p[k])
		}
	}
	return min, max, true
}

// Bounds returns the bounding box of every object in the model.
func (m *Model) Bounds() (min, max [3]float32, ok bool) {
	for i := range m.Objects {
		omin, omax, has := m.Objects[i].Bounds()
		if !has {
			continue
		}
		if !ok {
			min, max, ok = omin, omax, true
			continue
		}
		for k := 0; k < 3; k++ {
			min[k] = math32.Min(min[k], omin[k])
			max[k] = math32.Max(max[k], omax[k])
		}
	}
	return min, max, ok
}

// VertexCount is the total number of vertices across all objects.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Objects {
		n += len(m.Objects[i].Vertices)
	}
	return n
}
