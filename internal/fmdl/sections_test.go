package fmdl

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDecoder(b []byte, opts Options) *decoder {
	return &decoder{
		c:    NewBytesCursor(b),
		m:    &Model{},
		opts: opts,
		log:  zerolog.Nop(),
		bad:  make(map[int]bool),
	}
}

func TestDecodeBoneGroups_Stride(t *testing.T) {
	for _, n := range []int{0, 1, 5, maxBoneGroupEntries} {
		entries := make([]uint16, n)
		for i := range entries {
			entries[i] = uint16(100 + i)
		}
		data := boneGroupBytes(BoneGroupEntry{Unknown0: 9, Entries: entries})
		require.Len(t, data, boneGroupStride)

		d := newTestDecoder(data, Options{})
		require.NoError(t, decodeBoneGroups(d, 1))
		assert.Equal(t, int64(boneGroupHead+boneGroupPayload), d.c.Pos(), "%d entries", n)
		require.Len(t, d.m.BoneGroups, 1)
		assert.Equal(t, uint16(9), d.m.BoneGroups[0].Unknown0)
		assert.Equal(t, entries, d.m.BoneGroups[0].Entries)
	}
}

func TestDecodeBoneGroups_TooManyEntries(t *testing.T) {
	var buf bytes.Buffer
	le(&buf, uint16(0), uint16(maxBoneGroupEntries+1))
	buf.Write(make([]byte, boneGroupPayload))

	d := newTestDecoder(buf.Bytes(), Options{})
	err := decodeBoneGroups(d, 1)

	var cor *CorruptInputError
	require.True(t, errors.As(err, &cor))
	assert.Equal(t, int64(2), cor.Offset)
}

func TestDecodeObjectAssignments_SkipsPadding(t *testing.T) {
	want := []ObjectAssignmentEntry{
		{MeshGroupID: 3, NumObjects: 2, NumPrecedingObjects: 1, ID: 7, MaterialID: 5},
		{MeshGroupID: 4, NumObjects: 1, NumPrecedingObjects: 3, ID: 8, MaterialID: 6},
	}
	data := objectAssignmentBytes(want...)
	require.Len(t, data, 2*objectAssignmentStride)

	d := newTestDecoder(data, Options{})
	require.NoError(t, decodeObjectAssignments(d, 2))
	assert.Equal(t, want, d.m.ObjectAssignments)
	assert.Equal(t, int64(len(data)), d.c.Pos())
}

func TestRecordStride(t *testing.T) {
	tests := []struct {
		id     SectionID
		stride int
		known  bool
	}{
		{SectionMeshGroups, 8, true},
		{SectionObjectAssignments, 32, true},
		{SectionObjectData, 48, true},
		{SectionBoneGroups, 0x44, true},
		{SectionTextureTypes, 4, true},
		{SectionNameHashes, 8, true},
		{SectionUnknown0, 0, false},
		{SectionUnknown12, 0, false},
	}
	for _, tc := range tests {
		stride, known := RecordStride(tc.id)
		assert.Equal(t, tc.stride, stride, tc.id.String())
		assert.Equal(t, tc.known, known, tc.id.String())
	}
	assert.Equal(t, 48, len(objectDataBytes(ObjectDataEntry{})))
	assert.Equal(t, 8, len(meshGroupBytes(MeshGroupEntry{})))
}

func TestDecodeBoneGroups_ConsecutiveRecords(t *testing.T) {
	data := boneGroupBytes(
		BoneGroupEntry{Unknown0: 1, Entries: []uint16{1, 2, 3}},
		BoneGroupEntry{Unknown0: 2, Entries: []uint16{7}},
	)
	d := newTestDecoder(data, Options{})
	require.NoError(t, decodeBoneGroups(d, 2))

	// 4-byte head + 6 bytes of values + 0x3A padding puts record 1 at 0x44
	assert.Equal(t, int64(2*boneGroupStride), d.c.Pos())
	assert.Equal(t, []BoneGroupEntry{
		{Unknown0: 1, Entries: []uint16{1, 2, 3}},
		{Unknown0: 2, Entries: []uint16{7}},
	}, d.m.BoneGroups)
}
