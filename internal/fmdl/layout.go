package fmdl

// DeriveDirectory0 recomputes directory-0 from decoded record counts, packing
// sections in dense order from base (relative to section0Offset) with each
// section start rounded up to align. It reconstructs the directory of files
// whose sections are stored contiguously.
func (m *Model) DeriveDirectory0(base, align uint32) ([]DirectoryEntry0, error) {
	out := make([]DirectoryEntry0, len(m.Directory0))
	off := base
	for i, src := range m.Directory0 {
		count := m.Count(src.ID)
		stride, known := RecordStride(src.ID)
		if count < 0 || !known {
			if src.NumEntries != 0 {
				return nil, &UnsupportedSectionLayoutError{
					ID:      src.ID,
					Index:   i,
					Offset:  int64(m.Header.Section0Offset) + int64(src.Offset),
					Profile: m.Profile.Revision,
				}
			}
			count, stride = 0, 0
		}
		if align > 1 {
			if rem := off % align; rem != 0 {
				off += align - rem
			}
		}
		out[i] = DirectoryEntry0{ID: src.ID, NumEntries: uint16(count), Offset: off}
		off += uint32(stride * count)
	}
	return out, nil
}
