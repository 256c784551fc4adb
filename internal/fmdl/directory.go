package fmdl

// ParseDirectories reads both directory tables starting at the cursor.
func ParseDirectories(c *Cursor, h *FileHeader) ([]DirectoryEntry0, []DirectoryEntry1, error) {
	if err := c.need(int64(h.NumSections0)*8 + int64(h.NumSections1)*12); err != nil {
		return nil, nil, err
	}

	dir0 := make([]DirectoryEntry0, h.NumSections0)
	for i := range dir0 {
		id, err := c.U16()
		if err != nil {
			return nil, nil, err
		}
		n, err := c.U16()
		if err != nil {
			return nil, nil, err
		}
		off, err := c.U32()
		if err != nil {
			return nil, nil, err
		}
		dir0[i] = DirectoryEntry0{ID: SectionID(id), NumEntries: n, Offset: off}
	}

	dir1 := make([]DirectoryEntry1, h.NumSections1)
	for i := range dir1 {
		var vals [3]uint32
		for k := range vals {
			v, err := c.U32()
			if err != nil {
				return nil, nil, err
			}
			vals[k] = v
		}
		dir1[i] = DirectoryEntry1{ID: vals[0], Offset: vals[1], Length: vals[2]}
	}
	return dir0, dir1, nil
}

// Section0 returns the directory-0 entry at a dense index.
func (m *Model) Section0(dense int) (DirectoryEntry0, error) {
	if dense < 0 || dense >= len(m.Directory0) {
		return DirectoryEntry0{}, &IndexOutOfRangeError{Table: "directory0", Index: dense, Len: len(m.Directory0), Offset: -1}
	}
	return m.Directory0[dense], nil
}

// Section1 returns the directory-1 entry at a dense index.
func (m *Model) Section1(dense int) (DirectoryEntry1, error) {
	if dense < 0 || dense >= len(m.Directory1) {
		return DirectoryEntry1{}, &IndexOutOfRangeError{Table: "directory1", Index: dense, Len: len(m.Directory1), Offset: -1}
	}
	return m.Directory1[dense], nil
}

// Lookup translates a sparse id through the active profile and returns its entry.
func (m *Model) Lookup(id SectionID) (DirectoryEntry0, bool) {
	if m.Profile == nil {
		return DirectoryEntry0{}, false
	}
	dense, ok := m.Profile.Dense(id)
	if !ok {
		return DirectoryEntry0{}, false
	}
	e, err := m.Section0(dense)
	return e, err == nil
}
