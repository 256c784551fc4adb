package fmdl

// ParseHeader reads the preamble from offset 0 with the given number of
// reserved 32-bit words. The signature is exposed but not checked.
func ParseHeader(c *Cursor, reservedWords int) (FileHeader, error) {
	var h FileHeader
	if err := c.Seek(0); err != nil {
		return h, err
	}
	if err := c.need(headerSize(reservedWords)); err != nil {
		return h, err
	}

	var err error
	if h.Signature, err = c.U32(); err != nil {
		return h, err
	}
	h.Reserved = make([]uint32, reservedWords)
	for i := range h.Reserved {
		if h.Reserved[i], err = c.U32(); err != nil {
			return h, err
		}
	}
	for i := range h.ReservedWide {
		if h.ReservedWide[i], err = c.U64(); err != nil {
			return h, err
		}
	}
	for _, dst := range []*uint32{
		&h.NumSections0, &h.NumSections1,
		&h.Section0Offset, &h.Section0Length,
		&h.Section1Offset, &h.Section1Length,
	} {
		if *dst, err = c.U32(); err != nil {
			return h, err
		}
	}
	// 8 bytes of padding.
	return h, c.Skip(8)
}
