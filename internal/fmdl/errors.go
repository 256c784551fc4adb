package fmdl

import (
	"fmt"

	"github.com/pkg/errors"
)

// TruncatedInputError reports a fixed-size read that ran past the end of input.
type TruncatedInputError struct {
	Offset int64
	Need   int64
	Have   int64
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("fmdl: truncated input at 0x%x: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// IndexOutOfRangeError reports an index that falls outside its table.
type IndexOutOfRangeError struct {
	Table  string
	Index  int
	Len    int
	Offset int64 // -1 when the lookup is not tied to a file position
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("fmdl: %s index %d out of range (len %d)", e.Table, e.Index, e.Len)
}

// UnsupportedSectionLayoutError reports a directory entry whose id the active
// profile does not know how to lay out.
type UnsupportedSectionLayoutError struct {
	ID      SectionID
	Index   int
	Offset  int64
	Profile Revision
}

func (e *UnsupportedSectionLayoutError) Error() string {
	return fmt.Sprintf("fmdl: section %s at dense index %d has no layout in profile %s", e.ID, e.Index, e.Profile)
}

// CorruptInputError reports a value that cannot occur in a well-formed file.
type CorruptInputError struct {
	Offset int64
	Reason string
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("fmdl: corrupt input at 0x%x: %s", e.Offset, e.Reason)
}

// ErrorKind names the taxonomy entry of err, or "error" for anything else.
func ErrorKind(err error) string {
	var (
		trunc *TruncatedInputError
		oor   *IndexOutOfRangeError
		uns   *UnsupportedSectionLayoutError
		cor   *CorruptInputError
	)
	switch {
	case errors.As(err, &trunc):
		return "TruncatedInputError"
	case errors.As(err, &oor):
		return "IndexOutOfRangeError"
	case errors.As(err, &uns):
		return "UnsupportedSectionLayoutError"
	case errors.As(err, &cor):
		return "CorruptInputError"
	}
	return "error"
}

// ErrorOffset returns the byte offset carried by the first typed error in err's chain.
func ErrorOffset(err error) (int64, bool) {
	var (
		trunc *TruncatedInputError
		oor   *IndexOutOfRangeError
		uns   *UnsupportedSectionLayoutError
		cor   *CorruptInputError
	)
	switch {
	case errors.As(err, &trunc):
		return trunc.Offset, true
	case errors.As(err, &oor):
		return oor.Offset, oor.Offset >= 0
	case errors.As(err, &uns):
		return uns.Offset, true
	case errors.As(err, &cor):
		return cor.Offset, true
	}
	return 0, false
}
