package fmdl

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Cursor is a seekable little-endian reader over a fixed-size source.
// Positions are absolute file offsets.
type Cursor struct {
	src  io.ReaderAt
	size int64
	off  int64
	buf  [8]byte
}

// NewCursor wraps src, which must hold exactly size readable bytes.
func NewCursor(src io.ReaderAt, size int64) *Cursor {
	return &Cursor{src: src, size: size}
}

// NewBytesCursor wraps an in-memory buffer.
func NewBytesCursor(b []byte) *Cursor {
	return NewCursor(bytes.NewReader(b), int64(len(b)))
}

func (c *Cursor) Pos() int64       { return c.off }
func (c *Cursor) Size() int64      { return c.size }
func (c *Cursor) Remaining() int64 { return c.size - c.off }

// Seek moves to an absolute offset. Seeking past the end is allowed; the next
// read reports the truncation.
func (c *Cursor) Seek(abs int64) error {
	if abs < 0 {
		return &CorruptInputError{Offset: c.off, Reason: "seek to negative offset"}
	}
	c.off = abs
	return nil
}

// Skip advances by n bytes.
func (c *Cursor) Skip(n int64) error {
	return c.Seek(c.off + n)
}

// Align advances to the next multiple of n unless already aligned.
func (c *Cursor) Align(n int64) error {
	if rem := c.off % n; rem != 0 {
		return c.Skip(n - rem)
	}
	return nil
}

func (c *Cursor) read(n int) ([]byte, error) {
	if c.off+int64(n) > c.size {
		have := c.size - c.off
		if have < 0 {
			have = 0
		}
		return nil, &TruncatedInputError{Offset: c.off, Need: int64(n), Have: have}
	}
	b := c.buf[:n]
	if _, err := c.src.ReadAt(b, c.off); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "fmdl: read %d bytes at 0x%x", n, c.off)
	}
	c.off += int64(n)
	return b, nil
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) U64() (uint64, error) {
	b, err := c.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// need fails early when fewer than n bytes remain from the current position.
func (c *Cursor) need(n int64) error {
	if n > c.Remaining() {
		have := c.size - c.off
		if have < 0 {
			have = 0
		}
		return &TruncatedInputError{Offset: c.off, Need: n, Have: have}
	}
	return nil
}
