// Package cursor provides sequential fixed-width reads over a byte slice.
package cursor

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Cursor reads integers and sub-slices from a byte slice, advancing its
// position after each read. The zero value reads nothing; use New.
type Cursor struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// New returns a cursor over buf positioned at 0 using the given byte order.
func New(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute position within the buffer.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return fmt.Errorf("cursor: seek to %d: %w", pos, io.ErrUnexpectedEOF)
	}
	c.pos = pos
	return nil
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, fmt.Errorf("cursor: read %d bytes at %d: %w", n, c.pos, io.ErrUnexpectedEOF)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a 32-bit unsigned integer.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// I32 reads a 32-bit signed integer.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err //nolint:gosec // two's complement reinterpretation
}
