package codec

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Cursor is a bounds-checked little-endian reader over a byte slice.
// A Cursor is owned by one reader at a time.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Buffer returns the underlying buffer.
func (c *Cursor) Buffer() []byte { return c.buf }

func (c *Cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return Errorf(ErrTruncatedInput, "need %d bytes at offset %d, have %d", n, c.pos, len(c.buf)-c.pos)
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads an unsigned 16-bit integer.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadI16 reads a signed 16-bit integer.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit integer.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadI32 reads a signed 32-bit integer.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit integer.
func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, nil
}

// ReadF64 reads an IEEE 754 double.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// ReadRemainder returns a copy of every unread byte.
func (c *Cursor) ReadRemainder() []byte {
	out := make([]byte, len(c.buf)-c.pos)
	copy(out, c.buf[c.pos:])
	c.pos = len(c.buf)
	return out
}

// Sub returns a cursor over the next n bytes and advances past them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	sub := NewCursor(c.buf[c.pos : c.pos+n])
	c.pos += n
	return sub, nil
}

// ReadCompressedUnicode reads n 8-bit characters (the low bytes of UTF-16
// code units, i.e. ISO-8859-1).
func (c *Cursor) ReadCompressedUnicode(n int) (string, error) {
	if err := c.need(n); err != nil {
		return "", err
	}
	b, err := charmap.ISO8859_1.NewDecoder().Bytes(c.buf[c.pos : c.pos+n])
	if err != nil {
		return "", err
	}
	c.pos += n
	return string(b), nil
}

// ReadUnicodeLE reads n UTF-16LE code units.
func (c *Cursor) ReadUnicodeLE(n int) (string, error) {
	if err := c.need(2 * n); err != nil {
		return "", err
	}
	b, err := utf16le.NewDecoder().Bytes(c.buf[c.pos : c.pos+2*n])
	if err != nil {
		return "", err
	}
	c.pos += 2 * n
	return string(b), nil
}
