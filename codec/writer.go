package codec

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// Writer is a growing little-endian output buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the written bytes. The slice aliases the writer.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU16 appends an unsigned 16-bit integer.
func (w *Writer) WriteU16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteI16 appends a signed 16-bit integer.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

// WriteU32 appends an unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteI32 appends a signed 32-bit integer.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteU64 appends an unsigned 64-bit integer.
func (w *Writer) WriteU64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteF64 appends an IEEE 754 double.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteBytes appends b unchanged.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutU16At overwrites two bytes at off.
func (w *Writer) PutU16At(off int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[off:], v)
}

// PutU32At overwrites four bytes at off.
func (w *Writer) PutU32At(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[off:], v)
}

// WriteCompressedUnicode appends s as 8-bit characters. Every rune of s
// must be at most U+00FF.
func (w *Writer) WriteCompressedUnicode(s string) error {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return Errorf(ErrUnsupportedFeature, "string %q is not 8-bit encodable", s)
	}
	w.buf = append(w.buf, b...)
	return nil
}

// EncodeUnicodeLE returns s as UTF-16LE bytes, with the codec the cursor
// decodes with. Invalid UTF-8 becomes U+FFFD.
func EncodeUnicodeLE(s string) []byte {
	// the UTF-16 encoder replaces what it cannot encode instead of failing
	b, _ := utf16le.NewEncoder().Bytes([]byte(s))
	return b
}

// UTF16Units returns the UTF-16 code units of s.
func UTF16Units(s string) []uint16 {
	b := EncodeUnicodeLE(s)
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return units
}

// WriteUnicodeLE appends s as UTF-16LE code units.
func (w *Writer) WriteUnicodeLE(s string) {
	w.buf = append(w.buf, EncodeUnicodeLE(s)...)
}

// HasMultibyte reports whether s contains a rune that cannot be stored as
// an 8-bit character.
func HasMultibyte(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return true
		}
	}
	return false
}

// CharCount returns the number of UTF-16 code units in s, which is how
// BIFF string headers count characters.
func CharCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
