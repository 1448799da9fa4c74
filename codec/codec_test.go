package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorFixedWidth(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12, 0xFF, 0xFF})

	u8, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), u8)

	u16, err := c.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	i16, err := c.ReadI16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1), i16)
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorTruncated(t *testing.T) {
	c := NewCursor([]byte{0x01})
	_, err := c.ReadU16()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
	// a failed read does not move the cursor
	assert.Equal(t, 0, c.Pos())

	_, err = c.ReadBytes(2)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.ErrorIs(t, c.Skip(5), ErrTruncatedInput)
}

func TestStrings(t *testing.T) {
	w := NewWriter(0)
	require.NoError(t, w.WriteCompressedUnicode("café"))
	w.WriteUnicodeLE("日本")
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9, 0xE5, 0x65, 0x2C, 0x67}, w.Bytes())

	c := NewCursor(w.Bytes())
	s, err := c.ReadCompressedUnicode(4)
	require.NoError(t, err)
	assert.Equal(t, "café", s)
	s, err = c.ReadUnicodeLE(2)
	require.NoError(t, err)
	assert.Equal(t, "日本", s)

	assert.Error(t, w.WriteCompressedUnicode("日"))
}

func TestHasMultibyteAndCharCount(t *testing.T) {
	tests := []struct {
		in        string
		multibyte bool
		count     int
	}{
		{"", false, 0},
		{"abc", false, 3},
		{"ÿ", false, 1},
		{"Ā", true, 1},
		{"a\U0001F600", true, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.multibyte, HasMultibyte(tt.in), tt.in)
		assert.Equal(t, tt.count, CharCount(tt.in), tt.in)
	}
}

func TestWriterPatch(t *testing.T) {
	w := NewWriter(8)
	w.WriteU16(0)
	w.WriteU32(0)
	w.PutU16At(0, 0xBEEF)
	w.PutU32At(2, 0xCAFEBABE)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xBE, 0xBA, 0xFE, 0xCA}, w.Bytes())
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(ErrMalformedContainer, "missing %s", "Workbook")
	assert.Equal(t, "malformed container: missing Workbook", err.Error())
	var target *Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, ErrMalformedContainer, target.Kind)
}

func TestUnicodeLESharesCursorCodec(t *testing.T) {
	assert.Equal(t, []uint16{'a', 0xD83D, 0xDE00}, UTF16Units("a😀"))

	w := NewWriter(0)
	w.WriteUnicodeLE("a😀\xff")
	assert.Equal(t, []byte{'a', 0, 0x3D, 0xD8, 0x00, 0xDE, 0xFD, 0xFF}, w.Bytes())
	assert.Equal(t, CharCount("a😀\xff"), len(w.Bytes())/2)

	s, err := NewCursor(w.Bytes()).ReadUnicodeLE(4)
	require.NoError(t, err)
	assert.Equal(t, "a😀�", s)
}
