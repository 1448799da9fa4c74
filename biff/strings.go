package biff

import (
	"fmt"

	"github.com/yamitzky/biffkit-go/codec"
)

// XLString is BIFF8 text together with the storage it was read with. An
// unmodified string is written back with its original compression.
type XLString struct {
	Value string
	// Uncompressed forces 16-bit storage even when every character would
	// fit in 8 bits.
	Uncompressed bool
}

// NewXLString returns a string stored compressed where possible.
func NewXLString(s string) XLString {
	return XLString{Value: s}
}

func (s XLString) wide() bool {
	return s.Uncompressed || codec.HasMultibyte(s.Value)
}

func (s XLString) encodeUnits() ([]uint16, error) {
	units := codec.UTF16Units(s.Value)
	if !s.wide() {
		for _, u := range units {
			if u > 0xFF {
				return nil, fmt.Errorf("string %q cannot be stored compressed", s.Value)
			}
		}
	}
	return units, nil
}

// dataSize returns the byte length of the characters alone.
func (s XLString) dataSize() int {
	n := codec.CharCount(s.Value)
	if s.wide() {
		return 2 * n
	}
	return n
}

func (s XLString) writeChars(w *codec.Writer) error {
	if s.wide() {
		w.WriteUnicodeLE(s.Value)
		return nil
	}
	return w.WriteCompressedUnicode(s.Value)
}

func (s XLString) String() string { return s.Value }

// readShortXLString reads a string with an 8-bit character count.
func readShortXLString(in *RecordInput) (XLString, error) {
	cch, err := in.ReadU8()
	if err != nil {
		return XLString{}, err
	}
	flags, err := in.ReadU8()
	if err != nil {
		return XLString{}, err
	}
	text, wide, err := in.ReadStringChars(int(cch), flags&0x01 != 0)
	if err != nil {
		return XLString{}, err
	}
	return XLString{Value: text, Uncompressed: wide}, nil
}

func writeShortXLString(w *codec.Writer, s XLString) error {
	n := codec.CharCount(s.Value)
	if n > 0xFF {
		return fmt.Errorf("string %q is longer than 255 characters", s.Value)
	}
	w.WriteU8(uint8(n))
	if s.wide() {
		w.WriteU8(0x01)
	} else {
		w.WriteU8(0x00)
	}
	return s.writeChars(w)
}

// FormatRun is one rich text run of a UnicodeString.
type FormatRun struct {
	CharIndex uint16
	FontIndex uint16
}

// UnicodeString is a BIFF8 XLUnicodeRichExtendedString: text plus optional
// rich text runs and an opaque phonetic (ExtRst) block.
type UnicodeString struct {
	XLString
	// Runs is non-nil when the rich text flag is set.
	Runs []FormatRun
	// ExtRst is non-nil when the phonetic flag is set.
	ExtRst []byte
}

func readUnicodeString(in *RecordInput) (*UnicodeString, error) {
	cch, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	flags, err := in.ReadU8()
	if err != nil {
		return nil, err
	}
	us := &UnicodeString{}
	var runCount uint16
	var extSize uint32
	if flags&0x08 != 0 {
		if runCount, err = in.ReadU16(); err != nil {
			return nil, err
		}
		us.Runs = make([]FormatRun, 0, runCount)
	}
	if flags&0x04 != 0 {
		if extSize, err = in.ReadU32(); err != nil {
			return nil, err
		}
	}
	text, wide, err := in.ReadStringChars(int(cch), flags&0x01 != 0)
	if err != nil {
		return nil, err
	}
	us.XLString = XLString{Value: text, Uncompressed: wide}
	for i := 0; i < int(runCount); i++ {
		ich, err := in.ReadU16()
		if err != nil {
			return nil, err
		}
		ifnt, err := in.ReadU16()
		if err != nil {
			return nil, err
		}
		us.Runs = append(us.Runs, FormatRun{CharIndex: ich, FontIndex: ifnt})
	}
	if flags&0x04 != 0 {
		if us.ExtRst, err = in.ReadBytes(int(extSize)); err != nil {
			return nil, err
		}
	}
	return us, nil
}

func (us *UnicodeString) options() uint8 {
	var options uint8
	if us.wide() {
		options |= 0x01
	}
	if us.ExtRst != nil {
		options |= 0x04
	}
	if us.Runs != nil {
		options |= 0x08
	}
	return options
}

func (us *UnicodeString) serialize(w *codec.Writer) error {
	w.WriteU16(uint16(codec.CharCount(us.Value)))
	w.WriteU8(us.options())
	if us.Runs != nil {
		w.WriteU16(uint16(len(us.Runs)))
	}
	if us.ExtRst != nil {
		w.WriteU32(uint32(len(us.ExtRst)))
	}
	if err := us.writeChars(w); err != nil {
		return err
	}
	for _, r := range us.Runs {
		w.WriteU16(r.CharIndex)
		w.WriteU16(r.FontIndex)
	}
	w.WriteBytes(us.ExtRst)
	return nil
}

func (us *UnicodeString) serializeContinued(out *ContinuableOutput) error {
	if err := out.WriteString(us.XLString, len(us.Runs), len(us.ExtRst), us.Runs != nil, us.ExtRst != nil); err != nil {
		return err
	}
	for _, r := range us.Runs {
		out.WriteContinueIfRequired(4)
		out.WriteU16(r.CharIndex)
		out.WriteU16(r.FontIndex)
	}
	out.WriteBytes(us.ExtRst)
	return nil
}

// Equal reports whether two strings have the same text, storage and
// formatting.
func (us *UnicodeString) Equal(other *UnicodeString) bool {
	if us.Value != other.Value || us.wide() != other.wide() {
		return false
	}
	if (us.Runs == nil) != (other.Runs == nil) || len(us.Runs) != len(other.Runs) {
		return false
	}
	for i := range us.Runs {
		if us.Runs[i] != other.Runs[i] {
			return false
		}
	}
	return (us.ExtRst == nil) == (other.ExtRst == nil) && string(us.ExtRst) == string(other.ExtRst)
}
