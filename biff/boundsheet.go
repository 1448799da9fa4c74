package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// Sheet visibility values.
const (
	SHEET_VISIBLE     = 0
	SHEET_HIDDEN      = 1
	SHEET_VERY_HIDDEN = 2
)

// BoundSheetRecord names a sheet and points at the stream offset of its BOF
// record. The offset is recomputed when the workbook is saved.
type BoundSheetRecord struct {
	Offset     uint32
	Visibility uint8
	SheetType  uint8
	Name       XLString

	// legacyName holds the 8-bit name of a BIFF5/7 record, which has no
	// option byte.
	legacyName []byte
}

// NewBoundSheetRecord returns a visible worksheet entry.
func NewBoundSheetRecord(name string) *BoundSheetRecord {
	return &BoundSheetRecord{SheetType: XL_BOUNDSHEET_WORKSHEET, Name: NewXLString(name)}
}

func readBoundSheetRecord(in *RecordInput) (Record, error) {
	r := &BoundSheetRecord{}
	var err error
	if r.Offset, err = in.ReadU32(); err != nil {
		return nil, err
	}
	if r.Visibility, err = in.ReadU8(); err != nil {
		return nil, err
	}
	if r.SheetType, err = in.ReadU8(); err != nil {
		return nil, err
	}
	cch, err := in.ReadU8()
	if err != nil {
		return nil, err
	}
	if in.Remaining() == int(cch) {
		// BIFF5/7: cch code page bytes, no option byte
		if r.legacyName, err = in.ReadBytes(int(cch)); err != nil {
			return nil, err
		}
		name, err := codec.NewCursor(r.legacyName).ReadCompressedUnicode(int(cch))
		if err != nil {
			return nil, err
		}
		r.Name = NewXLString(name)
		return r, nil
	}
	flags, err := in.ReadU8()
	if err != nil {
		return nil, err
	}
	text, wide, err := in.ReadStringChars(int(cch), flags&0x01 != 0)
	if err != nil {
		return nil, err
	}
	r.Name = XLString{Value: text, Uncompressed: wide}
	return r, nil
}

func (r *BoundSheetRecord) Sid() uint16 { return XL_BOUNDSHEET }

func (r *BoundSheetRecord) Serialize(out *codec.Writer) error {
	out.WriteU32(r.Offset)
	out.WriteU8(r.Visibility)
	out.WriteU8(r.SheetType)
	if r.legacyName != nil {
		out.WriteU8(uint8(len(r.legacyName)))
		out.WriteBytes(r.legacyName)
		return nil
	}
	return writeShortXLString(out, r.Name)
}

// SetName renames the sheet. A BIFF5/7 record becomes a BIFF8 one.
func (r *BoundSheetRecord) SetName(name string) {
	r.Name = NewXLString(name)
	r.legacyName = nil
}

// IsHidden reports whether the sheet is hidden or very hidden.
func (r *BoundSheetRecord) IsHidden() bool {
	return r.Visibility != SHEET_VISIBLE
}
