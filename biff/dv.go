package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// DVALRecord heads the data validation table of a sheet.
type DVALRecord struct {
	Options  uint16
	HorizPos uint32
	VertPos  uint32
	// ObjectID is the drop-down object id, 0xFFFFFFFF when there is none.
	ObjectID uint32
	// DVCount is the number of DV records that follow.
	DVCount uint32
}

// NewDVALRecord returns an empty table header.
func NewDVALRecord() *DVALRecord {
	return &DVALRecord{ObjectID: 0xFFFFFFFF}
}

func readDVALRecord(in *RecordInput) (Record, error) {
	r := &DVALRecord{}
	var err error
	if r.Options, err = in.ReadU16(); err != nil {
		return nil, err
	}
	for _, f := range []*uint32{&r.HorizPos, &r.VertPos, &r.ObjectID, &r.DVCount} {
		if *f, err = in.ReadU32(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *DVALRecord) Sid() uint16 { return XL_DVAL }

func (r *DVALRecord) Serialize(out *codec.Writer) error {
	out.WriteU16(r.Options)
	out.WriteU32(r.HorizPos)
	out.WriteU32(r.VertPos)
	out.WriteU32(r.ObjectID)
	out.WriteU32(r.DVCount)
	return nil
}

// Data validation types, bits 0-3 of DVRecord.Options.
const (
	DV_TYPE_ANY     = 0x00
	DV_TYPE_INTEGER = 0x01
	DV_TYPE_DECIMAL = 0x02
	DV_TYPE_LIST    = 0x03
	DV_TYPE_DATE    = 0x04
	DV_TYPE_TIME    = 0x05
	DV_TYPE_LENGTH  = 0x06
	DV_TYPE_FORMULA = 0x07
)

// DVRecord option bits.
const (
	DV_OPT_EXPLICIT_LIST   = 0x00000080
	DV_OPT_EMPTY_CELLS_OK  = 0x00000100
	DV_OPT_SUPPRESS_COMBO  = 0x00000200
	DV_OPT_SHOW_PROMPT     = 0x00040000
	DV_OPT_SHOW_ERROR      = 0x00080000
	DV_OPT_ERROR_STYLE     = 0x00000070
	DV_OPT_OPERATOR        = 0x00F00000
	DV_OPT_OPERATOR_SHIFT  = 20
	DV_OPT_ERROR_STY_SHIFT = 4
)

// nullText is what Excel stores for an absent prompt or error string.
const nullText = "\x00"

// DVRecord is one data validation rule applied to a list of regions.
type DVRecord struct {
	Options     uint32
	PromptTitle XLString
	ErrorTitle  XLString
	PromptText  XLString
	ErrorText   XLString
	NotUsed1    uint16
	Formula1    *Formula
	NotUsed2    uint16
	Formula2    *Formula
	Regions     CellRangeAddressList
}

// NewDVRecord returns a rule of the given type over regions.
func NewDVRecord(dvType int, regions CellRangeAddressList, formula1, formula2 []Ptg) *DVRecord {
	r := &DVRecord{
		Options:     uint32(dvType&0x0F) | DV_OPT_EMPTY_CELLS_OK | DV_OPT_SHOW_PROMPT | DV_OPT_SHOW_ERROR,
		PromptTitle: NewXLString(nullText),
		ErrorTitle:  NewXLString(nullText),
		PromptText:  NewXLString(nullText),
		ErrorText:   NewXLString(nullText),
		Formula1:    NewFormula(formula1),
		Formula2:    NewFormula(formula2),
		Regions:     regions,
	}
	return r
}

// readXLUnicodeString reads a string with a 16-bit character count and no
// rich text or phonetic data.
func readXLUnicodeString(in *RecordInput) (XLString, error) {
	cch, err := in.ReadU16()
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

func writeXLUnicodeString(out *codec.Writer, s XLString) error {
	out.WriteU16(uint16(codec.CharCount(s.Value)))
	if s.wide() {
		out.WriteU8(0x01)
	} else {
		out.WriteU8(0x00)
	}
	return s.writeChars(out)
}

func readDVFormula(in *RecordInput) (uint16, *Formula, error) {
	size, err := in.ReadU16()
	if err != nil {
		return 0, nil, err
	}
	notUsed, err := in.ReadU16()
	if err != nil {
		return 0, nil, err
	}
	f, err := readFormulaTokens(in, int(size), 0)
	return notUsed, f, err
}

func readDVRecord(in *RecordInput) (Record, error) {
	r := &DVRecord{}
	var err error
	if r.Options, err = in.ReadU32(); err != nil {
		return nil, err
	}
	for _, s := range []*XLString{&r.PromptTitle, &r.ErrorTitle, &r.PromptText, &r.ErrorText} {
		if *s, err = readXLUnicodeString(in); err != nil {
			return nil, err
		}
	}
	if r.NotUsed1, r.Formula1, err = readDVFormula(in); err != nil {
		return nil, err
	}
	if r.NotUsed2, r.Formula2, err = readDVFormula(in); err != nil {
		return nil, err
	}
	if r.Regions, err = readCellRangeAddressList(in); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DVRecord) Sid() uint16 { return XL_DV }

func (r *DVRecord) Serialize(out *codec.Writer) error {
	out.WriteU32(r.Options)
	for _, s := range []XLString{r.PromptTitle, r.ErrorTitle, r.PromptText, r.ErrorText} {
		if err := writeXLUnicodeString(out, s); err != nil {
			return err
		}
	}
	out.WriteU16(uint16(r.Formula1.EncodedSize()))
	out.WriteU16(r.NotUsed1)
	r.Formula1.writeEncoded(out)
	out.WriteU16(uint16(r.Formula2.EncodedSize()))
	out.WriteU16(r.NotUsed2)
	r.Formula2.writeEncoded(out)
	r.Regions.write(out)
	return nil
}

// DataType returns the validation type, one of the DV_TYPE constants.
func (r *DVRecord) DataType() int { return int(r.Options & 0x0F) }

// Operator returns the comparison operator index.
func (r *DVRecord) Operator() int {
	return int(r.Options&DV_OPT_OPERATOR) >> DV_OPT_OPERATOR_SHIFT
}
