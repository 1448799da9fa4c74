package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// FtrHeader prefixes the BIFF8 future records (CONDFMT12, CF12).
type FtrHeader struct {
	RecordType uint16
	Flags      uint16
	Range      CellRangeAddress
}

func readFtrHeader(in *RecordInput) (FtrHeader, error) {
	var h FtrHeader
	var err error
	if h.RecordType, err = in.ReadU16(); err != nil {
		return h, err
	}
	if h.Flags, err = in.ReadU16(); err != nil {
		return h, err
	}
	h.Range, err = readCellRangeAddress(in)
	return h, err
}

func (h FtrHeader) write(out *codec.Writer) {
	out.WriteU16(h.RecordType)
	out.WriteU16(h.Flags)
	h.Range.write(out)
}

// CFHeaderRecord heads a block of conditional formatting rules and lists
// the cell regions they apply to. CFHeader12Record is the BIFF8 future
// variant; both share this layout after the future header.
type CFHeaderRecord struct {
	// NumCF is the number of rules that follow. It is kept equal to the
	// rule count by CFRecordsAggregate.
	NumCF uint16
	// NeedRecalc holds the recalculation flag in bit 0 and the
	// formatting id in the remaining bits.
	NeedRecalc uint16
	Enclosing  CellRangeAddress
	Regions    CellRangeAddressList
}

func readCFHeaderBody(in *RecordInput, h *CFHeaderRecord) error {
	var err error
	if h.NumCF, err = in.ReadU16(); err != nil {
		return err
	}
	if h.NeedRecalc, err = in.ReadU16(); err != nil {
		return err
	}
	if h.Enclosing, err = readCellRangeAddress(in); err != nil {
		return err
	}
	h.Regions, err = readCellRangeAddressList(in)
	return err
}

func readCFHeaderRecord(in *RecordInput) (Record, error) {
	h := &CFHeaderRecord{}
	if err := readCFHeaderBody(in, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *CFHeaderRecord) Sid() uint16 { return XL_CONDFMT }

func (h *CFHeaderRecord) Serialize(out *codec.Writer) error {
	out.WriteU16(h.NumCF)
	out.WriteU16(h.NeedRecalc)
	h.Enclosing.write(out)
	h.Regions.write(out)
	return nil
}

func (h *CFHeaderRecord) header() *CFHeaderRecord { return h }

// SetRegions replaces the regions, merging them and deriving the
// enclosing range.
func (h *CFHeaderRecord) SetRegions(regions []CellRangeAddress) {
	merged := MergeCellRanges(regions)
	h.Regions = CellRangeAddressList(merged)
	if len(merged) == 0 {
		h.Enclosing = CellRangeAddress{}
		return
	}
	enc := merged[0]
	for _, r := range merged[1:] {
		enc = CreateEnclosingCellRange(enc, r)
	}
	h.Enclosing = enc
}

// CFHeader12Record is the future-record variant of CFHeaderRecord.
type CFHeader12Record struct {
	Future FtrHeader
	CFHeaderRecord
}

func readCFHeader12Record(in *RecordInput) (Record, error) {
	h := &CFHeader12Record{}
	var err error
	if h.Future, err = readFtrHeader(in); err != nil {
		return nil, err
	}
	if err := readCFHeaderBody(in, &h.CFHeaderRecord); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *CFHeader12Record) Sid() uint16 { return XL_CONDFMT12 }

func (h *CFHeader12Record) Serialize(out *codec.Writer) error {
	h.Future.write(out)
	return h.CFHeaderRecord.Serialize(out)
}

// Condition types.
const (
	CF_CONDITION_CELL_VALUE_IS = 1
	CF_CONDITION_FORMULA       = 2
	CF_CONDITION_COLOR_SCALE   = 3
	CF_CONDITION_DATA_BAR      = 4
	CF_CONDITION_FILTER        = 5
	CF_CONDITION_ICON_SET      = 6
)

// Formatting block flags of CFRuleBase.Options and the size of each block.
const (
	CF_OPT_NUMBER_FORMAT = 0x02000000
	CF_OPT_FONT          = 0x04000000
	CF_OPT_ALIGNMENT     = 0x08000000
	CF_OPT_BORDER        = 0x10000000
	CF_OPT_PATTERN       = 0x20000000
	CF_OPT_PROTECTION    = 0x40000000

	cfFontBlockSize       = 118
	cfAlignmentBlockSize  = 8
	cfBorderBlockSize     = 8
	cfPatternBlockSize    = 4
	cfProtectionBlockSize = 2
)

// CFRuleBase holds the fields shared by CF and CF12 rules. The formatting
// blocks are kept as raw bytes.
type CFRuleBase struct {
	ConditionType uint8
	ComparisonOp  uint8
	Options       uint32
	Reserved      uint16

	FontBlock       []byte
	AlignmentBlock  []byte
	BorderBlock     []byte
	PatternBlock    []byte
	ProtectionBlock []byte
	// Unparsed holds formatting bytes following a block this package does
	// not decode.
	Unparsed []byte

	Formula1 *Formula
	Formula2 *Formula
}

func (r *CFRuleBase) blocks() []struct {
	flag uint32
	size int
	data *[]byte
} {
	return []struct {
		flag uint32
		size int
		data *[]byte
	}{
		{CF_OPT_FONT, cfFontBlockSize, &r.FontBlock},
		{CF_OPT_ALIGNMENT, cfAlignmentBlockSize, &r.AlignmentBlock},
		{CF_OPT_BORDER, cfBorderBlockSize, &r.BorderBlock},
		{CF_OPT_PATTERN, cfPatternBlockSize, &r.PatternBlock},
		{CF_OPT_PROTECTION, cfProtectionBlockSize, &r.ProtectionBlock},
	}
}

// readFormatOptions reads the option word, the reserved word and the
// formatting blocks, using at most limit bytes. It returns the bytes read.
func (r *CFRuleBase) readFormatOptions(in *RecordInput, limit int) (int, error) {
	var err error
	if r.Options, err = in.ReadU32(); err != nil {
		return 0, err
	}
	if r.Reserved, err = in.ReadU16(); err != nil {
		return 0, err
	}
	n := 6
	if r.Options&CF_OPT_NUMBER_FORMAT != 0 {
		in.Warn("conditional format number format block is not supported; keeping formatting bytes opaque", "error", codec.ErrUnsupportedFeature)
		if r.Unparsed, err = in.ReadBytes(limit - n); err != nil {
			return 0, err
		}
		return limit, nil
	}
	for _, b := range r.blocks() {
		if r.Options&b.flag == 0 {
			continue
		}
		if *b.data, err = in.ReadBytes(b.size); err != nil {
			return 0, err
		}
		n += b.size
	}
	return n, nil
}

func (r *CFRuleBase) formattingSize() int {
	n := 6 + len(r.Unparsed)
	for _, b := range r.blocks() {
		if r.Options&b.flag != 0 {
			n += len(*b.data)
		}
	}
	return n
}

func (r *CFRuleBase) writeFormatOptions(out *codec.Writer) {
	out.WriteU32(r.Options)
	out.WriteU16(r.Reserved)
	if r.Unparsed != nil {
		out.WriteBytes(r.Unparsed)
		return
	}
	for _, b := range r.blocks() {
		if r.Options&b.flag != 0 {
			out.WriteBytes(*b.data)
		}
	}
}

// SetBlock stores a formatting block and sets its flag. A nil data clears
// the block.
func (r *CFRuleBase) SetBlock(flag uint32, data []byte) {
	for _, b := range r.blocks() {
		if b.flag != flag {
			continue
		}
		*b.data = data
		if data == nil {
			r.Options &^= flag
		} else {
			r.Options |= flag
		}
	}
}

func (r *CFRuleBase) readFormulas(in *RecordInput, f1len, f2len int) error {
	var err error
	if r.Formula1, err = readFormulaTokens(in, f1len, 0); err != nil {
		return err
	}
	r.Formula2, err = readFormulaTokens(in, f2len, 0)
	return err
}

// CFRuleRecord is a legacy conditional formatting rule.
type CFRuleRecord struct {
	CFRuleBase
}

// NewCFRuleRecord returns a cell-value rule comparing against formula1 and
// formula2.
func NewCFRuleRecord(comparisonOp uint8, formula1, formula2 []Ptg) *CFRuleRecord {
	r := &CFRuleRecord{}
	r.ConditionType = CF_CONDITION_CELL_VALUE_IS
	r.ComparisonOp = comparisonOp
	r.Reserved = 0x8002
	r.Formula1 = NewFormula(formula1)
	r.Formula2 = NewFormula(formula2)
	return r
}

// NewCFFormulaRuleRecord returns a rule that applies when formula is true.
func NewCFFormulaRuleRecord(formula []Ptg) *CFRuleRecord {
	r := NewCFRuleRecord(0, formula, nil)
	r.ConditionType = CF_CONDITION_FORMULA
	return r
}

func readCFRuleRecord(in *RecordInput) (Record, error) {
	r := &CFRuleRecord{}
	var err error
	if r.ConditionType, err = in.ReadU8(); err != nil {
		return nil, err
	}
	if r.ComparisonOp, err = in.ReadU8(); err != nil {
		return nil, err
	}
	f1len, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	f2len, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	limit := in.Remaining() - int(f1len) - int(f2len)
	if limit < 6 {
		return nil, in.truncated(6 + int(f1len) + int(f2len))
	}
	if _, err := r.readFormatOptions(in, limit); err != nil {
		return nil, err
	}
	if err := r.readFormulas(in, int(f1len), int(f2len)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CFRuleRecord) Sid() uint16 { return XL_CF }

func (r *CFRuleRecord) Serialize(out *codec.Writer) error {
	out.WriteU8(r.ConditionType)
	out.WriteU8(r.ComparisonOp)
	out.WriteU16(uint16(r.Formula1.EncodedSize()))
	out.WriteU16(uint16(r.Formula2.EncodedSize()))
	r.writeFormatOptions(out)
	r.Formula1.writeEncoded(out)
	r.Formula2.writeEncoded(out)
	return nil
}

func (r *CFRuleRecord) base() *CFRuleBase { return &r.CFRuleBase }

// CFRule12Record is a BIFF8 future conditional formatting rule, which adds
// color scales, data bars, filters and icon sets.
type CFRule12Record struct {
	Future FtrHeader
	CFRuleBase

	// Formatting is set when the rule carries a formatting block; without
	// one only Reserved is written.
	Formatting bool
	// ExtFormatting holds formatting bytes past the decoded blocks.
	ExtFormatting []byte

	FormulaScale *Formula
	ExtOptions   uint8
	Priority     uint16
	TemplateType uint16
	// TemplateParams is 0 or 16 bytes. Any other declared length leaves the
	// rest of the record in TemplateUnparsed.
	TemplateParamLength uint8
	TemplateParams      []byte
	TemplateUnparsed    []byte

	// Extension is the type specific tail of color scale, data bar, filter
	// and icon set rules.
	Extension []byte
}

// NewCFRule12Record returns a formula rule with default template fields.
func NewCFRule12Record(conditionType uint8, formula1 []Ptg) *CFRule12Record {
	r := &CFRule12Record{
		Future:              FtrHeader{RecordType: XL_CF12},
		FormulaScale:        NewFormula(nil),
		TemplateType:        uint16(conditionType),
		TemplateParamLength: 16,
		TemplateParams:      make([]byte, 16),
	}
	r.ConditionType = conditionType
	r.Formula1 = NewFormula(formula1)
	r.Formula2 = NewFormula(nil)
	return r
}

func readCFRule12Record(in *RecordInput) (Record, error) {
	r := &CFRule12Record{}
	var err error
	if r.Future, err = readFtrHeader(in); err != nil {
		return nil, err
	}
	if r.ConditionType, err = in.ReadU8(); err != nil {
		return nil, err
	}
	if r.ComparisonOp, err = in.ReadU8(); err != nil {
		return nil, err
	}
	f1len, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	f2len, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	extLen, err := in.ReadU32()
	if err != nil {
		return nil, err
	}
	if extLen == 0 {
		if r.Reserved, err = in.ReadU16(); err != nil {
			return nil, err
		}
	} else {
		if int(extLen) < 6 || int(extLen) > in.Remaining() {
			return nil, codec.Errorf(codec.ErrCorruptRecord, "CF12 formatting length %d with %d bytes left", extLen, in.Remaining())
		}
		r.Formatting = true
		n, err := r.readFormatOptions(in, int(extLen))
		if err != nil {
			return nil, err
		}
		if n < int(extLen) {
			if r.ExtFormatting, err = in.ReadBytes(int(extLen) - n); err != nil {
				return nil, err
			}
		}
	}
	if err := r.readFormulas(in, int(f1len), int(f2len)); err != nil {
		return nil, err
	}
	scaleLen, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	if r.FormulaScale, err = readFormulaTokens(in, int(scaleLen), 0); err != nil {
		return nil, err
	}
	if r.ExtOptions, err = in.ReadU8(); err != nil {
		return nil, err
	}
	if r.Priority, err = in.ReadU16(); err != nil {
		return nil, err
	}
	if r.TemplateType, err = in.ReadU16(); err != nil {
		return nil, err
	}
	if r.TemplateParamLength, err = in.ReadU8(); err != nil {
		return nil, err
	}
	if r.TemplateParamLength != 0 && r.TemplateParamLength != 16 {
		in.Warn("CF12 template parameter length should be 0 or 16", "length", r.TemplateParamLength, "error", codec.ErrUnsupportedFeature)
		r.TemplateUnparsed = in.ReadRemainder()
		return r, nil
	}
	if r.TemplateParams, err = in.ReadBytes(int(r.TemplateParamLength)); err != nil {
		return nil, err
	}
	switch r.ConditionType {
	case CF_CONDITION_COLOR_SCALE, CF_CONDITION_DATA_BAR, CF_CONDITION_FILTER, CF_CONDITION_ICON_SET:
		r.Extension = in.ReadRemainder()
	}
	return r, nil
}

func (r *CFRule12Record) Sid() uint16 { return XL_CF12 }

func (r *CFRule12Record) Serialize(out *codec.Writer) error {
	r.Future.write(out)
	out.WriteU8(r.ConditionType)
	out.WriteU8(r.ComparisonOp)
	out.WriteU16(uint16(r.Formula1.EncodedSize()))
	out.WriteU16(uint16(r.Formula2.EncodedSize()))
	if !r.Formatting {
		out.WriteU32(0)
		out.WriteU16(r.Reserved)
	} else {
		out.WriteU32(uint32(r.formattingSize() + len(r.ExtFormatting)))
		r.writeFormatOptions(out)
		out.WriteBytes(r.ExtFormatting)
	}
	r.Formula1.writeEncoded(out)
	r.Formula2.writeEncoded(out)
	out.WriteU16(uint16(r.FormulaScale.EncodedSize()))
	r.FormulaScale.writeEncoded(out)
	out.WriteU8(r.ExtOptions)
	out.WriteU16(r.Priority)
	out.WriteU16(r.TemplateType)
	out.WriteU8(r.TemplateParamLength)
	if r.TemplateUnparsed != nil {
		out.WriteBytes(r.TemplateUnparsed)
		return nil
	}
	out.WriteBytes(r.TemplateParams)
	out.WriteBytes(r.Extension)
	return nil
}

func (r *CFRule12Record) base() *CFRuleBase { return &r.CFRuleBase }
