package biff

import (
	"fmt"
	"strconv"

	"github.com/yamitzky/biffkit-go/codec"
)

// Formula is an encoded BIFF8 token array. Encoded holds the tokens
// followed by any extra data (array constants); TokenLen marks where the
// tokens end. The length prefix written for a formula is always derived
// from TokenLen.
type Formula struct {
	Encoded  []byte
	TokenLen int
}

// NewFormula encodes tokens into a formula without extra data.
func NewFormula(tokens []Ptg) *Formula {
	f := &Formula{}
	f.SetTokens(tokens)
	return f
}

// readFormulaTokens reads tokenLen bytes of tokens followed by extra bytes
// of trailing data.
func readFormulaTokens(in *RecordInput, tokenLen, extra int) (*Formula, error) {
	b, err := in.ReadBytes(tokenLen + extra)
	if err != nil {
		return nil, err
	}
	return &Formula{Encoded: b, TokenLen: tokenLen}, nil
}

// Tokens parses the token part of the formula.
func (f *Formula) Tokens() ([]Ptg, error) {
	if f == nil {
		return nil, nil
	}
	return ReadTokens(f.Encoded[:f.TokenLen])
}

// Extra returns the data that follows the tokens.
func (f *Formula) Extra() []byte {
	return f.Encoded[f.TokenLen:]
}

// SetTokens replaces the tokens, keeping any extra data.
func (f *Formula) SetTokens(tokens []Ptg) {
	var extra []byte
	if f.TokenLen <= len(f.Encoded) {
		extra = f.Encoded[f.TokenLen:]
	}
	w := codec.NewWriter(32)
	WriteTokens(w, tokens)
	f.TokenLen = w.Len()
	w.WriteBytes(extra)
	f.Encoded = w.Bytes()
}

// EncodedSize returns the size of tokens plus extra data.
func (f *Formula) EncodedSize() int {
	if f == nil {
		return 0
	}
	return len(f.Encoded)
}

// TokenSize returns the size of the tokens alone.
func (f *Formula) TokenSize() int {
	if f == nil {
		return 0
	}
	return f.TokenLen
}

func (f *Formula) writeEncoded(out *codec.Writer) {
	if f != nil {
		out.WriteBytes(f.Encoded)
	}
}

// Evaluate hands the formula tokens to ev.
func (f *Formula) Evaluate(ev FormulaEvaluator) (any, error) {
	tokens, err := f.Tokens()
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(tokens)
}

// Result types held in byte 0 of a cached value that is not a number.
const (
	FORMULA_RESULT_STRING = 0
	FORMULA_RESULT_BOOL   = 1
	FORMULA_RESULT_ERROR  = 2
	FORMULA_RESULT_EMPTY  = 3
)

// FormulaRecord is a cell holding a formula and its cached result.
type FormulaRecord struct {
	Row, Col, XF uint16
	// Value is the cached result: an IEEE double, or a tagged string,
	// boolean, error or empty marker when the top two bytes are 0xFFFF.
	Value    [8]byte
	Options  uint16
	Reserved uint32
	Formula  *Formula
}

// NewFormulaRecord returns a cell formula with a zero cached value.
func NewFormulaRecord(row, col uint16, tokens []Ptg) *FormulaRecord {
	return &FormulaRecord{Row: row, Col: col, XF: 0x0F, Formula: NewFormula(tokens)}
}

func readFormulaRecord(in *RecordInput) (Record, error) {
	r := &FormulaRecord{}
	for _, f := range []*uint16{&r.Row, &r.Col, &r.XF} {
		v, err := in.ReadU16()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	v, err := in.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	copy(r.Value[:], v)
	if r.Options, err = in.ReadU16(); err != nil {
		return nil, err
	}
	if r.Reserved, err = in.ReadU32(); err != nil {
		return nil, err
	}
	cce, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	if int(cce) > in.Remaining() {
		return nil, in.truncated(int(cce))
	}
	if r.Formula, err = readFormulaTokens(in, int(cce), in.Remaining()-int(cce)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FormulaRecord) Sid() uint16 { return XL_FORMULA }

func (r *FormulaRecord) Serialize(out *codec.Writer) error {
	out.WriteU16(r.Row)
	out.WriteU16(r.Col)
	out.WriteU16(r.XF)
	out.WriteBytes(r.Value[:])
	out.WriteU16(r.Options)
	out.WriteU32(r.Reserved)
	out.WriteU16(uint16(r.Formula.TokenSize()))
	r.Formula.writeEncoded(out)
	return nil
}

// HasCachedNumber reports whether Value holds a plain number.
func (r *FormulaRecord) HasCachedNumber() bool {
	return r.Value[6] != 0xFF || r.Value[7] != 0xFF
}

// CachedNumber returns the cached numeric result.
func (r *FormulaRecord) CachedNumber() float64 {
	v, _ := codec.NewCursor(r.Value[:]).ReadF64()
	return v
}

// SetCachedNumber stores a numeric result.
func (r *FormulaRecord) SetCachedNumber(v float64) {
	w := codec.NewWriter(8)
	w.WriteF64(v)
	copy(r.Value[:], w.Bytes())
}

// SetCachedError stores an error result. code is one of the keys of
// ErrorTextFromCode.
func (r *FormulaRecord) SetCachedError(code byte) {
	r.Value = [8]byte{FORMULA_RESULT_ERROR, 0, code, 0, 0, 0, 0xFF, 0xFF}
}

// CachedText renders the cached result as a cell shows it. A string result
// is stored in the STRING record after the formula and reads "(string)".
func (r *FormulaRecord) CachedText() string {
	if r.HasCachedNumber() {
		return strconv.FormatFloat(r.CachedNumber(), 'g', -1, 64)
	}
	switch r.Value[0] {
	case FORMULA_RESULT_STRING:
		return "(string)"
	case FORMULA_RESULT_BOOL:
		if r.Value[2] != 0 {
			return "TRUE"
		}
		return "FALSE"
	case FORMULA_RESULT_ERROR:
		if text, ok := ErrorTextFromCode[r.Value[2]]; ok {
			return text
		}
		return fmt.Sprintf("#ERR%d", r.Value[2])
	}
	return ""
}

// CellName returns the A1 style reference of the cell.
func (r *FormulaRecord) CellName() string {
	return colName(int(r.Col)) + strconv.Itoa(int(r.Row)+1)
}
