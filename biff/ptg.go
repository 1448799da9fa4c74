package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// Ptg is one parsed formula token: the token id byte and the operand bytes
// that follow it. Tokens are never interpreted here.
type Ptg struct {
	ID   byte
	Data []byte
}

// Token classes, from bits 5-6 of the id.
const (
	PTG_CLASS_BASE  = 0
	PTG_CLASS_REF   = 1
	PTG_CLASS_VALUE = 2
	PTG_CLASS_ARRAY = 3
)

// Token ids used by the tokenizer.
const (
	tStr      = 0x17
	tExtended = 0x18
	tAttr     = 0x19

	tAttrChoose = 0x04
)

// ptgSizes holds the BIFF8 token size including the id byte, indexed by the
// base id for class 0 tokens and base id + 32 for classified tokens. -1 is
// variable length, -2 is not valid in BIFF8.
var ptgSizes = [64]int{
	-2, 5, 5, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -2, -2, 2, 2, 3, 9,
	8, 3, 4, 5, 5, 9, 7, 7, 7, 3, 5, 9, 5, 9, 3, 3,
	-2, -2, -2, -2, -2, -2, -2, -2, -2, 7, 7, 11, 7, 11, -2, -2,
}

var ptgNames = [64]string{
	"Unk00", "Exp", "Tbl", "Add", "Sub", "Mul", "Div", "Power", "Concat", "LT", "LE", "EQ", "GE", "GT", "NE",
	"Isect", "List", "Range", "Uplus", "Uminus", "Percent", "Paren", "MissArg", "Str", "Extended", "Attr",
	"Sheet", "EndSheet", "Err", "Bool", "Int", "Num", "Array", "Func", "FuncVar", "Name", "Ref", "Area",
	"MemArea", "MemErr", "MemNoMem", "MemFunc", "RefErr", "AreaErr", "RefN", "AreaN", "MemAreaN", "MemNoMemN",
	"", "", "", "", "", "", "", "", "FuncCE", "NameX", "Ref3d", "Area3d", "RefErr3d", "AreaErr3d", "", "",
}

func ptgIndex(id byte) int {
	opcode := int(id & 0x1F)
	if id&0x60 != 0 {
		return opcode + 32
	}
	return opcode
}

// Class returns the token class.
func (p Ptg) Class() int { return int(p.ID&0x60) >> 5 }

// Name returns the token name without its class suffix.
func (p Ptg) Name() string {
	if n := ptgNames[ptgIndex(p.ID)]; n != "" {
		return n
	}
	return "?"
}

// Size returns the encoded size of the token.
func (p Ptg) Size() int { return 1 + len(p.Data) }

// ReadTokens splits encoded BIFF8 formula tokens into a flat list.
func ReadTokens(encoded []byte) ([]Ptg, error) {
	c := codec.NewCursor(encoded)
	var tokens []Ptg
	for c.Remaining() > 0 {
		pos := c.Pos()
		id, _ := c.ReadU8()
		var n int
		switch sz := ptgSizes[ptgIndex(id)]; {
		case id == tStr:
			if c.Remaining() < 2 {
				return nil, codec.Errorf(codec.ErrTruncatedInput, "tStr at %d", pos)
			}
			b := c.Buffer()[c.Pos():]
			cch := int(b[0])
			n = 2 + cch
			if b[1]&0x01 != 0 {
				n += cch
			}
		case id == tAttr:
			if c.Remaining() < 3 {
				return nil, codec.Errorf(codec.ErrTruncatedInput, "tAttr at %d", pos)
			}
			b := c.Buffer()[c.Pos():]
			n = 3
			if b[0]&tAttrChoose != 0 {
				w := int(b[1]) | int(b[2])<<8
				n += 2 * (w + 1)
			}
		case sz < 0:
			return nil, codec.Errorf(codec.ErrUnsupportedFeature, "formula token 0x%02x (%s) at %d", id, ptgNames[ptgIndex(id)], pos)
		default:
			n = sz - 1
		}
		data, err := c.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, Ptg{ID: id, Data: data})
	}
	return tokens, nil
}

// WriteTokens encodes tokens back to formula bytes.
func WriteTokens(w *codec.Writer, tokens []Ptg) {
	for _, t := range tokens {
		w.WriteU8(t.ID)
		w.WriteBytes(t.Data)
	}
}

// FormulaEvaluator consumes the tokens of one formula. It is supplied by
// the caller; this package only parses and hands over tokens.
type FormulaEvaluator interface {
	Evaluate(tokens []Ptg) (any, error)
}
