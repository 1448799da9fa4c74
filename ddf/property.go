package ddf

import (
	"fmt"

	"github.com/yamitzky/biffkit-go/codec"
)

// Property number flag bits.
const (
	PropertyIDMask = 0x3FFF
	FlagBlipID     = 0x4000
	FlagComplex    = 0x8000
)

const propertyEntrySize = 6

// Property is one entry of an OPT property table. Its fixed part is a
// property number (a 14 bit id plus the blip and complex flags) and a 32
// bit value; complex properties also own a payload stored after every fixed
// entry of the table.
type Property interface {
	// PropertyNumber returns the id together with its flag bits.
	PropertyNumber() uint16
	// value returns the 32 bit field written in the fixed entry.
	value() uint32
	// complexData returns the out-of-line payload, nil for simple
	// properties.
	complexData() []byte
}

// PropertyID returns the 14 bit id of p.
func PropertyID(p Property) uint16 { return p.PropertyNumber() & PropertyIDMask }

// IsComplex reports whether p owns an out-of-line payload.
func IsComplex(p Property) bool { return p.PropertyNumber()&FlagComplex != 0 }

// IsBlipID reports whether the value of p refers to a blip.
func IsBlipID(p Property) bool { return p.PropertyNumber()&FlagBlipID != 0 }

// SimpleProperty is a property whose value fits in the fixed entry.
type SimpleProperty struct {
	Number uint16
	Value  uint32
}

// NewSimpleProperty returns a simple property for id.
func NewSimpleProperty(id uint16, v uint32) *SimpleProperty {
	return &SimpleProperty{Number: id & PropertyIDMask, Value: v}
}

func (p *SimpleProperty) PropertyNumber() uint16 { return p.Number }
func (p *SimpleProperty) value() uint32          { return p.Value }
func (p *SimpleProperty) complexData() []byte    { return nil }

// BoolProperty views a simple property as a set of boolean flags.
type BoolProperty struct {
	*SimpleProperty
}

// IsTrue reports whether any bit of the value is set.
func (p BoolProperty) IsTrue() bool { return p.Value != 0 }

// RGBProperty views a simple property as a color.
type RGBProperty struct {
	*SimpleProperty
}

// Red returns the red component.
func (p RGBProperty) Red() uint8 { return uint8(p.Value & 0xFF) }

// Green returns the green component.
func (p RGBProperty) Green() uint8 { return uint8((p.Value >> 8) & 0xFF) }

// Blue returns the blue component.
func (p RGBProperty) Blue() uint8 { return uint8((p.Value >> 16) & 0xFF) }

// Shape path kinds.
const (
	SHAPEPATH_LINES         = 0
	SHAPEPATH_LINES_CLOSED  = 1
	SHAPEPATH_CURVES        = 2
	SHAPEPATH_CURVES_CLOSED = 3
	SHAPEPATH_COMPLEX       = 4
)

// ShapePathProperty views a simple property as a shape path kind.
type ShapePathProperty struct {
	*SimpleProperty
}

// ShapePath returns one of the SHAPEPATH constants.
func (p ShapePathProperty) ShapePath() int { return int(p.Value) }

// ComplexProperty owns a payload whose length is stored in the fixed entry.
type ComplexProperty struct {
	Number uint16
	Data   []byte
}

// NewComplexProperty returns a complex property for id holding data.
func NewComplexProperty(id uint16, data []byte) *ComplexProperty {
	return &ComplexProperty{Number: id&PropertyIDMask | FlagComplex, Data: data}
}

func (p *ComplexProperty) PropertyNumber() uint16 { return p.Number }
func (p *ComplexProperty) value() uint32          { return uint32(len(p.Data)) }
func (p *ComplexProperty) complexData() []byte    { return p.Data }

// ArrayProperty views a complex payload as an array: a six byte header
// (element count, reserved count, element size) followed by elements.
type ArrayProperty struct {
	*ComplexProperty
}

const arrayHeaderSize = 6

// NumElements returns the stored element count.
func (p ArrayProperty) NumElements() int {
	if len(p.Data) < arrayHeaderSize {
		return 0
	}
	return int(p.Data[0]) | int(p.Data[1])<<8
}

// ElementSize returns the stored size of one element. The value 0xFFF0
// denotes four byte elements.
func (p ArrayProperty) ElementSize() int {
	if len(p.Data) < arrayHeaderSize {
		return 0
	}
	sz := int(p.Data[4]) | int(p.Data[5])<<8
	if sz == 0xFFF0 {
		return 4
	}
	return sz
}

// Element returns element i, or nil when it lies outside the payload.
func (p ArrayProperty) Element(i int) []byte {
	sz := p.ElementSize()
	start := arrayHeaderSize + i*sz
	if i < 0 || sz == 0 || start+sz > len(p.Data) {
		return nil
	}
	return p.Data[start : start+sz]
}

// ReadProperties decodes count properties from data: count fixed entries,
// then the complex payloads in the order of their entries. It returns the
// properties and the number of bytes used.
func ReadProperties(data []byte, count int) ([]Property, int, error) {
	c := codec.NewCursor(data)
	props := make([]Property, 0, count)
	var complexProps []*ComplexProperty
	var complexLens []uint32
	for i := 0; i < count; i++ {
		num, err := c.ReadU16()
		if err != nil {
			return nil, 0, fmt.Errorf("property %d of %d: %w", i, count, err)
		}
		v, err := c.ReadU32()
		if err != nil {
			return nil, 0, fmt.Errorf("property %d of %d: %w", i, count, err)
		}
		if num&FlagComplex != 0 {
			cp := &ComplexProperty{Number: num}
			complexProps = append(complexProps, cp)
			complexLens = append(complexLens, v)
			props = append(props, cp)
			continue
		}
		props = append(props, &SimpleProperty{Number: num, Value: v})
	}
	for i, cp := range complexProps {
		if int64(complexLens[i]) > int64(c.Remaining()) {
			return nil, 0, codec.Errorf(codec.ErrCorruptRecord, "complex property 0x%04x needs %d bytes, %d left", cp.Number&PropertyIDMask, complexLens[i], c.Remaining())
		}
		b, _ := c.ReadBytes(int(complexLens[i]))
		cp.Data = b
	}
	return props, c.Pos(), nil
}

// WriteProperties writes every fixed entry, then every complex payload.
func WriteProperties(w *codec.Writer, props []Property) {
	for _, p := range props {
		w.WriteU16(p.PropertyNumber())
		w.WriteU32(p.value())
	}
	for _, p := range props {
		w.WriteBytes(p.complexData())
	}
}

// PropertiesSize returns the encoded size of props.
func PropertiesSize(props []Property) int {
	n := 0
	for _, p := range props {
		n += propertyEntrySize + len(p.complexData())
	}
	return n
}

// Typed returns p wrapped in the view its metadata type names: a
// BoolProperty, RGBProperty, ShapePathProperty or ArrayProperty. Other
// properties are returned unchanged.
func Typed(p Property) any {
	switch pt := p.(type) {
	case *SimpleProperty:
		switch PropertyTypeOf(PropertyID(p)) {
		case TypeBoolean:
			return BoolProperty{pt}
		case TypeRGB:
			return RGBProperty{pt}
		case TypeShapePath:
			return ShapePathProperty{pt}
		}
	case *ComplexProperty:
		if PropertyTypeOf(PropertyID(p)) == TypeArray {
			return ArrayProperty{pt}
		}
	}
	return p
}

// OptRecord is a shape property table (OPT or tertiary OPT). The instance
// holds the property count and is derived on write.
type OptRecord struct {
	Header
	Properties []Property
	// Extra holds body bytes past the property table.
	Extra []byte
}

// NewOptRecord returns an empty OPT record.
func NewOptRecord() *OptRecord {
	return &OptRecord{Header: Header{Options: 0x0003, RecordID: OPT}}
}

func readOptRecord(h Header, body []byte) (Record, error) {
	props, n, err := ReadProperties(body, int(h.Instance()))
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", RecordName(h.RecordID), err)
	}
	r := &OptRecord{Header: h, Properties: props}
	if n < len(body) {
		r.Extra = body[n:]
	}
	return r, nil
}

func (r *OptRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	if len(r.Properties) > 0x0FFF {
		return codec.Errorf(codec.ErrCorruptRecord, "%d properties do not fit an OPT instance", len(r.Properties))
	}
	WriteProperties(w, r.Properties)
	w.WriteBytes(r.Extra)
	return nil
}

// Lookup returns the first property with the given id, or nil.
func (r *OptRecord) Lookup(id uint16) Property {
	for _, p := range r.Properties {
		if PropertyID(p) == id&PropertyIDMask {
			return p
		}
	}
	return nil
}

// Set replaces the property with the same id, or appends p.
func (r *OptRecord) Set(p Property) {
	for i, old := range r.Properties {
		if PropertyID(old) == PropertyID(p) {
			r.Properties[i] = p
			return
		}
	}
	r.Properties = append(r.Properties, p)
}

// Remove deletes the property with the given id and reports whether it was
// present.
func (r *OptRecord) Remove(id uint16) bool {
	for i, p := range r.Properties {
		if PropertyID(p) == id&PropertyIDMask {
			r.Properties = append(r.Properties[:i], r.Properties[i+1:]...)
			return true
		}
	}
	return false
}
