package ddf

// PropertyType tags how a property value is meant to be read. It is used
// for naming and dumps only; parsing never depends on it.
type PropertyType uint8

const (
	TypeUnknown PropertyType = iota
	TypeBoolean
	TypeRGB
	TypeShapePath
	TypeSimple
	TypeArray
)

func (t PropertyType) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeRGB:
		return "rgb"
	case TypeShapePath:
		return "shapepath"
	case TypeSimple:
		return "simple"
	case TypeArray:
		return "array"
	}
	return "unknown"
}

// PropertyMetaData describes a property id.
type PropertyMetaData struct {
	Name string
	Type PropertyType
}

// PropertyName returns the descriptive name of a property id, or "unknown".
func PropertyName(id uint16) string {
	if md, ok := propertyTable[id&PropertyIDMask]; ok {
		return md.Name
	}
	return "unknown"
}

// PropertyTypeOf returns the type tag of a property id, TypeUnknown when
// the id is not in the table.
func PropertyTypeOf(id uint16) PropertyType {
	return propertyTable[id&PropertyIDMask].Type
}
