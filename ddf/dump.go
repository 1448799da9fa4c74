package ddf

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Dump writes r and its children as an indented tree, one record per line,
// followed by the properties of OPT records with their names.
func Dump(w io.Writer, r Record) error {
	var err error
	Walk(r, func(rec Record, depth int) bool {
		if err != nil {
			return false
		}
		err = dumpRecord(w, rec, depth)
		return err == nil
	})
	return err
}

func dumpRecord(w io.Writer, r Record, depth int) error {
	indent := strings.Repeat("  ", depth)
	h := r.header()
	size, err := RecordSize(r)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s (0x%04X) ver=%d inst=0x%03X len=%d%s\n",
		indent, RecordName(h.RecordID), h.RecordID, h.Version(), h.Instance(), size-HeaderSize, recordSummary(r)); err != nil {
		return err
	}
	opt, ok := r.(*OptRecord)
	if !ok {
		return nil
	}
	for _, p := range opt.Properties {
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, describeProperty(p)); err != nil {
			return err
		}
	}
	return nil
}

func recordSummary(r Record) string {
	switch r := r.(type) {
	case *SpRecord:
		return fmt.Sprintf(" shape=%d type=%d flags=0x%X", r.ShapeID, r.ShapeType(), r.Flags)
	case *DgRecord:
		return fmt.Sprintf(" drawing=%d shapes=%d last=%d", r.DrawingID(), r.NumShapes, r.LastShapeID)
	case *DggRecord:
		return fmt.Sprintf(" max=%d clusters=%d saved=%d drawings=%d", r.ShapeIDMax, len(r.Clusters), r.NumShapesSaved, r.DrawingsSaved)
	case *ClientAnchorRecord:
		if r.Short {
			return " short"
		}
		return fmt.Sprintf(" (%d,%d)-(%d,%d)", r.Col1, r.Row1, r.Col2, r.Row2)
	case *ChildAnchorRecord:
		return fmt.Sprintf(" (%d,%d)-(%d,%d)", r.Dx1, r.Dy1, r.Dx2, r.Dy2)
	case *SpgrRecord:
		return fmt.Sprintf(" (%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
	}
	return ""
}

func describeProperty(p Property) string {
	id := PropertyID(p)
	prefix := fmt.Sprintf("0x%04X %s", id, PropertyName(id))
	if IsBlipID(p) {
		prefix += " [blip]"
	}
	switch v := Typed(p).(type) {
	case BoolProperty:
		return fmt.Sprintf("%s = 0x%08X", prefix, v.Value)
	case RGBProperty:
		return fmt.Sprintf("%s = rgb(%d,%d,%d)", prefix, v.Red(), v.Green(), v.Blue())
	case ShapePathProperty:
		return fmt.Sprintf("%s = path %d", prefix, v.ShapePath())
	case ArrayProperty:
		return fmt.Sprintf("%s = array of %d x %d bytes", prefix, v.NumElements(), v.ElementSize())
	case *ComplexProperty:
		return fmt.Sprintf("%s = complex %d bytes %s", prefix, len(v.Data), preview(v.Data))
	case *SimpleProperty:
		return fmt.Sprintf("%s = %d", prefix, v.Value)
	}
	return prefix
}

func preview(b []byte) string {
	const max = 16
	if len(b) > max {
		return hex.EncodeToString(b[:max]) + "..."
	}
	return hex.EncodeToString(b)
}
