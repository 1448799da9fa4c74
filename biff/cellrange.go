package biff

import (
	"fmt"

	"github.com/yamitzky/biffkit-go/codec"
)

// CellRangeAddress is a rectangular block of cells. -1 stands for an
// unbounded edge and is written as 0xFFFF.
type CellRangeAddress struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
}

// CellRangeAddressSize is the encoded size of one range.
const CellRangeAddressSize = 8

func readCellRangeAddress(in *RecordInput) (CellRangeAddress, error) {
	var v [4]uint16
	for i := range v {
		u, err := in.ReadU16()
		if err != nil {
			return CellRangeAddress{}, err
		}
		v[i] = u
	}
	return CellRangeAddress{FirstRow: int(v[0]), LastRow: int(v[1]), FirstCol: int(v[2]), LastCol: int(v[3])}, nil
}

func (r CellRangeAddress) write(out *codec.Writer) {
	out.WriteU16(uint16(r.FirstRow))
	out.WriteU16(uint16(r.LastRow))
	out.WriteU16(uint16(r.FirstCol))
	out.WriteU16(uint16(r.LastCol))
}

func (r CellRangeAddress) String() string {
	return fmt.Sprintf("%s%d:%s%d", colName(r.FirstCol), r.FirstRow+1, colName(r.LastCol), r.LastRow+1)
}

func colName(colx int) string {
	if colx < 0 || colx == 0xFFFF {
		return "*"
	}
	name := ""
	for {
		name = string(rune('A'+colx%26)) + name
		colx = colx/26 - 1
		if colx < 0 {
			return name
		}
	}
}

// CellRangeAddressList is a count-prefixed list of ranges.
type CellRangeAddressList []CellRangeAddress

func readCellRangeAddressList(in *RecordInput) (CellRangeAddressList, error) {
	n, err := in.ReadU16()
	if err != nil {
		return nil, err
	}
	list := make(CellRangeAddressList, 0, n)
	for i := 0; i < int(n); i++ {
		r, err := readCellRangeAddress(in)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, nil
}

func (l CellRangeAddressList) write(out *codec.Writer) {
	out.WriteU16(uint16(len(l)))
	for _, r := range l {
		r.write(out)
	}
}

// Intersection kinds returned by Intersect.
const (
	NO_INTERSECTION = 1
	OVERLAP         = 2
	INSIDE          = 3
	ENCLOSES        = 4
)

func rangeLT(a, b int) bool {
	if a == -1 {
		return false
	}
	if b == -1 {
		return true
	}
	return a < b
}

func rangeLE(a, b int) bool { return a == b || rangeLT(a, b) }
func rangeGT(a, b int) bool { return rangeLT(b, a) }
func rangeGE(a, b int) bool { return !rangeLT(a, b) }

// Intersect classifies how b relates to a: NO_INTERSECTION, OVERLAP,
// INSIDE (b lies within a) or ENCLOSES (b contains a).
func Intersect(a, b CellRangeAddress) int {
	switch {
	case rangeGT(a.FirstRow, b.LastRow) || rangeLT(a.LastRow, b.FirstRow) ||
		rangeGT(a.FirstCol, b.LastCol) || rangeLT(a.LastCol, b.FirstCol):
		return NO_INTERSECTION
	case Contains(a, b):
		return INSIDE
	case Contains(b, a):
		return ENCLOSES
	}
	return OVERLAP
}

// Contains reports whether b lies within a.
func Contains(a, b CellRangeAddress) bool {
	return rangeLE(a.FirstRow, b.FirstRow) && rangeGE(a.LastRow, b.LastRow) &&
		rangeLE(a.FirstCol, b.FirstCol) && rangeGE(a.LastCol, b.LastCol)
}

// HasExactSharedBorder reports whether a and b are adjacent along a whole
// edge.
func HasExactSharedBorder(a, b CellRangeAddress) bool {
	if a.FirstRow > 0 && a.FirstRow-1 == b.LastRow || b.FirstRow > 0 && b.FirstRow-1 == a.LastRow {
		return a.FirstCol == b.FirstCol && a.LastCol == b.LastCol
	}
	if a.FirstCol > 0 && a.FirstCol-1 == b.LastCol || b.FirstCol > 0 && a.LastCol == b.FirstCol-1 {
		return a.FirstRow == b.FirstRow && a.LastRow == b.LastRow
	}
	return false
}

// CreateEnclosingCellRange returns the smallest range holding a and b.
func CreateEnclosingCellRange(a, b CellRangeAddress) CellRangeAddress {
	out := a
	if rangeLT(b.FirstRow, a.FirstRow) {
		out.FirstRow = b.FirstRow
	}
	if rangeGT(b.LastRow, a.LastRow) {
		out.LastRow = b.LastRow
	}
	if rangeLT(b.FirstCol, a.FirstCol) {
		out.FirstCol = b.FirstCol
	}
	if rangeGT(b.LastCol, a.LastCol) {
		out.LastCol = b.LastCol
	}
	return out
}

// mergeRanges returns the merged range and true when a and b can be
// replaced by one range. Overlapping ranges are left alone.
func mergeRanges(a, b CellRangeAddress) (CellRangeAddress, bool) {
	switch Intersect(a, b) {
	case NO_INTERSECTION:
		if HasExactSharedBorder(a, b) {
			return CreateEnclosingCellRange(a, b), true
		}
	case INSIDE:
		return a, true
	case ENCLOSES:
		return b, true
	}
	return CellRangeAddress{}, false
}

// MergeCellRanges repeatedly joins ranges that are adjacent or nested
// until nothing more merges. The input is not modified.
func MergeCellRanges(ranges []CellRangeAddress) []CellRangeAddress {
	list := append([]CellRangeAddress(nil), ranges...)
	for len(list) > 1 {
		merged := false
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				m, ok := mergeRanges(list[i], list[j])
				if !ok {
					continue
				}
				merged = true
				list[i] = m
				list = append(list[:j], list[j+1:]...)
				j--
			}
		}
		if !merged {
			break
		}
	}
	return list
}
