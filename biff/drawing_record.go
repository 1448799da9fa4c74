package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// DrawingRecord carries a slice of Escher data: MSODRAWING for a sheet,
// MSODRAWINGGROUP for the workbook, MSODRAWINGSELECTION for the current
// selection. The slices of consecutive records concatenate into one Escher
// stream, which DrawingAggregate parses.
type DrawingRecord struct {
	sid  uint16
	Data []byte
}

// NewDrawingRecord returns a drawing record of the given type.
func NewDrawingRecord(sid uint16, data []byte) *DrawingRecord {
	return &DrawingRecord{sid: sid, Data: data}
}

func readDrawingRecord(in *RecordInput) (Record, error) {
	return &DrawingRecord{sid: in.Sid(), Data: in.ReadRemainder()}, nil
}

func (r *DrawingRecord) Sid() uint16 { return r.sid }

func (r *DrawingRecord) Serialize(out *codec.Writer) error {
	out.WriteBytes(r.Data)
	return nil
}
