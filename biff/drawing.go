package biff

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/ddf"
)

// DrawingAggregate is a run of drawing records whose Escher payloads form
// one record tree. A sheet drawing interleaves MSODRAWING with the OBJ, TXO
// and CONTINUE records of its shapes; the workbook drawing group is a run of
// MSODRAWINGGROUP records.
//
// Records holds the parsed tree and may be edited. When the tree still
// serializes to the bytes it was read from, the original records are
// written back. Otherwise the new Escher bytes are split again so that each
// MSODRAWING ends with the same Escher record as before.
type DrawingAggregate struct {
	sid     uint16
	members []Record
	// Records is nil when the payload did not parse as Escher data; such
	// an aggregate is always written back unchanged.
	Records []ddf.Record

	original []byte
	// anchors holds, per drawing member, the innermost Escher record that
	// ended its payload.
	anchors []ddf.Record
}

func isDrawingMember(sid uint16, r Record) bool {
	switch r.Sid() {
	case XL_CONTINUE:
		return true
	case XL_OBJ, XL_TXO:
		return sid == XL_MSO_DRAWING
	}
	return r.Sid() == sid
}

func readDrawingAggregate(rs *RecordStream, logger *slog.Logger) *DrawingAggregate {
	first := rs.GetNext()
	agg := &DrawingAggregate{sid: first.Sid(), members: []Record{first}}
	for rs.HasNext() && isDrawingMember(agg.sid, rs.Peek()) {
		agg.members = append(agg.members, rs.GetNext())
	}
	var ends []int
	for _, m := range agg.members {
		switch m := m.(type) {
		case *DrawingRecord:
			if m.sid == agg.sid {
				agg.original = append(agg.original, m.Data...)
				ends = append(ends, len(agg.original))
			}
		case *ContinueRecord:
			// sheet drawings leave CONTINUE to the TXO text before it
			if agg.sid != XL_MSO_DRAWING {
				agg.original = append(agg.original, m.Data...)
			}
		}
	}
	records, err := ddf.ParseRecords(agg.original)
	if err != nil {
		logger.Warn("drawing data kept opaque", "sid", agg.sid, "name", RecordName(agg.sid), "error", err)
		return agg
	}
	endRecords := map[int]ddf.Record{}
	reserialized, err := serializeEscher(records, func(end int, r ddf.Record) {
		if _, seen := endRecords[end]; !seen {
			endRecords[end] = r
		}
	})
	if err != nil || !bytes.Equal(reserialized, agg.original) {
		logger.Warn("drawing data does not reserialize identically, kept opaque", "sid", agg.sid, "name", RecordName(agg.sid))
		return agg
	}
	agg.Records = records
	if agg.sid == XL_MSO_DRAWING {
		for _, end := range ends {
			anchor, ok := endRecords[end]
			if !ok {
				logger.Debug("drawing record does not end on an Escher record boundary", "end", end)
				agg.anchors = nil
				break
			}
			agg.anchors = append(agg.anchors, anchor)
		}
	}
	return agg
}

func serializeEscher(records []ddf.Record, l ddf.SerializationListener) ([]byte, error) {
	w := codec.NewWriter(256)
	for _, r := range records {
		if err := ddf.Serialize(w, r, w.Len(), l); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// NewDrawingGroupAggregate returns a drawing group holding records.
func NewDrawingGroupAggregate(records []ddf.Record) *DrawingAggregate {
	return &DrawingAggregate{sid: XL_MSO_DRAWING_GROUP, Records: records}
}

// Sid returns the drawing record type the aggregate is made of.
func (agg *DrawingAggregate) Sid() uint16 { return agg.sid }

// Members returns the records the aggregate was read from.
func (agg *DrawingAggregate) Members() []Record { return agg.members }

// EscherData returns the concatenated Escher payload as it stands.
func (agg *DrawingAggregate) EscherData() ([]byte, error) {
	if agg.Records == nil {
		return agg.original, nil
	}
	return serializeEscher(agg.Records, nil)
}

// Modified reports whether the tree no longer serializes to the bytes it
// was read from.
func (agg *DrawingAggregate) Modified() bool {
	if agg.Records == nil {
		return false
	}
	data, err := serializeEscher(agg.Records, nil)
	return err != nil || !bytes.Equal(data, agg.original)
}

func (agg *DrawingAggregate) VisitContainedRecords(v RecordVisitor) error {
	if !agg.Modified() {
		for _, m := range agg.members {
			if err := v(m); err != nil {
				return err
			}
		}
		return nil
	}
	if agg.sid != XL_MSO_DRAWING {
		data, err := serializeEscher(agg.Records, nil)
		if err != nil {
			return err
		}
		if err := v(NewDrawingRecord(agg.sid, data)); err != nil {
			return err
		}
		// CONTINUE members are absorbed into the regenerated payload
		for _, m := range agg.members {
			if m.Sid() != agg.sid && m.Sid() != XL_CONTINUE {
				if err := v(m); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return agg.visitResplit(v)
}

// visitResplit writes a modified sheet drawing: each MSODRAWING member gets
// the new bytes up to the new end of its anchor record.
func (agg *DrawingAggregate) visitResplit(v RecordVisitor) error {
	if agg.anchors == nil {
		return codec.Errorf(codec.ErrUnsupportedFeature, "drawing records do not end on Escher record boundaries; cannot rewrite a modified drawing")
	}
	newEnds := map[ddf.Record]int{}
	data, err := serializeEscher(agg.Records, func(end int, r ddf.Record) {
		newEnds[r] = end
	})
	if err != nil {
		return err
	}
	prev, i := 0, 0
	for _, m := range agg.members {
		d, ok := m.(*DrawingRecord)
		if !ok || d.sid != agg.sid {
			if err := v(m); err != nil {
				return err
			}
			continue
		}
		end, ok := newEnds[agg.anchors[i]]
		if !ok || end < prev {
			return codec.Errorf(codec.ErrUnsupportedFeature, "escher record %s that ended drawing record %d was removed or moved", ddf.RecordName(ddf.RecordHeader(agg.anchors[i]).RecordID), i)
		}
		i++
		if i == len(agg.anchors) && end != len(data) {
			return codec.Errorf(codec.ErrUnsupportedFeature, "escher records were added after the last drawing record")
		}
		if err := v(NewDrawingRecord(agg.sid, data[prev:end])); err != nil {
			return err
		}
		prev = end
	}
	return nil
}

// Dump writes the Escher tree, or a note when the data is opaque.
func (agg *DrawingAggregate) Dump(w io.Writer) error {
	if agg.Records == nil {
		_, err := fmt.Fprintf(w, "(opaque drawing data, %d bytes)\n", len(agg.original))
		return err
	}
	for _, r := range agg.Records {
		if err := ddf.Dump(w, r); err != nil {
			return err
		}
	}
	return nil
}
