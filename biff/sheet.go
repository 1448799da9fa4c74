package biff

import (
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
)

// Substream is one BOF to EOF section of a workbook stream: the workbook
// globals, a worksheet, a chart or a macro sheet. Charts embedded in a
// worksheet stay inside the worksheet's substream.
//
// You don't build the substreams of a loaded workbook yourself; use
// Workbook.Globals and Workbook.Sheets.
type Substream struct {
	// Name is the sheet name taken from the BOUNDSHEET entry that points at
	// the substream. It is empty for the globals.
	Name string

	// BoundSheet is that entry, nil for the globals and for substreams no
	// entry points at. Its offset is rewritten on save.
	BoundSheet *BoundSheetRecord

	// Items holds the plain records and aggregates in stream order. The
	// first item is the BOF record and the last one the EOF record.
	Items []RecordAggregate

	offset  int
	sources map[Record]*recordSource
	logger  *slog.Logger
}

// NewSubstream returns a substream holding only a BOF and an EOF record.
func NewSubstream(streamType uint16) *Substream {
	return &Substream{
		Items:   []RecordAggregate{SingleRecord{NewBOFRecord(streamType)}, SingleRecord{&EOFRecord{}}},
		sources: map[Record]*recordSource{},
		logger:  discardLogger(),
	}
}

func newSubstream(loaded []loadedRecord, logger *slog.Logger) *Substream {
	s := &Substream{offset: loaded[0].offset, sources: map[Record]*recordSource{}, logger: logger}
	records := make([]Record, len(loaded))
	for i, lr := range loaded {
		records[i] = lr.rec
		if lr.src != nil {
			s.sources[lr.rec] = lr.src
		}
	}
	rs := NewRecordStream(records)
	for rs.HasNext() {
		switch r := rs.Peek().(type) {
		case *DVALRecord:
			s.Items = append(s.Items, readDataValidityTable(rs, logger))
		case CFHeader:
			s.Items = append(s.Items, readConditionalFormattingTable(rs, logger))
		case *DrawingRecord:
			if r.sid == XL_MSO_DRAWING_SELECTION {
				s.Items = append(s.Items, SingleRecord{rs.GetNext()})
				continue
			}
			s.Items = append(s.Items, readDrawingAggregate(rs, logger))
		default:
			s.Items = append(s.Items, SingleRecord{rs.GetNext()})
		}
	}
	return s
}

// BOF returns the record that opens the substream.
func (s *Substream) BOF() *BOFRecord {
	if len(s.Items) == 0 {
		return nil
	}
	if single, ok := s.Items[0].(SingleRecord); ok {
		bof, _ := single.Record.(*BOFRecord)
		return bof
	}
	return nil
}

// Type returns the substream type from the BOF record, XL_WORKSHEET for
// example.
func (s *Substream) Type() uint16 {
	if bof := s.BOF(); bof != nil {
		return bof.Type
	}
	return 0
}

// Offset returns the stream offset the substream was loaded from.
func (s *Substream) Offset() int { return s.offset }

// VisitContainedRecords visits every record of the substream in order.
func (s *Substream) VisitContainedRecords(v RecordVisitor) error {
	for _, item := range s.Items {
		if err := item.VisitContainedRecords(v); err != nil {
			return err
		}
	}
	return nil
}

// Records returns the records of the substream as they would be written.
func (s *Substream) Records() []Record {
	var out []Record
	_ = s.VisitContainedRecords(func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out
}

// FindRecord returns the first plain record with the given type, or nil.
func (s *Substream) FindRecord(sid uint16) Record {
	for _, item := range s.Items {
		if single, ok := item.(SingleRecord); ok && single.Sid() == sid {
			return single.Record
		}
	}
	return nil
}

// eofIndex returns the index of the closing EOF item, or len(Items).
func (s *Substream) eofIndex() int {
	for i := len(s.Items) - 1; i > 0; i-- {
		if single, ok := s.Items[i].(SingleRecord); ok && single.Sid() == XL_EOF {
			return i
		}
	}
	return len(s.Items)
}

// Insert places item just before the closing EOF record.
func (s *Substream) Insert(item RecordAggregate) {
	i := s.eofIndex()
	s.Items = append(s.Items, nil)
	copy(s.Items[i+1:], s.Items[i:])
	s.Items[i] = item
}

// InsertAfter places item directly after the item at index i.
func (s *Substream) InsertAfter(i int, item RecordAggregate) {
	s.Items = append(s.Items, nil)
	copy(s.Items[i+2:], s.Items[i+1:])
	s.Items[i+1] = item
}

// DataValidityTable returns the data validation table, adding an empty one
// when the substream has none.
func (s *Substream) DataValidityTable() *DataValidityTable {
	for _, item := range s.Items {
		if t, ok := item.(*DataValidityTable); ok {
			return t
		}
	}
	t := NewDataValidityTable()
	s.Insert(t)
	return t
}

// ConditionalFormattingTable returns the conditional formatting table,
// adding an empty one when the substream has none.
func (s *Substream) ConditionalFormattingTable() *ConditionalFormattingTable {
	for _, item := range s.Items {
		if t, ok := item.(*ConditionalFormattingTable); ok {
			return t
		}
	}
	t := &ConditionalFormattingTable{}
	s.Insert(t)
	return t
}

// DrawingAggregates returns the drawing aggregates in stream order.
func (s *Substream) DrawingAggregates() []*DrawingAggregate {
	var out []*DrawingAggregate
	for _, item := range s.Items {
		if d, ok := item.(*DrawingAggregate); ok {
			out = append(out, d)
		}
	}
	return out
}

// writeRecord writes r, reusing its original frames when its payload did
// not change since it was read.
func (s *Substream) writeRecord(out *codec.Writer, r Record) error {
	if src := s.sources[r]; src.unchanged(r) {
		out.WriteBytes(src.raw)
		return nil
	}
	return SerializeRecord(out, r)
}

// Serialize writes the substream as frames.
func (s *Substream) Serialize(out *codec.Writer) error {
	return s.VisitContainedRecords(func(r Record) error {
		return s.writeRecord(out, r)
	})
}

// Bytes returns the serialized substream.
func (s *Substream) Bytes() ([]byte, error) {
	w := codec.NewWriter(4096)
	if err := s.Serialize(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
