package biff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
)

// Formula tokens used across tests: 1+2.
var onePlusTwo = []Ptg{{ID: 0x1E, Data: []byte{1, 0}}, {ID: 0x1E, Data: []byte{2, 0}}, {ID: 0x03}}

type testSheet struct {
	name    string
	records []Record
}

func serialize(t *testing.T, w *codec.Writer, records ...Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, SerializeRecord(w, r))
	}
}

// buildStream writes a globals substream holding globals and one
// BOUNDSHEET per sheet, followed by the sheet substreams.
func buildStream(t *testing.T, globals []Record, sheets ...testSheet) []byte {
	t.Helper()
	body := codec.NewWriter(0)
	offsets := make([]int, len(sheets))
	bounds := make([]*BoundSheetRecord, len(sheets))
	for i, s := range sheets {
		offsets[i] = body.Len()
		bounds[i] = NewBoundSheetRecord(s.name)
		serialize(t, body, NewBOFRecord(XL_WORKSHEET))
		serialize(t, body, s.records...)
		serialize(t, body, &EOFRecord{})
	}
	writeGlobals := func() []byte {
		w := codec.NewWriter(0)
		serialize(t, w, NewBOFRecord(XL_WORKBOOK_GLOBALS))
		serialize(t, w, globals...)
		for _, b := range bounds {
			serialize(t, w, b)
		}
		serialize(t, w, &EOFRecord{})
		return w.Bytes()
	}
	size := len(writeGlobals())
	for i, b := range bounds {
		b.Offset = uint32(size + offsets[i])
	}
	return append(writeGlobals(), body.Bytes()...)
}

// recordsOf flattens an aggregate into the records it writes.
func recordsOf(t *testing.T, agg RecordAggregate) []Record {
	t.Helper()
	var out []Record
	require.NoError(t, agg.VisitContainedRecords(func(r Record) error {
		out = append(out, r)
		return nil
	}))
	return out
}

func reread(t *testing.T, wb *Workbook, options *OpenOptions) *Workbook {
	t.Helper()
	out, err := wb.StreamBytes()
	require.NoError(t, err)
	again, err := ReadWorkbookStream(out, options)
	require.NoError(t, err)
	return again
}

func sids(records []Record) []uint16 {
	out := make([]uint16, len(records))
	for i, r := range records {
		out[i] = r.Sid()
	}
	return out
}
