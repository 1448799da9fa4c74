package biff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/ddf"
)

func shape(text ...byte) *ddf.ContainerRecord {
	sp := ddf.NewContainerRecord(ddf.SP_CONTAINER)
	sp.AddChild(&ddf.AtomRecord{Header: ddf.Header{RecordID: ddf.TEXTBOX}, Data: text})
	sp.AddChild(&ddf.ClientDataRecord{Header: ddf.Header{RecordID: ddf.CLIENT_DATA}})
	return sp
}

// drawingSheet returns a sheet whose drawing is split after byte split of
// the Escher data, with an OBJ record after each MSODRAWING.
func drawingSheet(t *testing.T, split int) []byte {
	dg := ddf.NewContainerRecord(ddf.DG_CONTAINER)
	dg.AddChild(shape(1, 2, 3, 4))
	dg.AddChild(shape(5, 6))
	data, err := ddf.RecordBytes(dg)
	require.NoError(t, err)
	return buildStream(t, nil, testSheet{"Sheet1", []Record{
		NewDrawingRecord(XL_MSO_DRAWING, data[:split]),
		NewRawRecord(XL_OBJ, []byte{0x15, 0, 0x12, 0, 1}),
		NewDrawingRecord(XL_MSO_DRAWING, data[split:]),
		NewRawRecord(XL_OBJ, []byte{0x15, 0, 0x12, 0, 2}),
	}})
}

// firstShapeEnd is where the first SpContainer ends: the DgContainer
// header, the SpContainer header, a 4 byte Textbox and an empty ClientData.
const firstShapeEnd = 8 + 8 + 12 + 8

func TestDrawingAggregateUnmodified(t *testing.T) {
	stream := drawingSheet(t, firstShapeEnd)
	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)

	aggs := wb.Sheets[0].DrawingAggregates()
	require.Len(t, aggs, 1)
	agg := aggs[0]
	assert.Equal(t, uint16(XL_MSO_DRAWING), agg.Sid())
	assert.Equal(t, []uint16{XL_MSO_DRAWING, XL_OBJ, XL_MSO_DRAWING, XL_OBJ}, sids(agg.Members()))
	require.Len(t, agg.Records, 1)
	assert.False(t, agg.Modified())

	var dump bytes.Buffer
	require.NoError(t, agg.Dump(&dump))
	assert.Contains(t, dump.String(), "DgContainer")
	assert.Contains(t, dump.String(), "  SpContainer")

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)
}

func TestDrawingAggregateResplit(t *testing.T) {
	wb, err := ReadWorkbookStream(drawingSheet(t, firstShapeEnd), nil)
	require.NoError(t, err)
	agg := wb.Sheets[0].DrawingAggregates()[0]

	dg := agg.Records[0].(*ddf.ContainerRecord)
	text := dg.Children[0].(*ddf.ContainerRecord).Children[0].(*ddf.AtomRecord)
	text.Data = []byte{1, 2, 3, 4, 7, 8}
	assert.True(t, agg.Modified())

	again := reread(t, wb, nil)
	got := again.Sheets[0].DrawingAggregates()[0]
	members := got.Members()
	require.Equal(t, []uint16{XL_MSO_DRAWING, XL_OBJ, XL_MSO_DRAWING, XL_OBJ}, sids(members))
	assert.Len(t, members[0].(*DrawingRecord).Data, firstShapeEnd+2)
	assert.Equal(t, []byte{0x15, 0, 0x12, 0, 1}, members[1].(*RawRecord).Data)
	assert.Equal(t, []byte{0x15, 0, 0x12, 0, 2}, members[3].(*RawRecord).Data)

	require.NotNil(t, got.Records)
	gotText := ddf.FindFirst(got.Records[0], ddf.TEXTBOX).(*ddf.AtomRecord)
	assert.Equal(t, []byte{1, 2, 3, 4, 7, 8}, gotText.Data)
}

func TestDrawingAggregateRemovedAnchor(t *testing.T) {
	wb, err := ReadWorkbookStream(drawingSheet(t, firstShapeEnd), nil)
	require.NoError(t, err)
	dg := wb.Sheets[0].DrawingAggregates()[0].Records[0].(*ddf.ContainerRecord)
	require.True(t, dg.RemoveChild(dg.Children[1]))

	_, err = wb.StreamBytes()
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)
}

func TestDrawingAggregateAppendedRecords(t *testing.T) {
	wb, err := ReadWorkbookStream(drawingSheet(t, firstShapeEnd), nil)
	require.NoError(t, err)
	agg := wb.Sheets[0].DrawingAggregates()[0]
	agg.Records = append(agg.Records, shape(9))

	_, err = wb.StreamBytes()
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)
}

func TestDrawingSplitInsideRecord(t *testing.T) {
	// the first MSODRAWING ends in the middle of the Textbox atom
	stream := drawingSheet(t, firstShapeEnd-10)
	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)

	agg := wb.Sheets[0].DrawingAggregates()[0]
	text := ddf.FindFirst(agg.Records[0], ddf.TEXTBOX).(*ddf.AtomRecord)
	text.Data = []byte{0}
	_, err = wb.StreamBytes()
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)
}

func TestOpaqueDrawing(t *testing.T) {
	stream := buildStream(t, nil, testSheet{"Sheet1", []Record{NewDrawingRecord(XL_MSO_DRAWING, []byte{1, 2, 3})}})
	var log bytes.Buffer
	wb, err := ReadWorkbookStream(stream, &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "drawing data kept opaque")

	agg := wb.Sheets[0].DrawingAggregates()[0]
	assert.Nil(t, agg.Records)
	assert.False(t, agg.Modified())
	data, err := agg.EscherData()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	var dump bytes.Buffer
	require.NoError(t, agg.Dump(&dump))
	assert.Equal(t, "(opaque drawing data, 3 bytes)\n", dump.String())

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)
}

func TestDrawingGroupSplitsIntoContinueFrames(t *testing.T) {
	dgg := ddf.NewContainerRecord(ddf.DGG_CONTAINER)
	blob := &ddf.AtomRecord{Header: ddf.Header{RecordID: ddf.SPLIT_MENU_COLORS + 1}, Data: []byte{1}}
	dgg.AddChild(blob)
	data, err := ddf.RecordBytes(dgg)
	require.NoError(t, err)
	stream := buildStream(t, []Record{NewDrawingRecord(XL_MSO_DRAWING_GROUP, data)}, testSheet{"Sheet1", nil})

	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	aggs := wb.Globals.DrawingAggregates()
	require.Len(t, aggs, 1)
	group := aggs[0]
	assert.Equal(t, uint16(XL_MSO_DRAWING_GROUP), group.Sid())

	big := bytes.Repeat([]byte{0xAB}, 9000)
	ddf.FindFirst(group.Records[0], ddf.SPLIT_MENU_COLORS+1).(*ddf.AtomRecord).Data = big
	out, err := wb.StreamBytes()
	require.NoError(t, err)

	frames, _ := scanFrames(out, discardLogger())
	var seen []uint16
	for i, f := range frames {
		if f.Sid == XL_MSO_DRAWING_GROUP {
			seen = append(seen, f.Sid, frames[i+1].Sid)
			assert.Equal(t, uint16(MaxRecordDataSize), f.Length)
		}
	}
	assert.Equal(t, []uint16{XL_MSO_DRAWING_GROUP, XL_CONTINUE}, seen)

	again, err := ReadWorkbookStream(out, nil)
	require.NoError(t, err)
	got := again.Globals.DrawingAggregates()[0]
	require.Len(t, got.Members(), 1)
	gotBlob := ddf.FindFirst(got.Records[0], ddf.SPLIT_MENU_COLORS+1).(*ddf.AtomRecord)
	assert.Equal(t, big, gotBlob.Data)
}

func TestNewDrawingGroupAggregate(t *testing.T) {
	dgg := ddf.NewContainerRecord(ddf.DGG_CONTAINER)
	agg := NewDrawingGroupAggregate([]ddf.Record{dgg})
	assert.True(t, agg.Modified())

	s := NewSubstream(XL_WORKBOOK_GLOBALS)
	s.Insert(agg)
	records := s.Records()
	require.Equal(t, []uint16{XL_BOF, XL_MSO_DRAWING_GROUP, XL_EOF}, sids(records))
	assert.Equal(t, []byte{0x0F, 0, 0x00, 0xF0, 0, 0, 0, 0}, records[1].(*DrawingRecord).Data)
}
