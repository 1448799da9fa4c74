package biff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
)

var (
	a1a2 = CellRangeAddress{FirstRow: 0, LastRow: 1, FirstCol: 0, LastCol: 0}
	a3a4 = CellRangeAddress{FirstRow: 2, LastRow: 3, FirstCol: 0, LastCol: 0}
	c1c9 = CellRangeAddress{FirstRow: 0, LastRow: 8, FirstCol: 2, LastCol: 2}
)

func validationSheet(t *testing.T, count int) []byte {
	header := NewDVALRecord()
	records := []Record{header}
	for i := 0; i < count; i++ {
		records = append(records, NewDVRecord(DV_TYPE_INTEGER, CellRangeAddressList{a1a2}, onePlusTwo, nil))
	}
	header.DVCount = uint32(count)
	return buildStream(t, nil, testSheet{"Sheet1", records})
}

func TestDataValidityTableFromStream(t *testing.T) {
	wb, err := ReadWorkbookStream(validationSheet(t, 1), nil)
	require.NoError(t, err)
	sheet := wb.Sheets[0]

	table := sheet.DataValidityTable()
	require.Len(t, table.Validations, 1)
	assert.Equal(t, DV_TYPE_INTEGER, table.Validations[0].DataType())
	assert.Len(t, sheet.Items, 3)

	table.AddDataValidation(NewDVRecord(DV_TYPE_LIST, CellRangeAddressList{c1c9}, nil, nil))
	assert.Equal(t, uint32(2), table.Header.DVCount)

	again := reread(t, wb, nil)
	got := again.Sheets[0].DataValidityTable()
	require.Len(t, got.Validations, 2)
	assert.Equal(t, uint32(2), got.Header.DVCount)
	assert.Equal(t, DV_TYPE_LIST, got.Validations[1].DataType())
	assert.Equal(t, CellRangeAddressList{c1c9}, got.Validations[1].Regions)
}

func TestDataValidityTableHeaderOnly(t *testing.T) {
	wb, err := ReadWorkbookStream(validationSheet(t, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint16{XL_BOF, XL_DVAL, XL_EOF}, sids(wb.Sheets[0].Records()))
}

func TestNewDataValidityTableWritesNothingUntilUsed(t *testing.T) {
	s := NewSubstream(XL_WORKSHEET)
	table := s.DataValidityTable()
	assert.Same(t, table, s.DataValidityTable())
	assert.Equal(t, []uint16{XL_BOF, XL_EOF}, sids(s.Records()))

	table.AddDataValidation(NewDVRecord(DV_TYPE_ANY, nil, nil, nil))
	assert.Equal(t, []uint16{XL_BOF, XL_DVAL, XL_DV, XL_EOF}, sids(s.Records()))
	assert.Equal(t, uint32(0xFFFFFFFF), table.Header.ObjectID)
}

func TestCFRecordsAggregateLimits(t *testing.T) {
	rule := func() CFRule { return NewCFRuleRecord(1, onePlusTwo, nil) }

	_, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, nil)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)

	_, err = NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{rule(), rule(), rule(), rule()})
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)

	agg, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{rule(), rule(), rule()})
	require.NoError(t, err)
	assert.Equal(t, uint16(3), agg.Header.header().NumCF)
	assert.ErrorIs(t, agg.AddRule(rule()), codec.ErrUnsupportedFeature)
	assert.Len(t, agg.Rules, MaxLegacyCFRules)

	cf12, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{NewCFRule12Record(CF_CONDITION_FORMULA, onePlusTwo)})
	require.NoError(t, err)
	assert.IsType(t, &CFHeader12Record{}, cf12.Header)
	assert.ErrorIs(t, cf12.AddRule(rule()), codec.ErrUnsupportedFeature)
	for i := 0; i < 5; i++ {
		require.NoError(t, cf12.AddRule(NewCFRule12Record(CF_CONDITION_FORMULA, onePlusTwo)))
	}
	assert.Equal(t, uint16(6), cf12.Header.header().NumCF)
}

func TestCFRegionsAreMerged(t *testing.T) {
	agg, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2, a3a4, c1c9}, []CFRule{NewCFFormulaRuleRecord(onePlusTwo)})
	require.NoError(t, err)
	a1a4 := CellRangeAddress{FirstRow: 0, LastRow: 3, FirstCol: 0, LastCol: 0}
	assert.Equal(t, CellRangeAddressList{a1a4, c1c9}, agg.Regions())
	assert.Equal(t, CellRangeAddress{FirstRow: 0, LastRow: 8, FirstCol: 0, LastCol: 2}, agg.Header.header().Enclosing)
}

func TestConditionalFormattingTableRoundTrip(t *testing.T) {
	legacy, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{
		NewCFRuleRecord(1, onePlusTwo, onePlusTwo),
		NewCFFormulaRuleRecord(onePlusTwo),
	})
	require.NoError(t, err)
	legacy.Rules[0].base().SetBlock(CF_OPT_PATTERN, []byte{1, 2, 3, 4})
	future, err := NewCFRecordsAggregate([]CellRangeAddress{c1c9}, []CFRule{NewCFRule12Record(CF_CONDITION_FORMULA, onePlusTwo)})
	require.NoError(t, err)

	records := append(recordsOf(t, legacy), recordsOf(t, future)...)
	stream := buildStream(t, nil, testSheet{"Sheet1", records})

	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	table := wb.Sheets[0].ConditionalFormattingTable()
	require.Len(t, table.Formattings, 2)
	assert.Len(t, table.Formattings[0].Rules, 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, table.Formattings[0].Rules[0].base().PatternBlock)
	assert.Len(t, table.Formattings[1].Rules, 1)
	assert.Equal(t, CellRangeAddressList{c1c9}, table.Formattings[1].Regions())

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)

	table.Remove(0)
	table.Remove(5)
	again := reread(t, wb, nil)
	got := again.Sheets[0].ConditionalFormattingTable()
	require.Len(t, got.Formattings, 1)
	assert.IsType(t, &CFHeader12Record{}, got.Formattings[0].Header)
}

func TestCFCountMismatchIsLogged(t *testing.T) {
	agg, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{NewCFFormulaRuleRecord(onePlusTwo)})
	require.NoError(t, err)
	agg.Header.header().NumCF = 3
	stream := buildStream(t, nil, testSheet{"Sheet1", recordsOf(t, agg)})

	var log bytes.Buffer
	wb, err := ReadWorkbookStream(stream, &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "rule count does not match")
	assert.Len(t, wb.Sheets[0].ConditionalFormattingTable().Formattings[0].Rules, 1)
}

func TestMergeCellRanges(t *testing.T) {
	inside := CellRangeAddress{FirstRow: 2, LastRow: 3, FirstCol: 2, LastCol: 2}
	overlap := CellRangeAddress{FirstRow: 5, LastRow: 10, FirstCol: 1, LastCol: 3}
	tests := []struct {
		name string
		in   []CellRangeAddress
		want []CellRangeAddress
	}{
		{"adjacent rows", []CellRangeAddress{a1a2, a3a4}, []CellRangeAddress{{FirstRow: 0, LastRow: 3, FirstCol: 0, LastCol: 0}}},
		{"nested", []CellRangeAddress{inside, c1c9}, []CellRangeAddress{c1c9}},
		{"overlap is kept apart", []CellRangeAddress{c1c9, overlap}, []CellRangeAddress{c1c9, overlap}},
		{"disjoint", []CellRangeAddress{a1a2, c1c9}, []CellRangeAddress{a1a2, c1c9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeCellRanges(tt.in))
		})
	}
	assert.Equal(t, OVERLAP, Intersect(c1c9, overlap))
	assert.Equal(t, INSIDE, Intersect(c1c9, inside))
	assert.Equal(t, ENCLOSES, Intersect(inside, c1c9))
	assert.Equal(t, NO_INTERSECTION, Intersect(a1a2, c1c9))
}

func TestDirectMemberEditsUpdateCounts(t *testing.T) {
	wb, err := ReadWorkbookStream(validationSheet(t, 1), nil)
	require.NoError(t, err)
	table := wb.Sheets[0].DataValidityTable()
	table.Validations = append(table.Validations, NewDVRecord(DV_TYPE_LIST, CellRangeAddressList{c1c9}, nil, nil))

	again := reread(t, wb, nil)
	got := again.Sheets[0].DataValidityTable()
	require.Len(t, got.Validations, 2)
	assert.Equal(t, uint32(2), got.Header.DVCount)

	agg, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{NewCFFormulaRuleRecord(onePlusTwo)})
	require.NoError(t, err)
	wb, err = ReadWorkbookStream(buildStream(t, nil, testSheet{"Sheet1", recordsOf(t, agg)}), nil)
	require.NoError(t, err)
	read := wb.Sheets[0].ConditionalFormattingTable().Formattings[0]
	read.Rules = append(read.Rules, NewCFRuleRecord(1, onePlusTwo, nil))

	again = reread(t, wb, nil)
	cf := again.Sheets[0].ConditionalFormattingTable().Formattings[0]
	assert.Len(t, cf.Rules, 2)
	assert.Equal(t, uint16(2), cf.Header.header().NumCF)
}

func TestDeclaredCountsKeptWhenMembersUnchanged(t *testing.T) {
	header := NewDVALRecord()
	header.DVCount = 5
	dv := NewDVRecord(DV_TYPE_INTEGER, CellRangeAddressList{a1a2}, onePlusTwo, nil)
	agg, err := NewCFRecordsAggregate([]CellRangeAddress{a1a2}, []CFRule{NewCFFormulaRuleRecord(onePlusTwo)})
	require.NoError(t, err)
	agg.Header.header().NumCF = 3
	records := append([]Record{header, dv}, recordsOf(t, agg)...)
	stream := buildStream(t, nil, testSheet{"Sheet1", records})

	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)
	assert.Equal(t, uint32(5), wb.Sheets[0].DataValidityTable().Header.DVCount)
}
