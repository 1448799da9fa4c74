package biff

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/poifs"
)

func sampleStream(t *testing.T) []byte {
	sst := &SSTRecord{}
	sst.AddString("alpha")
	sst.AddString("beta")
	return buildStream(t,
		[]Record{sst, NewRawRecord(0x0123, []byte{1, 2, 3})},
		testSheet{"Sheet1", []Record{NewFormulaRecord(0, 0, onePlusTwo)}},
		testSheet{"Data", nil},
	)
}

func TestReadWorkbookStreamRoundTrip(t *testing.T) {
	stream := sampleStream(t)
	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)

	assert.Equal(t, 80, wb.BiffVersion)
	assert.Equal(t, []string{"Sheet1", "Data"}, wb.SheetNames())
	assert.Equal(t, uint16(XL_WORKBOOK_GLOBALS), wb.Globals.Type())
	assert.Equal(t, uint16(XL_WORKSHEET), wb.Sheets[0].Type())
	assert.False(t, wb.Encrypted())

	require.NotNil(t, wb.SST())
	assert.Equal(t, "beta", wb.SST().String(1))
	assert.Equal(t, "", wb.SST().String(2))

	raw, ok := wb.Globals.FindRecord(0x0123).(*RawRecord)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, raw.Data)

	sheet, err := wb.SheetByName("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []uint16{XL_BOF, XL_FORMULA, XL_EOF}, sids(sheet.Records()))
	_, err = wb.SheetByName("Missing")
	assert.Error(t, err)
	_, err = wb.SheetByIndex(2)
	assert.Error(t, err)

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)
}

func TestBoundSheetOffsetsFollowSheetSize(t *testing.T) {
	wb, err := ReadWorkbookStream(sampleStream(t), nil)
	require.NoError(t, err)
	wb.Sheets[0].Insert(SingleRecord{NewFormulaRecord(1, 0, onePlusTwo)})

	again := reread(t, wb, nil)
	assert.Equal(t, []string{"Sheet1", "Data"}, again.SheetNames())
	for _, s := range again.Sheets {
		require.NotNil(t, s.BoundSheet)
		assert.Equal(t, uint32(s.Offset()), s.BoundSheet.Offset)
	}
	assert.Equal(t, []uint16{XL_BOF, XL_FORMULA, XL_FORMULA, XL_EOF}, sids(again.Sheets[0].Records()))
}

func TestAddSheet(t *testing.T) {
	wb, err := ReadWorkbookStream(sampleStream(t), nil)
	require.NoError(t, err)
	s := wb.AddSheet("New")
	s.Insert(SingleRecord{NewFormulaRecord(0, 1, onePlusTwo)})

	again := reread(t, wb, nil)
	assert.Equal(t, []string{"Sheet1", "Data", "New"}, again.SheetNames())
	added, err := again.SheetByName("New")
	require.NoError(t, err)
	assert.Equal(t, []uint16{XL_BOF, XL_FORMULA, XL_EOF}, sids(added.Records()))

	// the new entry follows the existing BOUNDSHEET records
	globals := sids(again.Globals.Records())
	assert.Equal(t, []uint16{XL_BOF, XL_SST, 0x0123, XL_BOUNDSHEET, XL_BOUNDSHEET, XL_BOUNDSHEET, XL_EOF}, globals)
}

func TestReadWorkbookStreamErrors(t *testing.T) {
	frame := func(sid uint16, length uint16, payload []byte) []byte {
		w := codec.NewWriter(0)
		w.WriteU16(sid)
		w.WriteU16(length)
		w.WriteBytes(payload)
		return w.Bytes()
	}
	tests := []struct {
		name   string
		stream []byte
		want   error
	}{
		{"empty", nil, codec.ErrTruncatedInput},
		{"no BOF", frame(XL_EOF, 0, nil), codec.ErrMalformedContainer},
		{"truncated BOF", frame(XL_BOF, 16, []byte{0, 6, 5}), codec.ErrTruncatedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWorkbookStream(tt.stream, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPreBIFF8StreamIsFlagged(t *testing.T) {
	bof := NewBOFRecord(XL_WORKBOOK_GLOBALS)
	bof.Version = 0x0500
	bof.Year = 1993
	w := codec.NewWriter(0)
	serialize(t, w, bof, &EOFRecord{})

	var log bytes.Buffer
	wb, err := ReadWorkbookStream(w.Bytes(), &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.Equal(t, 50, wb.BiffVersion)
	assert.Contains(t, log.String(), "stream predates BIFF8")
	assert.Contains(t, log.String(), "version=5")

	log.Reset()
	_, err = ReadWorkbookStream(sampleStream(t), &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.NotContains(t, log.String(), "predates")
}

func TestIgnoreWorkbookCorruptionKeepsRecordRaw(t *testing.T) {
	stream := buildStream(t, nil, testSheet{"Sheet1", []Record{NewRawRecord(XL_DVAL, []byte{0, 0, 0, 0})}})

	_, err := ReadWorkbookStream(stream, nil)
	assert.ErrorIs(t, err, codec.ErrTruncatedInput)

	var log bytes.Buffer
	wb, err := ReadWorkbookStream(stream, &OpenOptions{IgnoreWorkbookCorruption: true, Logfile: &log})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "keeping unparsable record raw")

	raw, ok := wb.Sheets[0].FindRecord(XL_DVAL).(*RawRecord)
	require.True(t, ok)
	assert.Len(t, raw.Data, 4)

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)
}

func TestSSTAcrossContinueFrames(t *testing.T) {
	sst := &SSTRecord{}
	for i := 0; i < 1000; i++ {
		sst.AddString(fmt.Sprintf("string-%04d", i))
	}
	sst.AddString("日本語のテキスト")
	stream := buildStream(t, []Record{sst}, testSheet{"Sheet1", nil})

	frames, _ := scanFrames(stream, discardLogger())
	continues := 0
	for _, f := range frames {
		if f.Sid == XL_CONTINUE {
			continues++
		}
	}
	require.Greater(t, continues, 0)

	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	got := wb.SST()
	require.NotNil(t, got)
	require.Equal(t, 1001, got.UniqueCount())
	for _, i := range []int{0, 586, 587, 588, 999} {
		assert.Equal(t, fmt.Sprintf("string-%04d", i), got.String(i))
	}
	assert.Equal(t, "日本語のテキスト", got.String(1000))

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)

	assert.Equal(t, 1001, got.AddString("added"))
	assert.Equal(t, 0, got.AddString("string-0000"))
	again := reread(t, wb, nil)
	assert.Equal(t, "added", again.SST().String(1001))
	assert.Equal(t, uint32(1003), again.SST().TotalCount)
}

func TestShortSSTKeepsDeclaredCount(t *testing.T) {
	// three strings declared, one present
	payload := []byte{3, 0, 0, 0, 3, 0, 0, 0, 1, 0, 0, 'a'}
	stream := buildStream(t, []Record{NewRawRecord(XL_SST, payload)}, testSheet{"Sheet1", nil})

	var log bytes.Buffer
	wb, err := ReadWorkbookStream(stream, &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.Contains(t, log.String(), "shorter than its unique count")
	require.Equal(t, 1, wb.SST().UniqueCount())

	out, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, out)

	wb.SST().AddString("b")
	out, err = wb.StreamBytes()
	require.NoError(t, err)
	log.Reset()
	again, err := ReadWorkbookStream(out, &OpenOptions{Logfile: &log})
	require.NoError(t, err)
	assert.NotContains(t, log.String(), "shorter than its unique count")
	assert.Equal(t, 2, again.SST().UniqueCount())
	assert.Equal(t, "b", again.SST().String(1))
}

func TestEncryptionRoundTrip(t *testing.T) {
	sst := &SSTRecord{}
	sst.AddString("classified")
	stream := buildStream(t, []Record{sst}, testSheet{"Secret", []Record{NewFormulaRecord(0, 0, onePlusTwo)}})

	wb, err := ReadWorkbookStream(stream, nil)
	require.NoError(t, err)
	require.NoError(t, wb.SetPassword("hunter2"))
	assert.True(t, wb.Encrypted())
	enc, err := wb.StreamBytes()
	require.NoError(t, err)
	assert.False(t, bytes.Contains(enc, []byte("classified")))

	_, err = ReadWorkbookStream(enc, nil)
	assert.ErrorIs(t, err, codec.ErrEncryption)
	_, err = ReadWorkbookStream(enc, &OpenOptions{Password: "wrong"})
	assert.ErrorIs(t, err, codec.ErrEncryption)

	again, err := ReadWorkbookStream(enc, &OpenOptions{Password: "hunter2"})
	require.NoError(t, err)
	assert.True(t, again.Encrypted())
	require.NotNil(t, again.FilePass())
	assert.True(t, again.FilePass().IsStandardRC4())
	assert.Equal(t, "classified", again.SST().String(0))
	assert.Equal(t, []string{"Secret"}, again.SheetNames())

	out, err := again.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, enc, out)

	again.RemoveEncryption()
	plain, err := again.StreamBytes()
	require.NoError(t, err)
	assert.Equal(t, stream, plain)
}

func TestDefaultPassword(t *testing.T) {
	wb, err := ReadWorkbookStream(sampleStream(t), nil)
	require.NoError(t, err)
	require.NoError(t, wb.SetPassword(""))

	again := reread(t, wb, nil)
	assert.True(t, again.Encrypted())
	assert.Equal(t, "alpha", again.SST().String(0))
}

type sumEvaluator struct{}

func (sumEvaluator) Evaluate(tokens []Ptg) (any, error) {
	sum := 0.0
	for _, tok := range tokens {
		if tok.ID == 0x1E {
			sum += float64(int(tok.Data[0]) | int(tok.Data[1])<<8)
		}
	}
	return sum, nil
}

func TestEvaluateFormulas(t *testing.T) {
	wb, err := ReadWorkbookStream(sampleStream(t), nil)
	require.NoError(t, err)
	n, err := wb.EvaluateFormulas(sumEvaluator{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	again := reread(t, wb, nil)
	f, ok := again.Sheets[0].FindRecord(XL_FORMULA).(*FormulaRecord)
	require.True(t, ok)
	assert.True(t, f.HasCachedNumber())
	assert.Equal(t, 3.0, f.CachedNumber())
	tokens, err := f.Formula.Tokens()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, []byte{2, 0}, tokens[1].Data)
	assert.Equal(t, byte(0x03), tokens[2].ID)
}

func TestFormulaCachedText(t *testing.T) {
	f := NewFormulaRecord(9, 27, onePlusTwo)
	assert.Equal(t, "AB10", f.CellName())
	assert.Equal(t, "0", f.CachedText())

	f.SetCachedNumber(2.5)
	assert.Equal(t, "2.5", f.CachedText())

	tests := []struct {
		value [8]byte
		want  string
	}{
		{[8]byte{FORMULA_RESULT_STRING, 0, 0, 0, 0, 0, 0xFF, 0xFF}, "(string)"},
		{[8]byte{FORMULA_RESULT_BOOL, 0, 1, 0, 0, 0, 0xFF, 0xFF}, "TRUE"},
		{[8]byte{FORMULA_RESULT_BOOL, 0, 0, 0, 0, 0, 0xFF, 0xFF}, "FALSE"},
		{[8]byte{FORMULA_RESULT_ERROR, 0, 0x2A, 0, 0, 0, 0xFF, 0xFF}, "#N/A"},
		{[8]byte{FORMULA_RESULT_ERROR, 0, 0x63, 0, 0, 0, 0xFF, 0xFF}, "#ERR99"},
		{[8]byte{FORMULA_RESULT_EMPTY, 0, 0, 0, 0, 0, 0xFF, 0xFF}, ""},
	}
	for _, tt := range tests {
		f.Value = tt.value
		assert.Equal(t, tt.want, f.CachedText())
	}

	f.SetCachedError(0x07)
	assert.False(t, f.HasCachedNumber())
	assert.Equal(t, "#DIV/0!", f.CachedText())
}

func compoundFile(t *testing.T, streamName string, stream []byte) []byte {
	t.Helper()
	doc := poifs.New()
	require.NoError(t, doc.AddStream(streamName, stream))
	require.NoError(t, doc.AddStream("\x05SummaryInformation", []byte("summary")))
	img, err := doc.Bytes()
	require.NoError(t, err)
	return img
}

func TestSaveCompoundFile(t *testing.T) {
	stream := sampleStream(t)
	img := compoundFile(t, "Workbook", stream)

	wb, err := OpenWorkbookBytes(img, nil)
	require.NoError(t, err)
	assert.Equal(t, "Workbook", wb.StreamPath)

	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))
	assert.Equal(t, img, buf.Bytes())

	wb.AddSheet("More")
	buf.Reset()
	require.NoError(t, wb.Save(&buf))

	again, err := OpenWorkbookBytes(buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Data", "More"}, again.SheetNames())

	doc, err := poifs.Open(buf.Bytes(), nil, false)
	require.NoError(t, err)
	summary, err := doc.Content("\x05SummaryInformation")
	require.NoError(t, err)
	assert.Equal(t, []byte("summary"), summary)
}

func TestOpenCompoundFileStreamNames(t *testing.T) {
	stream := sampleStream(t)

	wb, err := OpenWorkbookBytes(compoundFile(t, "Book", stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "Book", wb.StreamPath)

	_, err = OpenWorkbookBytes(compoundFile(t, "Other", stream), nil)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)

	wb, err = OpenWorkbookBytes(compoundFile(t, "Other", stream), &OpenOptions{StreamPath: "other"})
	require.NoError(t, err)
	assert.Equal(t, "Other", wb.StreamPath)

	_, err = OpenWorkbookBytes(nil, nil)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func zipWith(t *testing.T, parts map[string][]byte, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(parts[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenStreamInZipPackage(t *testing.T) {
	stream := sampleStream(t)
	pkg := zipWith(t, map[string][]byte{
		"[Content_Types].xml":       []byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`),
		"embeddings/oleSheet1.bin": stream,
	}, "[Content_Types].xml", "embeddings/oleSheet1.bin")

	_, err := OpenWorkbookBytes(pkg, nil)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFeature)

	wb, err := OpenWorkbookBytes(pkg, &OpenOptions{StreamPath: "Embeddings\\oleSheet1.bin"})
	require.NoError(t, err)
	assert.Equal(t, "embeddings/oleSheet1.bin", wb.StreamPath)

	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))
	assert.Equal(t, pkg, buf.Bytes())
}

func TestInspectFormat(t *testing.T) {
	stream := sampleStream(t)
	zipOf := func(name string) []byte {
		return zipWith(t, map[string][]byte{name: []byte("x")}, name)
	}
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"compound file", compoundFile(t, "Workbook", stream), "xls"},
		{"xlsx", zipOf("xl/workbook.xml"), "xlsx"},
		{"xlsb with backslashes", zipOf("XL\\Workbook.bin"), "xlsb"},
		{"ods", zipOf("content.xml"), "ods"},
		{"other zip", zipOf("readme.txt"), "zip"},
		{"bare BIFF", stream, "biff"},
		{"unknown", []byte("plain text"), ""},
		{"short", []byte("abc"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InspectFormat("", tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			_, ok := FileFormatDescriptions[got]
			assert.True(t, ok)
		})
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, 0)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))

	buf.Reset()
	NewLogger(&buf, 2).Debug("detail")
	assert.Contains(t, buf.String(), "detail")

	NewLogger(nil, 2).Warn("discarded")
}
