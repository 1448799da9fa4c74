package poifs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

func filled(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i%251)
	}
	return b
}

type fixture struct {
	workbook, small, summary []byte
	image                    []byte
}

func buildFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		workbook: filled(5000, 1),
		small:    filled(100, 2),
		summary:  filled(200, 3),
	}
	d := New()
	require.NoError(t, d.AddStream("Workbook", f.workbook))
	require.NoError(t, d.AddStorage("ObjectPool"))
	require.NoError(t, d.AddStream("\x05SummaryInformation", f.summary))
	require.NoError(t, d.AddStream("ObjectPool/small", f.small))
	img, err := d.Bytes()
	require.NoError(t, err)
	f.image = img
	return f
}

func TestNewDocumentRoundTrip(t *testing.T) {
	f := buildFixture(t)
	d, err := Open(f.image, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Version())
	assert.Equal(t, 512, d.SectorSize())

	var paths []string
	for _, e := range d.Entries() {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"Workbook", "ObjectPool", "\x05SummaryInformation", "ObjectPool/small"}, paths)

	for path, want := range map[string][]byte{
		"Workbook":              f.workbook,
		"ObjectPool/small":      f.small,
		"\x05SummaryInformation": f.summary,
	} {
		got, err := d.Content(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestLookupIgnoresCaseAndSeparators(t *testing.T) {
	d, err := Open(buildFixture(t).image, nil, false)
	require.NoError(t, err)

	e, ok := d.Lookup("workbook")
	require.True(t, ok)
	assert.Equal(t, "Workbook", e.Path)
	assert.Equal(t, container.KindStream, e.Kind)
	assert.Equal(t, int64(5000), e.Size)

	e, ok = d.Lookup("/OBJECTPOOL\\Small")
	require.True(t, ok)
	assert.Equal(t, "ObjectPool/small", e.Path)

	_, ok = d.Lookup("Book")
	assert.False(t, ok)

	_, err = d.Content("ObjectPool")
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
	_, err = d.LocateNamedStream("Book")
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)

	got, err := d.LocateNamedStream("WORKBOOK")
	require.NoError(t, err)
	assert.Len(t, got, 5000)
}

func TestUntouchedDocumentWritesOriginalBytes(t *testing.T) {
	f := buildFixture(t)
	d, err := Open(f.image, nil, false)
	require.NoError(t, err)

	require.NoError(t, d.Replace("Workbook", f.workbook))
	assert.False(t, d.Modified())

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(f.image)), n)
	assert.Equal(t, f.image, buf.Bytes())
}

func reopen(t *testing.T, d *Document) *Document {
	t.Helper()
	img, err := d.Bytes()
	require.NoError(t, err)
	again, err := Open(img, nil, false)
	require.NoError(t, err)
	return again
}

func assertContent(t *testing.T, d *Document, path string, want []byte) {
	t.Helper()
	got, err := d.Content(path)
	require.NoError(t, err, path)
	assert.Equal(t, want, got, path)
}

func TestReplaceInPlace(t *testing.T) {
	f := buildFixture(t)

	tests := []struct {
		name string
		path string
		data []byte
	}{
		{"same size", "Workbook", filled(5000, 9)},
		{"grows", "Workbook", filled(9000, 9)},
		{"shrinks into mini stream", "Workbook", filled(300, 9)},
		{"mini grows", "ObjectPool/small", filled(1000, 9)},
		{"mini moves to regular sectors", "ObjectPool/small", filled(5000, 9)},
		{"emptied", "\x05SummaryInformation", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Open(f.image, nil, false)
			require.NoError(t, err)
			require.NoError(t, d.Replace(tt.path, tt.data))
			assert.True(t, d.Modified())

			e, ok := d.Lookup(tt.path)
			require.True(t, ok)
			assert.Equal(t, int64(len(tt.data)), e.Size)

			again := reopen(t, d)
			want := map[string][]byte{
				"Workbook":              f.workbook,
				"ObjectPool/small":      f.small,
				"\x05SummaryInformation": f.summary,
			}
			want[tt.path] = tt.data
			if want[tt.path] == nil {
				want[tt.path] = []byte{}
			}
			for path, data := range want {
				assertContent(t, again, path, data)
			}
		})
	}
}

func TestReplaceSameSizeKeepsFileSize(t *testing.T) {
	f := buildFixture(t)
	d, err := Open(f.image, nil, false)
	require.NoError(t, err)
	require.NoError(t, d.Replace("Workbook", filled(5000, 7)))
	img, err := d.Bytes()
	require.NoError(t, err)
	assert.Len(t, img, len(f.image))
}

func TestReplaceGrowsFAT(t *testing.T) {
	f := buildFixture(t)
	d, err := Open(f.image, nil, false)
	require.NoError(t, err)
	require.Len(t, d.fatSectors, 1)

	big := filled(150*512, 5)
	require.NoError(t, d.Replace("Workbook", big))
	again := reopen(t, d)
	assert.Len(t, again.fatSectors, 2)
	assertContent(t, again, "Workbook", big)
	assertContent(t, again, "ObjectPool/small", f.small)
}

func TestRelayoutWithDIFAT(t *testing.T) {
	d := New()
	big := filled(110*128*512, 4)
	require.NoError(t, d.AddStream("big", big))
	require.NoError(t, d.AddStream("tiny", []byte("tiny")))

	again := reopen(t, d)
	assert.Greater(t, len(again.fatSectors), headerDIFATEntries)
	assert.NotEmpty(t, again.difatSectors)
	assertContent(t, again, "big", big)
	assertContent(t, again, "tiny", []byte("tiny"))
}

func TestAddStreamRejectsBadPaths(t *testing.T) {
	d := New()
	require.NoError(t, d.AddStream("Workbook", nil))
	assert.ErrorIs(t, d.AddStream("WORKBOOK", nil), codec.ErrMalformedContainer)
	assert.ErrorIs(t, d.AddStream("Missing/child", nil), codec.ErrMalformedContainer)
	assert.ErrorIs(t, d.AddStream("Workbook/child", nil), codec.ErrMalformedContainer)
	assert.ErrorIs(t, d.AddStream("a-name-that-is-longer-than-31-chars", nil), codec.ErrMalformedContainer)
}

func TestOpenRejectsMalformedInput(t *testing.T) {
	_, err := Open([]byte("short"), nil, false)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)

	f := buildFixture(t)
	bad := bytes.Clone(f.image)
	bad[0] = 0
	_, err = Open(bad, nil, false)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

// twoStreams returns an image whose root has streams A (entry 1) and B
// (entry 2), B being A's right sibling, and the offset of the directory.
func twoStreams(t *testing.T) ([]byte, int) {
	t.Helper()
	d := New()
	require.NoError(t, d.AddStream("A", []byte("a")))
	require.NoError(t, d.AddStream("B", []byte("b")))
	img, err := d.Bytes()
	require.NoError(t, err)
	dirSector := int(le.Uint32(img[48:]))
	return img, (dirSector + 1) * 512
}

func TestOpenRejectsDirectoryCycle(t *testing.T) {
	img, dir := twoStreams(t)
	// B's right sibling points back at A
	le.PutUint32(img[dir+2*dirEntrySize+72:], 1)
	_, err := Open(img, nil, false)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func TestOpenRejectsDuplicateNames(t *testing.T) {
	img, dir := twoStreams(t)
	img[dir+2*dirEntrySize] = 'A'
	_, err := Open(img, nil, false)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func TestIgnoreCorruptionAcceptsShortChain(t *testing.T) {
	f := buildFixture(t)
	d, err := Open(f.image, nil, false)
	require.NoError(t, err)
	e, _ := d.Lookup("Workbook")
	id := d.byKey[container.Key(e.Path)].id

	// claim a size the sector chain cannot hold
	bad := bytes.Clone(f.image)
	dir := (int(d.dirChain[id/4]) + 1) * 512
	le.PutUint32(bad[dir+(id%4)*dirEntrySize+120:], 6000)

	strict, err := Open(bad, nil, false)
	require.NoError(t, err)
	_, err = strict.Content("Workbook")
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)

	lenient, err := Open(bad, nil, true)
	require.NoError(t, err)
	got, err := lenient.Content("Workbook")
	require.NoError(t, err)
	assert.Len(t, got, 10*512)
}
