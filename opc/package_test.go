package opc

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

const (
	testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="BIN" ContentType="application/vnd.ms-excel.sheet.binary.macroEnabled.main"/>
<Override PartName="/xl/workbook.bin" ContentType="application/vnd.ms-excel.sheet.binary.macroEnabled.main"/>
<Override PartName="/xl/embeddings/oleObject1.bin" ContentType="application/vnd.openxmlformats-officedocument.oleObject"/>
</Types>`
	testPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.bin"/>
</Relationships>`
	testWorkbookRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.bin"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/oleObject" Target="../xl/embeddings/oleObject1.bin"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>
</Relationships>`
)

type part struct {
	name   string
	data   string
	method uint16
}

var testParts = []part{
	{"[Content_Types].xml", testContentTypes, zip.Deflate},
	{"_rels/.rels", testPackageRels, zip.Deflate},
	{"xl/workbook.bin", "workbook bytes", zip.Deflate},
	{"xl/_rels/workbook.bin.rels", testWorkbookRels, zip.Deflate},
	{"xl/embeddings/", "", zip.Store},
	{"xl\\embeddings\\oleObject1.bin", "ole object", zip.Store},
}

func buildPackage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range testParts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: p.method})
		require.NoError(t, err)
		_, err = w.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.SetComment("package comment"))
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEntriesInArchiveOrder(t *testing.T) {
	p, err := Open(buildPackage(t))
	require.NoError(t, err)

	entries := p.Entries()
	require.Len(t, entries, len(testParts))
	assert.Equal(t, "[Content_Types].xml", entries[0].Path)
	assert.Equal(t, container.Entry{Path: "xl/embeddings", Name: "embeddings", Kind: container.KindStorage}, entries[4])
	assert.Equal(t, container.Entry{Path: "xl/embeddings/oleObject1.bin", Name: "oleObject1.bin", Kind: container.KindStream, Size: 10}, entries[5])
}

func TestLookupIgnoresCaseAndBackslashes(t *testing.T) {
	p, err := Open(buildPackage(t))
	require.NoError(t, err)

	assert.True(t, p.Has("XL/Workbook.bin"))
	assert.True(t, p.Has("/xl/embeddings/oleobject1.BIN"))
	assert.True(t, p.Has("xl\\workbook.bin"))
	assert.False(t, p.Has("xl/workbook.xml"))

	e, ok := p.Lookup("xl/embeddings/oleObject1.bin")
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Size)

	data, err := p.Content("XL/EMBEDDINGS/OLEOBJECT1.BIN")
	require.NoError(t, err)
	assert.Equal(t, []byte("ole object"), data)

	_, err = p.Content("xl/embeddings")
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
	_, err = p.Content("missing.bin")
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func TestContentTypes(t *testing.T) {
	p, err := Open(buildPackage(t))
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.oleObject", p.ContentType("xl/embeddings/oleObject1.bin"))
	assert.Equal(t, "application/vnd.ms-excel.sheet.binary.macroEnabled.main", p.ContentType("xl/worksheets/sheet1.bin"))
	assert.Equal(t, "application/vnd.openxmlformats-package.relationships+xml", p.ContentType("_rels/.rels"))
	assert.Equal(t, "", p.ContentType("docProps/core.xml"))
}

func TestRelationships(t *testing.T) {
	p, err := Open(buildPackage(t))
	require.NoError(t, err)

	main, err := p.MainPart()
	require.NoError(t, err)
	assert.Equal(t, "xl/workbook.bin", main)

	rels, err := p.Relationships(main)
	require.NoError(t, err)
	require.Len(t, rels, 3)
	assert.Equal(t, "xl/worksheets/sheet1.bin", ResolveTarget(main, rels[0]))
	assert.Equal(t, "xl/embeddings/oleObject1.bin", ResolveTarget(main, rels[1]))
	assert.Equal(t, "External", rels[2].TargetMode)

	rels, err = p.Relationships("xl/embeddings/oleObject1.bin")
	require.NoError(t, err)
	assert.Nil(t, rels)

	assert.Equal(t, "xl/x.bin", ResolveTarget("xl/workbook.bin", Relationship{Target: "/xl/x.bin"}))
}

func TestUntouchedPackageWritesOriginalBytes(t *testing.T) {
	data := buildPackage(t)
	p, err := Open(data)
	require.NoError(t, err)
	require.NoError(t, p.Replace("xl/workbook.bin", []byte("workbook bytes")))

	var buf bytes.Buffer
	_, err = p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())
}

func TestReplacePart(t *testing.T) {
	p, err := Open(buildPackage(t))
	require.NoError(t, err)
	require.NoError(t, p.Replace("XL/workbook.bin", []byte("new workbook")))
	assert.ErrorIs(t, p.Replace("xl/missing.bin", nil), codec.ErrMalformedContainer)

	e, ok := p.Lookup("xl/workbook.bin")
	require.True(t, ok)
	assert.Equal(t, int64(12), e.Size)

	out, err := p.Bytes()
	require.NoError(t, err)
	again, err := Open(out)
	require.NoError(t, err)

	got, err := again.Content("xl/workbook.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("new workbook"), got)
	for i, e := range again.Entries() {
		assert.Equal(t, p.Entries()[i].Path, e.Path)
	}
	for _, name := range []string{"xl/_rels/workbook.bin.rels", "xl/embeddings/oleObject1.bin"} {
		want, err := p.Content(name)
		require.NoError(t, err)
		got, err := again.Content(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	assert.Equal(t, "package comment", again.zr.Comment)
}

func TestOpenRejectsNonZip(t *testing.T) {
	_, err := Open([]byte("PK\x03\x04 but not really a zip"))
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func TestOpenRejectsDuplicateParts(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"xl/a.bin", "XL\\A.bin"} {
		_, err := zw.Create(name)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	_, err := Open(buf.Bytes())
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}
