// Package opc reads and writes Open Packaging Convention zip packages
// (xlsx, xlsb, docx) as a tree of named parts.
package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

const (
	contentTypesPart = "[Content_Types].xml"

	// RelOfficeDocument is the relationship type of a package's main part.
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// contentTypesXML represents [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Package is a zip package loaded into memory. Replaced parts are kept
// aside until the package is written.
type Package struct {
	data     []byte
	zr       *zip.Reader
	byKey    map[string]*zip.File
	replaced map[*zip.File][]byte

	defaults  map[string]string
	overrides map[string]string
}

var _ container.Container = (*Package)(nil)

// Open parses a zip package held in data.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "opening zip package: %v", err)
	}
	p := &Package{
		data:      data,
		zr:        zr,
		byKey:     make(map[string]*zip.File, len(zr.File)),
		replaced:  map[*zip.File][]byte{},
		defaults:  map[string]string{},
		overrides: map[string]string{},
	}
	for _, f := range zr.File {
		key := container.Key(f.Name)
		if _, dup := p.byKey[key]; dup {
			return nil, codec.Errorf(codec.ErrMalformedContainer, "duplicate part %q", f.Name)
		}
		p.byKey[key] = f
	}
	if err := p.parseContentTypes(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseContentTypes reads [Content_Types].xml when the package has one.
func (p *Package) parseContentTypes() error {
	f, ok := p.byKey[container.Key(contentTypesPart)]
	if !ok {
		return nil
	}
	data, err := p.read(f)
	if err != nil {
		return err
	}
	var types contentTypesXML
	if err := xml.Unmarshal(data, &types); err != nil {
		return codec.Errorf(codec.ErrMalformedContainer, "%s: %v", contentTypesPart, err)
	}
	for _, d := range types.Defaults {
		p.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range types.Overrides {
		p.overrides[container.Key(o.PartName)] = o.ContentType
	}
	return nil
}

func (p *Package) read(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "%s: %v", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "%s: %v", f.Name, err)
	}
	return data, nil
}

func entryOf(f *zip.File) container.Entry {
	name := strings.TrimSuffix(container.Clean(f.Name), "/")
	e := container.Entry{Path: name, Name: path.Base(name), Kind: container.KindStream, Size: int64(f.UncompressedSize64)}
	if strings.HasSuffix(f.Name, "/") {
		e.Kind = container.KindStorage
		e.Size = 0
	}
	return e
}

// Entries lists the parts in archive order.
func (p *Package) Entries() []container.Entry {
	out := make([]container.Entry, 0, len(p.zr.File))
	for _, f := range p.zr.File {
		e := entryOf(f)
		if data, ok := p.replaced[f]; ok {
			e.Size = int64(len(data))
		}
		out = append(out, e)
	}
	return out
}

// Lookup finds a part ignoring case. Backslashes in the name or in the
// stored part names count as slashes.
func (p *Package) Lookup(name string) (container.Entry, bool) {
	f, ok := p.byKey[container.Key(name)]
	if !ok {
		return container.Entry{}, false
	}
	e := entryOf(f)
	if data, ok := p.replaced[f]; ok {
		e.Size = int64(len(data))
	}
	return e, true
}

// Has reports whether the package holds the named part.
func (p *Package) Has(name string) bool {
	_, ok := p.byKey[container.Key(name)]
	return ok
}

func (p *Package) part(name string) (*zip.File, error) {
	f, ok := p.byKey[container.Key(name)]
	if !ok {
		return nil, container.NotFound(name)
	}
	if strings.HasSuffix(f.Name, "/") {
		return nil, container.NotAStream(name)
	}
	return f, nil
}

// Content returns the uncompressed bytes of a part.
func (p *Package) Content(name string) ([]byte, error) {
	f, err := p.part(name)
	if err != nil {
		return nil, err
	}
	if data, ok := p.replaced[f]; ok {
		return bytes.Clone(data), nil
	}
	return p.read(f)
}

// Replace sets new bytes for an existing part. Bytes equal to the part's
// stored content leave the package untouched.
func (p *Package) Replace(name string, data []byte) error {
	f, err := p.part(name)
	if err != nil {
		return err
	}
	orig, err := p.read(f)
	if err == nil && bytes.Equal(orig, data) {
		delete(p.replaced, f)
		return nil
	}
	p.replaced[f] = bytes.Clone(data)
	return nil
}

// ContentType returns the media type of a part: its override when there
// is one, otherwise the default for its extension.
func (p *Package) ContentType(name string) string {
	if ct, ok := p.overrides[container.Key(name)]; ok {
		return ct
	}
	ext := strings.TrimPrefix(path.Ext(container.Clean(name)), ".")
	return p.defaults[strings.ToLower(ext)]
}

// relsPart names the relationships part of source; the empty source
// stands for the package itself.
func relsPart(source string) string {
	source = container.Clean(source)
	dir, base := path.Split(source)
	return dir + "_rels/" + base + ".rels"
}

// Relationships returns the relationships of a part, or of the package
// when source is empty. A part without relationships returns nil.
func (p *Package) Relationships(source string) ([]Relationship, error) {
	f, ok := p.byKey[container.Key(relsPart(source))]
	if !ok {
		return nil, nil
	}
	data, err := p.read(f)
	if err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "%s: %v", f.Name, err)
	}
	return rels.Relationship, nil
}

// ResolveTarget turns a relationship target into a part path. Targets
// are relative to the source part's directory unless they start with a
// slash.
func ResolveTarget(source string, rel Relationship) string {
	if strings.HasPrefix(rel.Target, "/") {
		return container.Clean(rel.Target)
	}
	dir, _ := path.Split(container.Clean(source))
	return container.Clean(dir + rel.Target)
}

// MainPart returns the path of the package's office document part.
func (p *Package) MainPart() (string, error) {
	rels, err := p.Relationships("")
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type == RelOfficeDocument {
			return ResolveTarget("", rel), nil
		}
	}
	return "", codec.Errorf(codec.ErrMalformedContainer, "package has no office document relationship")
}

// Bytes returns the package with every replacement applied. An untouched
// package returns the bytes it was read from.
func (p *Package) Bytes() ([]byte, error) {
	if len(p.replaced) == 0 {
		return p.data, nil
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range p.zr.File {
		data, ok := p.replaced[f]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}
		fh := f.FileHeader
		fh.CRC32 = 0
		fh.CompressedSize64 = 0
		fh.UncompressedSize64 = 0
		fh.CompressedSize = 0
		fh.UncompressedSize = 0
		w, err := zw.CreateHeader(&fh)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}
	if err := zw.SetComment(p.zr.Comment); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the package.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
