package poifs

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

type node struct {
	id       int
	entry    container.Entry
	children []*node
}

// Document is a compound file loaded into memory. Stream replacements are
// kept aside until the document is written.
type Document struct {
	data       []byte
	hdr        header
	sectorSize int

	fat          []uint32
	fatSectors   []uint32
	difatSectors []uint32
	minifat      []uint32
	miniFATChain []uint32
	dirChain     []uint32
	dirs         []directory
	ministream   []byte

	root  *node
	nodes []*node
	byKey map[string]*node

	replaced map[int][]byte
	added    bool

	logger *slog.Logger
	ignore bool
}

var _ container.Container = (*Document)(nil)

// Open parses a compound file held in data. With ignoreWorkbookCorruption
// set, missing FAT sectors and short stream chains are logged instead of
// failing the open.
func Open(data []byte, logger *slog.Logger, ignoreWorkbookCorruption bool) (*Document, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(data) < headerSize {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "file is too short (%d bytes) for a compound document", len(data))
	}
	d := &Document{data: data, logger: logger, ignore: ignoreWorkbookCorruption, replaced: map[int][]byte{}}
	if err := binary.Read(bytes.NewReader(data), le, &d.hdr); err != nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "reading header: %v", err)
	}
	if !bytes.Equal(d.hdr.Signature[:], Signature) {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "Not an OLE2 compound document")
	}
	if d.hdr.ByteOrder != 0xFFFE {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "Expected \"little-endian\" marker, found %#04x", d.hdr.ByteOrder)
	}
	if d.hdr.SectorShift != 9 && d.hdr.SectorShift != 12 {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "unsupported sector size 1<<%d", d.hdr.SectorShift)
	}
	if d.hdr.MiniSectorShift != miniSectorShift {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "unsupported mini sector size 1<<%d", d.hdr.MiniSectorShift)
	}
	d.sectorSize = 1 << d.hdr.SectorShift

	if err := d.loadFAT(); err != nil {
		return nil, err
	}
	if err := d.loadDirectory(); err != nil {
		return nil, err
	}
	if err := d.loadMiniFAT(); err != nil {
		return nil, err
	}
	if err := d.buildTree(); err != nil {
		return nil, err
	}
	logger.Debug("compound document",
		"version", d.hdr.MajorVersion,
		"sector_size", d.sectorSize,
		"fat_sectors", len(d.fatSectors),
		"entries", len(d.nodes))
	return d, nil
}

// sector returns the bytes of a regular sector. A final sector cut short
// by the end of the file is zero padded.
func (d *Document) sector(sid uint32) ([]byte, error) {
	off := (int64(sid) + 1) * int64(d.sectorSize)
	if off >= int64(len(d.data)) {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "sector %d is beyond the end of the file", sid)
	}
	end := off + int64(d.sectorSize)
	if end > int64(len(d.data)) {
		buf := make([]byte, d.sectorSize)
		copy(buf, d.data[off:])
		return buf, nil
	}
	return d.data[off:end], nil
}

func (d *Document) corrupt(format string, args ...any) error {
	err := codec.Errorf(codec.ErrMalformedContainer, format, args...)
	if d.ignore {
		d.logger.Warn(err.Message)
		return nil
	}
	return err
}

func (d *Document) loadFAT() error {
	want := int(d.hdr.NumFATSectors)
	for _, sid := range d.hdr.DIFAT {
		if len(d.fatSectors) >= want || sid == FREESECT {
			break
		}
		d.fatSectors = append(d.fatSectors, sid)
	}
	perSector := d.sectorSize / 4
	seen := map[uint32]bool{}
	for next := d.hdr.FirstDIFATSector; next != ENDOFCHAIN && next != FREESECT && len(d.fatSectors) < want; {
		if seen[next] {
			return codec.Errorf(codec.ErrMalformedContainer, "DIFAT chain revisits sector %d", next)
		}
		seen[next] = true
		d.difatSectors = append(d.difatSectors, next)
		sec, err := d.sector(next)
		if err != nil {
			return err
		}
		for j := 0; j < perSector-1 && len(d.fatSectors) < want; j++ {
			sid := le.Uint32(sec[j*4:])
			if sid == FREESECT {
				break
			}
			d.fatSectors = append(d.fatSectors, sid)
		}
		next = le.Uint32(sec[(perSector-1)*4:])
	}
	if len(d.fatSectors) < want {
		if err := d.corrupt("header declares %d FAT sectors, found %d", want, len(d.fatSectors)); err != nil {
			return err
		}
	}
	d.fat = make([]uint32, 0, len(d.fatSectors)*perSector)
	for _, sid := range d.fatSectors {
		sec, err := d.sector(sid)
		if err != nil {
			return err
		}
		for j := 0; j < perSector; j++ {
			d.fat = append(d.fat, le.Uint32(sec[j*4:]))
		}
	}
	return nil
}

// chain follows a sector chain through table. A sector reached twice or
// outside the table fails the walk.
func chain(start uint32, table []uint32, what string) ([]uint32, error) {
	var out []uint32
	seen := make([]bool, len(table))
	for sid := start; sid != ENDOFCHAIN; sid = table[sid] {
		if int64(sid) >= int64(len(table)) {
			return out, codec.Errorf(codec.ErrMalformedContainer, "%s chain: sector %#x out of range", what, sid)
		}
		if seen[sid] {
			return out, codec.Errorf(codec.ErrMalformedContainer, "%s chain: sector %d used twice", what, sid)
		}
		seen[sid] = true
		out = append(out, sid)
	}
	return out, nil
}

func (d *Document) readSectors(sids []uint32) ([]byte, error) {
	out := make([]byte, 0, len(sids)*d.sectorSize)
	for _, sid := range sids {
		sec, err := d.sector(sid)
		if err != nil {
			return nil, err
		}
		out = append(out, sec...)
	}
	return out, nil
}

func (d *Document) loadDirectory() error {
	var err error
	if d.dirChain, err = chain(d.hdr.FirstDirSector, d.fat, "directory"); err != nil {
		return err
	}
	buf, err := d.readSectors(d.dirChain)
	if err != nil {
		return err
	}
	n := len(buf) / dirEntrySize
	if n == 0 {
		return codec.Errorf(codec.ErrMalformedContainer, "empty directory")
	}
	d.dirs = make([]directory, n)
	for i := range d.dirs {
		if err := binary.Read(bytes.NewReader(buf[i*dirEntrySize:]), le, &d.dirs[i]); err != nil {
			return codec.Errorf(codec.ErrMalformedContainer, "directory entry %d: %v", i, err)
		}
		if d.hdr.MajorVersion == 3 {
			d.dirs[i].Size &= 0xFFFFFFFF
		}
	}
	if d.dirs[0].ObjectType != typeRoot {
		return codec.Errorf(codec.ErrMalformedContainer, "first directory entry has type %d, not root", d.dirs[0].ObjectType)
	}
	return nil
}

func (d *Document) loadMiniFAT() error {
	var err error
	if d.hdr.FirstMiniFATSector != ENDOFCHAIN && d.hdr.FirstMiniFATSector != FREESECT {
		if d.miniFATChain, err = chain(d.hdr.FirstMiniFATSector, d.fat, "mini FAT"); err != nil {
			return err
		}
	}
	buf, err := d.readSectors(d.miniFATChain)
	if err != nil {
		return err
	}
	d.minifat = make([]uint32, len(buf)/4)
	for i := range d.minifat {
		d.minifat[i] = le.Uint32(buf[i*4:])
	}
	root := &d.dirs[0]
	if root.Size == 0 {
		if len(d.minifat) > 0 {
			d.logger.Info("mini FAT present but the mini stream is empty")
		}
		return nil
	}
	d.ministream, err = d.regularStream(root.StartSector, int64(root.Size))
	return err
}

func (d *Document) regularStream(start uint32, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	sids, err := chain(start, d.fat, "stream")
	if err != nil {
		if err := d.corrupt("%s", err.(*codec.Error).Message); err != nil {
			return nil, err
		}
	}
	if have := int64(len(sids)) * int64(d.sectorSize); have < size {
		if err := d.corrupt("stream of %d bytes has a chain of %d bytes", size, have); err != nil {
			return nil, err
		}
		size = have
	}
	buf, err := d.readSectors(sids)
	if err != nil {
		return nil, err
	}
	return buf[:size], nil
}

func (d *Document) miniStream(start uint32, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	sids, err := chain(start, d.minifat, "mini stream")
	if err != nil {
		if err := d.corrupt("%s", err.(*codec.Error).Message); err != nil {
			return nil, err
		}
	}
	const miniSize = 1 << miniSectorShift
	out := make([]byte, 0, len(sids)*miniSize)
	for _, sid := range sids {
		off := int64(sid) * miniSize
		if off >= int64(len(d.ministream)) {
			return nil, codec.Errorf(codec.ErrMalformedContainer, "mini sector %d is beyond the mini stream", sid)
		}
		out = append(out, d.ministream[off:min(off+miniSize, int64(len(d.ministream)))]...)
	}
	if int64(len(out)) < size {
		if err := d.corrupt("stream of %d bytes has a mini chain of %d bytes", size, len(out)); err != nil {
			return nil, err
		}
		size = int64(len(out))
	}
	return out[:size], nil
}

func (d *Document) buildTree() error {
	d.root = &node{id: 0, entry: container.Entry{Name: d.dirs[0].name(), Kind: container.KindStorage}}
	d.byKey = map[string]*node{"": d.root}
	d.nodes = nil
	visited := make([]bool, len(d.dirs))
	visited[0] = true
	queue := []*node{d.root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		ids, err := d.siblings(d.dirs[parent.id].Child, visited)
		if err != nil {
			return err
		}
		for _, id := range ids {
			de := &d.dirs[id]
			var kind container.Kind
			switch de.ObjectType {
			case typeStorage:
				kind = container.KindStorage
			case typeStream:
				kind = container.KindStream
			default:
				return codec.Errorf(codec.ErrMalformedContainer, "directory entry %d has type %d", id, de.ObjectType)
			}
			name := de.name()
			n := &node{id: id, entry: container.Entry{
				Path: container.Join(parent.entry.Path, name),
				Name: name,
				Kind: kind,
			}}
			if kind == container.KindStream {
				n.entry.Size = int64(de.Size)
			}
			key := container.Key(n.entry.Path)
			if _, dup := d.byKey[key]; dup {
				return codec.Errorf(codec.ErrMalformedContainer, "duplicate entry %q", n.entry.Path)
			}
			d.byKey[key] = n
			parent.children = append(parent.children, n)
			d.nodes = append(d.nodes, n)
			if kind == container.KindStorage {
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// siblings walks the sibling tree under top in order.
func (d *Document) siblings(top uint32, visited []bool) ([]int, error) {
	var out []int
	var stack []uint32
	cur := top
	for cur != NOSTREAM || len(stack) > 0 {
		for cur != NOSTREAM {
			if int64(cur) >= int64(len(d.dirs)) {
				return nil, codec.Errorf(codec.ErrMalformedContainer, "directory entry %d out of range", cur)
			}
			if visited[cur] {
				return nil, codec.Errorf(codec.ErrMalformedContainer, "directory entry %d is reachable twice", cur)
			}
			visited[cur] = true
			stack = append(stack, cur)
			cur = d.dirs[cur].Left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, int(cur))
		cur = d.dirs[cur].Right
	}
	return out, nil
}

// Version returns the major format version, 3 or 4.
func (d *Document) Version() int { return int(d.hdr.MajorVersion) }

// SectorSize returns the regular sector size in bytes.
func (d *Document) SectorSize() int { return d.sectorSize }

func (d *Document) withSize(n *node) container.Entry {
	e := n.entry
	if data, ok := d.replaced[n.id]; ok {
		e.Size = int64(len(data))
	}
	return e
}

// Entries lists storages and streams breadth first, siblings in directory
// order.
func (d *Document) Entries() []container.Entry {
	out := make([]container.Entry, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = d.withSize(n)
	}
	return out
}

// Lookup finds an entry ignoring case.
func (d *Document) Lookup(path string) (container.Entry, bool) {
	n, ok := d.byKey[container.Key(path)]
	if !ok || n == d.root {
		return container.Entry{}, false
	}
	return d.withSize(n), true
}

func (d *Document) stream(path string) (*node, error) {
	n, ok := d.byKey[container.Key(path)]
	if !ok || n == d.root {
		return nil, container.NotFound(path)
	}
	if n.entry.Kind != container.KindStream {
		return nil, container.NotAStream(path)
	}
	return n, nil
}

func (d *Document) original(id int) ([]byte, error) {
	de := &d.dirs[id]
	if de.Size < uint64(d.hdr.MiniStreamCutoff) {
		return d.miniStream(de.StartSector, int64(de.Size))
	}
	return d.regularStream(de.StartSector, int64(de.Size))
}

// Content returns a copy of a stream's bytes.
func (d *Document) Content(path string) ([]byte, error) {
	n, err := d.stream(path)
	if err != nil {
		return nil, err
	}
	if data, ok := d.replaced[n.id]; ok {
		return bytes.Clone(data), nil
	}
	data, err := d.original(n.id)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}

// LocateNamedStream returns the content of the named stream, searching
// without regard to case. It fails with codec.ErrMalformedContainer when
// the stream does not exist.
func (d *Document) LocateNamedStream(qname string) ([]byte, error) {
	return d.Content(qname)
}

// Replace sets new content for an existing stream. Content equal to the
// stream's current bytes leaves the document untouched.
func (d *Document) Replace(path string, data []byte) error {
	n, err := d.stream(path)
	if err != nil {
		return err
	}
	if !d.added {
		if orig, err := d.original(n.id); err == nil && bytes.Equal(orig, data) {
			delete(d.replaced, n.id)
			return nil
		}
	}
	d.replaced[n.id] = bytes.Clone(data)
	return nil
}

// Modified reports whether writing the document would change its bytes.
func (d *Document) Modified() bool {
	return d.added || len(d.replaced) > 0
}
