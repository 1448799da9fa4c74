package poifs

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path"
	"slices"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

// errRelayout means the in-place writer cannot express the change.
var errRelayout = errors.New("needs relayout")

// New returns an empty version 3 document holding only the root storage.
func New() *Document {
	root := emptyDirectory()
	_ = root.setName("Root Entry")
	root.ObjectType = typeRoot
	root.Color = colorBlack
	root.StartSector = ENDOFCHAIN
	d := &Document{
		hdr:        newHeader(),
		sectorSize: 512,
		dirs:       []directory{root},
		replaced:   map[int][]byte{},
		added:      true,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	_ = d.buildTree()
	return d
}

// AddStream creates a stream under an existing storage.
func (d *Document) AddStream(p string, data []byte) error {
	id, err := d.add(p, typeStream)
	if err != nil {
		return err
	}
	d.replaced[id] = bytes.Clone(data)
	return nil
}

// AddStorage creates an empty storage under an existing storage.
func (d *Document) AddStorage(p string) error {
	_, err := d.add(p, typeStorage)
	return err
}

func (d *Document) add(p string, objectType uint8) (int, error) {
	p = container.Clean(p)
	if p == "" {
		return 0, codec.Errorf(codec.ErrMalformedContainer, "empty entry path")
	}
	if _, exists := d.byKey[container.Key(p)]; exists {
		return 0, codec.Errorf(codec.ErrMalformedContainer, "entry %q already exists", p)
	}
	dir, name := path.Split(p)
	parent, ok := d.byKey[container.Key(dir)]
	if !ok || parent.entry.Kind != container.KindStorage {
		return 0, codec.Errorf(codec.ErrMalformedContainer, "no storage %q to hold %q", dir, name)
	}
	de := emptyDirectory()
	if err := de.setName(name); err != nil {
		return 0, err
	}
	de.ObjectType = objectType
	de.Color = colorBlack
	de.StartSector = ENDOFCHAIN
	id := uint32(len(d.dirs))
	d.dirs = append(d.dirs, de)

	// The new entry goes in as a leaf of its parent's sibling tree.
	link := &d.dirs[parent.id].Child
	for *link != NOSTREAM {
		cur := &d.dirs[*link]
		if compareNames(name, cur.name()) < 0 {
			link = &cur.Left
		} else {
			link = &cur.Right
		}
	}
	*link = id
	d.added = true
	return int(id), d.buildTree()
}

// Bytes returns the document with every change applied. An untouched
// document returns the bytes it was read from.
func (d *Document) Bytes() ([]byte, error) {
	if !d.Modified() {
		return d.data, nil
	}
	if !d.added {
		img, err := d.patch()
		if err == nil {
			d.logger.Debug("compound document patched in place", "streams", len(d.replaced))
			return img, nil
		}
		if !errors.Is(err, errRelayout) {
			return nil, err
		}
	}
	d.logger.Debug("compound document laid out again", "entries", len(d.nodes))
	return d.relayout()
}

// WriteTo writes the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	img, err := d.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(img)
	return int64(n), err
}

func (d *Document) content(id int) ([]byte, error) {
	if data, ok := d.replaced[id]; ok {
		return data, nil
	}
	return d.original(id)
}

// allocator hands out sectors from a FAT or mini FAT.
type allocator struct {
	table *[]uint32
	grow  func() (uint32, error)
	scan  int
}

// alloc links n sectors into a chain, taking them from reuse first, then
// from free entries, then from grow. Unused reuse sectors become free.
func (a *allocator) alloc(n int, reuse []uint32) ([]uint32, error) {
	out := make([]uint32, 0, n)
	for len(out) < n {
		var sid uint32
		switch {
		case len(reuse) > 0:
			sid, reuse = reuse[0], reuse[1:]
		default:
			found := false
			for ; a.scan < len(*a.table); a.scan++ {
				if (*a.table)[a.scan] == FREESECT {
					sid, found = uint32(a.scan), true
					break
				}
			}
			if !found {
				var err error
				if sid, err = a.grow(); err != nil {
					return nil, err
				}
			}
		}
		(*a.table)[sid] = ENDOFCHAIN
		out = append(out, sid)
	}
	for _, sid := range reuse {
		(*a.table)[sid] = FREESECT
	}
	for i := 0; i+1 < len(out); i++ {
		(*a.table)[out[i]] = out[i+1]
	}
	return out, nil
}

func release(table []uint32, sids []uint32) {
	for _, sid := range sids {
		table[sid] = FREESECT
	}
}

// patcher rewrites a copy of the original image.
type patcher struct {
	d            *Document
	img          []byte
	ss           int
	per          int
	fat          []uint32
	fatSectors   []uint32
	minifat      []uint32
	miniFATChain []uint32
	ministream   []byte
	dirs         []directory
	regular      allocator
	mini         allocator
}

func (p *patcher) writeSector(sid uint32, data []byte) {
	off := (int(sid) + 1) * p.ss
	if need := off + p.ss; need > len(p.img) {
		p.img = append(p.img, make([]byte, need-len(p.img))...)
	}
	n := copy(p.img[off:off+p.ss], data)
	clear(p.img[off+n : off+p.ss])
}

func (p *patcher) writeRegular(data []byte, reuse []uint32) (uint32, error) {
	sids, err := p.regular.alloc((len(data)+p.ss-1)/p.ss, reuse)
	if err != nil {
		return 0, err
	}
	for i, sid := range sids {
		p.writeSector(sid, data[i*p.ss:min((i+1)*p.ss, len(data))])
	}
	if len(sids) == 0 {
		return ENDOFCHAIN, nil
	}
	return sids[0], nil
}

func (p *patcher) writeMini(data []byte, reuse []uint32) (uint32, error) {
	const ms = 1 << miniSectorShift
	sids, err := p.mini.alloc((len(data)+ms-1)/ms, reuse)
	if err != nil {
		return 0, err
	}
	for i, sid := range sids {
		off := int(sid) * ms
		if need := off + ms; need > len(p.ministream) {
			p.ministream = append(p.ministream, make([]byte, need-len(p.ministream))...)
		}
		n := copy(p.ministream[off:off+ms], data[i*ms:min((i+1)*ms, len(data))])
		clear(p.ministream[off+n : off+ms])
	}
	if len(sids) == 0 {
		return ENDOFCHAIN, nil
	}
	return sids[0], nil
}

// patch applies the replacements to the original image, reusing each
// stream's sectors and growing the file only when needed.
func (d *Document) patch() ([]byte, error) {
	ss := d.sectorSize
	img := make([]byte, (len(d.data)+ss-1)/ss*ss)
	copy(img, d.data)
	p := &patcher{
		d:            d,
		img:          img,
		ss:           ss,
		per:          ss / 4,
		fat:          slices.Clone(d.fat),
		fatSectors:   slices.Clone(d.fatSectors),
		minifat:      slices.Clone(d.minifat),
		miniFATChain: slices.Clone(d.miniFATChain),
		ministream:   bytes.Clone(d.ministream),
		dirs:         slices.Clone(d.dirs),
	}
	p.regular = allocator{table: &p.fat, grow: p.growRegular}
	p.mini = allocator{table: &p.minifat, grow: p.growMini}
	cutoff := uint64(d.hdr.MiniStreamCutoff)

	ids := make([]int, 0, len(d.replaced))
	for id := range d.replaced {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		data := d.replaced[id]
		de := &p.dirs[id]
		oldMini := de.Size < cutoff
		var old []uint32
		if de.Size > 0 {
			var err error
			if oldMini {
				old, err = chain(de.StartSector, p.minifat, "mini stream")
			} else {
				old, err = chain(de.StartSector, p.fat, "stream")
			}
			if err != nil {
				return nil, err
			}
		}
		var start uint32
		var err error
		if uint64(len(data)) < cutoff {
			if !oldMini {
				release(p.fat, old)
				old = nil
			}
			start, err = p.writeMini(data, old)
		} else {
			if oldMini {
				release(p.minifat, old)
				old = nil
			}
			start, err = p.writeRegular(data, old)
		}
		if err != nil {
			return nil, err
		}
		de.StartSector = start
		de.Size = uint64(len(data))
	}

	if !bytes.Equal(p.ministream, d.ministream) {
		root := &p.dirs[0]
		var old []uint32
		if root.Size > 0 {
			var err error
			if old, err = chain(root.StartSector, p.fat, "mini stream"); err != nil {
				return nil, err
			}
		}
		start, err := p.writeRegular(p.ministream, old)
		if err != nil {
			return nil, err
		}
		root.StartSector = start
		root.Size = uint64(len(p.ministream))
	}

	p.minifat = pad(p.minifat, len(p.miniFATChain)*p.per)
	for i, sid := range p.miniFATChain {
		p.writeSector(sid, uint32s(p.minifat[i*p.per:(i+1)*p.per]))
	}

	var dirBuf []byte
	for i := range p.dirs {
		dirBuf = append(dirBuf, p.dirs[i].bytes()...)
	}
	for i, sid := range d.dirChain {
		p.writeSector(sid, dirBuf[i*ss:])
	}

	p.fat = pad(p.fat, len(p.fatSectors)*p.per)
	for i, sid := range p.fatSectors {
		p.writeSector(sid, uint32s(p.fat[i*p.per:(i+1)*p.per]))
	}

	hdr := d.hdr
	hdr.NumFATSectors = uint32(len(p.fatSectors))
	for i, sid := range p.fatSectors {
		if i < headerDIFATEntries {
			hdr.DIFAT[i] = sid
		}
	}
	hdr.NumMiniFATSectors = uint32(len(p.miniFATChain))
	hdr.FirstMiniFATSector = ENDOFCHAIN
	if len(p.miniFATChain) > 0 {
		hdr.FirstMiniFATSector = p.miniFATChain[0]
	}
	copy(p.img, hdr.bytes())
	return p.img, nil
}

// growRegular adds a sector at the end of the file, first adding a FAT
// sector when the FAT is full.
func (p *patcher) growRegular() (uint32, error) {
	if len(p.fat) >= len(p.fatSectors)*p.per {
		if len(p.fatSectors) >= headerDIFATEntries || p.d.hdr.NumDIFATSectors > 0 {
			return 0, errRelayout
		}
		p.fatSectors = append(p.fatSectors, uint32(len(p.fat)))
		p.fat = append(p.fat, FATSECT)
	}
	sid := uint32(len(p.fat))
	p.fat = append(p.fat, ENDOFCHAIN)
	return sid, nil
}

// growMini adds a mini sector at the end of the mini stream, first
// extending the mini FAT chain when it is full.
func (p *patcher) growMini() (uint32, error) {
	if len(p.minifat) >= len(p.miniFATChain)*p.per {
		got, err := p.regular.alloc(1, nil)
		if err != nil {
			return 0, err
		}
		if n := len(p.miniFATChain); n > 0 {
			p.fat[p.miniFATChain[n-1]] = got[0]
		}
		p.miniFATChain = append(p.miniFATChain, got[0])
	}
	sid := uint32(len(p.minifat))
	p.minifat = append(p.minifat, ENDOFCHAIN)
	return sid, nil
}

func pad(table []uint32, n int) []uint32 {
	for len(table) < n {
		table = append(table, FREESECT)
	}
	return table
}

func uint32s(vals []uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		le.PutUint32(out[i*4:], v)
	}
	return out
}

// relayout writes every entry into a fresh image: FAT and DIFAT sectors
// first, then the directory, mini FAT, mini stream and regular streams,
// each in one contiguous run.
func (d *Document) relayout() ([]byte, error) {
	ss := d.sectorSize
	per := ss / 4
	const ms = 1 << miniSectorShift
	cutoff := int(d.hdr.MiniStreamCutoff)
	dirs := slices.Clone(d.dirs)

	var ministream []byte
	var minifat []uint32
	type run struct {
		id   int
		data []byte
	}
	var regular []run
	for _, n := range d.nodes {
		if n.entry.Kind != container.KindStream {
			continue
		}
		data, err := d.content(n.id)
		if err != nil {
			return nil, err
		}
		de := &dirs[n.id]
		de.Size = uint64(len(data))
		de.StartSector = ENDOFCHAIN
		switch {
		case len(data) == 0:
		case len(data) < cutoff:
			first := uint32(len(minifat))
			count := (len(data) + ms - 1) / ms
			for i := 1; i < count; i++ {
				minifat = append(minifat, first+uint32(i))
			}
			minifat = append(minifat, ENDOFCHAIN)
			ministream = append(ministream, data...)
			ministream = append(ministream, make([]byte, count*ms-len(data))...)
			de.StartSector = first
		default:
			regular = append(regular, run{n.id, data})
		}
	}

	sectors := func(n int) int { return (n + ss - 1) / ss }
	dirSecs := sectors(len(dirs) * dirEntrySize)
	miniFATSecs := sectors(len(minifat) * 4)
	miniSecs := sectors(len(ministream))
	body := dirSecs + miniFATSecs + miniSecs
	for _, r := range regular {
		body += sectors(len(r.data))
	}
	fatSecs, difatSecs := 0, 0
	for {
		f := (body + fatSecs + difatSecs + per - 1) / per
		df := 0
		if f > headerDIFATEntries {
			df = (f - headerDIFATEntries + per - 2) / (per - 1)
		}
		if f == fatSecs && df == difatSecs {
			break
		}
		fatSecs, difatSecs = f, df
	}
	total := fatSecs + difatSecs + body

	fat := make([]uint32, fatSecs*per)
	for i := range fat {
		fat[i] = FREESECT
	}
	img := make([]byte, (1+total)*ss)
	next := uint32(0)
	place := func(data []byte, count int) uint32 {
		if count == 0 {
			return ENDOFCHAIN
		}
		first := next
		for i := 0; i < count; i++ {
			fat[next] = next + 1
			if i == count-1 {
				fat[next] = ENDOFCHAIN
			}
			off := (int(next) + 1) * ss
			if i*ss < len(data) {
				copy(img[off:off+ss], data[i*ss:])
			}
			next++
		}
		return first
	}

	fatStart := next
	for i := 0; i < fatSecs; i++ {
		fat[next] = FATSECT
		next++
	}
	difatStart := next
	for i := 0; i < difatSecs; i++ {
		fat[next] = DIFSECT
		next++
	}

	dirStartPos := next
	next += uint32(dirSecs)
	miniFATBuf := uint32s(minifat)
	for len(miniFATBuf)%ss != 0 {
		miniFATBuf = append(miniFATBuf, 0xFF, 0xFF, 0xFF, 0xFF)
	}
	miniFATStart := place(miniFATBuf, miniFATSecs)
	dirs[0].StartSector = place(ministream, miniSecs)
	dirs[0].Size = uint64(len(ministream))
	for _, r := range regular {
		dirs[r.id].StartSector = place(r.data, sectors(len(r.data)))
	}

	// The directory goes last so it sees every start sector.
	var dirBuf []byte
	for i := range dirs {
		dirBuf = append(dirBuf, dirs[i].bytes()...)
	}
	empty := emptyDirectory()
	for len(dirBuf) < dirSecs*ss {
		dirBuf = append(dirBuf, empty.bytes()...)
	}
	saved := next
	next = dirStartPos
	place(dirBuf, dirSecs)
	next = saved

	fatBuf := uint32s(fat)
	for i := 0; i < fatSecs; i++ {
		off := (int(fatStart) + i + 1) * ss
		copy(img[off:off+ss], fatBuf[i*ss:])
	}

	hdr := d.hdr
	hdr.NumFATSectors = uint32(fatSecs)
	hdr.FirstDirSector = dirStartPos
	if hdr.MajorVersion >= 4 {
		hdr.NumDirSectors = uint32(dirSecs)
	} else {
		hdr.NumDirSectors = 0
	}
	hdr.FirstMiniFATSector = miniFATStart
	hdr.NumMiniFATSectors = uint32(miniFATSecs)
	hdr.FirstDIFATSector = ENDOFCHAIN
	hdr.NumDIFATSectors = uint32(difatSecs)
	for i := range hdr.DIFAT {
		hdr.DIFAT[i] = FREESECT
		if i < fatSecs {
			hdr.DIFAT[i] = fatStart + uint32(i)
		}
	}
	if difatSecs > 0 {
		hdr.FirstDIFATSector = difatStart
		rest := fatSecs - headerDIFATEntries
		for i := 0; i < difatSecs; i++ {
			entries := make([]uint32, per)
			for j := 0; j < per-1; j++ {
				k := i*(per-1) + j
				entries[j] = FREESECT
				if k < rest {
					entries[j] = fatStart + uint32(headerDIFATEntries+k)
				}
			}
			entries[per-1] = ENDOFCHAIN
			if i+1 < difatSecs {
				entries[per-1] = difatStart + uint32(i+1)
			}
			off := (int(difatStart) + i + 1) * ss
			copy(img[off:off+ss], uint32s(entries))
		}
	}
	copy(img, hdr.bytes())
	return img, nil
}
