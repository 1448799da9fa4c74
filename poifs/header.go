// Package poifs reads and writes OLE2 compound binary files, the container
// format of .xls, .doc and .msg files.
package poifs

import (
	"bytes"
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/yamitzky/biffkit-go/codec"
)

// Special sector ids.
const (
	FREESECT   uint32 = 0xFFFFFFFF
	ENDOFCHAIN uint32 = 0xFFFFFFFE
	FATSECT    uint32 = 0xFFFFFFFD
	DIFSECT    uint32 = 0xFFFFFFFC

	// NOSTREAM marks an absent sibling or child in the directory.
	NOSTREAM uint32 = 0xFFFFFFFF
)

const (
	// MiniStreamCutoff is the size below which streams live in the mini
	// stream.
	MiniStreamCutoff = 4096

	headerSize         = 512
	headerDIFATEntries = 109
	dirEntrySize       = 128
	maxNameUnits       = 31
	miniSectorShift    = 6
)

// Directory object types.
const (
	typeEmpty   = 0
	typeStorage = 1
	typeStream  = 2
	typeRoot    = 5
)

const colorBlack = 1

// Signature is the magic number at the start of every compound file.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var le = binary.LittleEndian

var nameCodec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

type header struct {
	Signature          [8]byte
	CLSID              [16]byte
	MinorVersion       uint16
	MajorVersion       uint16
	ByteOrder          uint16
	SectorShift        uint16
	MiniSectorShift    uint16
	Reserved           [6]byte
	NumDirSectors      uint32
	NumFATSectors      uint32
	FirstDirSector     uint32
	TransactionSig     uint32
	MiniStreamCutoff   uint32
	FirstMiniFATSector uint32
	NumMiniFATSectors  uint32
	FirstDIFATSector   uint32
	NumDIFATSectors    uint32
	DIFAT              [headerDIFATEntries]uint32
}

func newHeader() header {
	h := header{
		MinorVersion:       0x003E,
		MajorVersion:       3,
		ByteOrder:          0xFFFE,
		SectorShift:        9,
		MiniSectorShift:    miniSectorShift,
		FirstDirSector:     ENDOFCHAIN,
		MiniStreamCutoff:   MiniStreamCutoff,
		FirstMiniFATSector: ENDOFCHAIN,
		FirstDIFATSector:   ENDOFCHAIN,
	}
	copy(h.Signature[:], Signature)
	for i := range h.DIFAT {
		h.DIFAT[i] = FREESECT
	}
	return h
}

func (h *header) bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize)
	// writes into a bytes.Buffer cannot fail
	_ = binary.Write(&buf, le, h)
	return buf.Bytes()
}

type directory struct {
	Name        [32]uint16
	NameLen     uint16
	ObjectType  uint8
	Color       uint8
	Left        uint32
	Right       uint32
	Child       uint32
	CLSID       [16]byte
	StateBits   uint32
	Created     uint64
	Modified    uint64
	StartSector uint32
	Size        uint64
}

func emptyDirectory() directory {
	return directory{Left: NOSTREAM, Right: NOSTREAM, Child: NOSTREAM}
}

func (de *directory) name() string {
	units := int(de.NameLen)/2 - 1
	if units <= 0 {
		return ""
	}
	units = min(units, maxNameUnits)
	raw := make([]byte, units*2)
	for i := 0; i < units; i++ {
		le.PutUint16(raw[i*2:], de.Name[i])
	}
	s, err := nameCodec.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}

func (de *directory) setName(name string) error {
	raw, err := nameCodec.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return codec.Errorf(codec.ErrMalformedContainer, "entry name %q: %v", name, err)
	}
	units := len(raw) / 2
	if units == 0 || units > maxNameUnits {
		return codec.Errorf(codec.ErrMalformedContainer, "entry name %q must have 1 to %d characters", name, maxNameUnits)
	}
	de.Name = [32]uint16{}
	for i := 0; i < units; i++ {
		de.Name[i] = le.Uint16(raw[i*2:])
	}
	de.NameLen = uint16((units + 1) * 2)
	return nil
}

// compareNames orders sibling names the way the directory tree does:
// shorter names first, then by upper cased characters.
func compareNames(a, b string) int {
	na, nb := len([]rune(a)), len([]rune(b))
	if na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

func (de *directory) bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(dirEntrySize)
	_ = binary.Write(&buf, le, de)
	return buf.Bytes()
}
