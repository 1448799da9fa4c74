// Package ddf reads and writes Escher (Office Drawing) records, the nested
// record format stored inside MSODRAWING and MSODRAWINGGROUP payloads.
//
// Every record starts with an eight byte header: an option word holding a
// four bit version and a twelve bit instance, the record id, and the body
// length. Records with version 0xF are containers whose body is a sequence
// of child records.
package ddf

import (
	"fmt"

	"github.com/yamitzky/biffkit-go/codec"
)

// HeaderSize is the size of an Escher record header.
const HeaderSize = 8

// Record ids.
const (
	DGG_CONTAINER     = 0xF000
	BSTORE_CONTAINER  = 0xF001
	DG_CONTAINER      = 0xF002
	SPGR_CONTAINER    = 0xF003
	SP_CONTAINER      = 0xF004
	SOLVER_CONTAINER  = 0xF005
	DGG               = 0xF006
	BSE               = 0xF007
	DG                = 0xF008
	SPGR              = 0xF009
	SP                = 0xF00A
	OPT               = 0xF00B
	TEXTBOX           = 0xF00C
	CLIENT_TEXTBOX    = 0xF00D
	CHILD_ANCHOR      = 0xF00F
	CLIENT_ANCHOR     = 0xF010
	CLIENT_DATA       = 0xF011
	CONNECTOR_RULE    = 0xF012
	SPLIT_MENU_COLORS = 0xF11E
	TERTIARY_OPT      = 0xF122
)

const (
	versionContainer = 0x0F
	versionMask      = 0x000F
	instanceShift    = 4
)

var recordNames = map[uint16]string{
	DGG_CONTAINER:     "DggContainer",
	BSTORE_CONTAINER:  "BStoreContainer",
	DG_CONTAINER:      "DgContainer",
	SPGR_CONTAINER:    "SpgrContainer",
	SP_CONTAINER:      "SpContainer",
	SOLVER_CONTAINER:  "SolverContainer",
	DGG:               "Dgg",
	BSE:               "BSE",
	DG:                "Dg",
	SPGR:              "Spgr",
	SP:                "Sp",
	OPT:               "Opt",
	TEXTBOX:           "Textbox",
	CLIENT_TEXTBOX:    "ClientTextbox",
	CHILD_ANCHOR:      "ChildAnchor",
	CLIENT_ANCHOR:     "ClientAnchor",
	CLIENT_DATA:       "ClientData",
	CONNECTOR_RULE:    "ConnectorRule",
	SPLIT_MENU_COLORS: "SplitMenuColors",
	TERTIARY_OPT:      "TertiaryOpt",
}

// RecordName returns a readable name for a record id.
func RecordName(id uint16) string {
	if n, ok := recordNames[id]; ok {
		return n
	}
	return fmt.Sprintf("Unknown 0x%04X", id)
}

// Header is the option word and id of a record. The length is not kept: it
// is derived from the body on write.
type Header struct {
	Options  uint16
	RecordID uint16
}

// Version returns the low four bits of the option word.
func (h *Header) Version() uint16 { return h.Options & versionMask }

// Instance returns the upper twelve bits of the option word.
func (h *Header) Instance() uint16 { return h.Options >> instanceShift }

// SetInstance replaces the instance, keeping the version.
func (h *Header) SetInstance(v uint16) {
	h.Options = h.Options&versionMask | v<<instanceShift
}

// IsContainer reports whether the header announces a container.
func (h *Header) IsContainer() bool { return h.Version() == versionContainer }

func (h *Header) header() *Header { return h }

// Record is one Escher record.
type Record interface {
	header() *Header
	// writeBody writes the record body; base is the absolute offset the
	// body starts at.
	writeBody(w *codec.Writer, base int, l SerializationListener) error
}

// RecordHeader returns the header of r.
func RecordHeader(r Record) *Header { return r.header() }

// SerializationListener is told the absolute end offset of each record as
// it is written. Children are reported before their container.
type SerializationListener func(endOffset int, r Record)

// Serialize writes r, reporting record end offsets to l when it is not nil.
// base is the absolute offset of r's header.
func Serialize(w *codec.Writer, r Record, base int, l SerializationListener) error {
	body := codec.NewWriter(64)
	if err := r.writeBody(body, base+HeaderSize, l); err != nil {
		return err
	}
	h := r.header()
	if opt, ok := r.(*OptRecord); ok {
		h.SetInstance(uint16(len(opt.Properties)))
	}
	w.WriteU16(h.Options)
	w.WriteU16(h.RecordID)
	w.WriteU32(uint32(body.Len()))
	w.WriteBytes(body.Bytes())
	if l != nil {
		l(base+HeaderSize+body.Len(), r)
	}
	return nil
}

// RecordBytes returns the serialized bytes of r.
func RecordBytes(r Record) ([]byte, error) {
	w := codec.NewWriter(64)
	if err := Serialize(w, r, 0, nil); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// RecordSize returns the serialized size of r, header included.
func RecordSize(r Record) (int, error) {
	b, err := RecordBytes(r)
	return len(b), err
}

// ParseRecord reads one record and its children from the front of data.
// It returns the record and the number of bytes it used.
func ParseRecord(data []byte) (Record, int, error) {
	c := codec.NewCursor(data)
	var h Header
	var err error
	if h.Options, err = c.ReadU16(); err != nil {
		return nil, 0, err
	}
	if h.RecordID, err = c.ReadU16(); err != nil {
		return nil, 0, err
	}
	length, err := c.ReadU32()
	if err != nil {
		return nil, 0, err
	}
	if int64(length) > int64(c.Remaining()) {
		return nil, 0, codec.Errorf(codec.ErrTruncatedInput, "escher record %s declares %d bytes, %d left", RecordName(h.RecordID), length, c.Remaining())
	}
	body, _ := c.ReadBytes(int(length))
	r, err := newRecord(h, body)
	if err != nil {
		return nil, 0, err
	}
	return r, HeaderSize + int(length), nil
}

// ParseRecords reads consecutive records until data is used up.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	for len(data) > 0 {
		r, n, err := ParseRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
		data = data[n:]
	}
	return records, nil
}

func newRecord(h Header, body []byte) (Record, error) {
	if h.IsContainer() && h.RecordID != OPT && h.RecordID != TERTIARY_OPT {
		children, err := ParseRecords(body)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", RecordName(h.RecordID), err)
		}
		return &ContainerRecord{Header: h, Children: children}, nil
	}
	c := codec.NewCursor(body)
	switch h.RecordID {
	case OPT, TERTIARY_OPT:
		return readOptRecord(h, body)
	case SP:
		return readSpRecord(h, c)
	case SPGR:
		return readSpgrRecord(h, c)
	case DG:
		return readDgRecord(h, c)
	case DGG:
		return readDggRecord(h, c)
	case CLIENT_ANCHOR:
		return readClientAnchorRecord(h, c)
	case CHILD_ANCHOR:
		return readChildAnchorRecord(h, c)
	case CLIENT_DATA:
		return &ClientDataRecord{Header: h, Data: body}, nil
	case SPLIT_MENU_COLORS:
		return readSplitMenuColorsRecord(h, c)
	}
	return &AtomRecord{Header: h, Data: body}, nil
}

// Walk calls fn for r and every record below it, depth first. Returning
// false from fn skips the children of that record.
func Walk(r Record, fn func(r Record, depth int) bool) {
	walk(r, 0, fn)
}

func walk(r Record, depth int, fn func(Record, int) bool) {
	if !fn(r, depth) {
		return
	}
	if c, ok := r.(*ContainerRecord); ok {
		for _, child := range c.Children {
			walk(child, depth+1, fn)
		}
	}
}

// FindFirst returns the first record with the given id below and
// including r, or nil.
func FindFirst(r Record, id uint16) Record {
	var found Record
	Walk(r, func(rec Record, _ int) bool {
		if found != nil {
			return false
		}
		if rec.header().RecordID == id {
			found = rec
			return false
		}
		return true
	})
	return found
}
