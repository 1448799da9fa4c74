package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// BOF defaults written by new records.
const (
	BOF_VERSION    = 0x0600
	BOF_BUILD      = 0x10d3
	BOF_BUILD_YEAR = 0x07CC
	BOF_HISTORY    = 0x01
)

// BOFRecord opens a substream. The four fields after Type are optional:
// producers of older files leave them out, in which case they read as zero
// and are left out again on write unless set later.
type BOFRecord struct {
	sid             uint16
	Version         uint16
	Type            uint16
	Build           uint16
	Year            uint16
	History         uint32
	RequiredVersion uint32

	// fields counts the fields present, 2 to 6.
	fields int
	// Extra holds bytes after the last recognized field.
	Extra []byte
}

// NewBOFRecord returns a BIFF8 BOF for the given substream type.
func NewBOFRecord(streamType uint16) *BOFRecord {
	return &BOFRecord{
		sid:             XL_BOF,
		Version:         BOF_VERSION,
		Type:            streamType,
		Build:           BOF_BUILD,
		Year:            BOF_BUILD_YEAR,
		History:         BOF_HISTORY,
		RequiredVersion: BOF_VERSION,
		fields:          6,
	}
}

func readBOFRecord(in *RecordInput) (Record, error) {
	r := &BOFRecord{sid: in.Sid(), fields: 2}
	var err error
	if r.Version, err = in.ReadU16(); err != nil {
		return nil, err
	}
	if r.Type, err = in.ReadU16(); err != nil {
		return nil, err
	}
	if in.Remaining() >= 2 {
		r.Build, _ = in.ReadU16()
		r.fields++
		if in.Remaining() >= 2 {
			r.Year, _ = in.ReadU16()
			r.fields++
			if in.Remaining() >= 4 {
				r.History, _ = in.ReadU32()
				r.fields++
				if in.Remaining() >= 4 {
					r.RequiredVersion, _ = in.ReadU32()
					r.fields++
				}
			}
		}
	}
	if in.Remaining() > 0 {
		r.Extra = in.ReadRemainder()
	}
	return r, nil
}

func (r *BOFRecord) Sid() uint16 { return r.sid }

// FieldCount returns how many of the six BOF fields the record writes:
// the fields it was read with, widened up to the last non-zero field.
func (r *BOFRecord) FieldCount() int {
	n := r.fields
	switch {
	case r.RequiredVersion != 0:
		n = max(n, 6)
	case r.History != 0:
		n = max(n, 5)
	case r.Year != 0:
		n = max(n, 4)
	case r.Build != 0:
		n = max(n, 3)
	}
	return n
}

func (r *BOFRecord) Serialize(out *codec.Writer) error {
	fields := r.FieldCount()
	out.WriteU16(r.Version)
	out.WriteU16(r.Type)
	if fields > 2 {
		out.WriteU16(r.Build)
	}
	if fields > 3 {
		out.WriteU16(r.Year)
	}
	if fields > 4 {
		out.WriteU32(r.History)
	}
	if fields > 5 {
		out.WriteU32(r.RequiredVersion)
	}
	out.WriteBytes(r.Extra)
	return nil
}

// BiffVersion derives the BIFF version (20, 21, 30, 40, 45, 50, 70 or 80)
// from the record type and its fields. It returns 0 when the combination
// is not recognized.
func (r *BOFRecord) BiffVersion() int {
	switch r.sid >> 8 {
	case 0x08:
		switch r.Version {
		case 0x0600:
			return 80
		case 0x0500:
			if r.Year < 1994 || r.Build == 2412 || r.Build == 3218 || r.Build == 3321 {
				return 50
			}
			return 70
		case 0x0000, 0x0007:
			return 21
		}
		return 0
	case 0x04:
		if r.Type == XL_WORKBOOK_GLOBALS_4W {
			return 45
		}
		return 40
	case 0x02:
		return 30
	case 0x00:
		return 20
	}
	return 0
}

// IsGlobals reports whether the BOF opens the workbook globals substream.
func (r *BOFRecord) IsGlobals() bool {
	return r.Type == XL_WORKBOOK_GLOBALS || r.Type == XL_WORKBOOK_GLOBALS_4W
}

// EOFRecord closes a substream. Its payload is empty; bytes some producers
// leave in it are kept in Extra.
type EOFRecord struct {
	Extra []byte
}

func readEOFRecord(in *RecordInput) (Record, error) {
	r := &EOFRecord{}
	if in.Remaining() > 0 {
		in.Warn("EOF record with a payload", "length", in.Remaining())
		r.Extra = in.ReadRemainder()
	}
	return r, nil
}

func (r *EOFRecord) Sid() uint16 { return XL_EOF }

func (r *EOFRecord) Serialize(out *codec.Writer) error {
	out.WriteBytes(r.Extra)
	return nil
}
