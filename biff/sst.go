package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// SSTRecord is the shared string table. Its CONTINUE frames are placed by
// the record itself so that string headers are never split.
type SSTRecord struct {
	// TotalCount is the number of string references in the workbook.
	TotalCount uint32
	Strings    []*UnicodeString

	// declared is the unique count read with the table, kept on write
	// while the table still holds the synced number of strings.
	declared uint32
	synced   int
}

func readSSTRecord(in *RecordInput) (Record, error) {
	r := &SSTRecord{}
	var err error
	if r.TotalCount, err = in.ReadU32(); err != nil {
		return nil, err
	}
	unique, err := in.ReadU32()
	if err != nil {
		return nil, err
	}
	r.declared = unique
	r.Strings = make([]*UnicodeString, 0, min(int(unique), in.Remaining()/3))
	for i := 0; i < int(unique); i++ {
		if in.Remaining() == 0 {
			in.Warn("shared string table shorter than its unique count", "unique", unique, "read", i)
			break
		}
		us, err := readUnicodeString(in)
		if err != nil {
			return nil, err
		}
		r.Strings = append(r.Strings, us)
	}
	r.synced = len(r.Strings)
	return r, nil
}

func (r *SSTRecord) Sid() uint16 { return XL_SST }

// Serialize writes the table as one unsplit payload.
func (r *SSTRecord) Serialize(out *codec.Writer) error {
	out.WriteU32(r.TotalCount)
	out.WriteU32(r.uniqueField())
	for _, us := range r.Strings {
		if err := us.serialize(out); err != nil {
			return err
		}
	}
	return nil
}

func (r *SSTRecord) SerializeContinued(out *ContinuableOutput) error {
	out.WriteU32(r.TotalCount)
	out.WriteU32(r.uniqueField())
	for _, us := range r.Strings {
		if err := us.serializeContinued(out); err != nil {
			return err
		}
	}
	return nil
}

func (r *SSTRecord) uniqueField() uint32 {
	if len(r.Strings) == r.synced {
		return r.declared
	}
	return uint32(len(r.Strings))
}

// UniqueCount returns the number of strings in the table.
func (r *SSTRecord) UniqueCount() int { return len(r.Strings) }

// String returns the text of string i, or "" when i is out of range.
func (r *SSTRecord) String(i int) string {
	if i < 0 || i >= len(r.Strings) {
		return ""
	}
	return r.Strings[i].Value
}

// AddString appends s unless an equal plain string is already present and
// returns its index. TotalCount is incremented either way.
func (r *SSTRecord) AddString(s string) int {
	r.TotalCount++
	for i, us := range r.Strings {
		if us.Value == s && us.Runs == nil && us.ExtRst == nil {
			return i
		}
	}
	r.Strings = append(r.Strings, &UnicodeString{XLString: NewXLString(s)})
	return len(r.Strings) - 1
}
