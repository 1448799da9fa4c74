package biff

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// Record is one typed BIFF record. Serialize writes the payload only; the
// frame header and any CONTINUE frames are added by the stream writer.
type Record interface {
	Sid() uint16
	Serialize(out *codec.Writer) error
}

// ContinuableRecord is a record that chooses its own CONTINUE split points.
type ContinuableRecord interface {
	Record
	SerializeContinued(out *ContinuableOutput) error
}

// RawRecord keeps the payload of a record type with no registered
// constructor.
type RawRecord struct {
	sid  uint16
	Data []byte
}

// NewRawRecord returns a raw record of the given type.
func NewRawRecord(sid uint16, data []byte) *RawRecord {
	return &RawRecord{sid: sid, Data: data}
}

func (r *RawRecord) Sid() uint16 { return r.sid }

func (r *RawRecord) Serialize(out *codec.Writer) error {
	out.WriteBytes(r.Data)
	return nil
}

// ContinueRecord is a CONTINUE frame not absorbed by the record before it.
type ContinueRecord struct {
	Data []byte
}

func (r *ContinueRecord) Sid() uint16 { return XL_CONTINUE }

func (r *ContinueRecord) Serialize(out *codec.Writer) error {
	out.WriteBytes(r.Data)
	return nil
}

func readContinueRecord(in *RecordInput) (Record, error) {
	return &ContinueRecord{Data: in.ReadRemainder()}, nil
}

type continuePolicy int

const (
	// continueNone leaves following CONTINUE frames as ContinueRecords.
	continueNone continuePolicy = iota
	// continueFullFrames absorbs CONTINUE frames while the previous frame
	// is full, and splits at MaxRecordDataSize on write.
	continueFullFrames
	// continueAlways absorbs every following CONTINUE frame; the record
	// places its own split points on write.
	continueAlways
)

type recordConstructor func(in *RecordInput) (Record, error)

type recordType struct {
	create    recordConstructor
	continues continuePolicy
}

var recordTypes = map[uint16]recordType{
	XL_BOF:                   {readBOFRecord, continueNone},
	XL_BOF_B2:                {readBOFRecord, continueNone},
	XL_BOF_B3:                {readBOFRecord, continueNone},
	XL_BOF_B4:                {readBOFRecord, continueNone},
	XL_EOF:                   {readEOFRecord, continueNone},
	XL_CONTINUE:              {readContinueRecord, continueNone},
	XL_FILEPASS:              {readFilePassRecord, continueNone},
	XL_BOUNDSHEET:            {readBoundSheetRecord, continueNone},
	XL_SST:                   {readSSTRecord, continueAlways},
	XL_FORMULA:               {readFormulaRecord, continueFullFrames},
	XL_DVAL:                  {readDVALRecord, continueNone},
	XL_DV:                    {readDVRecord, continueNone},
	XL_CONDFMT:               {readCFHeaderRecord, continueNone},
	XL_CONDFMT12:             {readCFHeader12Record, continueNone},
	XL_CF:                    {readCFRuleRecord, continueNone},
	XL_CF12:                  {readCFRule12Record, continueNone},
	XL_MSO_DRAWING:           {readDrawingRecord, continueFullFrames},
	XL_MSO_DRAWING_GROUP:     {readDrawingRecord, continueFullFrames},
	XL_MSO_DRAWING_SELECTION: {readDrawingRecord, continueFullFrames},
}

func continuesFor(sid uint16) continuePolicy {
	if rt, ok := recordTypes[sid]; ok {
		return rt.continues
	}
	return continueNone
}

// IsRegistered reports whether sid has a typed constructor.
func IsRegistered(sid uint16) bool {
	_, ok := recordTypes[sid]
	return ok
}

// CreateRecord builds the typed record for sid from in. Unregistered types
// come back as a RawRecord holding the payload. A constructor that leaves
// payload bytes unread is reported as ErrCorruptRecord.
func CreateRecord(sid uint16, in *RecordInput) (Record, error) {
	rt, ok := recordTypes[sid]
	if !ok {
		return NewRawRecord(sid, in.ReadRemainder()), nil
	}
	rec, err := rt.create(in)
	if err != nil {
		return nil, err
	}
	if n := in.Remaining(); n > 0 {
		return nil, codec.Errorf(codec.ErrCorruptRecord, "record %s at offset %d left %d of its bytes unread", RecordName(sid), in.offset, n)
	}
	return rec, nil
}

// SerializeRecord writes r as one or more frames.
func SerializeRecord(out *codec.Writer, r Record) error {
	if cr, ok := r.(ContinuableRecord); ok {
		co := newContinuableOutput(out, r.Sid())
		if err := cr.SerializeContinued(co); err != nil {
			return err
		}
		co.finish()
		return nil
	}
	body := codec.NewWriter(64)
	if err := r.Serialize(body); err != nil {
		return err
	}
	if body.Len() > MaxRecordDataSize && continuesFor(r.Sid()) == continueFullFrames {
		return writeSplitFrames(out, r.Sid(), body.Bytes())
	}
	return WriteFrame(out, r.Sid(), body.Bytes())
}

// RecordBytes returns the serialized frames of r.
func RecordBytes(r Record) ([]byte, error) {
	w := codec.NewWriter(64)
	if err := SerializeRecord(w, r); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
