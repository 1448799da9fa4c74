package biff

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/crypt"
)

// recordSource is what a record looked like when it was read: its frames
// verbatim and its payload as serialized right after parsing. A record whose
// payload still serializes to flat is written back as raw.
type recordSource struct {
	raw  []byte
	flat []byte
}

type loadedRecord struct {
	rec    Record
	offset int
	src    *recordSource
}

// scanFrames splits a record stream into frames. Scanning stops after the
// EOF that closes the outermost substream unless another BOF follows; the
// bytes from the returned offset on are the stream trailer.
func scanFrames(data []byte, logger *slog.Logger) ([]Frame, int) {
	c := codec.NewCursor(data)
	var frames []Frame
	depth := 0
	for c.Remaining() >= 4 {
		if depth == 0 && len(frames) > 0 {
			next := uint16(data[c.Pos()]) | uint16(data[c.Pos()+1])<<8
			if !isBOF(next) {
				break
			}
		}
		f, err := ReadNextFrame(c)
		if err != nil {
			break
		}
		if f.Truncated {
			logger.Warn("record truncated by end of stream", "sid", f.Sid, "name", RecordName(f.Sid), "offset", f.Offset, "length", f.Length, "available", len(f.Data))
		}
		frames = append(frames, f)
		switch {
		case isBOF(f.Sid):
			depth++
		case f.Sid == XL_EOF && depth > 0:
			depth--
		}
	}
	return frames, c.Pos()
}

// findFilePass returns the FILEPASS record of the stream, or nil when the
// stream is not encrypted. The record itself is always stored in clear.
func findFilePass(frames []Frame, logger *slog.Logger) (*FilePassRecord, error) {
	for _, f := range frames {
		if f.Sid != XL_FILEPASS {
			continue
		}
		rec, err := CreateRecord(f.Sid, newRecordInput(f.Sid, f.Offset, [][]byte{f.Data}, logger))
		if err != nil {
			return nil, fmt.Errorf("FILEPASS at offset %d: %w", f.Offset, err)
		}
		return rec.(*FilePassRecord), nil
	}
	return nil, nil
}

// applyCipher runs cipher over every encrypted payload byte of buf: the
// payloads of the frames after FILEPASS, except the record types stored in
// clear and the stream offset field of BOUNDSHEET. The transform is its own
// inverse, so the same call decrypts a loaded stream and encrypts a saved one.
func applyCipher(buf []byte, frames []Frame, cipher crypt.StreamCipher) {
	encrypted := false
	for _, f := range frames {
		if !encrypted {
			encrypted = f.Sid == XL_FILEPASS
			continue
		}
		if neverEncrypted[f.Sid] {
			continue
		}
		start := f.Offset + 4
		end := start + len(f.Data)
		if f.Sid == XL_BOUNDSHEET {
			start += 4
		}
		if start < end {
			cipher.Transform(buf[start:end], start)
		}
	}
}

// groupFrames returns the index just past the frames that form the logical
// record starting at frames[i].
func groupFrames(frames []Frame, i int) int {
	j := i + 1
	if frames[i].Sid == XL_CONTINUE {
		return j
	}
	switch continuesFor(frames[i].Sid) {
	case continueAlways:
		for j < len(frames) && frames[j].Sid == XL_CONTINUE {
			j++
		}
	case continueFullFrames:
		for j < len(frames) && frames[j].Sid == XL_CONTINUE && len(frames[j-1].Data) == MaxRecordDataSize {
			j++
		}
	}
	return j
}

// readRecords builds typed records from the frames of data. A record that
// fails to parse aborts the read, unless ignoreCorruption is set: then its
// frames are kept as a RawRecord and ContinueRecords and a warning is logged.
func readRecords(data []byte, frames []Frame, logger *slog.Logger, ignoreCorruption bool) ([]loadedRecord, error) {
	var out []loadedRecord
	for i := 0; i < len(frames); {
		j := groupFrames(frames, i)
		group := frames[i:j]
		first := group[0]
		payloads := make([][]byte, len(group))
		truncated := false
		for k, f := range group {
			payloads[k] = f.Data
			truncated = truncated || f.Truncated
		}
		in := newRecordInput(first.Sid, first.Offset, payloads, logger)
		rec, err := CreateRecord(first.Sid, in)
		if err != nil {
			if !ignoreCorruption {
				return nil, fmt.Errorf("%s record at offset %d: %w", RecordName(first.Sid), first.Offset, err)
			}
			logger.Warn("keeping unparsable record raw", "sid", first.Sid, "name", RecordName(first.Sid), "offset", first.Offset, "error", err)
			for k, f := range group {
				var raw Record = &ContinueRecord{Data: f.Data}
				if k == 0 {
					raw = NewRawRecord(f.Sid, f.Data)
				}
				out = append(out, loadedRecord{rec: raw, offset: f.Offset, src: newRecordSource(data, group[k:k+1], raw)})
			}
			i = j
			continue
		}
		lr := loadedRecord{rec: rec, offset: first.Offset}
		if !truncated {
			lr.src = newRecordSource(data, group, rec)
		}
		out = append(out, lr)
		i = j
	}
	return out, nil
}

func newRecordSource(data []byte, group []Frame, rec Record) *recordSource {
	if group[len(group)-1].Truncated {
		return nil
	}
	flat, err := flatPayload(rec)
	if err != nil {
		return nil
	}
	last := group[len(group)-1]
	return &recordSource{raw: data[group[0].Offset : last.Offset+4+len(last.Data)], flat: flat}
}

// flatPayload serializes the payload of r without frame headers.
func flatPayload(r Record) ([]byte, error) {
	body := codec.NewWriter(64)
	if err := r.Serialize(body); err != nil {
		return nil, err
	}
	return body.Bytes(), nil
}

// unchanged reports whether r still serializes to the payload it was read
// with.
func (src *recordSource) unchanged(r Record) bool {
	if src == nil {
		return false
	}
	flat, err := flatPayload(r)
	return err == nil && bytes.Equal(flat, src.flat)
}
