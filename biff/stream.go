package biff

import (
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
)

// RecordHeader is the four byte prefix of every frame.
type RecordHeader struct {
	Sid    uint16
	Length uint16
}

// Frame is one physical (sid, length, payload) unit of a record stream.
type Frame struct {
	RecordHeader
	// Offset is the stream position of the frame header.
	Offset int
	Data   []byte
	// Truncated is set when the stream ended before Length payload bytes.
	Truncated bool
}

// ReadNextFrame reads one frame header and its payload from c. The payload
// aliases the cursor's buffer. A payload cut short by the end of the stream
// is returned with Truncated set.
func ReadNextFrame(c *codec.Cursor) (Frame, error) {
	f := Frame{Offset: c.Pos()}
	sid, err := c.ReadU16()
	if err != nil {
		return f, err
	}
	length, err := c.ReadU16()
	if err != nil {
		return f, err
	}
	f.Sid, f.Length = sid, length
	n := int(length)
	if n > c.Remaining() {
		n = c.Remaining()
		f.Truncated = true
	}
	sub, _ := c.Sub(n)
	f.Data = sub.Buffer()
	return f, nil
}

// WriteFrame writes a frame whose length field is taken from len(payload).
func WriteFrame(w *codec.Writer, sid uint16, payload []byte) error {
	if len(payload) > 0xFFFF {
		return codec.Errorf(codec.ErrCorruptRecord, "record 0x%04x payload of %d bytes does not fit a frame", sid, len(payload))
	}
	w.WriteU16(sid)
	w.WriteU16(uint16(len(payload)))
	w.WriteBytes(payload)
	return nil
}

// writeSplitFrames writes payload as a leading frame followed by CONTINUE
// frames of at most MaxRecordDataSize bytes each.
func writeSplitFrames(w *codec.Writer, sid uint16, payload []byte) error {
	first := true
	for first || len(payload) > 0 {
		n := len(payload)
		if n > MaxRecordDataSize {
			n = MaxRecordDataSize
		}
		frameSid := uint16(XL_CONTINUE)
		if first {
			frameSid = sid
		}
		if err := WriteFrame(w, frameSid, payload[:n]); err != nil {
			return err
		}
		payload = payload[n:]
		first = false
	}
	return nil
}

// RecordInput reads the payload of one logical record. The payload is the
// leading frame plus any CONTINUE frames the record type absorbs; reads
// flow across frame boundaries.
type RecordInput struct {
	sid    uint16
	offset int
	frames [][]byte
	idx    int
	pos    int
	logger *slog.Logger
}

func newRecordInput(sid uint16, offset int, frames [][]byte, logger *slog.Logger) *RecordInput {
	if logger == nil {
		logger = discardLogger()
	}
	return &RecordInput{sid: sid, offset: offset, frames: frames, logger: logger}
}

// NewRecordInput returns an input over a single payload.
func NewRecordInput(sid uint16, payload []byte) *RecordInput {
	return newRecordInput(sid, 0, [][]byte{payload}, nil)
}

// Sid returns the type of the record being read.
func (in *RecordInput) Sid() uint16 { return in.sid }

// Offset returns the stream offset of the record's first frame.
func (in *RecordInput) Offset() int { return in.offset }

// Remaining returns the unread byte count across all frames.
func (in *RecordInput) Remaining() int {
	n := 0
	for i := in.idx; i < len(in.frames); i++ {
		n += len(in.frames[i])
	}
	return n - in.pos
}

// frameRemaining returns the unread byte count of the current frame.
func (in *RecordInput) frameRemaining() int {
	if in.idx >= len(in.frames) {
		return 0
	}
	return len(in.frames[in.idx]) - in.pos
}

// nextFrame moves to the following frame. It reports false when none is
// left.
func (in *RecordInput) nextFrame() bool {
	if in.idx+1 >= len(in.frames) {
		return false
	}
	in.idx++
	in.pos = 0
	return true
}

func (in *RecordInput) skipExhausted() {
	for in.frameRemaining() == 0 && in.nextFrame() {
	}
}

func (in *RecordInput) truncated(n int) error {
	return codec.Errorf(codec.ErrTruncatedInput, "record 0x%04x at offset %d: need %d bytes, have %d", in.sid, in.offset, n, in.Remaining())
}

func (in *RecordInput) read(n int) ([]byte, error) {
	if n < 0 || n > in.Remaining() {
		return nil, in.truncated(n)
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		in.skipExhausted()
		frame := in.frames[in.idx]
		take := n - len(out)
		if avail := len(frame) - in.pos; take > avail {
			take = avail
		}
		out = append(out, frame[in.pos:in.pos+take]...)
		in.pos += take
	}
	return out, nil
}

// ReadU8 reads one byte.
func (in *RecordInput) ReadU8() (uint8, error) {
	b, err := in.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads an unsigned 16-bit integer.
func (in *RecordInput) ReadU16() (uint16, error) {
	b, err := in.read(2)
	if err != nil {
		return 0, err
	}
	return codec.NewCursor(b).ReadU16()
}

// ReadI16 reads a signed 16-bit integer.
func (in *RecordInput) ReadI16() (int16, error) {
	v, err := in.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit integer.
func (in *RecordInput) ReadU32() (uint32, error) {
	b, err := in.read(4)
	if err != nil {
		return 0, err
	}
	return codec.NewCursor(b).ReadU32()
}

// ReadBytes reads n bytes.
func (in *RecordInput) ReadBytes(n int) ([]byte, error) {
	return in.read(n)
}

// ReadRemainder reads every unread byte.
func (in *RecordInput) ReadRemainder() []byte {
	b, _ := in.read(in.Remaining())
	return b
}

// ReadStringChars reads n characters of a BIFF8 unicode string whose
// header announced the given compression. When the characters continue
// into the next frame, that frame starts with a fresh option byte which may
// switch the compression. It returns the decoded text and whether any part
// was stored uncompressed.
func (in *RecordInput) ReadStringChars(n int, uncompressed bool) (string, bool, error) {
	var text []byte
	anyWide := uncompressed
	for n > 0 {
		avail := in.frameRemaining()
		if uncompressed {
			avail /= 2
		}
		if avail == 0 {
			if in.frameRemaining() != 0 {
				return "", anyWide, codec.Errorf(codec.ErrCorruptRecord, "record 0x%04x: odd byte left before string continuation", in.sid)
			}
			if !in.nextFrame() {
				return "", anyWide, in.truncated(n)
			}
			flag, err := in.ReadU8()
			if err != nil {
				return "", anyWide, err
			}
			uncompressed = flag&0x01 != 0
			anyWide = anyWide || uncompressed
			continue
		}
		take := n
		if take > avail {
			take = avail
		}
		c := codec.NewCursor(in.frames[in.idx][in.pos:])
		var s string
		var err error
		if uncompressed {
			s, err = c.ReadUnicodeLE(take)
		} else {
			s, err = c.ReadCompressedUnicode(take)
		}
		if err != nil {
			return "", anyWide, err
		}
		in.pos += c.Pos()
		text = append(text, s...)
		n -= take
	}
	return string(text), anyWide, nil
}

// Warn logs a recoverable problem with the record being read.
func (in *RecordInput) Warn(msg string, args ...any) {
	args = append([]any{"sid", in.sid, "name", RecordName(in.sid), "offset", in.offset}, args...)
	in.logger.Warn(msg, args...)
}

// ContinuableOutput writes one logical record, opening CONTINUE frames as
// the current frame fills up.
type ContinuableOutput struct {
	w         *codec.Writer
	lenOffset int
	frameLen  int
}

func newContinuableOutput(w *codec.Writer, sid uint16) *ContinuableOutput {
	co := &ContinuableOutput{w: w}
	co.startFrame(sid)
	return co
}

func (co *ContinuableOutput) startFrame(sid uint16) {
	co.w.WriteU16(sid)
	co.lenOffset = co.w.Len()
	co.w.WriteU16(0)
	co.frameLen = 0
}

func (co *ContinuableOutput) finishFrame() {
	co.w.PutU16At(co.lenOffset, uint16(co.frameLen))
}

// Available returns the free space in the current frame.
func (co *ContinuableOutput) Available() int {
	return MaxRecordDataSize - co.frameLen
}

// WriteContinue closes the current frame and opens a CONTINUE frame.
func (co *ContinuableOutput) WriteContinue() {
	co.finishFrame()
	co.startFrame(XL_CONTINUE)
}

// WriteContinueIfRequired opens a CONTINUE frame unless n bytes still fit.
func (co *ContinuableOutput) WriteContinueIfRequired(n int) {
	if co.Available() < n {
		co.WriteContinue()
	}
}

// WriteU8 writes one byte.
func (co *ContinuableOutput) WriteU8(v uint8) {
	co.WriteContinueIfRequired(1)
	co.w.WriteU8(v)
	co.frameLen++
}

// WriteU16 writes an unsigned 16-bit integer without splitting it.
func (co *ContinuableOutput) WriteU16(v uint16) {
	co.WriteContinueIfRequired(2)
	co.w.WriteU16(v)
	co.frameLen += 2
}

// WriteU32 writes an unsigned 32-bit integer without splitting it.
func (co *ContinuableOutput) WriteU32(v uint32) {
	co.WriteContinueIfRequired(4)
	co.w.WriteU32(v)
	co.frameLen += 4
}

// WriteBytes writes b, splitting it across frames where needed.
func (co *ContinuableOutput) WriteBytes(b []byte) {
	for len(b) > 0 {
		if co.Available() == 0 {
			co.WriteContinue()
		}
		n := len(b)
		if n > co.Available() {
			n = co.Available()
		}
		co.w.WriteBytes(b[:n])
		co.frameLen += n
		b = b[n:]
	}
}

// WriteString writes a BIFF8 unicode string header and its characters. The
// header and the first character are kept in one frame; characters that
// spill into a CONTINUE frame are preceded by a repeated option byte.
func (co *ContinuableOutput) WriteString(s XLString, richRuns int, extSize int, rich, ext bool) error {
	wide := s.wide()
	keepTogether := 2 + 1 + 1
	var options uint8
	if wide {
		options |= 0x01
		keepTogether++
	}
	if rich {
		options |= 0x08
		keepTogether += 2
	}
	if ext {
		options |= 0x04
		keepTogether += 4
	}
	co.WriteContinueIfRequired(keepTogether)
	co.WriteU16(uint16(codec.CharCount(s.Value)))
	co.WriteU8(options)
	if rich {
		co.WriteU16(uint16(richRuns))
	}
	if ext {
		co.WriteU32(uint32(extSize))
	}
	units, err := s.encodeUnits()
	if err != nil {
		return err
	}
	width := 1
	if wide {
		width = 2
	}
	for i := 0; ; {
		n := len(units) - i
		if room := co.Available() / width; n > room {
			n = room
		}
		for ; n > 0; n-- {
			if wide {
				co.w.WriteU16(units[i])
			} else {
				co.w.WriteU8(uint8(units[i]))
			}
			co.frameLen += width
			i++
		}
		if i >= len(units) {
			break
		}
		co.WriteContinue()
		co.WriteU8(options & 0x01)
	}
	return nil
}

func (co *ContinuableOutput) finish() {
	co.finishFrame()
}
