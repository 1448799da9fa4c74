package biff

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yamitzky/biffkit-go/codec"
)

// locateStream returns the record stream of a workbook file without
// decoding it.
func locateStream(filename string, options *OpenOptions) ([]byte, error) {
	if options == nil {
		options = &OpenOptions{}
	}
	data := options.FileContents
	if data == nil {
		expanded, err := expandUser(filename)
		if err != nil {
			return nil, err
		}
		if data, err = os.ReadFile(expanded); err != nil {
			return nil, err
		}
	}
	c, path, err := openContainer(data, options, options.logger())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return data, nil
	}
	return c.Content(path)
}

// Dump dumps an XLS file's BIFF records in char & hex format for debugging.
//
// filename: The path to the file to be dumped.
// outfile: An open file, to which the dump is written.
// unnumbered: If true, omit offsets (for meaningful diffs).
// options: Selects the stream and the password; may be nil.
func Dump(filename string, outfile io.Writer, unnumbered bool, options *OpenOptions) error {
	stream, err := locateStream(filename, options)
	if err != nil {
		return err
	}
	return DumpStream(stream, outfile, unnumbered)
}

// DumpStream writes every frame of a record stream: a header line with the
// offset, type and length, then the payload in char & hex format. Bytes
// after the last substream are dumped as one block.
func DumpStream(stream []byte, outfile io.Writer, unnumbered bool) error {
	frames, trailerStart := scanFrames(stream, discardLogger())
	for _, f := range frames {
		pos := fmt.Sprintf("%5d: ", f.Offset)
		if unnumbered {
			pos = ""
		}
		note := ""
		if f.Truncated {
			note = fmt.Sprintf(" truncated to %d", len(f.Data))
		}
		if _, err := fmt.Fprintf(outfile, "%s%04x %s len = %04x (%d)%s\n", pos, f.Sid, RecordName(f.Sid), f.Length, f.Length, note); err != nil {
			return err
		}
		if err := HexCharDump(outfile, f.Data, f.Offset+4, unnumbered); err != nil {
			return err
		}
	}
	if trailerStart < len(stream) {
		if _, err := fmt.Fprintf(outfile, "---- %d bytes after the last substream\n", len(stream)-trailerStart); err != nil {
			return err
		}
		return HexCharDump(outfile, stream[trailerStart:], trailerStart, unnumbered)
	}
	return nil
}

// HexCharDump writes data sixteen bytes per line as hex and as characters,
// with unprintable bytes shown as ~. base is the offset printed for
// data[0].
func HexCharDump(outfile io.Writer, data []byte, base int, unnumbered bool) error {
	for pos := 0; pos < len(data); pos += 16 {
		end := min(pos+16, len(data))
		var hex, chars strings.Builder
		for _, b := range data[pos:end] {
			fmt.Fprintf(&hex, "%02x ", b)
			if b >= 0x20 && b < 0x7F {
				chars.WriteByte(b)
			} else {
				chars.WriteByte('~')
			}
		}
		var err error
		if unnumbered {
			_, err = fmt.Fprintf(outfile, "     %-48s %s\n", hex.String(), chars.String())
		} else {
			_, err = fmt.Fprintf(outfile, "%5d:     %-48s %s\n", base+pos, hex.String(), chars.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CountRecords summarises the file's BIFF records.
// It produces a sorted file of (record_name, count).
//
// filename: The path to the file to be summarised.
// outfile: An open file, to which the summary is written.
func CountRecords(filename string, outfile io.Writer, options *OpenOptions) error {
	stream, err := locateStream(filename, options)
	if err != nil {
		return err
	}
	return CountStreamRecords(stream, outfile)
}

// CountStreamRecords writes how often each frame type occurs in stream,
// sorted by record name.
func CountStreamRecords(stream []byte, outfile io.Writer) error {
	frames, _ := scanFrames(stream, discardLogger())
	if len(frames) == 0 {
		return codec.Errorf(codec.ErrTruncatedInput, "no records in stream")
	}
	counts := map[string]int{}
	for _, f := range frames {
		counts[RecordName(f.Sid)]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(outfile, "%8d %s\n", counts[name], name); err != nil {
			return err
		}
	}
	return nil
}
