package biff

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
	"github.com/yamitzky/biffkit-go/crypt"
	"github.com/yamitzky/biffkit-go/opc"
	"github.com/yamitzky/biffkit-go/poifs"
)

// Workbook is a decoded workbook stream: the globals substream followed by
// one substream per sheet.
//
// You should not instantiate this type yourself. You use the Workbook
// object that was returned when you called OpenWorkbook.
type Workbook struct {
	// Globals is the workbook globals substream.
	Globals *Substream

	// Sheets holds the substreams after the globals in stream order.
	Sheets []*Substream

	// BiffVersion is the version of BIFF used to create the file, 80 for
	// Excel 97 and later.
	BiffVersion int

	// StreamPath is the container entry the record stream was read from,
	// empty for a bare BIFF file.
	StreamPath string

	container container.Container
	trailer   []byte
	cipher    crypt.StreamCipher
	logger    *slog.Logger
}

// OpenOptions contains options for opening a workbook.
type OpenOptions struct {
	// Logfile is an open file to which warnings and diagnostics are written.
	// It is ignored when Logger is set.
	Logfile io.Writer

	// Verbosity increases the volume of trace material written to the logfile.
	Verbosity int

	// Logger receives the diagnostics instead of a logger built from
	// Logfile and Verbosity.
	Logger *slog.Logger

	// Password decrypts an RC4 protected workbook. Empty selects the
	// default password Excel uses for workbooks without one.
	Password string

	// IgnoreWorkbookCorruption allows to read corrupted workbooks: records
	// that do not parse are kept raw instead of failing the load.
	IgnoreWorkbookCorruption bool

	// FileContents is the file contents as bytes.
	// If FileContents is supplied, the filename is only used in messages.
	FileContents []byte

	// StreamPath names the container entry holding the record stream. By
	// default the Workbook and Book streams of a compound file are tried.
	StreamPath string
}

func (o *OpenOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return NewLogger(o.Logfile, o.Verbosity)
}

// OpenWorkbook opens a workbook file.
func OpenWorkbook(filename string, options *OpenOptions) (*Workbook, error) {
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
	wb, err := OpenWorkbookBytes(data, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return wb, nil
}

// OpenWorkbookBytes decodes a workbook from the bytes of a compound file,
// a zip package (with OpenOptions.StreamPath naming the part) or a bare
// BIFF stream.
func OpenWorkbookBytes(data []byte, options *OpenOptions) (*Workbook, error) {
	if options == nil {
		options = &OpenOptions{}
	}
	if len(data) == 0 {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "File size is 0 bytes")
	}
	logger := options.logger()
	c, path, err := openContainer(data, options, logger)
	if err != nil {
		return nil, err
	}
	stream := data
	if c != nil {
		if stream, err = c.Content(path); err != nil {
			return nil, err
		}
	}
	wb, err := readWorkbookStream(bytes.Clone(stream), options.Password, options.IgnoreWorkbookCorruption, logger)
	if err != nil {
		return nil, err
	}
	wb.container = c
	wb.StreamPath = path
	return wb, nil
}

// openContainer picks the container that holds the record stream and the
// path of the stream within it. A bare BIFF stream has no container.
func openContainer(data []byte, options *OpenOptions, logger *slog.Logger) (container.Container, string, error) {
	format, err := InspectFormat("", data)
	if err != nil {
		return nil, "", err
	}
	switch format {
	case "xls":
		doc, err := poifs.Open(data, logger, options.IgnoreWorkbookCorruption)
		if err != nil {
			return nil, "", err
		}
		names := []string{"Workbook", "Book"}
		if options.StreamPath != "" {
			names = []string{options.StreamPath}
		}
		for _, qname := range names {
			if e, ok := doc.Lookup(qname); ok && e.Kind == container.KindStream {
				return doc, e.Path, nil
			}
		}
		return nil, "", codec.Errorf(codec.ErrMalformedContainer, "Can't find workbook in OLE2 compound document")
	case "xlsx", "xlsb", "ods", "zip":
		if options.StreamPath == "" {
			return nil, "", codec.Errorf(codec.ErrUnsupportedFeature, "%s; not supported", FileFormatDescriptions[format])
		}
		pkg, err := opc.Open(data)
		if err != nil {
			return nil, "", err
		}
		e, ok := pkg.Lookup(options.StreamPath)
		if !ok {
			return nil, "", codec.Errorf(codec.ErrMalformedContainer, "no part %q in zip package", options.StreamPath)
		}
		return pkg, e.Path, nil
	}
	// Allow unknown formats to pass through, as some ancient files
	// don't start with the expected signature (e.g., raw BIFF files)
	return nil, "", nil
}

// OpenContainer parses data as a compound file or zip package. It returns
// nil for anything else.
func OpenContainer(data []byte, options *OpenOptions) (container.Container, error) {
	if options == nil {
		options = &OpenOptions{}
	}
	format, err := InspectFormat("", data)
	if err != nil {
		return nil, err
	}
	switch format {
	case "xls":
		doc, err := poifs.Open(data, options.logger(), options.IgnoreWorkbookCorruption)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case "xlsx", "xlsb", "ods", "zip":
		pkg, err := opc.Open(data)
		if err != nil {
			return nil, err
		}
		return pkg, nil
	}
	return nil, nil
}

// ReadWorkbookStream decodes a bare record stream.
func ReadWorkbookStream(stream []byte, options *OpenOptions) (*Workbook, error) {
	if options == nil {
		options = &OpenOptions{}
	}
	return readWorkbookStream(bytes.Clone(stream), options.Password, options.IgnoreWorkbookCorruption, options.logger())
}

func readWorkbookStream(stream []byte, password string, ignoreCorruption bool, logger *slog.Logger) (*Workbook, error) {
	frames, trailerStart := scanFrames(stream, logger)
	if len(frames) == 0 {
		return nil, codec.Errorf(codec.ErrTruncatedInput, "Expected BOF record; met end of file")
	}
	if !isBOF(frames[0].Sid) {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "Expected BOF record; found 0x%04x", frames[0].Sid)
	}
	wb := &Workbook{logger: logger}
	if trailerStart < len(stream) {
		wb.trailer = stream[trailerStart:]
		logger.Debug("bytes after the last substream", "offset", trailerStart, "length", len(wb.trailer))
	}

	fp, err := findFilePass(frames, logger)
	if err != nil {
		return nil, err
	}
	if fp != nil {
		if wb.cipher, err = fp.StreamCipher(password); err != nil {
			return nil, err
		}
		applyCipher(stream, frames, wb.cipher)
		// lengths are stored in clear, so the frames stay where they were
		frames, _ = scanFrames(stream, logger)
	}

	loaded, err := readRecords(stream, frames, logger, ignoreCorruption)
	if err != nil {
		return nil, err
	}
	substreams := splitSubstreams(loaded)
	for i, part := range substreams {
		s := newSubstream(part, logger)
		if i == 0 {
			wb.Globals = s
			continue
		}
		wb.Sheets = append(wb.Sheets, s)
	}

	bof := wb.Globals.BOF()
	if bof == nil {
		return nil, codec.Errorf(codec.ErrCorruptRecord, "Expected BOF record; found 0x%04x", frames[0].Sid)
	}
	wb.BiffVersion = bof.BiffVersion()
	if wb.BiffVersion == 0 {
		return nil, codec.Errorf(codec.ErrUnsupportedFeature, "Can't determine file's BIFF version")
	}
	if wb.BiffVersion >= 50 && bof.Type == XL_WORKBOOK_GLOBALS_4W {
		return nil, codec.Errorf(codec.ErrUnsupportedFeature, "Workspace file -- no spreadsheet data")
	}
	if wb.BiffVersion < BIFF_FIRST_UNICODE {
		logger.Warn("stream predates BIFF8, records are read with BIFF8 layouts", "version", BiffTextFromNum(wb.BiffVersion))
	}
	wb.linkBoundSheets()
	return wb, nil
}

// splitSubstreams cuts the records at each top level BOF. A BOF inside an
// open substream, as charts embedded in a worksheet have, stays with it.
func splitSubstreams(loaded []loadedRecord) [][]loadedRecord {
	var out [][]loadedRecord
	depth := 0
	for _, lr := range loaded {
		sid := lr.rec.Sid()
		if isBOF(sid) && depth == 0 {
			out = append(out, nil)
		}
		if len(out) == 0 {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], lr)
		switch {
		case isBOF(sid):
			depth++
		case sid == XL_EOF && depth > 0:
			depth--
		}
	}
	return out
}

// linkBoundSheets pairs each BOUNDSHEET with the substream starting at its
// offset.
func (wb *Workbook) linkBoundSheets() {
	byOffset := map[int]*Substream{}
	for _, s := range wb.Sheets {
		byOffset[s.offset] = s
	}
	for _, item := range wb.Globals.Items {
		single, ok := item.(SingleRecord)
		if !ok {
			continue
		}
		bs, ok := single.Record.(*BoundSheetRecord)
		if !ok {
			continue
		}
		s, ok := byOffset[int(bs.Offset)]
		if !ok {
			wb.logger.Warn("BOUNDSHEET points at no substream", "sheet", bs.Name.Value, "offset", bs.Offset)
			continue
		}
		s.BoundSheet = bs
		s.Name = bs.Name.Value
	}
}

// SheetNames returns the names of the sheets that have a BOUNDSHEET entry.
func (wb *Workbook) SheetNames() []string {
	var names []string
	for _, s := range wb.Sheets {
		if s.BoundSheet != nil {
			names = append(names, s.Name)
		}
	}
	return names
}

// SheetByName returns a sheet by its name.
func (wb *Workbook) SheetByName(name string) (*Substream, error) {
	for _, s := range wb.Sheets {
		if s.BoundSheet != nil && s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("No sheet named <%s>", name)
}

// SheetByIndex returns a sheet by its index.
func (wb *Workbook) SheetByIndex(sheetx int) (*Substream, error) {
	if sheetx < 0 || sheetx >= len(wb.Sheets) {
		return nil, fmt.Errorf("sheet index %d out of range", sheetx)
	}
	return wb.Sheets[sheetx], nil
}

// AddSheet appends an empty worksheet and its BOUNDSHEET entry. The entry
// goes after the last existing one, or before the globals EOF.
func (wb *Workbook) AddSheet(name string) *Substream {
	s := NewSubstream(XL_WORKSHEET)
	s.logger = wb.logger
	s.Name = name
	s.BoundSheet = NewBoundSheetRecord(name)
	last := -1
	for i, item := range wb.Globals.Items {
		if single, ok := item.(SingleRecord); ok && single.Sid() == XL_BOUNDSHEET {
			last = i
		}
	}
	if last >= 0 {
		wb.Globals.InsertAfter(last, SingleRecord{s.BoundSheet})
	} else {
		wb.Globals.Insert(SingleRecord{s.BoundSheet})
	}
	wb.Sheets = append(wb.Sheets, s)
	return s
}

// SST returns the shared string table, or nil.
func (wb *Workbook) SST() *SSTRecord {
	sst, _ := wb.Globals.FindRecord(XL_SST).(*SSTRecord)
	return sst
}

// FilePass returns the FILEPASS record of an encrypted workbook, or nil.
func (wb *Workbook) FilePass() *FilePassRecord {
	fp, _ := wb.Globals.FindRecord(XL_FILEPASS).(*FilePassRecord)
	return fp
}

// Encrypted reports whether the workbook is saved encrypted.
func (wb *Workbook) Encrypted() bool { return wb.cipher != nil }

// SetPassword encrypts the workbook with BIFF8 RC4 on save, replacing any
// previous FILEPASS. An empty password selects crypt.DefaultPassword.
func (wb *Workbook) SetPassword(password string) error {
	if password == "" {
		password = crypt.DefaultPassword
	}
	salt := make([]byte, 16)
	verifier := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	if _, err := rand.Read(verifier); err != nil {
		return err
	}
	fp, err := NewRC4FilePassRecord(password, salt, verifier)
	if err != nil {
		return err
	}
	cipher, err := fp.StreamCipher(password)
	if err != nil {
		return err
	}
	wb.removeFilePass()
	// FILEPASS follows the globals BOF directly
	wb.Globals.InsertAfter(0, SingleRecord{fp})
	wb.cipher = cipher
	return nil
}

// RemoveEncryption makes the next save write the stream in clear.
func (wb *Workbook) RemoveEncryption() {
	wb.removeFilePass()
	wb.cipher = nil
}

func (wb *Workbook) removeFilePass() {
	items := wb.Globals.Items[:0]
	for _, item := range wb.Globals.Items {
		if single, ok := item.(SingleRecord); ok && single.Sid() == XL_FILEPASS {
			continue
		}
		items = append(items, item)
	}
	wb.Globals.Items = items
}

// EvaluateFormulas hands the tokens of every cell formula to ev and stores
// numeric results as the cached value of the cell. It returns the number
// of formulas evaluated.
func (wb *Workbook) EvaluateFormulas(ev FormulaEvaluator) (int, error) {
	n := 0
	for _, s := range wb.Sheets {
		err := s.VisitContainedRecords(func(r Record) error {
			f, ok := r.(*FormulaRecord)
			if !ok {
				return nil
			}
			v, err := f.Formula.Evaluate(ev)
			if err != nil {
				return fmt.Errorf("%s!%s: %w", s.Name, f.CellName(), err)
			}
			n++
			if num, ok := v.(float64); ok {
				f.SetCachedNumber(num)
			}
			return nil
		})
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// StreamBytes serializes the record stream: sheet substreams first, so
// that the BOUNDSHEET offsets in the globals can point at them, then the
// globals in front. An encrypted workbook is encrypted last.
func (wb *Workbook) StreamBytes() ([]byte, error) {
	sheets := make([][]byte, len(wb.Sheets))
	for i, s := range wb.Sheets {
		b, err := s.Bytes()
		if err != nil {
			return nil, fmt.Errorf("sheet %d %q: %w", i, s.Name, err)
		}
		sheets[i] = b
	}
	globals, err := wb.serializeGlobals(sheets)
	if err != nil {
		return nil, err
	}
	size := len(globals) + len(wb.trailer)
	for _, b := range sheets {
		size += len(b)
	}
	out := make([]byte, 0, size)
	out = append(out, globals...)
	for _, b := range sheets {
		out = append(out, b...)
	}
	out = append(out, wb.trailer...)
	if wb.cipher != nil {
		frames, _ := scanFrames(out, discardLogger())
		applyCipher(out, frames, wb.cipher)
	}
	return out, nil
}

// serializeGlobals writes the globals with BOUNDSHEET offsets that match
// the sheet sizes. Writing an offset can change the size of the globals
// only through a record falling back from its original frames, so a few
// passes settle it.
func (wb *Workbook) serializeGlobals(sheets [][]byte) ([]byte, error) {
	var globals []byte
	size := -1
	for pass := 0; pass < 4; pass++ {
		if size >= 0 {
			offset := size
			for i, s := range wb.Sheets {
				if s.BoundSheet != nil {
					s.BoundSheet.Offset = uint32(offset)
				}
				offset += len(sheets[i])
			}
		}
		b, err := wb.Globals.Bytes()
		if err != nil {
			return nil, fmt.Errorf("globals: %w", err)
		}
		if len(b) == size {
			return b, nil
		}
		globals, size = b, len(b)
	}
	return globals, codec.Errorf(codec.ErrCorruptRecord, "globals size does not settle")
}

// Save writes the workbook: its container with the record stream replaced,
// or the bare stream when the workbook was not read from a container.
func (wb *Workbook) Save(w io.Writer) error {
	stream, err := wb.StreamBytes()
	if err != nil {
		return err
	}
	if wb.container == nil {
		_, err := w.Write(stream)
		return err
	}
	if err := wb.container.Replace(wb.StreamPath, stream); err != nil {
		return err
	}
	_, err = wb.container.WriteTo(w)
	return err
}

// SaveFile writes the workbook to path.
func (wb *Workbook) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
