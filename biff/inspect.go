package biff

import (
	"bytes"
	"encoding/binary"
	"os"
	"strings"

	"github.com/yamitzky/biffkit-go/opc"
)

// FileFormatDescriptions provides descriptions of the file types that can be inspected.
var FileFormatDescriptions = map[string]string{
	"xls":  "Excel xls",
	"xlsb": "Excel 2007 xlsb file",
	"xlsx": "Excel xlsx file",
	"ods":  "Openoffice.org ODS file",
	"zip":  "Unknown ZIP file",
	"biff": "BIFF record stream",
	"":     "Unknown file type",
}

// XLS_SIGNATURE is the magic cookie that should appear in the first 8 bytes of an XLS file.
var XLS_SIGNATURE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ZIP_SIGNATURE is the magic cookie for ZIP files.
var ZIP_SIGNATURE = []byte("PK\x03\x04")

// PEEK_SIZE is the maximum size needed to peek at file signatures.
const PEEK_SIZE = 8

// expandUser replaces a leading ~ with the home directory.
func expandUser(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}

// InspectFormat inspects the content at the supplied path or the bytes content provided
// and returns the file's type as a string, or empty string if it cannot be determined.
//
// The return value can always be looked up in FileFormatDescriptions
// to return a human-readable description of the format found.
func InspectFormat(path string, content []byte) (string, error) {
	if content == nil {
		expanded, err := expandUser(path)
		if err != nil {
			return "", err
		}
		if content, err = os.ReadFile(expanded); err != nil {
			return "", err
		}
	}
	if len(content) < PEEK_SIZE {
		return "", nil
	}
	if bytes.HasPrefix(content, XLS_SIGNATURE) {
		return "xls", nil
	}
	if !bytes.HasPrefix(content, ZIP_SIGNATURE) {
		// a stream saved outside a compound file starts with a BOF record
		if isBOF(binary.LittleEndian.Uint16(content)) {
			return "biff", nil
		}
		return "", nil
	}
	pkg, err := opc.Open(content)
	if err != nil {
		return "", err
	}
	// Lookup ignores case and backslashes, which some third party
	// producers use in part names.
	switch {
	case pkg.Has("xl/workbook.xml"):
		return "xlsx", nil
	case pkg.Has("xl/workbook.bin"):
		return "xlsb", nil
	case pkg.Has("content.xml"):
		return "ods", nil
	}
	return "zip", nil
}
