// Package biff reads and writes BIFF8 record streams: frames, typed records,
// record aggregates and the workbook-level load and save pipeline.
package biff

import "fmt"

// BIFF version constants
const (
	BIFF_FIRST_UNICODE = 80
)

var biffTextFromNum = map[int]string{
	0:  "(not BIFF)",
	20: "2.0",
	21: "2.1",
	30: "3",
	40: "4S",
	45: "4W",
	50: "5",
	70: "7",
	80: "8",
	85: "8X",
}

// BiffTextFromNum returns a text representation of a BIFF version number.
func BiffTextFromNum(num int) string {
	if text, ok := biffTextFromNum[num]; ok {
		return text
	}
	return fmt.Sprintf("Unknown(%d)", num)
}

// ErrorTextFromCode maps cached formula error codes to their text.
var ErrorTextFromCode = map[byte]string{
	0x00: "#NULL!",  // Intersection of two cell ranges is empty
	0x07: "#DIV/0!", // Division by zero
	0x0F: "#VALUE!", // Wrong type of operand
	0x17: "#REF!",   // Illegal or deleted cell reference
	0x1D: "#NAME?",  // Wrong function or range name
	0x24: "#NUM!",   // Value range overflow
	0x2A: "#N/A",    // Argument or function not available
}

// BOF substream types
const (
	XL_WORKBOOK_GLOBALS    = 0x5
	XL_VB_MODULE           = 0x6
	XL_WORKSHEET           = 0x10
	XL_CHART               = 0x20
	XL_MACROSHEET          = 0x40
	XL_WORKBOOK_GLOBALS_4W = 0x100
)

// BOUNDSHEET sheet types
const (
	XL_BOUNDSHEET_WORKSHEET = 0x00
	XL_BOUNDSHEET_CHART     = 0x02
	XL_BOUNDSHEET_VB_MODULE = 0x06
)

// MaxRecordDataSize is the largest payload a single BIFF8 frame may carry.
const MaxRecordDataSize = 8224

// BIFF record type constants
const (
	XL_ARRAY                 = 0x0221
	XL_BLANK                 = 0x0201
	XL_BOF                   = 0x0809
	XL_BOF_B2                = 0x0009
	XL_BOF_B3                = 0x0209
	XL_BOF_B4                = 0x0409
	XL_BOOLERR               = 0x0205
	XL_BOUNDSHEET            = 0x85
	XL_CF                    = 0x01B1
	XL_CF12                  = 0x087A
	XL_CODEPAGE              = 0x42
	XL_COLINFO               = 0x7D
	XL_CONDFMT               = 0x01B0
	XL_CONDFMT12             = 0x0879
	XL_CONTINUE              = 0x3c
	XL_COUNTRY               = 0x8C
	XL_DATEMODE              = 0x22
	XL_DBCELL                = 0xD7
	XL_DEFAULTROWHEIGHT      = 0x0225
	XL_DEFCOLWIDTH           = 0x55
	XL_DIMENSION             = 0x200
	XL_DV                    = 0x01BE
	XL_DVAL                  = 0x01B2
	XL_EOF                   = 0x0a
	XL_EXTERNNAME            = 0x23
	XL_EXTERNSHEET           = 0x17
	XL_EXTSST                = 0xff
	XL_FEAT11                = 0x872
	XL_FILELOCK              = 0x195
	XL_FILEPASS              = 0x2f
	XL_FONT                  = 0x31
	XL_FORMAT                = 0x41e
	XL_FORMULA               = 0x6
	XL_GCW                   = 0xab
	XL_HLINK                 = 0x01B8
	XL_INDEX                 = 0x20b
	XL_INTERFACEEND          = 0xE2
	XL_INTERFACEHDR          = 0xE1
	XL_LABEL                 = 0x204
	XL_LABELSST              = 0xfd
	XL_MERGEDCELLS           = 0xE5
	XL_MSO_DRAWING           = 0x00EC
	XL_MSO_DRAWING_GROUP     = 0x00EB
	XL_MSO_DRAWING_SELECTION = 0x00ED
	XL_MULBLANK              = 0xbe
	XL_MULRK                 = 0xbd
	XL_NAME                  = 0x18
	XL_NOTE                  = 0x1c
	XL_NUMBER                = 0x203
	XL_OBJ                   = 0x5D
	XL_PALETTE               = 0x92
	XL_PANE                  = 0x41
	XL_QUICKTIP              = 0x0800
	XL_RK                    = 0x27e
	XL_ROW                   = 0x208
	XL_RRDHEAD               = 0x138
	XL_RRDINFO               = 0x196
	XL_SELECTION             = 0x1D
	XL_SHEETPR               = 0x81
	XL_SHRFMLA               = 0x04bc
	XL_SST                   = 0xfc
	XL_STRING                = 0x207
	XL_STYLE                 = 0x293
	XL_SUPBOOK               = 0x1AE
	XL_TXO                   = 0x1b6
	XL_USREXCL               = 0x194
	XL_WINDOW1               = 0x3D
	XL_WINDOW2               = 0x023E
	XL_WRITEACCESS           = 0x5C
	XL_XF                    = 0xe0
)

var boflen = map[int]int{
	0x0809: 8,
	0x0409: 6,
	0x0209: 6,
	0x0009: 4,
}

// isBOF reports whether sid opens a substream in any BIFF version.
func isBOF(sid uint16) bool {
	_, ok := boflen[int(sid)]
	return ok
}

// neverEncrypted lists records whose payload is stored in clear text in an
// RC4 protected stream.
var neverEncrypted = map[uint16]bool{
	XL_BOF:          true,
	XL_FILEPASS:     true,
	XL_USREXCL:      true,
	XL_FILELOCK:     true,
	XL_INTERFACEHDR: true,
	XL_RRDINFO:      true,
	XL_RRDHEAD:      true,
}

var sidNames = map[uint16]string{
	XL_ARRAY:                 "ARRAY",
	XL_BLANK:                 "BLANK",
	XL_BOF:                   "BOF",
	XL_BOF_B2:                "BOF_B2",
	XL_BOF_B3:                "BOF_B3",
	XL_BOF_B4:                "BOF_B4",
	XL_BOOLERR:               "BOOLERR",
	XL_BOUNDSHEET:            "BOUNDSHEET",
	XL_CF:                    "CF",
	XL_CF12:                  "CF12",
	XL_CODEPAGE:              "CODEPAGE",
	XL_COLINFO:               "COLINFO",
	XL_CONDFMT:               "CONDFMT",
	XL_CONDFMT12:             "CONDFMT12",
	XL_CONTINUE:              "CONTINUE",
	XL_COUNTRY:               "COUNTRY",
	XL_DATEMODE:              "DATEMODE",
	XL_DBCELL:                "DBCELL",
	XL_DEFAULTROWHEIGHT:      "DEFAULTROWHEIGHT",
	XL_DEFCOLWIDTH:           "DEFCOLWIDTH",
	XL_DIMENSION:             "DIMENSION",
	XL_DV:                    "DV",
	XL_DVAL:                  "DVAL",
	XL_EOF:                   "EOF",
	XL_EXTERNNAME:            "EXTERNNAME",
	XL_EXTERNSHEET:           "EXTERNSHEET",
	XL_EXTSST:                "EXTSST",
	XL_FEAT11:                "FEAT11",
	XL_FILELOCK:              "FILELOCK",
	XL_FILEPASS:              "FILEPASS",
	XL_FONT:                  "FONT",
	XL_FORMAT:                "FORMAT",
	XL_FORMULA:               "FORMULA",
	XL_GCW:                   "GCW",
	XL_HLINK:                 "HLINK",
	XL_INDEX:                 "INDEX",
	XL_INTERFACEEND:          "INTERFACEEND",
	XL_INTERFACEHDR:          "INTERFACEHDR",
	XL_LABEL:                 "LABEL",
	XL_LABELSST:              "LABELSST",
	XL_MERGEDCELLS:           "MERGEDCELLS",
	XL_MSO_DRAWING:           "MSODRAWING",
	XL_MSO_DRAWING_GROUP:     "MSODRAWINGGROUP",
	XL_MSO_DRAWING_SELECTION: "MSODRAWINGSELECTION",
	XL_MULBLANK:              "MULBLANK",
	XL_MULRK:                 "MULRK",
	XL_NAME:                  "NAME",
	XL_NOTE:                  "NOTE",
	XL_NUMBER:                "NUMBER",
	XL_OBJ:                   "OBJ",
	XL_PALETTE:               "PALETTE",
	XL_PANE:                  "PANE",
	XL_QUICKTIP:              "QUICKTIP",
	XL_RK:                    "RK",
	XL_ROW:                   "ROW",
	XL_RRDHEAD:               "RRDHEAD",
	XL_RRDINFO:               "RRDINFO",
	XL_SELECTION:             "SELECTION",
	XL_SHEETPR:               "SHEETPR",
	XL_SHRFMLA:               "SHRFMLA",
	XL_SST:                   "SST",
	XL_STRING:                "STRING",
	XL_STYLE:                 "STYLE",
	XL_SUPBOOK:               "SUPBOOK",
	XL_TXO:                   "TXO",
	XL_USREXCL:               "USREXCL",
	XL_WINDOW1:               "WINDOW1",
	XL_WINDOW2:               "WINDOW2",
	XL_WRITEACCESS:           "WRITEACCESS",
	XL_XF:                    "XF",
}

// RecordName returns the conventional name of a record type, or a hex
// placeholder for unnamed types.
func RecordName(sid uint16) string {
	if name, ok := sidNames[sid]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%04X", sid)
}
