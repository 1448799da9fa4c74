package biff

import (
	"log/slog"

	"github.com/yamitzky/biffkit-go/codec"
)

// RecordVisitor receives records in stream order.
type RecordVisitor func(r Record) error

// RecordAggregate is one item of a substream: a plain record or a group of
// records that belong to one feature. Visiting its contained records yields
// them in the order they are written.
type RecordAggregate interface {
	VisitContainedRecords(v RecordVisitor) error
}

// SingleRecord wraps a record that is not part of an aggregate.
type SingleRecord struct {
	Record
}

func (s SingleRecord) VisitContainedRecords(v RecordVisitor) error {
	return v(s.Record)
}

// RecordStream hands out records one at a time to aggregate readers.
type RecordStream struct {
	records []Record
	pos     int
}

// NewRecordStream returns a stream positioned at the first record.
func NewRecordStream(records []Record) *RecordStream {
	return &RecordStream{records: records}
}

// HasNext reports whether a record is left.
func (rs *RecordStream) HasNext() bool { return rs.pos < len(rs.records) }

// PeekNextSid returns the type of the next record, or -1 at the end.
func (rs *RecordStream) PeekNextSid() int {
	if !rs.HasNext() {
		return -1
	}
	return int(rs.records[rs.pos].Sid())
}

// Peek returns the next record without consuming it, or nil at the end.
func (rs *RecordStream) Peek() Record {
	if !rs.HasNext() {
		return nil
	}
	return rs.records[rs.pos]
}

// GetNext consumes the next record. It returns nil at the end.
func (rs *RecordStream) GetNext() Record {
	if !rs.HasNext() {
		return nil
	}
	r := rs.records[rs.pos]
	rs.pos++
	return r
}

// DataValidityTable is the DVAL header of a sheet followed by its DV
// records.
type DataValidityTable struct {
	Header      *DVALRecord
	Validations []*DVRecord

	// fromStream is set for tables read from a stream, whose header is
	// written even when no validation is left.
	fromStream bool
	// synced is the number of validations when DVCount was last read or
	// set. While it still matches, DVCount is written as it stands.
	synced int
}

// NewDataValidityTable returns an empty table. It writes nothing until a
// validation is added.
func NewDataValidityTable() *DataValidityTable {
	return &DataValidityTable{Header: NewDVALRecord()}
}

func readDataValidityTable(rs *RecordStream, logger *slog.Logger) *DataValidityTable {
	t := &DataValidityTable{Header: rs.GetNext().(*DVALRecord), fromStream: true}
	for {
		dv, ok := rs.Peek().(*DVRecord)
		if !ok {
			break
		}
		t.Validations = append(t.Validations, dv)
		rs.GetNext()
	}
	t.synced = len(t.Validations)
	if int(t.Header.DVCount) != len(t.Validations) {
		logger.Warn("data validation count does not match its DV records", "declared", t.Header.DVCount, "found", len(t.Validations))
	}
	return t
}

// AddDataValidation appends dv and updates the header count.
func (t *DataValidityTable) AddDataValidation(dv *DVRecord) {
	t.Validations = append(t.Validations, dv)
	t.Header.DVCount = uint32(len(t.Validations))
	t.synced = len(t.Validations)
}

func (t *DataValidityTable) VisitContainedRecords(v RecordVisitor) error {
	if len(t.Validations) == 0 && !t.fromStream {
		return nil
	}
	if len(t.Validations) != t.synced {
		t.Header.DVCount = uint32(len(t.Validations))
	}
	if err := v(t.Header); err != nil {
		return err
	}
	for _, dv := range t.Validations {
		if err := v(dv); err != nil {
			return err
		}
	}
	return nil
}

// CFHeader is a conditional formatting header: *CFHeaderRecord or
// *CFHeader12Record.
type CFHeader interface {
	Record
	header() *CFHeaderRecord
}

// CFRule is a conditional formatting rule: *CFRuleRecord or
// *CFRule12Record.
type CFRule interface {
	Record
	base() *CFRuleBase
}

// MaxLegacyCFRules is the rule limit of a CONDFMT header.
const MaxLegacyCFRules = 3

// CFRecordsAggregate is one conditional formatting: a header and the rules
// that follow it, in precedence order.
type CFRecordsAggregate struct {
	Header CFHeader
	Rules  []CFRule

	// synced is the number of rules when NumCF was last read or set.
	// While it still matches, NumCF is written as it stands.
	synced int
}

// NewCFRecordsAggregate builds a formatting for regions. CF12 rules get a
// CONDFMT12 header, legacy rules a CONDFMT header; the two kinds cannot be
// mixed.
func NewCFRecordsAggregate(regions []CellRangeAddress, rules []CFRule) (*CFRecordsAggregate, error) {
	if len(rules) == 0 {
		return nil, codec.Errorf(codec.ErrUnsupportedFeature, "conditional formatting needs at least one rule")
	}
	var h CFHeader
	if _, ok := rules[0].(*CFRule12Record); ok {
		h = &CFHeader12Record{Future: FtrHeader{RecordType: XL_CONDFMT12}}
	} else {
		h = &CFHeaderRecord{}
	}
	h.header().SetRegions(regions)
	agg := &CFRecordsAggregate{Header: h}
	for _, r := range rules {
		if err := agg.AddRule(r); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

func readCFRecordsAggregate(rs *RecordStream, logger *slog.Logger) *CFRecordsAggregate {
	agg := &CFRecordsAggregate{Header: rs.GetNext().(CFHeader)}
	for {
		rule, ok := rs.Peek().(CFRule)
		if !ok || !agg.accepts(rule) {
			break
		}
		agg.Rules = append(agg.Rules, rule)
		rs.GetNext()
	}
	agg.synced = len(agg.Rules)
	if int(agg.Header.header().NumCF) != len(agg.Rules) {
		logger.Warn("conditional formatting rule count does not match its rules", "sid", agg.Header.Sid(), "declared", agg.Header.header().NumCF, "found", len(agg.Rules))
	}
	return agg
}

func (agg *CFRecordsAggregate) legacy() bool {
	_, ok := agg.Header.(*CFHeaderRecord)
	return ok
}

func (agg *CFRecordsAggregate) accepts(rule CFRule) bool {
	_, is12 := rule.(*CFRule12Record)
	return is12 != agg.legacy()
}

// AddRule appends rule with the lowest precedence and updates the header
// count.
func (agg *CFRecordsAggregate) AddRule(rule CFRule) error {
	if !agg.accepts(rule) {
		return codec.Errorf(codec.ErrUnsupportedFeature, "%s rule cannot follow a %s header", RecordName(rule.Sid()), RecordName(agg.Header.Sid()))
	}
	if agg.legacy() && len(agg.Rules) >= MaxLegacyCFRules {
		return codec.Errorf(codec.ErrUnsupportedFeature, "a CONDFMT header holds at most %d rules", MaxLegacyCFRules)
	}
	agg.Rules = append(agg.Rules, rule)
	agg.Header.header().NumCF = uint16(len(agg.Rules))
	agg.synced = len(agg.Rules)
	return nil
}

// Regions returns the cell regions the formatting applies to.
func (agg *CFRecordsAggregate) Regions() CellRangeAddressList {
	return agg.Header.header().Regions
}

func (agg *CFRecordsAggregate) VisitContainedRecords(v RecordVisitor) error {
	if len(agg.Rules) != agg.synced {
		agg.Header.header().NumCF = uint16(len(agg.Rules))
	}
	if err := v(agg.Header); err != nil {
		return err
	}
	for _, r := range agg.Rules {
		if err := v(r); err != nil {
			return err
		}
	}
	return nil
}

// ConditionalFormattingTable holds the conditional formattings of a sheet
// in stream order.
type ConditionalFormattingTable struct {
	Formattings []*CFRecordsAggregate
}

func readConditionalFormattingTable(rs *RecordStream, logger *slog.Logger) *ConditionalFormattingTable {
	t := &ConditionalFormattingTable{}
	for {
		if _, ok := rs.Peek().(CFHeader); !ok {
			break
		}
		t.Formattings = append(t.Formattings, readCFRecordsAggregate(rs, logger))
	}
	return t
}

// Add appends a formatting and returns its index.
func (t *ConditionalFormattingTable) Add(agg *CFRecordsAggregate) int {
	t.Formattings = append(t.Formattings, agg)
	return len(t.Formattings) - 1
}

// Remove deletes the formatting at index i.
func (t *ConditionalFormattingTable) Remove(i int) {
	if i < 0 || i >= len(t.Formattings) {
		return
	}
	t.Formattings = append(t.Formattings[:i], t.Formattings[i+1:]...)
}

func (t *ConditionalFormattingTable) VisitContainedRecords(v RecordVisitor) error {
	for _, agg := range t.Formattings {
		if err := agg.VisitContainedRecords(v); err != nil {
			return err
		}
	}
	return nil
}
