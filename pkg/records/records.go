// Package records defines the roster data model shared by the loader, the
// reconciler and the writers.
//
// A Dataset is an ordered list of Records plus the header it was read with.
// Records keep the four columns the reconciler works on as typed fields and
// carry every other column verbatim in Extra, so a dataset can be written
// back with exactly the columns it was read with.
package records

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/roster/pkg/constants"
)

// Record is a single roster row.
type Record struct {
	// Index is the 0-based position of the row in the loaded file. It never
	// changes once loaded and identifies the record across passes.
	Index int `json:"index" yaml:"index"`

	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	MemberID  string `json:"member_id,omitempty" yaml:"member_id,omitempty"`

	// Extra holds passthrough columns keyed by header name. When a header has
	// duplicate names the last value read wins.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Row returns the external row number of the record.
func (r Record) Row() int {
	return RowNumber(r.Index)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	if r.Extra != nil {
		c.Extra = maps.Clone(r.Extra)
	}
	return c
}

// Get returns the value of a column by header name.
func (r Record) Get(column string) string {
	switch column {
	case constants.ColumnFirstName:
		return r.FirstName
	case constants.ColumnLastName:
		return r.LastName
	case constants.ColumnEmail:
		return r.Email
	case constants.ColumnMemberID:
		return r.MemberID
	}
	return r.Extra[column]
}

// Set assigns the value of a column by header name.
func (r *Record) Set(column, value string) {
	switch column {
	case constants.ColumnFirstName:
		r.FirstName = value
	case constants.ColumnLastName:
		r.LastName = value
	case constants.ColumnEmail:
		r.Email = value
	case constants.ColumnMemberID:
		r.MemberID = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[column] = value
	}
}

// Dataset is an ordered collection of records sharing one header.
type Dataset struct {
	Header  []string `json:"header" yaml:"header"`
	Records []Record `json:"records" yaml:"records"`
}

// New builds a dataset from a header and raw rows. Row i becomes the record
// with Index i. Rows shorter than the header are padded with empty values.
func New(header []string, rows [][]string) *Dataset {
	ds := &Dataset{
		Header:  slices.Clone(header),
		Records: make([]Record, 0, len(rows)),
	}
	for i, row := range rows {
		rec := Record{Index: i}
		for col, name := range header {
			var value string
			if col < len(row) {
				value = row[col]
			}
			rec.Set(name, value)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	c := &Dataset{
		Header:  slices.Clone(d.Header),
		Records: make([]Record, len(d.Records)),
	}
	for i, rec := range d.Records {
		c.Records[i] = rec.Clone()
	}
	return c
}

// Values rebuilds a record as a row in header order.
func (d *Dataset) Values(rec Record) []string {
	row := make([]string, len(d.Header))
	for i, name := range d.Header {
		row[i] = rec.Get(name)
	}
	return row
}

// Rows returns every record as a row in header order.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, d.Len())
	for _, rec := range d.Records {
		rows = append(rows, d.Values(rec))
	}
	return rows
}

// Without returns a new dataset excluding the records whose Index is marked
// in removed. Surviving records keep their relative order.
func (d *Dataset) Without(removed map[int]bool) *Dataset {
	out := &Dataset{
		Header:  slices.Clone(d.Header),
		Records: make([]Record, 0, len(d.Records)),
	}
	for _, rec := range d.Records {
		if removed[rec.Index] {
			continue
		}
		out.Records = append(out.Records, rec.Clone())
	}
	return out
}

// HasColumn reports whether the header contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Header, name)
}

// RowNumber converts a 0-based record index to the row number shown in a
// spreadsheet.
func RowNumber(index int) int {
	return index + constants.RowOffset
}

// RequiredColumns returns the columns a pipeline needs. Email is required
// only when a pipeline runs an email pass.
func RequiredColumns(withEmail bool) []string {
	cols := []string{constants.ColumnFirstName, constants.ColumnLastName}
	if withEmail {
		cols = append(cols, constants.ColumnEmail)
	}
	return append(cols, constants.ColumnMemberID)
}

var identifierHints = []string{"id", "ggs", "member", "card"}

// IsIdentifierColumn reports whether a column holds identifiers that must be
// read and written as text.
func IsIdentifierColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range identifierHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
