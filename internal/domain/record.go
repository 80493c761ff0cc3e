package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical on-disk date representation
const DateLayout = "2006-01-02"

// dateLayouts are accepted when reading table files
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Date is a calendar date that may be unknown.
// Valid=false is the unknown-date marker for values that could not be parsed.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate wraps t as a valid date truncated to the day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ParseDate parses s with any accepted layout
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t)
		}
	}
	return Date{}
}

// String returns the canonical form, or "" for the unknown date
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Record is one table row keyed by column name.
// Values are stored in canonical text form.
type Record map[string]string

// ID returns the surrogate id, or 0 when absent
func (r Record) ID() int64 {
	id, err := strconv.ParseInt(r[IDColumn], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Date returns the typed value of a date column
func (r Record) Date(column string) Date {
	return ParseDate(r[column])
}

// Clone returns a shallow copy
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without returns a copy with the given columns removed
func (r Record) Without(columns ...string) Record {
	out := r.Clone()
	for _, c := range columns {
		delete(out, c)
	}
	return out
}

// Table is the full contents of one table file
type Table struct {
	Columns  []string
	Name     string
	Records  []Record
	Warnings []string
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// FindByID returns the record with the given id
func (t *Table) FindByID(id int64) (Record, bool) {
	for _, r := range t.Records {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Find returns the first record whose column equals value
func (t *Table) Find(column, value string) (Record, bool) {
	for _, r := range t.Records {
		if r[column] == value {
			return r, true
		}
	}
	return nil, false
}

// TableFile is a table file on local disk
type TableFile struct {
	Name string
	Path string
}
