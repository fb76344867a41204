// Package table holds the in-memory tabular data model the profiler
// operates on, along with sources that build tables from CSV, JSON
// and Postgres inputs.
package table

import (
	"fmt"
)

// Column is an ordered sequence of cell values with a name unique
// within its table. Values are plain Go values: nil, bool, int64,
// float64, string or time.Time. Columns are read-only once profiling
// starts.
type Column struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}

// Len returns the number of rows in the column, missing included.
func (c *Column) Len() int {
	return len(c.Values)
}

// MachineType returns the generalized machine type across all
// non-missing values. A column whose values only generalize to string
// while not all being strings is reported as ObjectType, i.e. mixed
// incompatible.
func (c *Column) MachineType() ValueType {
	var g ValueType

	mixed := false

	for _, v := range c.Values {
		if IsMissing(v) {
			continue
		}

		t := TypeOf(v)

		if g == UnknownType {
			g = t
			continue
		}

		if t != g {
			g = GeneralizeType(g, t)

			// Distinct types that only merge at string share no real
			// machine type.
			if g == StringType {
				mixed = true
			}
		}
	}

	if g == UnknownType {
		return NullType
	}

	if g == StringType && mixed {
		return ObjectType
	}

	return g
}

// Table is a rectangular, column-major dataset. Index is optional; a
// non-default index (anything but 0..N-1) is treated as an ordinary
// column by the profiler.
type Table struct {
	Columns []*Column     `json:"columns"`
	Index   []interface{} `json:"index,omitempty"`
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// AddColumn appends a column. The caller is responsible for keeping
// the table rectangular; Validate checks it.
func (t *Table) AddColumn(name string, values []interface{}) *Column {
	c := &Column{
		Name:   name,
		Values: values,
	}

	t.Columns = append(t.Columns, c)

	return c
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// NumRows returns the row count of the first column. Zero for a table
// with no columns.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}

	return len(t.Columns[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Validate checks that the table is a genuine 2-D table: every column
// has the same length, names are unique and non-empty, and the index,
// if present, matches the row count.
func (t *Table) Validate() error {
	n := t.NumRows()

	seen := make(map[string]struct{}, len(t.Columns))

	for _, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("column with empty name")
		}

		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("duplicate column name: %s", c.Name)
		}

		seen[c.Name] = struct{}{}

		if len(c.Values) != n {
			return fmt.Errorf("column %s has %d rows, expected %d", c.Name, len(c.Values), n)
		}
	}

	if t.Index != nil && len(t.Index) != n {
		return fmt.Errorf("index has %d rows, expected %d", len(t.Index), n)
	}

	return nil
}

// DefaultIndex reports whether the index is absent or the default
// 0..N-1 integer sequence.
func (t *Table) DefaultIndex() bool {
	if t.Index == nil {
		return true
	}

	for i, v := range t.Index {
		switch x := v.(type) {
		case int:
			if x != i {
				return false
			}
		case int64:
			if x != int64(i) {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// ResetIndex prepends a non-default index as an ordinary column named
// "index" and clears it. No-op when the index is the default sequence.
func (t *Table) ResetIndex() {
	if t.DefaultIndex() {
		t.Index = nil
		return
	}

	c := &Column{
		Name:   "index",
		Values: t.Index,
	}

	t.Columns = append([]*Column{c}, t.Columns...)
	t.Index = nil
}
