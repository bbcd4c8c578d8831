/*
Copyright © 2018 the plantdata authors.
This file is part of plantdata.

plantdata is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plantdata is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plantdata.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package table holds an in-memory, column-oriented representation of
// tabular energy data. Tables are never modified in place: every operation
// returns a new Table so that callers can keep using their inputs.
package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind specifies the type of data held in a Column.
type Kind int

// These are the supported column kinds.
const (
	// Float columns hold numbers. Missing values are represented by NaN.
	Float Kind = iota

	// String columns hold text. Missing values are represented by "".
	String
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named, typed column of data. Only the slice matching Kind
// is used.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NewFloats returns a numeric column.
func NewFloats(name string, v ...float64) *Column {
	return &Column{Name: name, Kind: Float, Floats: v}
}

// NewStrings returns a text column.
func NewStrings(name string, v ...string) *Column {
	return &Column{Name: name, Kind: String, Strings: v}
}

// Len returns the number of values in c.
func (c *Column) Len() int {
	if c.Kind == Float {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsNA returns whether the value at row i is missing.
func (c *Column) IsNA(i int) bool {
	if c.Kind == Float {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// Key returns a text representation of the value at row i suitable for
// use as a map key. Missing values are represented by "".
func (c *Column) Key(i int) string {
	if c.Kind == String {
		return c.Strings[i]
	}
	return formatFloat(c.Floats[i])
}

// Less returns whether the value at row i sorts before the value at row j.
// Numbers are ordered numerically and text lexicographically. Missing values
// sort after all others.
func (c *Column) Less(i, j int) bool {
	if c.IsNA(i) {
		return false
	}
	if c.IsNA(j) {
		return true
	}
	if c.Kind == Float {
		return c.Floats[i] < c.Floats[j]
	}
	return c.Strings[i] < c.Strings[j]
}

// take returns a new column holding the values at the given rows.
func (c *Column) take(rows []int) *Column {
	o := &Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Float {
		o.Floats = make([]float64, len(rows))
		for i, r := range rows {
			o.Floats[i] = c.Floats[r]
		}
		return o
	}
	o.Strings = make([]string, len(rows))
	for i, r := range rows {
		o.Strings[i] = c.Strings[r]
	}
	return o
}

func (c *Column) clone() *Column {
	o := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		o.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		o.Strings = append([]string(nil), c.Strings...)
	}
	return o
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Table is an ordered set of named columns of equal length.
type Table struct {
	cols []*Column
	rows int
}

// New creates a new table from the given columns, which must all have
// the same length. The columns are copied.
func New(cols ...*Column) (*Table, error) {
	t := &Table{cols: make([]*Column, len(cols))}
	for i, c := range cols {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("table: column %q has %d rows; want %d", c.Name, c.Len(), t.rows)
		}
		t.cols[i] = c.clone()
	}
	return t, nil
}

// NumRows returns the number of rows in t.
func (t *Table) NumRows() int { return t.rows }

// Names returns the column names of t, in order.
func (t *Table) Names() []string {
	o := make([]string, len(t.cols))
	for i, c := range t.cols {
		o[i] = c.Name
	}
	return o
}

// Has returns whether t has a column with the given name.
func (t *Table) Has(name string) bool {
	return t.index(name) >= 0
}

func (t *Table) index(name string) int {
	for i, c := range t.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Col returns the column with the given name. When more than one column
// shares the name, the first one is returned. The returned column must
// not be modified.
func (t *Table) Col(name string) (*Column, error) {
	i := t.index(name)
	if i < 0 {
		return nil, &MissingColumnError{Column: name}
	}
	return t.cols[i], nil
}

// Floats returns a copy of the values in the numeric column with the
// given name.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Float {
		return nil, &KindError{Column: name, Want: Float}
	}
	return append([]float64(nil), c.Floats...), nil
}

// Strings returns a copy of the values in the text column with the
// given name.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != String {
		return nil, &KindError{Column: name, Want: String}
	}
	return append([]string(nil), c.Strings...), nil
}

// Rename returns a copy of t where the column named from is called to.
func (t *Table) Rename(from, to string) (*Table, error) {
	i := t.index(from)
	if i < 0 {
		return nil, &MissingColumnError{Column: from}
	}
	o := t.shallow()
	c := *o.cols[i]
	c.Name = to
	o.cols[i] = &c
	return o, nil
}

// WithNames returns a copy of t with all columns renamed to names, which
// must have one entry per column.
func (t *Table) WithNames(names []string) (*Table, error) {
	if len(names) != len(t.cols) {
		return nil, fmt.Errorf("table: %d names for %d columns", len(names), len(t.cols))
	}
	o := t.shallow()
	for i, n := range names {
		c := *o.cols[i]
		c.Name = n
		o.cols[i] = &c
	}
	return o, nil
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	o := &Table{rows: t.rows, cols: make([]*Column, len(names))}
	for i, n := range names {
		c, err := t.Col(n)
		if err != nil {
			return nil, err
		}
		o.cols[i] = c
	}
	return o, nil
}

// AddColumn returns a copy of t with c appended. If t already has a column
// with the same name, it is replaced.
func (t *Table) AddColumn(c *Column) (*Table, error) {
	if len(t.cols) > 0 && c.Len() != t.rows {
		return nil, fmt.Errorf("table: column %q has %d rows; want %d", c.Name, c.Len(), t.rows)
	}
	o := t.shallow()
	o.rows = c.Len()
	if i := t.index(c.Name); i >= 0 {
		o.cols[i] = c.clone()
		return o, nil
	}
	o.cols = append(o.cols, c.clone())
	return o, nil
}

// Filter returns a table with only the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var rows []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.take(rows)
}

// Row returns the text representation of row i.
func (t *Table) Row(i int) []string {
	o := make([]string, len(t.cols))
	for j, c := range t.cols {
		o[j] = c.Key(i)
	}
	return o
}

func (t *Table) take(rows []int) *Table {
	o := &Table{rows: len(rows), cols: make([]*Column, len(t.cols))}
	for i, c := range t.cols {
		o.cols[i] = c.take(rows)
	}
	return o
}

// shallow returns a copy of t that shares column data with t. Columns of
// a table are never modified after creation, so sharing is safe.
func (t *Table) shallow() *Table {
	return &Table{rows: t.rows, cols: append([]*Column(nil), t.cols...)}
}
