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

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FromRecords creates a table from text records, where the first record
// holds the column names. Empty cells and cells equal to any of the na
// values are treated as missing. A column is numeric if all of its
// non-missing cells can be parsed as numbers; otherwise it holds text.
// Records shorter than the header are padded with missing values.
func FromRecords(records [][]string, na ...string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("table: no header record")
	}
	header := records[0]
	body := records[1:]
	missing := func(s string) bool {
		if strings.TrimSpace(s) == "" {
			return true
		}
		for _, n := range na {
			if s == n {
				return true
			}
		}
		return false
	}
	cell := func(r []string, j int) string {
		if j < len(r) {
			return r[j]
		}
		return ""
	}
	t := &Table{rows: len(body)}
	for j, name := range header {
		numeric := true
		vals := make([]float64, len(body))
		for i, r := range body {
			s := cell(r, j)
			if missing(s) {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				numeric = false
				break
			}
			vals[i] = v
		}
		if numeric {
			t.cols = append(t.cols, NewFloats(name, vals...))
			continue
		}
		strs := make([]string, len(body))
		for i, r := range body {
			if s := cell(r, j); !missing(s) {
				strs[i] = s
			}
		}
		t.cols = append(t.cols, NewStrings(name, strs...))
	}
	return t, nil
}

// Records returns a text representation of t, with the column names
// in the first record. Missing values are written as empty cells.
func (t *Table) Records() [][]string {
	o := make([][]string, 0, t.rows+1)
	o = append(o, t.Names())
	for i := 0; i < t.rows; i++ {
		o = append(o, t.Row(i))
	}
	return o
}

// ReadCSV reads a comma-separated table with a header line from r.
// See FromRecords for the handling of missing values.
func ReadCSV(r io.Reader, na ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: reading csv: %v", err)
	}
	return FromRecords(records, na...)
}

// WriteCSV writes t to w in comma-separated format.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("table: writing csv: %v", err)
	}
	return nil
}
