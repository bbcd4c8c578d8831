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

// Package sheets reads tables from Microsoft Excel workbooks.
package sheets

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/plantdata/table"
	"github.com/tealeg/xlsx"
)

// Options specify where a table is located within a workbook.
type Options struct {
	// Sheet is the name of the sheet holding the table. If empty,
	// the first sheet is used.
	Sheet string

	// HeaderRow is the zero-based index of the row holding the column
	// names. Rows above it are ignored.
	HeaderRow int

	// SkipFooter is the number of data rows at the end of the sheet
	// to ignore.
	SkipFooter int

	// NA holds cell values, in addition to empty cells, that represent
	// missing data.
	NA []string
}

// Workbooks opens Microsoft Excel files, keeping recently opened files in
// memory to avoid reading the same file more than once. It is safe for
// concurrent use.
type Workbooks struct {
	cache *requestcache.Cache
}

// NewWorkbooks returns a new Workbooks that keeps up to maxEntries
// files in memory.
func NewWorkbooks(maxEntries int) *Workbooks {
	return &Workbooks{
		cache: requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			filename := req.(string)
			f, err := xlsx.OpenFile(filename)
			if err != nil {
				return nil, fmt.Errorf("sheets: opening xlsx file: %v", err)
			}
			return f, nil
		}, runtime.GOMAXPROCS(-1), requestcache.Memory(maxEntries)),
	}
}

// Open returns the workbook at the given path.
func (w *Workbooks) Open(ctx context.Context, path string) (*xlsx.File, error) {
	r := w.cache.NewRequest(ctx, path, path)
	fI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return fI.(*xlsx.File), nil
}

// Table reads a table from the workbook at the given path. Columns
// extend to the last non-empty cell of the header row. Rows where all
// cells are empty are ignored.
func (w *Workbooks) Table(ctx context.Context, path string, o Options) (*table.Table, error) {
	f, err := w.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if o.HeaderRow < 0 || o.SkipFooter < 0 {
		return nil, fmt.Errorf("sheets: reading %s: header row (%d) and footer rows (%d) must not be negative",
			path, o.HeaderRow, o.SkipFooter)
	}
	s, err := sheet(f, o.Sheet)
	if err != nil {
		return nil, fmt.Errorf("sheets: reading %s: %v", path, err)
	}
	if o.HeaderRow >= len(s.Rows) {
		return nil, fmt.Errorf("sheets: reading %s: header row %d is beyond the last row (%d) of sheet %s",
			path, o.HeaderRow, len(s.Rows), s.Name)
	}

	ncol := 0
	for j := 0; s.Rows[o.HeaderRow] != nil && j < len(s.Rows[o.HeaderRow].Cells); j++ {
		if strings.TrimSpace(value(s, o.HeaderRow, j)) != "" {
			ncol = j + 1
		}
	}
	records := [][]string{row(s, o.HeaderRow, ncol)}
	for i := o.HeaderRow + 1; i < len(s.Rows); i++ {
		r := row(s, i, ncol)
		if empty(r) {
			continue
		}
		records = append(records, r)
	}
	if o.SkipFooter > 0 {
		n := len(records) - o.SkipFooter
		if n < 1 {
			n = 1
		}
		records = records[:n]
	}
	return table.FromRecords(records, o.NA...)
}

func sheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		return f.Sheets[0], nil
	}
	s, ok := f.Sheet[name]
	if !ok {
		return nil, fmt.Errorf("no sheet %s", name)
	}
	return s, nil
}

func row(s *xlsx.Sheet, i, ncol int) []string {
	o := make([]string, ncol)
	for j := range o {
		o[j] = value(s, i, j)
	}
	return o
}

// value returns the raw value of the cell at row i and column j, or ""
// if the cell does not exist. Unlike Sheet.Cell, it does not modify s.
func value(s *xlsx.Sheet, i, j int) string {
	if i >= len(s.Rows) || s.Rows[i] == nil {
		return ""
	}
	r := s.Rows[i]
	if j >= len(r.Cells) || r.Cells[j] == nil {
		return ""
	}
	return r.Cells[j].Value
}

func empty(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
