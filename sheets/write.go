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

package sheets

import (
	"fmt"
	"math"
	"strings"

	"github.com/spatialmodel/plantdata/table"
	"github.com/tealeg/xlsx"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// SheetName returns a version of name that Excel accepts as a sheet
// name: the characters []:*?/\ are replaced with underscores and the
// result is truncated to 31 characters. An empty name becomes "Sheet1".
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if strings.TrimSpace(name) == "" {
		return "Sheet1"
	}
	return name
}

// WriteTable saves t as the only sheet of a new workbook at path.
// Missing values are written as empty cells. The sheet name is
// adjusted with SheetName.
func WriteTable(path, sheetName string, t *table.Table) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(SheetName(sheetName))
	if err != nil {
		return fmt.Errorf("sheets: %v", err)
	}
	r := s.AddRow()
	for _, n := range t.Names() {
		r.AddCell().SetString(n)
	}
	cols := make([]*table.Column, 0, len(t.Names()))
	for _, n := range t.Names() {
		c, err := t.Col(n)
		if err != nil {
			return err
		}
		cols = append(cols, c)
	}
	for i := 0; i < t.NumRows(); i++ {
		r := s.AddRow()
		for _, c := range cols {
			cell := r.AddCell()
			switch {
			case c.Kind == table.Float && !math.IsNaN(c.Floats[i]):
				cell.SetFloat(c.Floats[i])
			case c.Kind == table.String:
				cell.SetString(c.Strings[i])
			default:
				cell.SetString("")
			}
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("sheets: saving %s: %v", path, err)
	}
	return nil
}

// WriteRows saves rows of text as the only sheet of a new workbook at path.
// The sheet name is adjusted with SheetName.
func WriteRows(path, sheetName string, rows [][]string) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(SheetName(sheetName))
	if err != nil {
		return fmt.Errorf("sheets: %v", err)
	}
	for _, row := range rows {
		r := s.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("sheets: saving %s: %v", path, err)
	}
	return nil
}
