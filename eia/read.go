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

package eia

import (
	"context"
	"fmt"

	"github.com/spatialmodel/plantdata/clean"
	"github.com/spatialmodel/plantdata/sheets"
	"github.com/spatialmodel/plantdata/table"
)

// CapacityOptions returns the location of the generator table in
// an EIA-860M workbook.
func CapacityOptions() sheets.Options {
	return sheets.Options{
		Sheet:      "Operable",
		HeaderRow:  1,
		SkipFooter: 1,
		NA:         []string{" "},
	}
}

// GenerationOptions returns the location of the generation and fuel
// table in an EIA-923 workbook.
func GenerationOptions() sheets.Options {
	return sheets.Options{
		HeaderRow: 5,
		NA:        []string{"."},
	}
}

// Read reads a table from the workbook at path and normalizes its
// column names.
func Read(ctx context.Context, wb *sheets.Workbooks, path string, o sheets.Options) (*table.Table, error) {
	t, err := wb.Table(ctx, path, o)
	if err != nil {
		return nil, fmt.Errorf("eia: %v", err)
	}
	return clean.Columns(t)
}
