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

// Package epa imports power plant emissions data from the U.S.
// Environmental Protection Agency's Air Markets Program Data.
package epa

import (
	"fmt"
	"io"
	"strings"

	"github.com/spatialmodel/plantdata/clean"
	"github.com/spatialmodel/plantdata/table"
	"github.com/spatialmodel/plantdata/units"
)

// PlantID is the name of the plant identifier column in the output of
// Emissions.
const PlantID = "plant_id"

// suffixes maps column name endings to the mass units they indicate.
// Longer suffixes must come first.
var suffixes = []struct {
	suffix, unit string
}{
	{"_short_tons", "short_tons"},
	{"_pounds", "pounds"},
	{"_tons", "tons"},
	{"_lbs", "lbs"},
	{"_kg", "kg"},
}

// Config specifies how emissions records are imported.
type Config struct {
	// PlantID is the name of the plant identifier column after column
	// name normalization. Default "facility_id_orispl".
	PlantID string

	// Keep specifies that mass columns should be left in their original
	// units rather than converted to kilograms.
	Keep bool
}

// ReadCSV reads an EPA emissions file in comma-separated format.
func ReadCSV(r io.Reader) (*table.Table, error) {
	t, err := table.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("epa: %v", err)
	}
	return t, nil
}

// Emissions cleans a table of emissions records. It normalizes the
// column names, renames the plant identifier column to "plant_id", and
// converts each numeric column whose name ends in a mass unit, for
// example "so2_tons", to kilograms, replacing the unit in the column name
// with "kg". It is an error for the converted name to already be in use,
// for example when the input has both "so2_tons" and "so2_kg" columns.
func Emissions(t *table.Table, c Config) (*table.Table, error) {
	if c.PlantID == "" {
		c.PlantID = "facility_id_orispl"
	}
	t, err := clean.Columns(t)
	if err != nil {
		return nil, err
	}
	if t, err = t.Rename(clean.Name(c.PlantID), PlantID); err != nil {
		return nil, err
	}
	if c.Keep {
		return t, nil
	}
	for _, name := range t.Names() {
		col, err := t.Col(name)
		if err != nil {
			return nil, err
		}
		if col.Kind != table.Float {
			continue
		}
		for _, s := range suffixes {
			if !strings.HasSuffix(name, s.suffix) || len(name) == len(s.suffix) {
				continue
			}
			stem := strings.TrimSuffix(name, s.suffix)
			if to := stem + "_kg"; to != name && t.Has(to) {
				return nil, fmt.Errorf("epa: converting column %s to kilograms: column %s already exists", name, to)
			}
			kg, err := units.ConvertSlice(col.Floats, s.unit, "kg")
			if err != nil {
				return nil, err
			}
			if t, err = t.AddColumn(table.NewFloats(name, kg...)); err != nil {
				return nil, err
			}
			if t, err = t.Rename(name, stem+"_kg"); err != nil {
				return nil, err
			}
			break
		}
	}
	return t, nil
}
