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

// Package eia reshapes and aggregates power plant data from the U.S.
// Energy Information Administration: monthly net generation from form
// EIA-923 and generator capacity from form EIA-860M.
package eia

import (
	"math"
	"strings"
	"time"

	"github.com/spatialmodel/plantdata/table"
)

// Month is the name of the month column created by Generation.
const Month = "month"

// PrimaryFuel is the name of the column holding each plant's primary fuel.
const PrimaryFuel = "primary_fuel"

// GenerationColumns holds the names of the columns used by Generation.
// Empty fields are set to their default values.
type GenerationColumns struct {
	// PlantID is the plant identifier column. Default "plant_id".
	PlantID string

	// Fuel is the fuel type column. Default "reported_fuel_type_code".
	Fuel string

	// NoFuel specifies that the input has no fuel type column, in which
	// case no primary fuel is assigned.
	NoFuel bool

	// Region is the NERC region column. It is used as an additional
	// grouping key if it is present in the input. Default "nerc_region".
	Region string

	// Marker is the text that identifies monthly net generation columns.
	// Default "netgen".
	Marker string

	// Value is the name of the net generation column in the output.
	// Default "net_gen".
	Value string
}

func (c GenerationColumns) withDefaults() GenerationColumns {
	if c.PlantID == "" {
		c.PlantID = "plant_id"
	}
	if c.Fuel == "" {
		c.Fuel = "reported_fuel_type_code"
	}
	if c.Region == "" {
		c.Region = "nerc_region"
	}
	if c.Marker == "" {
		c.Marker = "netgen"
	}
	if c.Value == "" {
		c.Value = "net_gen"
	}
	return c
}

// Generation converts a table of net generation with one column per month
// into a table with one row per plant and month. Generation is summed across
// fuel types, and each row is labeled with the plant's primary fuel: the fuel
// with the greatest total generation over all months in the input.
//
// The output holds the plant ID, the month as a number from 1 to 12, the
// NERC region if present in the input, the total net generation, and the
// primary fuel, and is sorted by plant ID and month. Month columns whose
// names are not calendar month names result in a missing month number.
func Generation(t *table.Table, c GenerationColumns) (*table.Table, error) {
	c = c.withDefaults()
	ids := []string{c.PlantID}
	if !c.NoFuel {
		ids = append(ids, c.Fuel)
	}
	for _, id := range ids {
		if !t.Has(id) {
			return nil, &table.MissingColumnError{Column: id}
		}
	}
	keys := []string{c.PlantID, Month}
	if t.Has(c.Region) {
		ids = append(ids, c.Region)
		keys = append(keys, c.Region)
	}

	var months []string
	for _, n := range t.Names() {
		if strings.Contains(n, c.Marker) {
			months = append(months, n)
		}
	}
	if len(months) == 0 {
		return nil, &table.MissingColumnError{Column: "*" + c.Marker + "*"}
	}

	long, err := t.Melt(ids, months, Month, c.Value)
	if err != nil {
		return nil, err
	}
	labels, err := long.Strings(Month)
	if err != nil {
		return nil, err
	}
	for i, l := range labels {
		// A column named only by the marker keeps its full name so that
		// it is grouped as an unknown month rather than a missing key.
		if m := strings.Trim(strings.Replace(l, c.Marker, "", 1), "_"); m != "" {
			labels[i] = m
		}
	}
	long, err = long.AddColumn(table.NewStrings(Month, labels...))
	if err != nil {
		return nil, err
	}

	out, err := long.GroupSum(keys, []string{c.Value})
	if err != nil {
		return nil, err
	}
	if !c.NoFuel {
		fuel, err := PrimaryFuels(long, c.PlantID, c.Fuel, c.Value)
		if err != nil {
			return nil, err
		}
		if out, err = out.Join(fuel, c.PlantID); err != nil {
			return nil, err
		}
	}

	labels, err = out.Strings(Month)
	if err != nil {
		return nil, err
	}
	num := make([]float64, len(labels))
	for i, l := range labels {
		num[i] = MonthNumber(l)
	}
	if out, err = out.AddColumn(table.NewFloats(Month, num...)); err != nil {
		return nil, err
	}
	return out.Sort(c.PlantID, Month)
}

// MonthNumber returns the number (1-12) of the month with the given
// English name, ignoring case, or NaN if name is not a month name.
func MonthNumber(name string) float64 {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return float64(m)
		}
	}
	return math.NaN()
}

// PrimaryFuels returns a table with one row for each plant in t, holding
// the plant ID and, in a column named "primary_fuel", the value of the fuel
// column with the greatest total value. When more than one fuel has the
// greatest total, the one that sorts first is chosen.
func PrimaryFuels(t *table.Table, plantID, fuel, value string) (*table.Table, error) {
	byFuel, err := t.GroupSum([]string{plantID, fuel}, []string{value})
	if err != nil {
		return nil, err
	}
	return argmax(byFuel, plantID, fuel, value, PrimaryFuel)
}

// argmax selects, for each unique value of the key column in t, the row
// with the greatest value, breaking ties with the label column. It returns
// the key and label columns, with the label column renamed to name.
func argmax(t *table.Table, key, label, value, name string) (*table.Table, error) {
	kc, err := t.Col(key)
	if err != nil {
		return nil, err
	}
	lc, err := t.Col(label)
	if err != nil {
		return nil, err
	}
	v, err := t.Floats(value)
	if err != nil {
		return nil, err
	}
	best := make(map[string]int)
	for i := 0; i < t.NumRows(); i++ {
		k := kc.Key(i)
		b, ok := best[k]
		if !ok || v[i] > v[b] || v[i] == v[b] && lc.Less(i, b) {
			best[k] = i
		}
	}
	keep := make(map[int]bool, len(best))
	for _, i := range best {
		keep[i] = true
	}
	o, err := t.Filter(func(i int) bool { return keep[i] }).Select(key, label)
	if err != nil {
		return nil, err
	}
	if o, err = o.Rename(label, name); err != nil {
		return nil, err
	}
	return o.Sort(key)
}
