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

// Package units converts pollutant masses between the units used in
// EPA and EIA filings.
package units

import (
	"fmt"
	"strings"

	"github.com/ctessum/unit"
)

// Mass is a unit of mass.
type Mass int

// These are the supported mass units.
const (
	Kilogram Mass = iota
	ShortTon
	Pound
)

// factors holds the number of kilograms in each unit.
var factors = [...]float64{
	Kilogram: 1.0,
	ShortTon: 907.1847,
	Pound:    0.453592,
}

// InvalidUnitError is returned when a unit is not one of the supported
// mass units.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("units: invalid unit '%s'", e.Unit)
}

// ParseMass parses a string representation of a mass unit. Currently
// supported options are "kg", "kilograms", "tons", "short_tons",
// "short tons", "lbs", and "pounds".
func ParseMass(u string) (Mass, error) {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "kg", "kilograms":
		return Kilogram, nil
	case "tons", "short_tons", "short tons":
		return ShortTon, nil
	case "lbs", "pounds":
		return Pound, nil
	default:
		return -1, &InvalidUnitError{Unit: u}
	}
}

func (m Mass) String() string {
	switch m {
	case Kilogram:
		return "kg"
	case ShortTon:
		return "short_tons"
	case Pound:
		return "lbs"
	default:
		return fmt.Sprintf("Mass(%d)", int(m))
	}
}

// Kilograms returns v, in units of m, as a mass in kilograms.
func (m Mass) Kilograms(v float64) *unit.Unit {
	return unit.New(v*factors[m], unit.Kilogram)
}

// From returns the value of the mass u in units of m.
func (m Mass) From(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Kilogram); err != nil {
		return 0, fmt.Errorf("units: %v", err)
	}
	return u.Value() / factors[m], nil
}

// Convert converts v from unit from to unit to.
func Convert(v float64, from, to string) (float64, error) {
	f, t, err := parsePair(from, to)
	if err != nil {
		return 0, err
	}
	if f == t {
		return v, nil
	}
	return t.From(f.Kilograms(v))
}

// ConvertSlice converts each element of v from unit from to unit to.
// v is not modified.
func ConvertSlice(v []float64, from, to string) ([]float64, error) {
	f, t, err := parsePair(from, to)
	if err != nil {
		return nil, err
	}
	o := make([]float64, len(v))
	if f == t {
		copy(o, v)
		return o, nil
	}
	for i, vv := range v {
		o[i], err = t.From(f.Kilograms(vv))
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

func parsePair(from, to string) (Mass, Mass, error) {
	f, err := ParseMass(from)
	if err != nil {
		return -1, -1, err
	}
	t, err := ParseMass(to)
	if err != nil {
		return -1, -1, err
	}
	return f, t, nil
}
