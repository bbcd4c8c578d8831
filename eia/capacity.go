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

import "github.com/spatialmodel/plantdata/table"

// DominantTechnology is the name of the column holding each plant's
// dominant technology.
const DominantTechnology = "dominant_technology"

// CapacityColumns holds the names of the columns used by Capacity.
// Empty fields are set to their default values.
type CapacityColumns struct {
	// PlantID is the plant identifier column. Default "plant_id".
	PlantID string

	// State is the plant state column. Default "plant_state".
	State string

	// Technology is the generator technology column. Default "technology".
	Technology string

	// Capacity is the generator capacity column. Default
	// "nameplate_capacity_mw".
	Capacity string

	// Sum lists the columns to total for each plant. If empty, all
	// numeric columns other than the plant ID and state are summed.
	Sum []string
}

func (c CapacityColumns) withDefaults() CapacityColumns {
	if c.PlantID == "" {
		c.PlantID = "plant_id"
	}
	if c.State == "" {
		c.State = "plant_state"
	}
	if c.Technology == "" {
		c.Technology = "technology"
	}
	if c.Capacity == "" {
		c.Capacity = "nameplate_capacity_mw"
	}
	return c
}

// Capacity aggregates a table with one row per generator into a table with
// one row per plant and state, summing the numeric columns and labeling each
// row with the plant's dominant technology: the technology with the greatest
// total capacity at the plant. A plant whose generators all lack a
// technology results in a *table.KeyError.
func Capacity(t *table.Table, c CapacityColumns) (*table.Table, error) {
	c = c.withDefaults()
	byTech, err := CapacityByTechnology(t, c)
	if err != nil {
		return nil, err
	}
	dominant, err := DominantTechnologies(byTech, c)
	if err != nil {
		return nil, err
	}

	sum := c.Sum
	if len(sum) == 0 {
		for _, n := range t.Names() {
			if n == c.PlantID || n == c.State {
				continue
			}
			if col, _ := t.Col(n); col.Kind == table.Float {
				sum = append(sum, n)
			}
		}
	}
	out, err := t.GroupSum([]string{c.PlantID, c.State}, sum)
	if err != nil {
		return nil, err
	}
	return out.Join(dominant, c.PlantID)
}

// CapacityByTechnology returns the total capacity of each technology at
// each plant in t.
func CapacityByTechnology(t *table.Table, c CapacityColumns) (*table.Table, error) {
	c = c.withDefaults()
	return t.GroupSum([]string{c.PlantID, c.Technology}, []string{c.Capacity})
}

// DominantTechnologies returns a table holding, for each plant in byTech,
// the technology with the greatest total capacity, where byTech is the
// output of CapacityByTechnology. When more than one technology has the
// greatest capacity, the one that sorts first is chosen.
func DominantTechnologies(byTech *table.Table, c CapacityColumns) (*table.Table, error) {
	c = c.withDefaults()
	return argmax(byTech, c.PlantID, c.Technology, c.Capacity, DominantTechnology)
}
