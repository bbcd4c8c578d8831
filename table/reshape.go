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
	"math"
	"sort"
	"strings"
)

// Sort returns a copy of t with rows sorted by the given columns in
// ascending order. Missing values sort last and ties keep their original
// order.
func (t *Table) Sort(keys ...string) (*Table, error) {
	kc, err := t.columns(keys)
	if err != nil {
		return nil, err
	}
	rows := make([]int, t.rows)
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		i, j := rows[a], rows[b]
		for _, c := range kc {
			if c.Less(i, j) {
				return true
			}
			if c.Less(j, i) {
				return false
			}
		}
		return false
	})
	return t.take(rows), nil
}

// Melt converts t from wide to long format. For every value column and every
// row of t, one row is created holding the id columns of the original row, the
// value column name in a text column called varName, and the value in a
// numeric column called valueName. Rows are ordered by value column first.
func (t *Table) Melt(idVars, valueVars []string, varName, valueName string) (*Table, error) {
	ic, err := t.columns(idVars)
	if err != nil {
		return nil, err
	}
	vc, err := t.columns(valueVars)
	if err != nil {
		return nil, err
	}
	for _, c := range vc {
		if c.Kind != Float {
			return nil, &KindError{Column: c.Name, Want: Float}
		}
	}
	n := t.rows * len(vc)
	rows := make([]int, 0, n)
	vars := make([]string, 0, n)
	vals := make([]float64, 0, n)
	for _, c := range vc {
		for i := 0; i < t.rows; i++ {
			rows = append(rows, i)
			vars = append(vars, c.Name)
			vals = append(vals, c.Floats[i])
		}
	}
	o := &Table{rows: n}
	for _, c := range ic {
		o.cols = append(o.cols, c.take(rows))
	}
	o.cols = append(o.cols, NewStrings(varName, vars...), NewFloats(valueName, vals...))
	return o, nil
}

// GroupSum groups the rows of t by the key columns and sums the value
// columns within each group. Missing values are skipped, so a group with
// only missing values sums to zero. Rows with a missing key are dropped. The
// result holds the key columns followed by the value columns and is sorted
// by key.
func (t *Table) GroupSum(keys, values []string) (*Table, error) {
	kc, err := t.columns(keys)
	if err != nil {
		return nil, err
	}
	vc, err := t.columns(values)
	if err != nil {
		return nil, err
	}
	for _, c := range vc {
		if c.Kind != Float {
			return nil, &KindError{Column: c.Name, Want: Float}
		}
	}
	groups := make(map[string]int)
	var first []int
	sums := make([][]float64, len(vc))
	parts := make([]string, len(kc))
rows:
	for i := 0; i < t.rows; i++ {
		for j, c := range kc {
			if c.IsNA(i) {
				continue rows
			}
			parts[j] = c.Key(i)
		}
		k := strings.Join(parts, "\x00")
		g, ok := groups[k]
		if !ok {
			g = len(first)
			groups[k] = g
			first = append(first, i)
			for j := range sums {
				sums[j] = append(sums[j], 0)
			}
		}
		for j, c := range vc {
			if v := c.Floats[i]; !math.IsNaN(v) {
				sums[j][g] += v
			}
		}
	}
	o := &Table{rows: len(first)}
	for _, c := range kc {
		o.cols = append(o.cols, c.take(first))
	}
	for j, c := range vc {
		s := sums[j]
		if s == nil {
			s = []float64{}
		}
		o.cols = append(o.cols, NewFloats(c.Name, s...))
	}
	return o.Sort(keys...)
}

// Join returns a copy of t with the columns of right, other than key,
// appended. Each row of t is matched to the single row of right with the same
// value in the key column. A key with no match or with more than one match
// in right results in a *KeyError.
func (t *Table) Join(right *Table, key string) (*Table, error) {
	lk, err := t.Col(key)
	if err != nil {
		return nil, err
	}
	rk, err := right.Col(key)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, right.rows)
	for i := 0; i < right.rows; i++ {
		k := rk.Key(i)
		if _, ok := idx[k]; ok {
			return nil, &KeyError{Column: key, Key: k, Duplicate: true}
		}
		idx[k] = i
	}
	rows := make([]int, t.rows)
	for i := range rows {
		k := lk.Key(i)
		r, ok := idx[k]
		if !ok {
			return nil, &KeyError{Column: key, Key: k}
		}
		rows[i] = r
	}
	o := t.shallow()
	for _, c := range right.cols {
		if c.Name == key {
			continue
		}
		o.cols = append(o.cols, c.take(rows))
	}
	return o, nil
}

func (t *Table) columns(names []string) ([]*Column, error) {
	o := make([]*Column, len(names))
	for i, n := range names {
		c, err := t.Col(n)
		if err != nil {
			return nil, err
		}
		o[i] = c
	}
	return o, nil
}
