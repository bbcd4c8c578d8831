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

package clean

import (
	"fmt"
	"math"
	"sort"

	"github.com/spatialmodel/plantdata/table"
	"gonum.org/v1/gonum/stat"
)

// QuantileMethod specifies how percentile thresholds are calculated.
type QuantileMethod int

const (
	// Linear interpolates between the two closest ranks, placing the
	// p quantile of n sorted values at rank (n-1)p.
	Linear QuantileMethod = iota

	// Empirical returns the smallest value whose empirical cumulative
	// probability is at least p.
	Empirical
)

// ParseQuantileMethod parses a string representation of a quantile
// method. Currently supported options are "linear" and "empirical".
func ParseQuantileMethod(s string) (QuantileMethod, error) {
	switch s {
	case "linear", "":
		return Linear, nil
	case "empirical":
		return Empirical, nil
	default:
		return -1, fmt.Errorf("clean: invalid quantile method '%s'", s)
	}
}

// RangeError is returned when a percentile is not between zero and one.
type RangeError struct {
	Percentile float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("clean: percentile %g is not in the range (0, 1)", e.Percentile)
}

// FilterOutliers removes rows with outlying values. For each column in
// order, the percentile threshold is calculated from the rows that remain
// after the previous columns have been filtered, and only rows with values
// strictly less than the threshold are kept. Rows with missing values in
// any of the columns are removed. The result therefore depends on the
// order of columns.
func FilterOutliers(t *table.Table, columns []string, percentile float64, method QuantileMethod) (*table.Table, error) {
	if !(percentile > 0 && percentile < 1) {
		return nil, &RangeError{Percentile: percentile}
	}
	for _, c := range columns {
		v, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		threshold := Quantile(percentile, v, method)
		t = t.Filter(func(i int) bool { return v[i] < threshold })
	}
	return t, nil
}

// Quantile returns the p quantile of the non-missing values in x.
// It returns NaN if there are no such values.
func Quantile(p float64, x []float64, method QuantileMethod) float64 {
	s := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			s = append(s, v)
		}
	}
	if len(s) == 0 {
		return math.NaN()
	}
	sort.Float64s(s)
	switch method {
	case Empirical:
		return stat.Quantile(p, stat.Empirical, s, nil)
	case Linear:
		h := float64(len(s)-1) * p
		lo := math.Floor(h)
		i := int(lo)
		if i+1 >= len(s) {
			return s[len(s)-1]
		}
		return s[i] + (h-lo)*(s[i+1]-s[i])
	default:
		panic(fmt.Errorf("clean: invalid quantile method %d", method))
	}
}
