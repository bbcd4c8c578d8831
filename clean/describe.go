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

	"github.com/GaryBoone/GoStats/stats"
	"github.com/spatialmodel/plantdata/table"
)

// Describe summarizes the non-missing values in the given numeric columns
// of t. If no columns are given, all numeric columns are summarized.
func Describe(t *table.Table, columns ...string) (table.Report, error) {
	if len(columns) == 0 {
		for _, n := range t.Names() {
			if c, _ := t.Col(n); c.Kind == table.Float {
				columns = append(columns, n)
			}
		}
	}
	r := table.Report{{"column", "count", "sum", "min", "mean", "max"}}
	for _, n := range columns {
		v, err := t.Floats(n)
		if err != nil {
			return nil, err
		}
		d := v[:0]
		for _, x := range v {
			if !math.IsNaN(x) {
				d = append(d, x)
			}
		}
		if len(d) == 0 {
			r = append(r, []string{n, "0", "", "", "", ""})
			continue
		}
		r = append(r, []string{
			n,
			fmt.Sprint(len(d)),
			fmt.Sprintf("%.4g", stats.StatsSum(d)),
			fmt.Sprintf("%.4g", stats.StatsMin(d)),
			fmt.Sprintf("%.4g", stats.StatsMean(d)),
			fmt.Sprintf("%.4g", stats.StatsMax(d)),
		})
	}
	return r, nil
}
