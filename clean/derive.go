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

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/plantdata/table"
)

// derivedFuncs are the functions available to Derive expressions.
var derivedFuncs = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("clean: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
	"abs": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("clean: got %d arguments for function 'abs', but needs 1", len(arg))
		}
		return math.Abs(arg[0].(float64)), nil
	},
	"max": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 2 {
			return nil, fmt.Errorf("clean: got %d arguments for function 'max', but needs 2", len(arg))
		}
		return math.Max(arg[0].(float64), arg[1].(float64)), nil
	},
	"min": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 2 {
			return nil, fmt.Errorf("clean: got %d arguments for function 'min', but needs 2", len(arg))
		}
		return math.Min(arg[0].(float64), arg[1].(float64)), nil
	},
}

// Derive returns a copy of t with one new numeric column for each entry in
// exprs, where the key is the column name and the value is an arithmetic
// expression of existing numeric columns, for example
// {"so2_lb_per_mwh": "so2_kg / 0.453592 / net_gen"}. Expressions are
// evaluated in order of their names and may refer to columns created by
// expressions that sort before them. Available functions are exp(x),
// abs(x), max(x, y), and min(x, y).
func Derive(t *table.Table, exprs map[string]string) (*table.Table, error) {
	names := make([]string, 0, len(exprs))
	for n := range exprs {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(exprs[name], derivedFuncs)
		if err != nil {
			return nil, fmt.Errorf("clean: derived column %s: %v", name, err)
		}
		vars := expression.Vars()
		data := make([][]float64, len(vars))
		for j, v := range vars {
			data[j], err = t.Floats(v)
			if err != nil {
				return nil, err
			}
		}
		out := make([]float64, t.NumRows())
		params := make(map[string]interface{}, len(vars))
		for i := range out {
			for j, v := range vars {
				params[v] = data[j][i]
			}
			r, err := expression.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("clean: derived column %s row %d: %v", name, i, err)
			}
			f, ok := r.(float64)
			if !ok {
				return nil, fmt.Errorf("clean: derived column %s: expression '%s' returns %T, not a number", name, exprs[name], r)
			}
			out[i] = f
		}
		t, err = t.AddColumn(table.NewFloats(name, out...))
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}
