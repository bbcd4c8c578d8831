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
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func mustNew(t *testing.T, cols ...*Column) *Table {
	tb, err := New(cols...)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func checkRecords(t *testing.T, have *Table, want [][]string) {
	t.Helper()
	if r := have.Records(); !reflect.DeepEqual(r, want) {
		t.Errorf("records differ: %v", pretty.Diff(r, want))
	}
}

func TestNew(t *testing.T) {
	_, err := New(NewFloats("a", 1, 2), NewStrings("b", "x"))
	if err == nil {
		t.Fatal("expected an error for columns of different lengths")
	}
}

func TestCopyOnWrite(t *testing.T) {
	v := []float64{1, 2, 3}
	tb := mustNew(t, NewFloats("a", v...))
	v[0] = 100
	f, err := tb.Floats("a")
	if err != nil {
		t.Fatal(err)
	}
	if f[0] != 1 {
		t.Errorf("table shares memory with its input: have %g, want 1", f[0])
	}
	f[1] = 100
	f2, _ := tb.Floats("a")
	if f2[1] != 2 {
		t.Errorf("Floats shares memory with the table: have %g, want 2", f2[1])
	}

	filtered := tb.Filter(func(i int) bool { return i > 0 })
	if tb.NumRows() != 3 || filtered.NumRows() != 2 {
		t.Errorf("rows: have %d and %d, want 3 and 2", tb.NumRows(), filtered.NumRows())
	}
	renamed, err := tb.Rename("a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tb.Names(), []string{"a"}) || !reflect.DeepEqual(renamed.Names(), []string{"b"}) {
		t.Errorf("rename modified its receiver: %v, %v", tb.Names(), renamed.Names())
	}
}

func TestMissingColumn(t *testing.T) {
	tb := mustNew(t, NewFloats("a", 1))
	_, err := tb.Col("b")
	if e, ok := err.(*MissingColumnError); !ok || e.Column != "b" {
		t.Errorf("have %v, want missing column b", err)
	}
	_, err = tb.Strings("a")
	if _, ok := err.(*KindError); !ok {
		t.Errorf("have %v, want KindError", err)
	}
}

func TestSort(t *testing.T) {
	nan := math.NaN()
	tb := mustNew(t,
		NewStrings("id", "b", "a", "b", "a", ""),
		NewFloats("m", 2, nan, 1, 3, 1),
	)
	s, err := tb.Sort("id", "m")
	if err != nil {
		t.Fatal(err)
	}
	checkRecords(t, s, [][]string{
		{"id", "m"},
		{"a", "3"},
		{"a", ""},
		{"b", "1"},
		{"b", "2"},
		{"", "1"},
	})
}

func TestMelt(t *testing.T) {
	tb := mustNew(t,
		NewFloats("plant_id", 1, 2),
		NewFloats("netgen_january", 10, 20),
		NewFloats("netgen_february", 11, 21),
	)
	m, err := tb.Melt([]string{"plant_id"}, []string{"netgen_january", "netgen_february"}, "month", "net_gen")
	if err != nil {
		t.Fatal(err)
	}
	checkRecords(t, m, [][]string{
		{"plant_id", "month", "net_gen"},
		{"1", "netgen_january", "10"},
		{"2", "netgen_january", "20"},
		{"1", "netgen_february", "11"},
		{"2", "netgen_february", "21"},
	})

	_, err = mustNew(t, NewStrings("a", "x")).Melt(nil, []string{"a"}, "v", "n")
	if _, ok := err.(*KindError); !ok {
		t.Errorf("have %v, want KindError", err)
	}
}

func TestGroupSum(t *testing.T) {
	nan := math.NaN()
	tb := mustNew(t,
		NewStrings("fuel", "NG", "COL", "NG", "", "SUN"),
		NewFloats("plant_id", 2, 1, 2, 1, 1),
		NewFloats("gen", 1, 2, 3, 4, nan),
	)
	g, err := tb.GroupSum([]string{"plant_id", "fuel"}, []string{"gen"})
	if err != nil {
		t.Fatal(err)
	}
	checkRecords(t, g, [][]string{
		{"plant_id", "fuel", "gen"},
		{"1", "COL", "2"},
		{"1", "SUN", "0"},
		{"2", "NG", "4"},
	})
}

func TestJoin(t *testing.T) {
	left := mustNew(t,
		NewFloats("plant_id", 1, 2, 1),
		NewFloats("month", 1, 1, 2),
	)
	right := mustNew(t,
		NewFloats("plant_id", 2, 1),
		NewStrings("primary_fuel", "NG", "COL"),
	)
	j, err := left.Join(right, "plant_id")
	if err != nil {
		t.Fatal(err)
	}
	checkRecords(t, j, [][]string{
		{"plant_id", "month", "primary_fuel"},
		{"1", "1", "COL"},
		{"2", "1", "NG"},
		{"1", "2", "COL"},
	})

	t.Run("missing", func(t *testing.T) {
		r := right.Filter(func(i int) bool { return i == 0 })
		_, err := left.Join(r, "plant_id")
		if e, ok := err.(*KeyError); !ok || e.Key != "1" || e.Duplicate {
			t.Errorf("have %v, want missing key 1", err)
		}
	})
	t.Run("duplicate", func(t *testing.T) {
		r := mustNew(t, NewFloats("plant_id", 1, 1), NewStrings("x", "a", "b"))
		_, err := left.Join(r, "plant_id")
		if e, ok := err.(*KeyError); !ok || !e.Duplicate {
			t.Errorf("have %v, want duplicate key", err)
		}
	})
}

func TestCSV(t *testing.T) {
	const in = `Plant ID,State,Capacity,Note
1,CO,10.5,
2,,.,old unit
`
	tb, err := ReadCSV(strings.NewReader(in), ".")
	if err != nil {
		t.Fatal(err)
	}
	c, _ := tb.Col("Capacity")
	if c.Kind != Float || !math.IsNaN(c.Floats[1]) {
		t.Errorf("capacity column: have %+v", c)
	}
	if c, _ := tb.Col("State"); c.Kind != String {
		t.Errorf("state kind: have %s, want string", c.Kind)
	}
	b := new(bytes.Buffer)
	if err := tb.WriteCSV(b); err != nil {
		t.Fatal(err)
	}
	want := `Plant ID,State,Capacity,Note
1,CO,10.5,
2,,,old unit
`
	if b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestReportTabbed(t *testing.T) {
	r := Report{{"column", "mean"}, {"so2_kg", "1.5"}}
	b := new(bytes.Buffer)
	if _, err := r.Tabbed(b); err != nil {
		t.Fatal(err)
	}
	want := "column mean \nso2_kg 1.5  \n"
	if b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}
