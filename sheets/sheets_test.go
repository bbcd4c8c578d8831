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

package sheets

import (
	"context"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/plantdata/table"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "sheets")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestTable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "860m.xlsx")

	rows := [][]string{
		{"Monthly Generator Inventory"},
		{"Plant ID", "Plant State", "Nameplate Capacity (MW)", "Technology"},
		{"1", "CO", "10", "Solar Photovoltaic"},
		{"", "", "", ""},
		{"1", "CO", " ", "Onshore Wind Turbine"},
		{"2", "UT", "5.5", "Natural Gas Fired Combined Cycle"},
		{"NOTE: Data is preliminary."},
	}
	if err := WriteRows(path, "Operable", rows); err != nil {
		t.Fatal(err)
	}

	wb := NewWorkbooks(10)
	tb, err := wb.Table(context.Background(), path, Options{
		Sheet:      "Operable",
		HeaderRow:  1,
		SkipFooter: 1,
		NA:         []string{" "},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Plant ID", "Plant State", "Nameplate Capacity (MW)", "Technology"},
		{"1", "CO", "10", "Solar Photovoltaic"},
		{"1", "CO", "", "Onshore Wind Turbine"},
		{"2", "UT", "5.5", "Natural Gas Fired Combined Cycle"},
	}
	if have := tb.Records(); !reflect.DeepEqual(have, want) {
		t.Errorf("records differ: %v", pretty.Diff(have, want))
	}
	c, _ := tb.Col("Nameplate Capacity (MW)")
	if c.Kind != table.Float || !math.IsNaN(c.Floats[1]) {
		t.Errorf("capacity column: have %+v", c)
	}

	t.Run("first sheet", func(t *testing.T) {
		tb2, err := wb.Table(context.Background(), path, Options{HeaderRow: 1, SkipFooter: 1, NA: []string{" "}})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(tb2.Records(), want) {
			t.Errorf("records differ: %v", pretty.Diff(tb2.Records(), want))
		}
	})
	t.Run("missing sheet", func(t *testing.T) {
		if _, err := wb.Table(context.Background(), path, Options{Sheet: "Retired"}); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("negative offsets", func(t *testing.T) {
		for _, o := range []Options{{HeaderRow: -1}, {HeaderRow: 1, SkipFooter: -1}} {
			if _, err := wb.Table(context.Background(), path, o); err == nil {
				t.Errorf("%+v: expected an error", o)
			}
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := wb.Open(context.Background(), filepath.Join(dir, "none.xlsx")); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestWriteTable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "out.xlsx")

	tb, err := table.New(
		table.NewFloats("plant_id", 1, 2),
		table.NewFloats("nameplate_capacity_mw", 10.5, math.NaN()),
		table.NewStrings("dominant_technology", "Solar Photovoltaic", ""),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteTable(path, "capacity", tb); err != nil {
		t.Fatal(err)
	}
	have, err := NewWorkbooks(1).Table(context.Background(), path, Options{Sheet: "capacity"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(have.Records(), tb.Records()) {
		t.Errorf("records differ: %v", pretty.Diff(have.Records(), tb.Records()))
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "capacity", want: "capacity"},
		{in: "emissions[2017]: a/b", want: "emissions_2017__ a_b"},
		{in: "plant_capacity_by_state_and_technology_2017", want: "plant_capacity_by_state_and_tec"},
		{in: "", want: "Sheet1"},
	}
	for _, test := range tests {
		if have := SheetName(test.in); have != test.want {
			t.Errorf("%q: have %q, want %q", test.in, have, test.want)
		}
	}
}

func TestWriteTableLongName(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "out.xlsx")

	tb, err := table.New(table.NewFloats("plant_id", 1))
	if err != nil {
		t.Fatal(err)
	}
	name := "plant_generation_by_month_and_fuel?"
	if err := WriteTable(path, name, tb); err != nil {
		t.Fatal(err)
	}
	f, err := NewWorkbooks(1).Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Sheets) != 1 {
		t.Fatalf("have %d sheets, want 1", len(f.Sheets))
	}
	if have, want := f.Sheets[0].Name, "plant_generation_by_month_and_f"; have != want {
		t.Errorf("sheet name: have %q, want %q", have, want)
	}
}
