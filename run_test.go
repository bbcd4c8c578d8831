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

package plantdata

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/plantdata/eia"
	"github.com/spatialmodel/plantdata/internal/remote"
	"github.com/spatialmodel/plantdata/sheets"
	"github.com/spatialmodel/plantdata/table"
)

// writeFixtures saves small EIA-860M and EIA-923 workbooks in dir.
func writeFixtures(t *testing.T, dir string) {
	err := sheets.WriteRows(filepath.Join(dir, "860m.xlsx"), "Operable", [][]string{
		{"Monthly Update to Annual Electric Generator Report"},
		{"Entity ID", "Plant ID", "Plant State", "Generator ID", "Technology", "Nameplate Capacity (MW)"},
		{"195", "3", "AL", "1", "Conventional Steam Coal", "80"},
		{"195", "3", "AL", "2", "Natural Gas Fired Combined Cycle", "120"},
		{"195", "3", "AL", "3", "Conventional Steam Coal", "60"},
		{"195", "7", "AL", "1", "Conventional Hydroelectric", "20"},
		{"U.S. Energy Information Administration"},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = sheets.WriteRows(filepath.Join(dir, "923.xlsx"), "Page 1 Generation and Fuel Data", [][]string{
		{"EIA-923 Monthly Generation and Fuel Consumption Time Series File"},
		{"Data for 2017"},
		{"Source: Form EIA-923"},
		{"Release date: 2018"},
		{"Megawatthours"},
		{"Plant Id", "Plant Name", "NERC Region", "Reported\nFuel Type Code", "Netgen\nJanuary", "Netgen\nFebruary"},
		{"3", "Barry", "SERC", "NG", "100", "90"},
		{"7", "Gadsden", "SERC", "WAT", "5", "."},
		{"7", "Gadsden", "SERC", "NG", ".", "6"},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigFile(t *testing.T) {
	os.Setenv("PLANTDATA_DIR", "/data")
	os.Setenv("PLANTDATA_OUT", "/out")
	defer os.Unsetenv("PLANTDATA_DIR")
	defer os.Unsetenv("PLANTDATA_OUT")

	c, err := ReadConfigFile("testdata/example_config.toml")
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		DownloadRetries: 3,
		Emissions: EmissionsConfig{
			Input:   "/data/testdata/emissions.csv",
			Output:  "/out/emissions_clean.csv",
			PlantID: "facility_id_orispl",
			Derived: map[string]string{"so2_lb": "so2_kg / 0.453592"},
			Outliers: Outliers{
				Columns:    []string{"so2_kg", "nox_kg"},
				Percentile: 0.99,
			},
		},
		Capacity: CapacityConfig{
			Input:   "/out/860m.xlsx",
			Output:  "/out/capacity.xlsx",
			Columns: eia.CapacityColumns{State: "plant_state", Technology: "technology"},
		},
		Generation: GenerationConfig{
			Input:  "/out/923.xlsx",
			Output: "/out/generation.csv",
			Outliers: Outliers{
				Columns:    []string{"net_gen"},
				Percentile: 0.999,
				Method:     "empirical",
			},
		},
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("configuration differs: %v", pretty.Diff(c, want))
	}
}

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "plantdata")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	writeFixtures(t, dir)

	os.Setenv("PLANTDATA_DIR", ".")
	os.Setenv("PLANTDATA_OUT", dir)
	defer os.Unsetenv("PLANTDATA_DIR")
	defer os.Unsetenv("PLANTDATA_OUT")

	c, err := ReadConfigFile("testdata/example_config.toml")
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	if err := c.Run(context.Background(), log); err != nil {
		t.Fatal(err)
	}

	finished := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "finished" {
			finished++
		}
	}
	if finished != 3 {
		t.Errorf("finished datasets: have %d, want 3", finished)
	}

	t.Run("emissions", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, "emissions_clean.csv"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		e, err := table.ReadCSV(f)
		if err != nil {
			t.Fatal(err)
		}
		// The so2 filter removes Barry, and the nox filter, recalculated
		// without Barry, removes Comanche.
		ids, err := e.Floats("plant_id")
		if err != nil {
			t.Fatal(err)
		}
		if want := []float64{7, 469}; !reflect.DeepEqual(ids, want) {
			t.Errorf("plant_id: have %v, want %v", ids, want)
		}
		lb, err := e.Floats("so2_lb")
		if err != nil {
			t.Fatal(err)
		}
		if want := 907.1847 / 0.453592; lb[0] < want-1e-6 || lb[0] > want+1e-6 {
			t.Errorf("so2_lb: have %g, want %g", lb[0], want)
		}
	})

	t.Run("capacity", func(t *testing.T) {
		c, err := sheets.NewWorkbooks(1).Table(context.Background(), filepath.Join(dir, "capacity.xlsx"), sheets.Options{Sheet: "capacity"})
		if err != nil {
			t.Fatal(err)
		}
		want := [][]string{
			{"plant_id", "plant_state", "entity_id", "generator_id", "nameplate_capacity_mw", "dominant_technology"},
			{"3", "AL", "585", "6", "260", "Conventional Steam Coal"},
			{"7", "AL", "195", "1", "20", "Conventional Hydroelectric"},
		}
		if have := c.Records(); !reflect.DeepEqual(have, want) {
			t.Errorf("records differ: %v", pretty.Diff(have, want))
		}
	})

	t.Run("generation", func(t *testing.T) {
		b, err := ioutil.ReadFile(filepath.Join(dir, "generation.csv"))
		if err != nil {
			t.Fatal(err)
		}
		want := strings.Join([]string{
			"plant_id,month,nerc_region,net_gen,primary_fuel",
			"3,2,SERC,90,NG",
			"7,1,SERC,5,NG",
			"7,2,SERC,6,NG",
			"",
		}, "\n")
		if string(b) != want {
			t.Errorf("have\n%s\nwant\n%s", b, want)
		}
	})
}

func TestSheetLayoutDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "plantdata")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	writeFixtures(t, dir)

	c, err := ReadConfig(strings.NewReader(`
[Capacity]
Input = '` + filepath.Join(dir, "860m.xlsx") + `'

[Capacity.Sheet]
Sheet = "Operable"
HeaderRow = -1
SkipFooter = -1
NA = [" "]

[Generation]
Input = '` + filepath.Join(dir, "923.xlsx") + `'

[Generation.Sheet]
HeaderRow = -1
SkipFooter = -1
NA = ["."]
`))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	f := &remote.Fetcher{Dir: dir}
	wb := sheets.NewWorkbooks(2)

	capacity, err := c.Capacity.Table(ctx, f, wb)
	if err != nil {
		t.Fatal(err)
	}
	if capacity.NumRows() != 2 {
		t.Errorf("capacity rows: have %d, want 2", capacity.NumRows())
	}
	generation, err := c.Generation.Table(ctx, f, wb)
	if err != nil {
		t.Fatal(err)
	}
	if generation.NumRows() != 4 {
		t.Errorf("generation rows: have %d, want 4", generation.NumRows())
	}
}

func TestRunSameFileName(t *testing.T) {
	dir, err := ioutil.TempDir("", "plantdata")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	writeFixtures(t, dir)

	srv := filepath.Join(dir, "srv")
	for from, to := range map[string]string{"860m.xlsx": "860m", "923.xlsx": "923"} {
		if err := os.MkdirAll(filepath.Join(srv, to), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(filepath.Join(dir, from), filepath.Join(srv, to, "data.xlsx")); err != nil {
			t.Fatal(err)
		}
	}
	ts := httptest.NewServer(http.FileServer(http.Dir(srv)))
	defer ts.Close()

	c := &Config{
		Capacity: CapacityConfig{
			Input:  ts.URL + "/860m/data.xlsx",
			Output: filepath.Join(dir, "capacity.csv"),
		},
		Generation: GenerationConfig{
			Input:  ts.URL + "/923/data.xlsx",
			Output: filepath.Join(dir, "generation.csv"),
		},
	}
	log, _ := test.NewNullLogger()
	if err := c.Run(context.Background(), log); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(filepath.Join(dir, "generation.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "plant_id,month,nerc_region,net_gen,primary_fuel\n") {
		t.Errorf("generation output:\n%s", b)
	}
	b, err = ioutil.ReadFile(filepath.Join(dir, "capacity.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "dominant_technology") {
		t.Errorf("capacity output:\n%s", b)
	}
}
