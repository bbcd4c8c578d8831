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

package plantutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/plantdata"
	"github.com/spatialmodel/plantdata/clean"
	"github.com/spatialmodel/plantdata/eia"
	"github.com/spatialmodel/plantdata/internal/remote"
	"github.com/spatialmodel/plantdata/sheets"
	"github.com/spatialmodel/plantdata/table"
	"github.com/spf13/cast"
)

// getStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func getStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapString(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("plantdata: invalid value for %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("plantdata: invalid type for %s: %#v", varName, i)
	}
}

// derived returns the derived column expressions, or nil if there are none.
func derived(cfg *viper.Viper) (map[string]string, error) {
	d, err := getStringMapString("Derived", cfg)
	if err != nil || len(d) == 0 {
		return nil, err
	}
	return d, nil
}

func outliers(cfg *viper.Viper) plantdata.Outliers {
	return plantdata.Outliers{
		Columns:    cast.ToStringSlice(cfg.Get("OutlierColumns")),
		Percentile: cfg.GetFloat64("Percentile"),
		Method:     cfg.GetString("QuantileMethod"),
	}
}

// sheetOptions overrides the fields of o that are set in cfg.
func sheetOptions(cfg *viper.Viper, o sheets.Options) *sheets.Options {
	if s := cfg.GetString("sheet"); s != "" {
		o.Sheet = s
	}
	if h := cfg.GetInt("HeaderRow"); h >= 0 {
		o.HeaderRow = h
	}
	if f := cfg.GetInt("SkipFooter"); f >= 0 {
		o.SkipFooter = f
	}
	return &o
}

func input(cfg *viper.Viper) (string, error) {
	in := os.ExpandEnv(cfg.GetString("input"))
	if in == "" {
		return "", fmt.Errorf("plantdata: an input file must be specified")
	}
	return in, nil
}

func emissionsConfig(cfg *viper.Viper) (*plantdata.Config, error) {
	in, err := input(cfg)
	if err != nil {
		return nil, err
	}
	d, err := derived(cfg)
	if err != nil {
		return nil, err
	}
	return &plantdata.Config{
		DownloadRetries: cast.ToUint64(cfg.Get("DownloadRetries")),
		Emissions: plantdata.EmissionsConfig{
			Input:     in,
			Output:    os.ExpandEnv(cfg.GetString("output")),
			PlantID:   cfg.GetString("PlantID"),
			KeepUnits: cfg.GetBool("KeepUnits"),
			Derived:   d,
			Outliers:  outliers(cfg),
		},
	}, nil
}

func capacityConfig(cfg *viper.Viper) (*plantdata.Config, error) {
	in, err := input(cfg)
	if err != nil {
		return nil, err
	}
	d, err := derived(cfg)
	if err != nil {
		return nil, err
	}
	return &plantdata.Config{
		DownloadRetries: cast.ToUint64(cfg.Get("DownloadRetries")),
		Capacity: plantdata.CapacityConfig{
			Input:  in,
			Output: os.ExpandEnv(cfg.GetString("output")),
			Sheet:  sheetOptions(cfg, eia.CapacityOptions()),
			Columns: eia.CapacityColumns{
				State:      cfg.GetString("State"),
				Technology: cfg.GetString("Technology"),
			},
			Derived:  d,
			Outliers: outliers(cfg),
		},
	}, nil
}

func generationConfig(cfg *viper.Viper) (*plantdata.Config, error) {
	in, err := input(cfg)
	if err != nil {
		return nil, err
	}
	d, err := derived(cfg)
	if err != nil {
		return nil, err
	}
	return &plantdata.Config{
		DownloadRetries: cast.ToUint64(cfg.Get("DownloadRetries")),
		Generation: plantdata.GenerationConfig{
			Input:  in,
			Output: os.ExpandEnv(cfg.GetString("output")),
			Sheet:  sheetOptions(cfg, eia.GenerationOptions()),
			Columns: eia.GenerationColumns{
				Fuel:   cfg.GetString("Fuel"),
				NoFuel: cfg.GetBool("NoFuel"),
			},
			Derived:  d,
			Outliers: outliers(cfg),
		},
	}, nil
}

// describe summarizes the numeric columns of the input file, which
// is read as an Excel workbook if it ends in ".xlsx" and as a CSV file
// otherwise.
func describe(ctx context.Context, cfg *viper.Viper) (table.Report, error) {
	in, err := input(cfg)
	if err != nil {
		return nil, err
	}
	f := &remote.Fetcher{MaxRetries: cast.ToUint64(cfg.Get("DownloadRetries"))}
	path, err := f.Fetch(ctx, in)
	if err != nil {
		return nil, err
	}
	var t *table.Table
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		t, err = sheets.NewWorkbooks(1).Table(ctx, path, *sheetOptions(cfg, sheets.Options{}))
	} else {
		var r *os.File
		if r, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("plantdata: %v", err)
		}
		defer r.Close()
		t, err = table.ReadCSV(r)
	}
	if err != nil {
		return nil, err
	}
	if t, err = clean.Columns(t); err != nil {
		return nil, err
	}
	return clean.Describe(t)
}
