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

// Package plantdata cleans and combines power plant emissions, capacity,
// and generation data from the U.S. EPA and EIA.
package plantdata

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/plantdata/eia"
	"github.com/spatialmodel/plantdata/sheets"
)

// Version gives the version number.
const Version = "0.1.0"

// Config holds the configuration for a data cleaning run. Datasets
// without an Input are skipped.
type Config struct {
	Emissions  EmissionsConfig
	Capacity   CapacityConfig
	Generation GenerationConfig

	// DownloadRetries is the number of times failed HTTP downloads
	// are retried.
	DownloadRetries uint64
}

// Outliers specifies the removal of rows with outlying values.
type Outliers struct {
	// Columns are filtered in the order they are listed.
	Columns []string

	// Percentile is the quantile, between zero and one, at or above which
	// values are removed.
	Percentile float64

	// Method is the quantile calculation method, either "linear"
	// (the default) or "empirical".
	Method string
}

// EmissionsConfig specifies how an EPA emissions file is cleaned.
type EmissionsConfig struct {
	// Input and Output are file paths, URLs, or blob paths. Input must
	// be in CSV format. Output is written as an Excel workbook if it
	// ends in ".xlsx" and in CSV format otherwise.
	Input, Output string

	// PlantID is the normalized name of the plant identifier column.
	PlantID string

	// KeepUnits specifies that emissions should not be converted to
	// kilograms.
	KeepUnits bool

	// Derived holds expressions for additional columns, keyed by
	// column name.
	Derived map[string]string

	Outliers Outliers
}

// CapacityConfig specifies how an EIA-860M generator capacity file is
// aggregated.
type CapacityConfig struct {
	Input, Output string

	// Sheet specifies where the generator table is in the workbook.
	// If nil, the EIA-860M layout is assumed. A negative HeaderRow or
	// SkipFooter selects the EIA-860M value.
	Sheet *sheets.Options

	Columns  eia.CapacityColumns
	Derived  map[string]string
	Outliers Outliers
}

// GenerationConfig specifies how an EIA-923 generation file is reshaped.
type GenerationConfig struct {
	Input, Output string

	// Sheet specifies where the generation table is in the workbook.
	// If nil, the EIA-923 layout is assumed. A negative HeaderRow or
	// SkipFooter selects the EIA-923 value.
	Sheet *sheets.Options

	Columns  eia.GenerationColumns
	Derived  map[string]string
	Outliers Outliers
}

// ReadConfig reads a TOML-format configuration from r. Environment
// variables in file paths are expanded.
func ReadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("plantdata: reading configuration: %v", err)
	}
	for _, p := range []*string{
		&c.Emissions.Input, &c.Emissions.Output,
		&c.Capacity.Input, &c.Capacity.Output,
		&c.Generation.Input, &c.Generation.Output,
	} {
		*p = os.ExpandEnv(*p)
	}
	return c, nil
}

// ReadConfigFile reads a TOML-format configuration from the file at path.
func ReadConfigFile(path string) (*Config, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("plantdata: opening configuration file: %v", err)
	}
	defer f.Close()
	return ReadConfig(f)
}
