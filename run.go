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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plantdata/clean"
	"github.com/spatialmodel/plantdata/eia"
	"github.com/spatialmodel/plantdata/epa"
	"github.com/spatialmodel/plantdata/internal/remote"
	"github.com/spatialmodel/plantdata/sheets"
	"github.com/spatialmodel/plantdata/table"
)

// Run cleans each dataset in c that has an input file and writes the
// results to the dataset's output file.
func (c *Config) Run(ctx context.Context, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f := &remote.Fetcher{MaxRetries: c.DownloadRetries, Log: log}
	wb := sheets.NewWorkbooks(10)

	if c.Emissions.Input != "" {
		t, err := c.Emissions.Table(ctx, f)
		if err != nil {
			return err
		}
		if err := finish(ctx, log.WithField("dataset", "emissions"), t, c.Emissions.Derived, c.Emissions.Outliers, c.Emissions.Output); err != nil {
			return err
		}
	}
	if c.Capacity.Input != "" {
		t, err := c.Capacity.Table(ctx, f, wb)
		if err != nil {
			return err
		}
		if err := finish(ctx, log.WithField("dataset", "capacity"), t, c.Capacity.Derived, c.Capacity.Outliers, c.Capacity.Output); err != nil {
			return err
		}
	}
	if c.Generation.Input != "" {
		t, err := c.Generation.Table(ctx, f, wb)
		if err != nil {
			return err
		}
		if err := finish(ctx, log.WithField("dataset", "generation"), t, c.Generation.Derived, c.Generation.Outliers, c.Generation.Output); err != nil {
			return err
		}
	}
	return nil
}

// Table reads and cleans the emissions input file.
func (c *EmissionsConfig) Table(ctx context.Context, f *remote.Fetcher) (*table.Table, error) {
	path, err := f.Fetch(ctx, c.Input)
	if err != nil {
		return nil, err
	}
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plantdata: %v", err)
	}
	defer r.Close()
	t, err := epa.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	t, err = epa.Emissions(t, epa.Config{PlantID: c.PlantID, Keep: c.KeepUnits})
	if err != nil {
		return nil, fmt.Errorf("plantdata: emissions file %s: %v", c.Input, err)
	}
	return t, nil
}

// Table reads the capacity input file and aggregates it by plant.
func (c *CapacityConfig) Table(ctx context.Context, f *remote.Fetcher, wb *sheets.Workbooks) (*table.Table, error) {
	o := layout(c.Sheet, eia.CapacityOptions())
	path, err := f.Fetch(ctx, c.Input)
	if err != nil {
		return nil, err
	}
	t, err := eia.Read(ctx, wb, path, o)
	if err != nil {
		return nil, err
	}
	t, err = eia.Capacity(t, c.Columns)
	if err != nil {
		return nil, fmt.Errorf("plantdata: capacity file %s: %v", c.Input, err)
	}
	return t, nil
}

// Table reads the generation input file and reshapes it into one row
// per plant and month.
func (c *GenerationConfig) Table(ctx context.Context, f *remote.Fetcher, wb *sheets.Workbooks) (*table.Table, error) {
	o := layout(c.Sheet, eia.GenerationOptions())
	path, err := f.Fetch(ctx, c.Input)
	if err != nil {
		return nil, err
	}
	t, err := eia.Read(ctx, wb, path, o)
	if err != nil {
		return nil, err
	}
	t, err = eia.Generation(t, c.Columns)
	if err != nil {
		return nil, fmt.Errorf("plantdata: generation file %s: %v", c.Input, err)
	}
	return t, nil
}

// layout returns o, or def if o is nil. Negative header and footer
// row counts in o are replaced by the values in def.
func layout(o *sheets.Options, def sheets.Options) sheets.Options {
	if o == nil {
		return def
	}
	l := *o
	if l.HeaderRow < 0 {
		l.HeaderRow = def.HeaderRow
	}
	if l.SkipFooter < 0 {
		l.SkipFooter = def.SkipFooter
	}
	return l
}

// finish adds derived columns to t, removes outliers, writes the
// result to output, and logs a summary.
func finish(ctx context.Context, log logrus.FieldLogger, t *table.Table, derived map[string]string, o Outliers, output string) error {
	t, err := clean.Derive(t, derived)
	if err != nil {
		return err
	}
	if len(o.Columns) > 0 {
		method, err := clean.ParseQuantileMethod(o.Method)
		if err != nil {
			return err
		}
		n := t.NumRows()
		if t, err = clean.FilterOutliers(t, o.Columns, o.Percentile, method); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"removed":    n - t.NumRows(),
			"percentile": o.Percentile,
		}).Info("removed outliers")
	}
	if output != "" {
		if err := Write(ctx, t, output); err != nil {
			return err
		}
	}
	summary, err := clean.Describe(t)
	if err != nil {
		return err
	}
	for _, r := range summary[1:] {
		log.WithFields(logrus.Fields{
			"column": r[0],
			"count":  r[1],
			"sum":    r[2],
			"min":    r[3],
			"mean":   r[4],
			"max":    r[5],
		}).Debug("summary")
	}
	log.WithFields(logrus.Fields{
		"rows":   t.NumRows(),
		"output": output,
	}).Info("finished")
	return nil
}

// Write saves t to path, which may be a local file or a blob. Files
// ending in ".xlsx" are written as Excel workbooks and all others in
// CSV format.
func Write(ctx context.Context, t *table.Table, path string) error {
	local := path
	if remote.IsBlob(path) {
		dir, err := ioutil.TempDir("", "plantdata")
		if err != nil {
			return fmt.Errorf("plantdata: %v", err)
		}
		defer os.RemoveAll(dir)
		local = filepath.Join(dir, filepath.Base(path))
	}
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := sheets.WriteTable(local, name, t); err != nil {
			return err
		}
	} else {
		w, err := os.Create(local)
		if err != nil {
			return fmt.Errorf("plantdata: %v", err)
		}
		if err := t.WriteCSV(w); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("plantdata: %v", err)
		}
	}
	if local != path {
		return remote.Upload(ctx, local, path)
	}
	return nil
}
