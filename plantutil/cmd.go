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

// Package plantutil provides the command-line interface for plantdata.
package plantutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plantdata"
	"github.com/spatialmodel/plantdata/units"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	datasetFlags := []*pflag.FlagSet{emissionsCmd.Flags(), capacityCmd.Flags(), generationCmd.Flags()}

	// Options are the configuration options available to plantdata.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity. Acceptable values are
              'debug', 'info', 'warning', and 'error'.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DownloadRetries",
			usage: `
              DownloadRetries is the number of times a failed HTTP download
              is retried before giving up.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the path to the file to be cleaned. It can be a local
              file, an http or https URL, or a blob path starting with
              'gs://', 's3://', or 'file://'. It can include environment
              variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   append([]*pflag.FlagSet{describeCmd.Flags()}, datasetFlags...),
		},
		{
			name: "output",
			usage: `
              output is the path where the cleaned data should be written.
              Paths ending in '.xlsx' are written as Excel workbooks and
              all others as CSV files. Blob paths are accepted. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   datasetFlags,
		},
		{
			name: "PlantID",
			usage: `
              PlantID is the normalized name of the column holding the
              ORIS plant code in the emissions file.`,
			defaultVal: "facility_id_orispl",
			flagsets:   []*pflag.FlagSet{emissionsCmd.Flags()},
		},
		{
			name: "KeepUnits",
			usage: `
              KeepUnits specifies that emissions columns should keep their
              original units instead of being converted to kilograms.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{emissionsCmd.Flags()},
		},
		{
			name: "sheet",
			usage: `
              sheet is the name of the workbook sheet holding the data. If
              it is empty, the standard EIA sheet for the command is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{capacityCmd.Flags(), generationCmd.Flags(), describeCmd.Flags()},
		},
		{
			name: "HeaderRow",
			usage: `
              HeaderRow is the zero-based index of the sheet row holding the
              column names. A negative value selects the standard EIA layout.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{capacityCmd.Flags(), generationCmd.Flags(), describeCmd.Flags()},
		},
		{
			name: "SkipFooter",
			usage: `
              SkipFooter is the number of rows at the end of the sheet to ignore.
              A negative value selects the standard EIA layout.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{capacityCmd.Flags(), generationCmd.Flags(), describeCmd.Flags()},
		},
		{
			name: "State",
			usage: `
              State is the normalized name of the plant state column in the
              capacity file.`,
			defaultVal: "plant_state",
			flagsets:   []*pflag.FlagSet{capacityCmd.Flags()},
		},
		{
			name: "Technology",
			usage: `
              Technology is the normalized name of the generator technology
              column in the capacity file.`,
			defaultVal: "technology",
			flagsets:   []*pflag.FlagSet{capacityCmd.Flags()},
		},
		{
			name: "Fuel",
			usage: `
              Fuel is the normalized name of the fuel type column in the
              generation file.`,
			defaultVal: "reported_fuel_type_code",
			flagsets:   []*pflag.FlagSet{generationCmd.Flags()},
		},
		{
			name: "NoFuel",
			usage: `
              NoFuel specifies that the generation file has no fuel type
              column, so no primary fuel is assigned.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{generationCmd.Flags()},
		},
		{
			name: "Derived",
			usage: `
              Derived holds expressions for additional columns, keyed by the
              name of the new column, for example '{"so2_lb":"so2_kg / 0.453592"}'.
              Expressions can use any numeric column and the functions
              exp, abs, max, and min.`,
			defaultVal: map[string]string{},
			flagsets:   datasetFlags,
		},
		{
			name: "OutlierColumns",
			usage: `
              OutlierColumns lists the columns to remove outliers from, in
              the order the filters should be applied.`,
			defaultVal: []string{},
			flagsets:   datasetFlags,
		},
		{
			name: "Percentile",
			usage: `
              Percentile is the quantile, between zero and one, at or above
              which values in OutlierColumns are removed.`,
			defaultVal: 0.99,
			flagsets:   datasetFlags,
		},
		{
			name: "QuantileMethod",
			usage: `
              QuantileMethod is the method used to calculate the outlier
              threshold: 'linear' interpolates between values and 'empirical'
              uses the empirical distribution function.`,
			defaultVal: "linear",
			flagsets:   datasetFlags,
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLANTDATA")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case bool:
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64(option.name, option.defaultVal.(float64), option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				set.String(option.name, string(b.Bytes()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(emissionsCmd)
	Root.AddCommand(capacityCmd)
	Root.AddCommand(generationCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(describeCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plantdata: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("plantdata: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plantdata",
	Short: "Clean power plant emissions, capacity, and generation data.",
	Long: `plantdata cleans U.S. power plant data: EPA emissions files, EIA-860M
generator capacity workbooks, and EIA-923 generation workbooks. Use the
subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLANTDATA_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of plantdata.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("plantdata v%s\n", plantdata.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clean all datasets in a configuration file.",
	Long: `run cleans every dataset that has an input file in the TOML
configuration file given by the --config flag. See
testdata/example_config.toml for an example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgpath := Cfg.GetString("config")
		if cfgpath == "" {
			return fmt.Errorf("plantdata: run requires a configuration file")
		}
		c, err := plantdata.ReadConfigFile(cfgpath)
		if err != nil {
			return err
		}
		if c.DownloadRetries == 0 {
			c.DownloadRetries = cast.ToUint64(Cfg.Get("DownloadRetries"))
		}
		return c.Run(context.Background(), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

var emissionsCmd = &cobra.Command{
	Use:   "emissions",
	Short: "Clean an EPA emissions file.",
	Long: `emissions normalizes the column names of an EPA emissions CSV file,
converts emissions to kilograms, and optionally adds derived columns and
removes outliers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := emissionsConfig(Cfg)
		if err != nil {
			return err
		}
		return c.Run(context.Background(), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Aggregate an EIA-860M generator capacity workbook.",
	Long: `capacity sums the nameplate capacity of the generators in an EIA-860M
workbook by plant and assigns each plant the technology with the
greatest capacity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := capacityConfig(Cfg)
		if err != nil {
			return err
		}
		return c.Run(context.Background(), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

var generationCmd = &cobra.Command{
	Use:   "generation",
	Short: "Reshape an EIA-923 generation workbook.",
	Long: `generation reshapes the monthly net generation columns of an EIA-923
workbook into one row per plant and month and assigns each plant the
fuel with the greatest annual generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := generationConfig(Cfg)
		if err != nil {
			return err
		}
		return c.Run(context.Background(), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert VALUE FROM TO",
	Short: "Convert a mass between units.",
	Long: `convert converts VALUE from unit FROM to unit TO. Acceptable units
are 'kg', 'tons' (short tons), and 'lbs'.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cast.ToFloat64E(args[0])
		if err != nil {
			return fmt.Errorf("plantdata: invalid value %q: %v", args[0], err)
		}
		o, err := units.Convert(v, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s\n", o, args[2])
		return nil
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the numeric columns of a file.",
	Long: `describe prints the count, sum, minimum, mean, and maximum of each
numeric column in a CSV file or Excel workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := describe(context.Background(), Cfg)
		if err != nil {
			return err
		}
		_, err = r.Tabbed(cmd.OutOrStdout())
		return err
	},
	DisableAutoGenTag: true,
}
