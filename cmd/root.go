/*
Copyright © 2026 The ccslim Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ccslim/ccslim/internal/iofs"
	"github.com/ccslim/ccslim/internal/iologger"
	app "github.com/ccslim/ccslim/pkg"
	"github.com/ccslim/ccslim/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "ccslim",
		Short:   "ccslim compares CCS scenarios with geological storage limits",
		Long: `ccslim is a batch pipeline for the assessment of carbon storage limits.

It aggregates country storage potential into IPCC regions, merges
scenario carbon sequestration series of World, R5 and R10 regions,
accumulates them, takes snapshots at net-zero years and computes when
regional storage limits would be exceeded.

Stages (run one by one or all together with 'ccslim run'):
  - potential:  regional potential and storage limits
  - series:     merged, interpolated and cumulative series, net-zero snapshots
  - exceedance: years to exceed and exceedance years
  - validate:   scenario rules from a YAML file
  - stats:      storage statistics per climate category

Every stage overwrites its tables in the output directory.

Configuration precedence (highest to lowest):
  1. CLI flags (--data-dir, --output-dir, --archive)
  2. Environment variables (CCSLIM_*)
  3. Config file (~/.config/ccslim/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (analysis.year_end -> CCSLIM_ANALYSIS_YEAR_END).

  Examples:
    CCSLIM_DATA_DIR             base directory of input files
    CCSLIM_OUTPUT_DIR           directory of derived tables
    CCSLIM_ARCHIVE              also write a SQLite archive
    CCSLIM_LOG_LEVEL            log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "ccslim version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for ccslim")
	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		getPotentialCmd(),
		getSeriesCmd(),
		getExceedanceCmd(),
		getValidateCmd(),
		getStatsCmd(),
		getRunCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the log
	// started above
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"data_dir", cfg.DataDir,
		"output_dir", cfg.OutputDir,
	)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	gn.Info(
		"Configuration file is available at <em>%s</em>",
		config.ConfigFilePath(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the scalar fields included in config.ToOptions().
	v.SetEnvPrefix("CCSLIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// General configuration
	v.BindEnv("data_dir", "DATA_DIR")
	v.BindEnv("output_dir", "OUTPUT_DIR")
	v.BindEnv("archive", "ARCHIVE")

	// Input files
	v.BindEnv("inputs.region_mapping", "INPUTS_REGION_MAPPING")
	v.BindEnv("inputs.potential", "INPUTS_POTENTIAL")
	v.BindEnv("inputs.world_override", "INPUTS_WORLD_OVERRIDE")
	v.BindEnv("inputs.scenarios_world", "INPUTS_SCENARIOS_WORLD")
	v.BindEnv("inputs.scenarios_r5", "INPUTS_SCENARIOS_R5")
	v.BindEnv("inputs.scenarios_r10", "INPUTS_SCENARIOS_R10")
	v.BindEnv("inputs.metadata", "INPUTS_METADATA")
	v.BindEnv("inputs.metadata_sheet", "INPUTS_METADATA_SHEET")
	v.BindEnv("inputs.rules", "INPUTS_RULES")

	// Analysis configuration
	v.BindEnv("analysis.year_start", "ANALYSIS_YEAR_START")
	v.BindEnv("analysis.year_end", "ANALYSIS_YEAR_END")
	v.BindEnv("analysis.domain_start", "ANALYSIS_DOMAIN_START")
	v.BindEnv("analysis.domain_end", "ANALYSIS_DOMAIN_END")

	// Column names
	v.BindEnv("metadata_columns.category", "METADATA_COLUMNS_CATEGORY")
	v.BindEnv("metadata_columns.net_zero_co2", "METADATA_COLUMNS_NET_ZERO_CO2")
	v.BindEnv("metadata_columns.net_zero_ghg", "METADATA_COLUMNS_NET_ZERO_GHG")
	v.BindEnv("mapping_columns.iso", "MAPPING_COLUMNS_ISO")
	v.BindEnv("mapping_columns.r5", "MAPPING_COLUMNS_R5")
	v.BindEnv("mapping_columns.r10", "MAPPING_COLUMNS_R10")
	v.BindEnv("mapping_columns.potential_iso", "MAPPING_COLUMNS_POTENTIAL_ISO")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}
