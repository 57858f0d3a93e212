// Package config provides configuration management for ccslim.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match scalar ToOptions() fields
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions and config.yaml):
//   - Paths: data_dir, output_dir, inputs
//   - Analysis: years, extrapolation domain, variables, regions,
//     categories, thresholds
//   - Columns: metadata_columns, mapping_columns
//   - Archive, Log
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CCSLIM_ prefix with underscores for nesting:
//
//	CCSLIM_DATA_DIR=./data
//	CCSLIM_OUTPUT_DIR=./data/derived
//	CCSLIM_ANALYSIS_YEAR_END=2100
//	CCSLIM_LOG_LEVEL=info
package config

import (
	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/ccslim/ccslim/pkg/potential"
)

// Config represents the complete ccslim configuration.
type Config struct {
	// DataDir is the base directory of relative input paths.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// OutputDir receives all derived tables.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	Inputs InputsConfig `mapstructure:"inputs" yaml:"inputs"`

	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	MetadataColumns MetadataColumns `mapstructure:"metadata_columns" yaml:"metadata_columns"`

	MappingColumns MappingColumns `mapstructure:"mapping_columns" yaml:"mapping_columns"`

	// Archive is true if derived tables are also stored in a SQLite file.
	Archive bool `mapstructure:"archive" yaml:"archive"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// InputsConfig names input files, relative to DataDir unless absolute.
// Tables can be CSV or XLSX files.
type InputsConfig struct {
	// RegionMapping is the country lookup with ISO, R5 and R10 columns.
	RegionMapping string `mapstructure:"region_mapping" yaml:"region_mapping"`

	// Potential is the country storage potential dataset.
	Potential string `mapstructure:"potential" yaml:"potential"`

	// WorldOverride holds global potential figures (field,value). Optional.
	WorldOverride string `mapstructure:"world_override" yaml:"world_override"`

	// ScenariosWorld, ScenariosR5 and ScenariosR10 are IAMC tables of
	// scenario series at each region granularity.
	ScenariosWorld string `mapstructure:"scenarios_world" yaml:"scenarios_world"`
	ScenariosR5    string `mapstructure:"scenarios_r5"    yaml:"scenarios_r5"`
	ScenariosR10   string `mapstructure:"scenarios_r10"   yaml:"scenarios_r10"`

	// Metadata is the scenario metadata table with categories and
	// net-zero years.
	Metadata string `mapstructure:"metadata" yaml:"metadata"`

	// MetadataSheet is used when Metadata is an Excel file.
	MetadataSheet string `mapstructure:"metadata_sheet" yaml:"metadata_sheet"`

	// Rules is a YAML file with scenario validation rules. Optional.
	Rules string `mapstructure:"rules" yaml:"rules"`
}

// AnalysisConfig contains parameters of the computations.
type AnalysisConfig struct {
	// YearStart and YearEnd bound the interpolated analysis grid.
	YearStart int `mapstructure:"year_start" yaml:"year_start"`
	YearEnd   int `mapstructure:"year_end"   yaml:"year_end"`

	// DomainStart and DomainEnd bound extrapolation for exceedance years.
	DomainStart int `mapstructure:"domain_start" yaml:"domain_start"`
	DomainEnd   int `mapstructure:"domain_end"   yaml:"domain_end"`

	// Variables are annual storage variables to accumulate.
	Variables []string `mapstructure:"variables" yaml:"variables"`

	// Regions get exceedance metrics.
	Regions []string `mapstructure:"regions" yaml:"regions"`

	// Categories are climate categories used for statistics.
	Categories []string `mapstructure:"categories" yaml:"categories"`

	// Thresholds bind limit names to regional potential fields.
	Thresholds []exceedance.Threshold `mapstructure:"thresholds" yaml:"thresholds"`
}

// MetadataColumns names the columns of the scenario metadata table.
type MetadataColumns struct {
	Category   string `mapstructure:"category"     yaml:"category"`
	NetZeroCO2 string `mapstructure:"net_zero_co2" yaml:"net_zero_co2"`
	NetZeroGHG string `mapstructure:"net_zero_ghg" yaml:"net_zero_ghg"`
}

// MappingColumns names the country code columns of the lookup table and
// of the potential dataset.
type MappingColumns struct {
	ISO string `mapstructure:"iso" yaml:"iso"`
	R5  string `mapstructure:"r5"  yaml:"r5"`
	R10 string `mapstructure:"r10" yaml:"r10"`

	// PotentialISO is the country code column of the potential dataset.
	PotentialISO string `mapstructure:"potential_iso" yaml:"potential_iso"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		DataDir:   "data",
		OutputDir: "data/derived",
		Inputs: InputsConfig{
			RegionMapping:  "packaged/iso3c_region_mapping_20240319_highlighted.csv",
			Potential:      "packaged/Analysis_dataset.csv",
			ScenariosWorld: "raw/AR6_Scenarios_Database_World_v1.1.csv",
			ScenariosR5:    "raw/AR6_Scenarios_Database_R5_regions_v1.1.csv",
			ScenariosR10:   "raw/AR6_Scenarios_Database_R10_regions_v1.1.csv",
			Metadata:       "raw/AR6_Scenarios_Database_metadata_indicators_v1.1.xlsx",
			MetadataSheet:  "meta",
		},
		Analysis: AnalysisConfig{
			YearStart:   2010,
			YearEnd:     2100,
			DomainStart: 1990,
			DomainEnd:   2300,
			Variables: []string{
				"Carbon Sequestration|CCS",
				"Carbon Sequestration|CCS|Fossil",
			},
			Regions: []string{
				"R5ASIA", "R5LAM", "R5MAF", "R5OECD90+EU", "R5REF", "World",
			},
			Categories: []string{"C1", "C2", "C3", "C4"},
			Thresholds: potential.DefaultThresholds(),
		},
		MetadataColumns: MetadataColumns{
			Category:   "Category",
			NetZeroCO2: "Year of netzero CO2 emissions (Harm-Infilled) Table SPM2",
			NetZeroGHG: "Year of netzero GHG emissions (Harm-Infilled) Table SPM2",
		},
		MappingColumns: MappingColumns{
			ISO:          "iso3c",
			R5:           "r5_iamc",
			R10:          "r10_iamc",
			PotentialISO: "ISO",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
