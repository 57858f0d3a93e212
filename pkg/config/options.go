package config

import (
	"slices"
	"strings"

	"github.com/ccslim/ccslim/pkg/exceedance"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDataDir sets the base directory of relative input paths.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.DataDir = s
		}
	}
}

// OptOutputDir sets the directory for derived tables.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.OutputDir = s
		}
	}
}

// OptInputsRegionMapping sets the country lookup file.
func OptInputsRegionMapping(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.RegionMapping", s) {
			c.Inputs.RegionMapping = s
		}
	}
}

// OptInputsPotential sets the country potential dataset file.
func OptInputsPotential(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.Potential", s) {
			c.Inputs.Potential = s
		}
	}
}

// OptInputsWorldOverride sets the file with global potential figures.
func OptInputsWorldOverride(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.WorldOverride", s) {
			c.Inputs.WorldOverride = s
		}
	}
}

// OptInputsScenariosWorld sets the IAMC table of World series.
func OptInputsScenariosWorld(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.ScenariosWorld", s) {
			c.Inputs.ScenariosWorld = s
		}
	}
}

// OptInputsScenariosR5 sets the IAMC table of 5-region series.
func OptInputsScenariosR5(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.ScenariosR5", s) {
			c.Inputs.ScenariosR5 = s
		}
	}
}

// OptInputsScenariosR10 sets the IAMC table of 10-region series.
func OptInputsScenariosR10(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.ScenariosR10", s) {
			c.Inputs.ScenariosR10 = s
		}
	}
}

// OptInputsMetadata sets the scenario metadata file.
func OptInputsMetadata(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidTable("Inputs.Metadata", s) {
			c.Inputs.Metadata = s
		}
	}
}

// OptInputsMetadataSheet sets the sheet of an Excel metadata file.
func OptInputsMetadataSheet(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metadata Sheet", s) {
			c.Inputs.MetadataSheet = s
		}
	}
}

// OptInputsRules sets the YAML file with scenario rules.
func OptInputsRules(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidString("Rules File", s) {
			return
		}
		if !isValidExt("Inputs.Rules", s, ".yaml", ".yml") {
			return
		}
		c.Inputs.Rules = s
	}
}

// OptAnalysisYears sets the interpolation grid from start to end.
func OptAnalysisYears(start, end int) Option {
	return func(c *Config) {
		if isValidRange("Analysis Years", start, end) {
			c.Analysis.YearStart = start
			c.Analysis.YearEnd = end
		}
	}
}

// OptAnalysisDomain sets the extrapolation domain of exceedance years.
func OptAnalysisDomain(start, end int) Option {
	return func(c *Config) {
		if isValidRange("Analysis Domain", start, end) {
			c.Analysis.DomainStart = start
			c.Analysis.DomainEnd = end
		}
	}
}

// OptAnalysisVariables sets annual storage variables to accumulate.
func OptAnalysisVariables(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Analysis Variables", ss) {
			c.Analysis.Variables = ss
		}
	}
}

// OptAnalysisRegions sets regions that get exceedance metrics.
func OptAnalysisRegions(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Analysis Regions", ss) {
			c.Analysis.Regions = ss
		}
	}
}

// OptAnalysisCategories sets climate categories used for statistics.
func OptAnalysisCategories(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if isValidList("Analysis Categories", ss) {
			c.Analysis.Categories = ss
		}
	}
}

// OptAnalysisThresholds sets storage limits. Every threshold needs a
// name and a potential field, names have to be unique.
func OptAnalysisThresholds(ths []exceedance.Threshold) Option {
	return func(c *Config) {
		if isValidThresholds(ths) {
			c.Analysis.Thresholds = slices.Clone(ths)
		}
	}
}

// OptMetadataCategory sets the column of climate categories.
func OptMetadataCategory(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metadata Category Column", s) {
			c.MetadataColumns.Category = s
		}
	}
}

// OptMetadataNetZeroCO2 sets the column of net-zero CO2 years.
func OptMetadataNetZeroCO2(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metadata Net-Zero CO2 Column", s) {
			c.MetadataColumns.NetZeroCO2 = s
		}
	}
}

// OptMetadataNetZeroGHG sets the column of net-zero GHG years.
func OptMetadataNetZeroGHG(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metadata Net-Zero GHG Column", s) {
			c.MetadataColumns.NetZeroGHG = s
		}
	}
}

// OptMappingISO sets the country code column of the lookup table.
func OptMappingISO(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mapping ISO Column", s) {
			c.MappingColumns.ISO = s
		}
	}
}

// OptMappingR5 sets the 5-region column of the lookup table.
func OptMappingR5(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mapping R5 Column", s) {
			c.MappingColumns.R5 = s
		}
	}
}

// OptMappingR10 sets the 10-region column of the lookup table.
func OptMappingR10(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mapping R10 Column", s) {
			c.MappingColumns.R10 = s
		}
	}
}

// OptMappingPotentialISO sets the country code column of the potential
// dataset.
func OptMappingPotentialISO(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Potential ISO Column", s) {
			c.MappingColumns.PotentialISO = s
		}
	}
}

// OptArchive sets whether derived tables are stored in a SQLite archive.
func OptArchive(b bool) Option {
	return func(c *Config) {
		c.Archive = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func cleanList(ss []string) []string {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(res, s) {
			res = append(res, s)
		}
	}
	return res
}
