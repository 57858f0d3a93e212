package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	strOpts := []struct {
		val string
		fn  func(string) Option
	}{
		{c.DataDir, OptDataDir},
		{c.OutputDir, OptOutputDir},
		{c.Inputs.RegionMapping, OptInputsRegionMapping},
		{c.Inputs.Potential, OptInputsPotential},
		{c.Inputs.WorldOverride, OptInputsWorldOverride},
		{c.Inputs.ScenariosWorld, OptInputsScenariosWorld},
		{c.Inputs.ScenariosR5, OptInputsScenariosR5},
		{c.Inputs.ScenariosR10, OptInputsScenariosR10},
		{c.Inputs.Metadata, OptInputsMetadata},
		{c.Inputs.MetadataSheet, OptInputsMetadataSheet},
		{c.Inputs.Rules, OptInputsRules},
		{c.MetadataColumns.Category, OptMetadataCategory},
		{c.MetadataColumns.NetZeroCO2, OptMetadataNetZeroCO2},
		{c.MetadataColumns.NetZeroGHG, OptMetadataNetZeroGHG},
		{c.MappingColumns.ISO, OptMappingISO},
		{c.MappingColumns.R5, OptMappingR5},
		{c.MappingColumns.R10, OptMappingR10},
		{c.MappingColumns.PotentialISO, OptMappingPotentialISO},
		{c.Log.Format, OptLogFormat},
		{c.Log.Level, OptLogLevel},
		{c.Log.Destination, OptLogDestination},
	}
	for _, v := range strOpts {
		if v.val != "" {
			res = append(res, v.fn(v.val))
		}
	}

	a := c.Analysis
	if a.YearStart > 0 && a.YearEnd > 0 {
		res = append(res, OptAnalysisYears(a.YearStart, a.YearEnd))
	}
	if a.DomainStart > 0 && a.DomainEnd > 0 {
		res = append(res, OptAnalysisDomain(a.DomainStart, a.DomainEnd))
	}
	if len(a.Variables) > 0 {
		res = append(res, OptAnalysisVariables(a.Variables))
	}
	if len(a.Regions) > 0 {
		res = append(res, OptAnalysisRegions(a.Regions))
	}
	if len(a.Categories) > 0 {
		res = append(res, OptAnalysisCategories(a.Categories))
	}
	if len(a.Thresholds) > 0 {
		res = append(res, OptAnalysisThresholds(a.Thresholds))
	}

	res = append(res, OptArchive(c.Archive))
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidTable(name, s string) bool {
	if !isValidString(name, s) {
		return false
	}
	return isValidExt(name, s, ".csv", ".xlsx")
}

func isValidExt(name, s string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	if slices.Contains(exts, ext) {
		return true
	}
	gn.Warn(
		"<em>%s</em> has to be one of %s files, ignoring '%s'",
		name, strings.Join(exts, ", "), s,
	)
	return false
}

func isValidRange(name string, start, end int) bool {
	res := start > 0 && end >= start
	if !res {
		gn.Warn(
			"<em>%s</em> need positive start not after end, ignoring %d-%d",
			name, start, end,
		)
	}
	return res
}

func isValidList(name string, ss []string) bool {
	res := len(ss) > 0
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidThresholds(ths []exceedance.Threshold) bool {
	if len(ths) == 0 {
		gn.Warn("<em>Analysis Thresholds</em> cannot be empty, ignoring")
		return false
	}
	seen := make(map[string]struct{})
	for _, th := range ths {
		if th.Name == "" || th.Field == "" {
			gn.Warn("<em>Analysis Thresholds</em> need name and field, ignoring")
			return false
		}
		if _, ok := seen[th.Name]; ok {
			gn.Warn(
				"<em>Analysis Thresholds</em> repeat name '%s', ignoring",
				th.Name,
			)
			return false
		}
		seen[th.Name] = struct{}{}
	}
	return true
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
