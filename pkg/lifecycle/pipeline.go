// Package lifecycle defines the stages of the storage assessment
// pipeline and the report of a run.
package lifecycle

import (
	"context"
)

// Pipeline runs the stages of the assessment. Every stage reads its
// inputs from files, either configured inputs or tables written by an
// earlier stage, and overwrites its derived tables in the output
// directory. Stages can therefore run one by one in this order:
// Potential, Series, Exceedance, Validate, Stats.
type Pipeline interface {
	// Potential aggregates country storage potential into regions and
	// derives regional storage limits.
	Potential(ctx context.Context) error

	// Series merges scenario series of all region granularities,
	// interpolates them onto the analysis years, accumulates storage
	// variables and takes snapshots at net-zero years.
	Series(ctx context.Context) error

	// Exceedance computes years to exceed and exceedance years of the
	// regional limits.
	Exceedance(ctx context.Context) error

	// Validate applies scenario rules to the series table. It is a no-op
	// without a rules file.
	Validate(ctx context.Context) error

	// Stats describes storage at the end of the century and at net zero
	// per climate category.
	Stats(ctx context.Context) error

	// Run executes all stages in order and saves the report.
	Run(ctx context.Context) error

	// Report returns what has been done so far.
	Report() Report
}

// Report summarises a pipeline run.
type Report struct {
	Version string `json:"version"`
	// RunID is set when results are archived.
	RunID        string        `json:"runId,omitempty"`
	Stages       []StageReport `json:"stages"`
	CoverageGaps []GapReport   `json:"coverageGaps,omitempty"`
	// Duration of all stages, formatted.
	Duration string `json:"duration"`
}

// StageReport describes one finished stage.
type StageReport struct {
	Name     string   `json:"name"`
	Outputs  []string `json:"outputs"`
	Rows     int      `json:"rows"`
	Duration string   `json:"duration"`
}

// GapReport lists scenarios reported at a coarse granularity but missing
// at a finer one.
type GapReport struct {
	Coarse    string   `json:"coarse"`
	Fine      string   `json:"fine"`
	Models    []string `json:"models"`
	Scenarios int      `json:"scenarios"`
}
