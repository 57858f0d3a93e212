// Package db defines the contract of the run archive, a single file
// database that keeps every derived table of a pipeline run.
package db

import (
	"context"

	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/stats"
	"github.com/ccslim/ccslim/pkg/timeseries"
)

// Archiver stores derived tables. Implementations live in
// internal/iodb.
type Archiver interface {
	// Open creates a new archive at path, removing an older one, and
	// registers a new run.
	Open(ctx context.Context, path string) error

	// Close releases the database.
	Close() error

	// RunID returns the identifier of the current run.
	RunID() string

	// TableExists checks if a table exists in the archive.
	TableExists(ctx context.Context, table string) (bool, error)

	// Count returns the number of rows of a table.
	Count(ctx context.Context, table string) (int, error)

	// WriteAggregates stores regional potential of a granularity.
	WriteAggregates(
		ctx context.Context,
		granularity string,
		aggs []potential.Aggregate,
	) error

	// WriteLimits stores thresholds per region.
	WriteLimits(
		ctx context.Context,
		limits map[string][]exceedance.Threshold,
	) error

	// WriteSeries stores a table of series under a dataset name, for
	// example "cumulative" or "netzero".
	WriteSeries(ctx context.Context, dataset string, t *timeseries.Table) error

	// WriteExceedance stores exceedance metrics.
	WriteExceedance(ctx context.Context, res []exceedance.Result) error

	// WriteStats stores grouped statistics.
	WriteStats(ctx context.Context, groups []stats.Group) error

	// WriteMeta stores scenario attributes.
	WriteMeta(ctx context.Context, meta timeseries.Meta) error
}
