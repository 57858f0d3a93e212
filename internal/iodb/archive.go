// Package iodb implements the run archive on top of a SQLite file using
// the pure Go modernc driver. This is an impure I/O package that
// implements contracts defined in pkg/.
package iodb

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	ccslim "github.com/ccslim/ccslim/pkg"
	"github.com/ccslim/ccslim/pkg/db"
	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/stats"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// sqliteArchive implements db.Archiver.
type sqliteArchive struct {
	db    *sql.DB
	path  string
	runID string
}

// NewSQLiteArchive creates a new archive (without opening it).
func NewSQLiteArchive() db.Archiver {
	return &sqliteArchive{}
}

// Open removes an existing archive at path, creates the schema and
// registers the run. An archive that is already open is closed first.
// After a failed Open the archive stays closed.
func (a *sqliteArchive) Open(ctx context.Context, path string) error {
	if err := a.Close(); err != nil {
		return ArchiveOpenError(a.path, err)
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ArchiveOpenError(path, err)
	}

	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return ArchiveOpenError(path, err)
	}
	if err = sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return ArchiveOpenError(path, err)
	}
	// one writer, a single connection keeps the file consistent
	sdb.SetMaxOpenConns(1)

	if err = createSchema(ctx, sdb); err != nil {
		sdb.Close()
		return ArchiveSchemaError(path, err)
	}
	runID := uuid.NewString()
	if err = registerRun(ctx, sdb, runID); err != nil {
		sdb.Close()
		return ArchiveWriteError("runs", err)
	}

	a.db = sdb
	a.path = path
	a.runID = runID
	slog.Info("Archive created", "path", path, "run", runID)
	return nil
}

func createSchema(ctx context.Context, sdb *sql.DB) error {
	for _, q := range ddl {
		if _, err := sdb.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func registerRun(ctx context.Context, sdb *sql.DB, runID string) error {
	_, err := sdb.ExecContext(ctx,
		"INSERT INTO runs (id, version, created_at) VALUES (?, ?, ?)",
		runID, ccslim.Version, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Close releases the database.
func (a *sqliteArchive) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *sqliteArchive) RunID() string {
	return a.runID
}

// TableExists checks sqlite_master for the table.
func (a *sqliteArchive) TableExists(
	ctx context.Context,
	table string,
) (bool, error) {
	if a.db == nil {
		return false, NotOpenError()
	}
	var exists bool
	err := a.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?
		)`, table,
	).Scan(&exists)
	if err != nil {
		return false, ArchiveQueryError(table, err)
	}
	return exists, nil
}

// Count returns the number of rows of an archive table.
func (a *sqliteArchive) Count(ctx context.Context, table string) (int, error) {
	if a.db == nil {
		return 0, NotOpenError()
	}
	if !slices.Contains(tables, table) {
		return 0, ArchiveQueryError(table, fmt.Errorf("unknown table"))
	}
	var res int
	q := fmt.Sprintf("SELECT count(*) FROM %s", table)
	if err := a.db.QueryRowContext(ctx, q).Scan(&res); err != nil {
		return 0, ArchiveQueryError(table, err)
	}
	return res, nil
}

func (a *sqliteArchive) WriteAggregates(
	ctx context.Context,
	granularity string,
	aggs []potential.Aggregate,
) error {
	q := `INSERT INTO aggregates (granularity, region, field, value)
		VALUES (?, ?, ?, ?)`
	return a.insert(ctx, "aggregates", q, func(stmt *sql.Stmt) error {
		for _, ag := range aggs {
			for _, f := range sortedFields(ag.Values) {
				_, err := stmt.ExecContext(ctx,
					granularity, ag.Region, f, nullFloat(ag.Values[f]))
				if err != nil {
					return err
				}
			}
			_, err := stmt.ExecContext(ctx, granularity, ag.Region,
				potential.PercentageLost, nullFloat(ag.PercentageLost))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *sqliteArchive) WriteLimits(
	ctx context.Context,
	limits map[string][]exceedance.Threshold,
) error {
	q := `INSERT INTO limits (region, threshold, field, note, value)
		VALUES (?, ?, ?, ?, ?)`
	regions := sortedFields(limits)
	return a.insert(ctx, "limits", q, func(stmt *sql.Stmt) error {
		for _, reg := range regions {
			for _, th := range limits[reg] {
				_, err := stmt.ExecContext(ctx,
					reg, th.Name, th.Field, th.Note, nullFloat(th.Value))
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteSeries stores series with identifiers derived from the dataset
// name and the series key, so the same series gets the same id in every
// archive.
func (a *sqliteArchive) WriteSeries(
	ctx context.Context,
	dataset string,
	t *timeseries.Table,
) error {
	if a.db == nil {
		return NotOpenError()
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return ArchiveWriteError("series", err)
	}
	defer tx.Rollback()

	sStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO series (id, dataset, model, scenario, region, variable, unit)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ArchiveWriteError("series", err)
	}
	defer sStmt.Close()
	pStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO points (series_id, year, value) VALUES (?, ?, ?)")
	if err != nil {
		return ArchiveWriteError("points", err)
	}
	defer pStmt.Close()

	for _, s := range t.Series() {
		id := SeriesID(dataset, s.Key)
		_, err = sStmt.ExecContext(ctx, id, dataset,
			s.Model, s.Scenario, s.Region, s.Variable, s.Unit)
		if err != nil {
			return ArchiveWriteError("series", err)
		}
		for _, y := range s.Years() {
			if _, err = pStmt.ExecContext(ctx, id, y, s.At(y)); err != nil {
				return ArchiveWriteError("points", err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return ArchiveWriteError("series", err)
	}
	return nil
}

func (a *sqliteArchive) WriteExceedance(
	ctx context.Context,
	res []exceedance.Result,
) error {
	q := `INSERT INTO exceedance
		(model, scenario, region, threshold, note, years_to_exceed, year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	return a.insert(ctx, "exceedance", q, func(stmt *sql.Stmt) error {
		for _, r := range res {
			_, err := stmt.ExecContext(ctx,
				r.Model, r.Scenario, r.Region, r.Threshold, r.Note,
				nullFloat(r.YearsToExceed), nullFloat(r.Year))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *sqliteArchive) WriteStats(
	ctx context.Context,
	groups []stats.Group,
) error {
	q := `INSERT INTO stats
		(measure, variable, category, count, mean, std, min,
		 p5, p25, p50, p75, p95, max)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return a.insert(ctx, "stats", q, func(stmt *sql.Stmt) error {
		for _, g := range groups {
			args := []any{g.Measure, g.Variable, g.Category, g.Count}
			// Values starts with the count, which is stored as integer
			for _, v := range g.Values()[1:] {
				args = append(args, nullFloat(v))
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *sqliteArchive) WriteMeta(
	ctx context.Context,
	meta timeseries.Meta,
) error {
	q := `INSERT INTO meta (model, scenario, name, value)
		VALUES (?, ?, ?, ?)`
	ids := make([]timeseries.ScenarioID, 0, len(meta))
	for id := range meta {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(x, y timeseries.ScenarioID) int {
		return cmp.Or(
			strings.Compare(x.Model, y.Model),
			strings.Compare(x.Scenario, y.Scenario),
		)
	})
	return a.insert(ctx, "meta", q, func(stmt *sql.Stmt) error {
		for _, id := range ids {
			for _, name := range sortedFields(meta[id]) {
				_, err := stmt.ExecContext(ctx,
					id.Model, id.Scenario, name, meta[id][name])
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SeriesID returns a UUID v5 of a series within a dataset.
func SeriesID(dataset string, k timeseries.Key) string {
	return gnuuid.New(dataset + "\t" + k.String()).String()
}

// insert runs fn with a prepared statement inside a transaction.
func (a *sqliteArchive) insert(
	ctx context.Context,
	table, query string,
	fn func(*sql.Stmt) error,
) error {
	if a.db == nil {
		return NotOpenError()
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return ArchiveWriteError(table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return ArchiveWriteError(table, err)
	}
	defer stmt.Close()

	if err = fn(stmt); err != nil {
		return ArchiveWriteError(table, err)
	}
	if err = tx.Commit(); err != nil {
		return ArchiveWriteError(table, err)
	}
	return nil
}

// nullFloat maps NaN to SQL NULL.
func nullFloat(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func sortedFields[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
