package iotable

import (
	"bufio"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/stats"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/gnames/gnfmt"
)

// Column names of derived tables.
const (
	RegionColumn        = "Region"
	ThresholdColumn     = "Threshold"
	YearsToExceedColumn = "Years to Exceed at Net-zero CO2 Levels"
	ExceedanceColumn    = "Exceedance Year"
)

// FormatFloat prints the shortest representation of a number. NaN is an
// empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes header and rows to path, replacing an existing file.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteFileError(path, err)
	}
	w := bufio.NewWriter(f)
	for _, row := range append([][]string{header}, rows...) {
		if _, err = w.WriteString(gnfmt.ToCSV(row, ',') + "\n"); err != nil {
			f.Close()
			return WriteFileError(path, err)
		}
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}

// WriteAggregates writes regional potential with one row per region.
func WriteAggregates(path string, fields []string, aggs []potential.Aggregate) error {
	header := append([]string{RegionColumn}, fields...)
	header = append(header, potential.PercentageLost)
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		row := []string{a.Region}
		for _, f := range fields {
			row = append(row, FormatFloat(a.Get(f)))
		}
		row = append(row, FormatFloat(a.PercentageLost))
		rows = append(rows, row)
	}
	return WriteCSV(path, header, rows)
}

// Aggregates reads a table written by WriteAggregates.
func Aggregates(sh *Sheet) ([]potential.Aggregate, error) {
	idx, err := sh.Require(RegionColumn)
	if err != nil {
		return nil, err
	}
	var res []potential.Aggregate
	for n, row := range sh.Rows {
		a := potential.Aggregate{
			Region:         row[idx[0]],
			Values:         make(map[string]float64),
			PercentageLost: math.NaN(),
		}
		for i, h := range sh.Header {
			if i == idx[0] || h == "" {
				continue
			}
			v, err := ParseNumber(row[i])
			if err != nil {
				return nil, ParseNumberError(sh.Path, n+2, h, row[i])
			}
			if h == potential.PercentageLost {
				a.PercentageLost = v
				continue
			}
			a.Values[h] = v
		}
		res = append(res, a)
	}
	return res, nil
}

// WriteLimits writes storage thresholds (Gt CO2) of every region.
func WriteLimits(
	path string,
	regions []string,
	limits map[string][]exceedance.Threshold,
) error {
	header := []string{RegionColumn, ThresholdColumn, "field", "note", "value"}
	var rows [][]string
	for _, reg := range regions {
		for _, th := range limits[reg] {
			rows = append(rows, []string{
				reg, th.Name, th.Field, th.Note, FormatFloat(th.Value),
			})
		}
	}
	return WriteCSV(path, header, rows)
}

// WriteSeries writes a table in IAMC wide format with a column for every
// year of the table.
func WriteSeries(path string, t *timeseries.Table) error {
	years := t.Years()
	header := slices.Clone(iamcColumns)
	for _, y := range years {
		header = append(header, strconv.Itoa(y))
	}
	rows := make([][]string, 0, t.Len())
	for _, s := range t.Series() {
		row := []string{s.Model, s.Scenario, s.Region, s.Variable, s.Unit}
		for _, y := range years {
			row = append(row, FormatFloat(s.At(y)))
		}
		rows = append(rows, row)
	}
	return WriteCSV(path, header, rows)
}

// WriteExceedance writes exceedance metrics.
func WriteExceedance(path string, res []exceedance.Result) error {
	header := []string{
		"Model", "Scenario", RegionColumn, ThresholdColumn, "Note",
		YearsToExceedColumn, ExceedanceColumn,
	}
	rows := make([][]string, 0, len(res))
	for _, r := range res {
		rows = append(rows, []string{
			r.Model, r.Scenario, r.Region, r.Threshold, r.Note,
			FormatFloat(r.YearsToExceed), FormatFloat(r.Year),
		})
	}
	return WriteCSV(path, header, rows)
}

// WriteStats writes grouped descriptive statistics.
func WriteStats(path string, groups []stats.Group) error {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := []string{g.Measure, g.Variable, g.Category}
		for _, v := range g.Values() {
			row = append(row, FormatFloat(v))
		}
		rows = append(rows, row)
	}
	return WriteCSV(path, stats.Header(), rows)
}

// WriteMeta writes the given attributes of scenarios. Missing attributes
// are empty cells.
func WriteMeta(
	path string,
	meta timeseries.Meta,
	scens []timeseries.ScenarioID,
	cols []string,
) error {
	header := append([]string{"Model", "Scenario"}, cols...)
	rows := make([][]string, 0, len(scens))
	for _, id := range scens {
		row := []string{id.Model, id.Scenario}
		for _, c := range cols {
			v, _ := meta.Get(id, c)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return WriteCSV(path, header, rows)
}
