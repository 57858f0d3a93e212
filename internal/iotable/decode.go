package iotable

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ccslim/ccslim/pkg/config"
	"github.com/ccslim/ccslim/pkg/netzero"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/region"
	"github.com/ccslim/ccslim/pkg/timeseries"
)

// IAMC key columns of scenario tables.
var iamcColumns = []string{"Model", "Scenario", "Region", "Variable", "Unit"}

// Lookup converts a sheet into a country lookup table.
func Lookup(sh *Sheet) region.Lookup {
	res := region.Lookup{Columns: slices.Clone(sh.Header)}
	for _, row := range sh.Rows {
		m := make(map[string]string, len(row))
		for i, v := range row {
			m[sh.Header[i]] = v
		}
		res.Rows = append(res.Rows, m)
	}
	return res
}

// Potential converts a sheet into a country potential dataset. Every
// column except isoColumn has to be numeric, empty cells are NaN.
func Potential(sh *Sheet, isoColumn string) (potential.Dataset, error) {
	var res potential.Dataset
	idx, err := sh.Require(isoColumn)
	if err != nil {
		return res, err
	}
	isoIdx := idx[0]

	for i, h := range sh.Header {
		if i != isoIdx && h != "" {
			res.Fields = append(res.Fields, h)
		}
	}

	for n, row := range sh.Rows {
		iso := row[isoIdx]
		if iso == "" {
			continue
		}
		rec := potential.Record{ISO: iso, Values: make(map[string]float64, len(res.Fields))}
		for i, h := range sh.Header {
			if i == isoIdx || h == "" {
				continue
			}
			v, err := ParseNumber(row[i])
			if err != nil {
				return res, ParseNumberError(sh.Path, n+2, h, row[i])
			}
			rec.Values[h] = v
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// Override reads field,value pairs from the first two columns.
func Override(sh *Sheet) (map[string]float64, error) {
	if len(sh.Header) < 2 {
		return nil, MissingColumnError(sh.Path, "value")
	}
	res := make(map[string]float64, len(sh.Rows))
	for n, row := range sh.Rows {
		field := row[0]
		if field == "" {
			continue
		}
		v, err := ParseNumber(row[1])
		if err != nil || math.IsNaN(v) {
			return nil, ParseNumberError(sh.Path, n+2, sh.Header[1], row[1])
		}
		res[field] = v
	}
	return res, nil
}

// Scenarios converts an IAMC wide table into series. Only rows of the
// given variables are kept, all rows if variables is empty. Year columns
// are recognised by integer headers, empty cells are missing points.
func Scenarios(sh *Sheet, variables []string) (*timeseries.Table, error) {
	keyIdx := make([]int, len(iamcColumns))
	for i, c := range iamcColumns {
		keyIdx[i] = sh.IndexFold(c)
		if keyIdx[i] < 0 {
			return nil, MissingColumnError(sh.Path, c)
		}
	}

	years := make(map[int]int)
	for i, h := range sh.Header {
		if y, err := strconv.Atoi(h); err == nil {
			years[i] = y
		}
	}

	res := timeseries.NewTable()
	for n, row := range sh.Rows {
		k := timeseries.Key{
			Model:    row[keyIdx[0]],
			Scenario: row[keyIdx[1]],
			Region:   row[keyIdx[2]],
			Variable: row[keyIdx[3]],
			Unit:     row[keyIdx[4]],
		}
		if len(variables) > 0 && !slices.Contains(variables, k.Variable) {
			continue
		}
		s := timeseries.NewSeries(k)
		for i, y := range years {
			v, err := ParseNumber(row[i])
			if err != nil {
				return nil, ParseNumberError(sh.Path, n+2, sh.Header[i], row[i])
			}
			s.Set(y, v)
		}
		if err := res.Add(s); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Metadata holds scenario attributes and net-zero events.
type Metadata struct {
	Meta timeseries.Meta
	CO2  netzero.Events
	GHG  netzero.Events
}

// DecodeMetadata reads scenario metadata. All columns besides Model and
// Scenario are kept as attributes. Net-zero years that are empty or not
// numeric mean the event never happens.
func DecodeMetadata(sh *Sheet, cols config.MetadataColumns) (Metadata, error) {
	res := Metadata{
		Meta: make(timeseries.Meta),
		CO2:  make(netzero.Events),
		GHG:  make(netzero.Events),
	}
	model, scen := sh.IndexFold("Model"), sh.IndexFold("Scenario")
	if model < 0 {
		return res, MissingColumnError(sh.Path, "Model")
	}
	if scen < 0 {
		return res, MissingColumnError(sh.Path, "Scenario")
	}
	idx, err := sh.Require(cols.Category, cols.NetZeroCO2, cols.NetZeroGHG)
	if err != nil {
		return res, err
	}

	for _, row := range sh.Rows {
		id := timeseries.ScenarioID{Model: row[model], Scenario: row[scen]}
		for i, h := range sh.Header {
			if i == model || i == scen || h == "" {
				continue
			}
			res.Meta.Set(id, h, row[i])
		}
		res.CO2[id] = eventYear(row[idx[1]])
		res.GHG[id] = eventYear(row[idx[2]])
	}
	return res, nil
}

func eventYear(s string) float64 {
	v, err := ParseNumber(s)
	if err != nil {
		slog.Debug("Not a net-zero year", "value", s)
		return math.NaN()
	}
	return v
}

// ParseNumber parses a float. Empty cells and NA markers are NaN.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if region.IsNull(s) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
