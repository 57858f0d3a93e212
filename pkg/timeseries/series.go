// Package timeseries keeps scenario time series keyed by
// (model, scenario, region, variable, unit) and provides the merge,
// interpolation and cumulation steps of the pipeline.
//
// Values are sparse: a year without an observation is absent from
// Series.Points and reads as NaN. All operations return new tables and
// never modify their inputs.
package timeseries

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// ScenarioID identifies a scenario run of a model.
type ScenarioID struct {
	Model    string
	Scenario string
}

// Key identifies one time series.
type Key struct {
	Model    string
	Scenario string
	Region   string
	Variable string
	Unit     string
}

// ScenarioID returns model and scenario of the key.
func (k Key) ScenarioID() ScenarioID {
	return ScenarioID{Model: k.Model, Scenario: k.Scenario}
}

// String joins the key fields with tabs, variables contain '|' already.
func (k Key) String() string {
	return strings.Join(
		[]string{k.Model, k.Scenario, k.Region, k.Variable, k.Unit}, "\t",
	)
}

// Series is a sparse mapping from year to value.
type Series struct {
	Key
	Points map[int]float64
}

// NewSeries creates an empty series for the key.
func NewSeries(k Key) Series {
	return Series{Key: k, Points: make(map[int]float64)}
}

// Set stores a value for the year. NaN removes the year.
func (s Series) Set(year int, val float64) {
	if math.IsNaN(val) {
		delete(s.Points, year)
		return
	}
	s.Points[year] = val
}

// Value returns the value at year and whether it was observed.
func (s Series) Value(year int) (float64, bool) {
	res, ok := s.Points[year]
	return res, ok
}

// At returns the value at year or NaN.
func (s Series) At(year int) float64 {
	if res, ok := s.Points[year]; ok {
		return res
	}
	return math.NaN()
}

// Years returns observed years in increasing order.
func (s Series) Years() []int {
	return slices.Sorted(maps.Keys(s.Points))
}

// Len returns the number of observed years.
func (s Series) Len() int {
	return len(s.Points)
}

// Clone returns a deep copy.
func (s Series) Clone() Series {
	return Series{Key: s.Key, Points: maps.Clone(s.Points)}
}
