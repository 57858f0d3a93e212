// Package netzero reads series values at the year a scenario reaches
// net-zero emissions.
package netzero

import (
	"math"

	"github.com/ccslim/ccslim/pkg/timeseries"
)

// Sentinel years used as the time dimension of snapshot tables. They keep
// CO2 and GHG snapshots of the same series apart.
const (
	YearCO2 = -1
	YearGHG = -2
)

// Labels of the sentinel years in reports.
const (
	LabelCO2 = "Net Zero CO2"
	LabelGHG = "Net Zero GHGs"
)

// Events maps a scenario to the year of an event. NaN means the scenario
// never reaches it.
type Events map[timeseries.ScenarioID]float64

// Year returns the event year of a scenario. The second value is false if
// the year is unknown or not finite.
func (ev Events) Year(id timeseries.ScenarioID) (int, bool) {
	y, ok := ev[id]
	if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return int(math.Round(y)), true
}

// Value is a series value at an event year.
type Value struct {
	timeseries.Key
	// Year is the event year, zero if undefined.
	Year int
	// Value is NaN when the scenario never reaches the event or the series
	// has no value in that year.
	Value float64
}

// Snapshot reads every series of the table at its scenario's event year.
func Snapshot(t *timeseries.Table, ev Events) []Value {
	ss := t.Series()
	res := make([]Value, 0, len(ss))
	for _, s := range ss {
		v := Value{Key: s.Key, Value: math.NaN()}
		if y, ok := ev.Year(s.ScenarioID()); ok {
			v.Year = y
			v.Value = s.At(y)
		}
		res = append(res, v)
	}
	return res
}

// Combine takes CO2 and GHG snapshots of the same table and stores them
// in one table, tagged with YearCO2 and YearGHG.
func Combine(t *timeseries.Table, co2, ghg Events) *timeseries.Table {
	res := timeseries.NewTable()
	vco2 := Snapshot(t, co2)
	vghg := Snapshot(t, ghg)
	for i := range vco2 {
		s := timeseries.NewSeries(vco2[i].Key)
		s.Set(YearCO2, vco2[i].Value)
		s.Set(YearGHG, vghg[i].Value)
		// snapshots follow the keys of t, they are unique
		_ = res.Add(s)
	}
	res.Meta = t.Meta.Clone()
	return res
}
