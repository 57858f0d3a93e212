package netzero_test

import (
	"math"
	"testing"

	"github.com/ccslim/ccslim/pkg/netzero"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func data(t *testing.T) *timeseries.Table {
	res := timeseries.NewTable()
	for _, scen := range []string{"s1", "s2"} {
		for _, v := range []string{"Carbon Sequestration|CCS", "Cumulative Carbon Sequestration|CCS"} {
			s := timeseries.NewSeries(timeseries.Key{
				Model: "m1", Scenario: scen, Region: "World", Variable: v, Unit: "Mt CO2/yr",
			})
			for y := 2010; y <= 2100; y++ {
				s.Set(y, float64(y-2000))
			}
			require.NoError(t, res.Add(s))
		}
	}
	return res
}

var (
	s1 = timeseries.ScenarioID{Model: "m1", Scenario: "s1"}
	s2 = timeseries.ScenarioID{Model: "m1", Scenario: "s2"}
)

func TestSnapshot(t *testing.T) {
	ev := netzero.Events{s1: 2055, s2: math.NaN()}

	res := netzero.Snapshot(data(t), ev)
	require.Len(t, res, 4)
	for _, v := range res {
		if v.Scenario == "s1" {
			assert.Equal(t, 2055, v.Year)
			assert.Equal(t, 55.0, v.Value)
			continue
		}
		assert.True(t, math.IsNaN(v.Value),
			"scenario without net zero gives undefined values")
	}
}

func TestSnapshotUnknownScenario(t *testing.T) {
	res := netzero.Snapshot(data(t), netzero.Events{s1: math.Inf(1)})
	for _, v := range res {
		assert.True(t, math.IsNaN(v.Value))
	}
}

func TestSnapshotYearOutsideSeries(t *testing.T) {
	res := netzero.Snapshot(data(t), netzero.Events{s1: 2150, s2: 2100})
	for _, v := range res {
		if v.Scenario == "s1" {
			assert.True(t, math.IsNaN(v.Value))
		} else {
			assert.Equal(t, 100.0, v.Value)
		}
	}
}

func TestCombine(t *testing.T) {
	co2 := netzero.Events{s1: 2050, s2: math.NaN()}
	ghg := netzero.Events{s1: 2070, s2: 2090}

	res := netzero.Combine(data(t), co2, ghg)
	assert.Equal(t, 4, res.Len())
	assert.Equal(t, []int{netzero.YearGHG, netzero.YearCO2}, res.Years())

	for _, s := range res.Series() {
		switch s.Scenario {
		case "s1":
			assert.Equal(t, 50.0, s.At(netzero.YearCO2))
			assert.Equal(t, 70.0, s.At(netzero.YearGHG))
		case "s2":
			assert.True(t, math.IsNaN(s.At(netzero.YearCO2)))
			assert.Equal(t, 90.0, s.At(netzero.YearGHG))
		}
	}
}
