package timeseries_test

import (
	"math"
	"testing"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ccs = "Carbon Sequestration|CCS"

func key(model, scen, reg string) timeseries.Key {
	return timeseries.Key{
		Model:    model,
		Scenario: scen,
		Region:   reg,
		Variable: ccs,
		Unit:     "Mt CO2/yr",
	}
}

func series(k timeseries.Key, pts map[int]float64) timeseries.Series {
	s := timeseries.NewSeries(k)
	for y, v := range pts {
		s.Set(y, v)
	}
	return s
}

func table(t *testing.T, ss ...timeseries.Series) *timeseries.Table {
	res := timeseries.NewTable()
	for _, s := range ss {
		require.NoError(t, res.Add(s))
	}
	return res
}

func TestTableAdd(t *testing.T) {
	tbl := table(t,
		series(key("m1", "s1", "World"), map[int]float64{2010: 1, 2020: math.NaN()}),
	)
	assert.Equal(t, 1, tbl.Len())

	s, ok := tbl.Get(key("m1", "s1", "World"))
	require.True(t, ok)
	assert.Equal(t, 1, s.Len(), "NaN values are not stored")
	assert.True(t, math.IsNaN(s.At(2020)))

	err := tbl.Add(series(key("m1", "s1", "World"), nil))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SeriesDuplicateKeyError, gnErr.Code)
}

func TestTableReturnsCopies(t *testing.T) {
	tbl := table(t, series(key("m1", "s1", "World"), map[int]float64{2010: 1}))

	s := tbl.Series()[0]
	s.Points[2010] = 100

	got, _ := tbl.Get(key("m1", "s1", "World"))
	assert.Equal(t, 1.0, got.At(2010))
}

func TestQuery(t *testing.T) {
	k := key("m1", "s1", "R5ASIA")
	tests := []struct {
		msg string
		q   timeseries.Query
		res bool
	}{
		{"empty query matches all", timeseries.Query{}, true},
		{"region match", timeseries.Query{Region: "R5ASIA"}, true},
		{"region mismatch", timeseries.Query{Region: "R5"}, false},
		{"partial label is not a match", timeseries.Query{Variable: "Carbon"}, false},
		{
			"several fields",
			timeseries.Query{Model: "m1", Scenario: "s1", Variable: ccs},
			true,
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.q.Match(k), v.msg)
	}
}

func TestFilterKeepsMeta(t *testing.T) {
	tbl := table(t,
		series(key("m1", "s1", "World"), map[int]float64{2010: 1}),
		series(key("m1", "s2", "World"), map[int]float64{2010: 1}),
	)
	tbl.Meta.Set(timeseries.ScenarioID{Model: "m1", Scenario: "s1"}, "Category", "C1")
	tbl.Meta.Set(timeseries.ScenarioID{Model: "m1", Scenario: "s2"}, "Category", "C3")

	res := tbl.Filter(timeseries.Query{Scenario: "s1"})
	assert.Equal(t, 1, res.Len())
	assert.Len(t, res.Meta, 1)
	cat, ok := res.Meta.Get(timeseries.ScenarioID{Model: "m1", Scenario: "s1"}, "Category")
	assert.True(t, ok)
	assert.Equal(t, "C1", cat)
}

func TestCoverageGap(t *testing.T) {
	world := table(t,
		series(key("m1", "s1", "World"), map[int]float64{2010: 1}),
		series(key("m2", "s1", "World"), map[int]float64{2010: 1}),
		series(key("m2", "s2", "World"), map[int]float64{2010: 1}),
	)
	r5 := table(t,
		series(key("m1", "s1", "R5ASIA"), map[int]float64{2010: 1}),
		series(key("m1", "s1", "R5LAM"), map[int]float64{2010: 1}),
	)

	gap := timeseries.CoverageGap(world, r5)
	assert.False(t, gap.Empty())
	assert.Equal(t, []timeseries.ScenarioID{
		{Model: "m2", Scenario: "s1"},
		{Model: "m2", Scenario: "s2"},
	}, gap.Missing)
	assert.Equal(t, []string{"m2"}, gap.Models)

	assert.True(t, timeseries.CoverageGap(r5, world).Empty())
}

func TestMerge(t *testing.T) {
	world := table(t, series(key("m1", "s1", "World"), map[int]float64{2010: 1}))
	r5 := table(t, series(key("m1", "s1", "R5ASIA"), map[int]float64{2010: 2}))

	res, err := timeseries.Merge(world, r5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
	assert.Equal(t, 1, world.Len(), "inputs are not modified")

	_, err = timeseries.Merge(world, r5, world)
	assert.Error(t, err, "overlapping granularities")
}

func TestInterpolate(t *testing.T) {
	tbl := table(t, series(key("m1", "s1", "World"),
		map[int]float64{1990: 0, 2020: 10, 2030: 30},
	))

	res := timeseries.Interpolate(tbl, timeseries.YearRange(2010, 2040))
	s, _ := res.Get(key("m1", "s1", "World"))

	assert.InDelta(t, 6.6667, s.At(2010), 1e-4)
	assert.InDelta(t, 10, s.At(2020), 1e-9)
	assert.InDelta(t, 20, s.At(2025), 1e-9)
	assert.InDelta(t, 30, s.At(2030), 1e-9)
	assert.True(t, math.IsNaN(s.At(2031)), "no extrapolation")
	assert.Equal(t, 0.0, s.At(1990), "observed years outside grid kept")

	orig, _ := tbl.Get(key("m1", "s1", "World"))
	assert.Equal(t, 3, orig.Len())
}

func TestCumulate(t *testing.T) {
	tbl := table(t, series(key("m1", "s1", "World"),
		map[int]float64{2010: 1, 2012: 3, 2015: 6},
	))
	tbl.Meta.Set(timeseries.ScenarioID{Model: "m1", Scenario: "s1"}, "Category", "C2")

	res, err := timeseries.Cumulate(tbl, timeseries.CumulateOptions{
		Variable: ccs,
		Start:    2010,
		End:      2013,
	})
	require.NoError(t, err)

	k := key("m1", "s1", "World")
	k.Variable = "Cumulative " + ccs
	s, ok := res.Get(k)
	require.True(t, ok)
	assert.Equal(t, []int{2010, 2011, 2012, 2013}, s.Years())
	assert.InDelta(t, 1, s.At(2010), 1e-9)
	assert.InDelta(t, 3, s.At(2011), 1e-9)
	assert.InDelta(t, 6, s.At(2012), 1e-9)
	assert.InDelta(t, 10, s.At(2013), 1e-9)

	cat, ok := res.Meta.Get(k.ScenarioID(), "Category")
	assert.True(t, ok)
	assert.Equal(t, "C2", cat)
}

func TestCumulateOffset(t *testing.T) {
	tbl := table(t, series(key("m1", "s1", "World"),
		map[int]float64{2020: 2, 2021: 3, 2022: 5},
	))

	res, err := timeseries.Cumulate(tbl, timeseries.CumulateOptions{
		Variable: ccs,
		Rename:   "Stored",
		Start:    2020,
		End:      2022,
		Offset:   true,
	})
	require.NoError(t, err)
	s := res.Series()[0]
	assert.Equal(t, "Stored", s.Variable)
	assert.Equal(t, []float64{0, 1, 4}, []float64{s.At(2020), s.At(2021), s.At(2022)})

	_, err = timeseries.Cumulate(tbl, timeseries.CumulateOptions{
		Variable: ccs,
		Start:    2015,
		End:      2022,
		Offset:   true,
	})
	require.Error(t, err, "offset year without value is fatal")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SeriesOffsetYearError, gnErr.Code)
}

func TestConvertUnit(t *testing.T) {
	tbl := table(t, series(key("m1", "s1", "World"), map[int]float64{2010: 2500}))

	res, err := timeseries.ConvertUnit(tbl, "Mt CO2/yr", "Gt CO2/yr", timeseries.MtToGt)
	require.NoError(t, err)
	s := res.Series()[0]
	assert.Equal(t, "Gt CO2/yr", s.Unit)
	assert.InDelta(t, 2.5, s.At(2010), 1e-12)

	orig := tbl.Series()[0]
	assert.Equal(t, 2500.0, orig.At(2010))
}
