package potential_test

import (
	"math"
	"testing"

	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset() potential.Dataset {
	rec := func(iso string, onB, offB, onF, offF, onOG, offOG float64) potential.Record {
		return potential.Record{ISO: iso, Values: map[string]float64{
			"Pot_ON_Baseline":  onB,
			"Pot_OFF_Baseline": offB,
			"Pot_ON_Final":     onF,
			"Pot_OFF_Final":    offF,
			"Pot_ON_OG":        onOG,
			"Pot_OFF_OG":       offOG,
			"Absolute_Loss":    99,
			"Percentage_Loss":  0.99,
		}}
	}
	return potential.Dataset{
		Fields: []string{
			"Pot_ON_Baseline", "Pot_OFF_Baseline",
			"Pot_ON_Final", "Pot_OFF_Final",
			"Pot_ON_OG", "Pot_OFF_OG",
			"Absolute_Loss", "Percentage_Loss",
		},
		Records: []potential.Record{
			rec("AAA", 60, 40, 30, 20, 10, 5),
			rec("BBB", 100, 100, 60, 40, 20, 10),
			rec("CCC", 10, 0, 10, 0, 1, 0),
		},
	}
}

func mapping(t *testing.T) *region.Mapping {
	lk := region.Lookup{
		Columns: []string{"ISO", "R5"},
		Rows: []map[string]string{
			{"ISO": "AAA", "R5": "R5ASIA"},
			{"ISO": "BBB", "R5": "R5ASIA"},
			{"ISO": "CCC", "R5": "R5LAM"},
			{"ISO": "DDD", "R5": "R5MAF"},
		},
	}
	m, err := region.Build(lk, "ISO", "R5", "R5")
	require.NoError(t, err)
	return m
}

func TestVariants(t *testing.T) {
	assert.Equal(t,
		[]string{"Baseline", "Final", "OG"},
		potential.Variants(dataset().Fields),
	)
	assert.Nil(t, potential.Variants([]string{"Pot_ON_X", "Pot_OFF_Y"}))
}

func TestPrepare(t *testing.T) {
	ds := dataset()
	res := potential.Prepare(ds)

	assert.NotContains(t, res.Fields, "Absolute_Loss")
	assert.NotContains(t, res.Fields, "Percentage_Loss")
	assert.Contains(t, res.Fields, "Pot_Baseline")
	assert.Contains(t, res.Fields, "Pot_Final")
	assert.Contains(t, res.Fields, "Pot_OG")

	r := res.Records[0]
	assert.Equal(t, 100.0, r.Values["Pot_Baseline"])
	assert.Equal(t, 50.0, r.Values["Pot_Final"])
	assert.Equal(t, 15.0, r.Values["Pot_OG"])
	_, ok := r.Values["Absolute_Loss"]
	assert.False(t, ok)

	assert.Contains(t, ds.Fields, "Absolute_Loss", "input is not modified")
	_, ok = ds.Records[0].Values["Pot_Final"]
	assert.False(t, ok)
}

func TestAggregate(t *testing.T) {
	ds := potential.Prepare(dataset())
	res := ds.Aggregate(mapping(t))
	require.Len(t, res, 3)

	asia, ok := potential.Find(res, "R5ASIA")
	require.True(t, ok)
	assert.Equal(t, 300.0, asia.Values["Pot_Baseline"])
	assert.Equal(t, 150.0, asia.Values["Pot_Final"])
	assert.Equal(t, 90.0, asia.Values["Pot_ON_Final"])
	assert.Equal(t, 0.5, asia.PercentageLost)
	assert.Equal(t, 0.5, asia.Get(potential.PercentageLost))

	lam, ok := potential.Find(res, "R5LAM")
	require.True(t, ok)
	assert.Equal(t, 0.0, lam.PercentageLost)

	maf, ok := potential.Find(res, "R5MAF")
	require.True(t, ok)
	assert.Equal(t, 0.0, maf.Values["Pot_Final"], "no member has data")
	assert.True(t, math.IsNaN(maf.PercentageLost))

	assert.True(t, math.IsNaN(asia.Get("Pot_Unknown")))
}

func TestAggregateSkipsNaN(t *testing.T) {
	ds := potential.Prepare(dataset())
	ds.Records[0].Values["Pot_ON_OG"] = math.NaN()
	res := ds.Aggregate(mapping(t))
	asia, _ := potential.Find(res, "R5ASIA")
	assert.Equal(t, 20.0, asia.Values["Pot_ON_OG"])
}

func TestAggregateMonotone(t *testing.T) {
	ds := potential.Prepare(dataset())
	before, _ := potential.Find(ds.Aggregate(mapping(t)), "R5ASIA")

	ds.Records[1].Values["Pot_ON_Final"] += 25
	after, _ := potential.Find(ds.Aggregate(mapping(t)), "R5ASIA")
	assert.Equal(t, before.Values["Pot_ON_Final"]+25, after.Values["Pot_ON_Final"])
	assert.GreaterOrEqual(t, after.Values["Pot_ON_Final"], before.Values["Pot_ON_Final"])
}

func TestAggregateAll(t *testing.T) {
	lk := region.Lookup{
		Columns: []string{"ISO"},
		Rows:    []map[string]string{{"ISO": "AAA"}, {"ISO": "BBB"}, {"ISO": "CCC"}},
	}
	world, err := region.NewWorld(lk, "ISO")
	require.NoError(t, err)

	ds := potential.Prepare(dataset())
	res := ds.AggregateAll(mapping(t), world)
	require.Len(t, res, 4)
	assert.Equal(t, region.World, res[3].Region)
	assert.Equal(t, 310.0, res[3].Values["Pot_Baseline"])

	again := ds.AggregateAll(mapping(t), world)
	require.Len(t, again, len(res))
	for i := range res {
		assert.Equal(t, res[i].Region, again[i].Region)
		assert.Equal(t, res[i].Values, again[i].Values, res[i].Region)
		if math.IsNaN(res[i].PercentageLost) {
			assert.True(t, math.IsNaN(again[i].PercentageLost), res[i].Region)
			continue
		}
		assert.Equal(t, res[i].PercentageLost, again[i].PercentageLost, res[i].Region)
	}
}

func TestApplyWorldOverride(t *testing.T) {
	aggs := []potential.Aggregate{
		{Region: "R5ASIA", Values: map[string]float64{
			"Pot_ON_Final": 1, "Pot_OFF_Final": 1, "Pot_Final": 2,
			"Pot_Baseline": 4,
		}, PercentageLost: 0.5},
		{Region: region.World, Values: map[string]float64{
			"Pot_ON_Final": 10, "Pot_OFF_Final": 10, "Pot_Final": 20,
			"Pot_Baseline": 40,
		}, PercentageLost: 0.5},
	}

	tests := []struct {
		msg      string
		override map[string]float64
		final    float64
		offFinal float64
		lost     float64
	}{
		{"total recomputed", map[string]float64{"Pot_OFF_Final": 20}, 30, 20, 0.25},
		{"total given", map[string]float64{"Pot_OFF_Final": 20, "Pot_Final": 35}, 35, 20, 0.125},
		{"empty override", nil, 20, 10, 0.5},
	}

	for _, v := range tests {
		res, err := potential.ApplyWorldOverride(aggs, v.override)
		require.NoError(t, err, v.msg)
		world, ok := potential.Find(res, region.World)
		require.True(t, ok)
		assert.Equal(t, v.final, world.Values["Pot_Final"], v.msg)
		assert.Equal(t, v.offFinal, world.Values["Pot_OFF_Final"], v.msg)
		assert.InDelta(t, v.lost, world.PercentageLost, 1e-12, v.msg)

		asia, _ := potential.Find(res, "R5ASIA")
		assert.Equal(t, aggs[0], asia, "other regions are unchanged")
	}
	assert.Equal(t, 10.0, aggs[1].Values["Pot_OFF_Final"], "input is not modified")

	_, err := potential.ApplyWorldOverride(aggs, map[string]float64{"Pot_X": 1})
	assert.Error(t, err)
}

func TestLimits(t *testing.T) {
	ds := potential.Prepare(dataset())
	aggs := ds.Aggregate(mapping(t))
	asia, _ := potential.Find(aggs, "R5ASIA")

	res, err := potential.Limits(asia, potential.DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "high", res[0].Name)
	assert.Equal(t, 150.0, res[0].Value)
	assert.Equal(t, 90.0, res[1].Value)
	assert.Equal(t, 45.0, res[2].Value)
	assert.Equal(t, "Global Onshore Limit", res[1].Note)

	lims, err := potential.RegionLimits(aggs, []string{"R5ASIA", "R5LAM"},
		potential.DefaultThresholds())
	require.NoError(t, err)
	assert.Len(t, lims, 2)
	assert.Equal(t, 10.0, lims["R5LAM"][0].Value)

	_, err = potential.RegionLimits(aggs, []string{"R10X"}, potential.DefaultThresholds())
	assert.Error(t, err)

	bad := potential.DefaultThresholds()
	bad[0].Field = "Pot_Missing"
	_, err = potential.Limits(asia, bad)
	assert.Error(t, err)
}
