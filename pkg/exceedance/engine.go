package exceedance

import (
	"math"

	"github.com/ccslim/ccslim/pkg/netzero"
	"github.com/ccslim/ccslim/pkg/timeseries"
)

// Input collects everything needed to compute exceedance metrics.
type Input struct {
	// Series holds cumulative storage series.
	Series *timeseries.Table
	// Snapshots holds net-zero snapshots tagged with netzero sentinel years.
	Snapshots *timeseries.Table
	// Limits are thresholds in Gt CO2 per region.
	Limits map[string][]Threshold
	// CumulativeVariable is compared with the limits.
	CumulativeVariable string
	// RateVariable is the annual storage rate.
	RateVariable string
	// DomainStart and DomainEnd bound the extrapolation years.
	DomainStart, DomainEnd int
}

// Result holds both metrics for one scenario, region and threshold.
type Result struct {
	Model     string
	Scenario  string
	Region    string
	Threshold string
	Note      string
	// YearsToExceed is counted from the net-zero CO2 year, NaN if undefined.
	YearsToExceed float64
	// Year is the exceedance year, NaN if the limit is never exceeded.
	Year float64
}

// Compute runs ComputeRegion for each region in order.
func Compute(in Input, regions []string) ([]Result, error) {
	var res []Result
	for _, reg := range regions {
		rs, err := ComputeRegion(in, reg)
		if err != nil {
			return nil, err
		}
		res = append(res, rs...)
	}
	return res, nil
}

// ComputeRegion calculates metrics for every threshold of the region and
// every scenario that has either a cumulative series or a net-zero
// snapshot in that region. Threshold values are converted from Gt to Mt
// before comparison.
func ComputeRegion(in Input, reg string) ([]Result, error) {
	ths, ok := in.Limits[reg]
	if !ok {
		return nil, UnknownRegionError(reg)
	}

	cum := in.Series.Filter(timeseries.Query{
		Region: reg, Variable: in.CumulativeVariable,
	})
	nzValue := in.Snapshots.Filter(timeseries.Query{
		Region: reg, Variable: in.CumulativeVariable,
	})
	nzRate := in.Snapshots.Filter(timeseries.Query{
		Region: reg, Variable: in.RateVariable,
	})
	scens := union(cum.Scenarios(), nzValue.Scenarios(), nzRate.Scenarios())

	var res []Result
	for _, th := range ths {
		limit := th.Value * timeseries.GtToMt
		for _, id := range scens {
			q := timeseries.Query{}.ForScenario(id)
			r := Result{
				Model:     id.Model,
				Scenario:  id.Scenario,
				Region:    reg,
				Threshold: th.Name,
				Note:      th.Note,
				Year:      math.NaN(),
			}
			r.YearsToExceed = YearsToExceed(
				limit,
				snapshot(nzValue, q),
				snapshot(nzRate, q),
			)
			if s, ok := cum.Find(q); ok {
				r.Year = YearExceedance(s.Points, limit, in.DomainStart, in.DomainEnd)
			}
			res = append(res, r)
		}
	}
	return res, nil
}

func snapshot(t *timeseries.Table, q timeseries.Query) float64 {
	s, ok := t.Find(q)
	if !ok {
		return math.NaN()
	}
	return s.At(netzero.YearCO2)
}

func union(lists ...[]timeseries.ScenarioID) []timeseries.ScenarioID {
	seen := make(map[timeseries.ScenarioID]struct{})
	var res []timeseries.ScenarioID
	for _, l := range lists {
		for _, id := range l {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			res = append(res, id)
		}
	}
	return res
}
