package potential

import (
	"math"

	"github.com/ccslim/ccslim/pkg/exceedance"
)

// DefaultThresholds are the storage limits of the assessment: the
// preventative limit, the onshore limit and the limit within basins that
// have oil and gas infrastructure.
func DefaultThresholds() []exceedance.Threshold {
	return []exceedance.Threshold{
		{Name: "high", Field: Final, Note: "Global Preventative Limit"},
		{Name: "med", Field: "Pot_ON_Final", Note: "Global Onshore Limit"},
		{Name: "low", Field: "Pot_OG", Note: "Global Limit with Current O&G Infrastructure"},
	}
}

// Limits fills threshold values (Gt CO2) from the regional aggregate.
func Limits(
	agg Aggregate,
	ths []exceedance.Threshold,
) ([]exceedance.Threshold, error) {
	res := make([]exceedance.Threshold, 0, len(ths))
	for _, th := range ths {
		v := agg.Get(th.Field)
		if _, ok := agg.Values[th.Field]; !ok && math.IsNaN(v) {
			return nil, UnknownFieldError(th.Field, agg.Region)
		}
		th.Value = v
		res = append(res, th)
	}
	return res, nil
}

// RegionLimits derives thresholds for each of the regions.
func RegionLimits(
	aggs []Aggregate,
	regions []string,
	ths []exceedance.Threshold,
) (map[string][]exceedance.Threshold, error) {
	res := make(map[string][]exceedance.Threshold, len(regions))
	for _, reg := range regions {
		agg, ok := Find(aggs, reg)
		if !ok {
			return nil, UnknownRegionError(reg)
		}
		lim, err := Limits(agg, ths)
		if err != nil {
			return nil, err
		}
		res[reg] = lim
	}
	return res, nil
}
