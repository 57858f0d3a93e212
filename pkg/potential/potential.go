// Package potential aggregates country carbon storage potential into
// regions.
//
// Fields follow the naming of the source dataset: Pot_ON_<Variant> and
// Pot_OFF_<Variant> are onshore and offshore potentials (Gt CO2) of a
// variant such as Baseline, Final or OG, and Pot_<Variant> is their total.
package potential

import (
	"math"
	"slices"
	"strings"

	"github.com/ccslim/ccslim/pkg/region"
)

// Field name parts and well known fields.
const (
	Prefix         = "Pot_"
	OnshorePrefix  = "Pot_ON_"
	OffshorePrefix = "Pot_OFF_"

	Baseline = "Pot_Baseline"
	Final    = "Pot_Final"

	// PercentageLost is the label of the derived loss ratio column.
	PercentageLost = "Percentage lost (net vs gross)"
)

// dropped are loss columns of the source that are recomputed after
// aggregation instead.
var dropped = []string{"Absolute_Loss", "Percentage_Loss"}

// Record holds the numeric fields of one country.
type Record struct {
	ISO    string
	Values map[string]float64
}

// Dataset is a set of country records sharing the same fields.
type Dataset struct {
	// Fields keeps the column order of the dataset.
	Fields  []string
	Records []Record
}

// Aggregate is the sum of all member countries of a region.
type Aggregate struct {
	Region string
	Values map[string]float64
	// PercentageLost is 1 - Pot_Final/Pot_Baseline of the summed totals.
	PercentageLost float64
}

// Get returns a field value, PercentageLost included. Unknown fields
// are NaN.
func (a Aggregate) Get(field string) float64 {
	if field == PercentageLost {
		return a.PercentageLost
	}
	if v, ok := a.Values[field]; ok {
		return v
	}
	return math.NaN()
}

// Variants returns variant names that have both onshore and offshore
// fields, in field order.
func Variants(fields []string) []string {
	var res []string
	for _, f := range fields {
		v, ok := strings.CutPrefix(f, OnshorePrefix)
		if !ok {
			continue
		}
		if slices.Contains(fields, OffshorePrefix+v) {
			res = append(res, v)
		}
	}
	return res
}

// Prepare drops loss columns of the source and adds total fields
// Pot_<Variant> = Pot_ON_<Variant> + Pot_OFF_<Variant> for every variant.
// The input is not modified.
func Prepare(ds Dataset) Dataset {
	var res Dataset
	for _, f := range ds.Fields {
		if !slices.Contains(dropped, f) {
			res.Fields = append(res.Fields, f)
		}
	}
	variants := Variants(res.Fields)
	for _, v := range variants {
		if !slices.Contains(res.Fields, Prefix+v) {
			res.Fields = append(res.Fields, Prefix+v)
		}
	}

	res.Records = make([]Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		vals := make(map[string]float64, len(res.Fields))
		for _, f := range res.Fields {
			if v, ok := r.Values[f]; ok {
				vals[f] = v
			}
		}
		for _, v := range variants {
			vals[Prefix+v] = r.Values[OnshorePrefix+v] + r.Values[OffshorePrefix+v]
		}
		res.Records = append(res.Records, Record{ISO: r.ISO, Values: vals})
	}
	return res
}

// Aggregate sums every field over the member countries of each region of
// the mapping. Countries missing from the dataset and NaN cells contribute
// nothing. The loss ratio is computed from the summed totals.
func (ds Dataset) Aggregate(m *region.Mapping) []Aggregate {
	byISO := make(map[string]Record, len(ds.Records))
	for _, r := range ds.Records {
		byISO[r.ISO] = r
	}

	regions := m.Regions()
	res := make([]Aggregate, 0, len(regions))
	for _, reg := range regions {
		agg := Aggregate{Region: reg, Values: make(map[string]float64, len(ds.Fields))}
		for _, f := range ds.Fields {
			agg.Values[f] = 0
		}
		for _, code := range m.Members(reg) {
			r, ok := byISO[code]
			if !ok {
				continue
			}
			for _, f := range ds.Fields {
				if v, ok := r.Values[f]; ok && !math.IsNaN(v) {
					agg.Values[f] += v
				}
			}
		}
		agg.PercentageLost = lossRatio(agg.Values)
		res = append(res, agg)
	}
	return res
}

// AggregateAll concatenates the aggregates of several mappings.
func (ds Dataset) AggregateAll(ms ...*region.Mapping) []Aggregate {
	var res []Aggregate
	for _, m := range ms {
		res = append(res, ds.Aggregate(m)...)
	}
	return res
}

// ApplyWorldOverride replaces World figures with authoritative global
// values that also cover areas outside of any country. Totals of variants
// whose onshore or offshore figures changed are recomputed unless the
// override sets them too. Other regions are copied unchanged.
func ApplyWorldOverride(
	aggs []Aggregate,
	override map[string]float64,
) ([]Aggregate, error) {
	res := make([]Aggregate, len(aggs))
	for i, a := range aggs {
		res[i] = a.clone()
		if a.Region != region.World {
			continue
		}

		fields := fieldNames(a.Values)
		for f, v := range override {
			if !slices.Contains(fields, f) {
				return nil, OverrideFieldError(f)
			}
			res[i].Values[f] = v
		}
		for _, v := range Variants(fields) {
			total := Prefix + v
			if _, ok := override[total]; ok {
				continue
			}
			_, on := override[OnshorePrefix+v]
			_, off := override[OffshorePrefix+v]
			if on || off {
				res[i].Values[total] = res[i].Values[OnshorePrefix+v] +
					res[i].Values[OffshorePrefix+v]
			}
		}
		res[i].PercentageLost = lossRatio(res[i].Values)
	}
	return res, nil
}

// Find returns the aggregate of a region.
func Find(aggs []Aggregate, reg string) (Aggregate, bool) {
	for _, a := range aggs {
		if a.Region == reg {
			return a, true
		}
	}
	return Aggregate{}, false
}

func (a Aggregate) clone() Aggregate {
	res := Aggregate{
		Region:         a.Region,
		Values:         make(map[string]float64, len(a.Values)),
		PercentageLost: a.PercentageLost,
	}
	for k, v := range a.Values {
		res.Values[k] = v
	}
	return res
}

func fieldNames(vals map[string]float64) []string {
	res := make([]string, 0, len(vals))
	for k := range vals {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

func lossRatio(vals map[string]float64) float64 {
	base, ok1 := vals[Baseline]
	final, ok2 := vals[Final]
	if !ok1 || !ok2 {
		return math.NaN()
	}
	return 1 - final/base
}
