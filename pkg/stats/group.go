package stats

import (
	"slices"
	"strconv"

	"github.com/ccslim/ccslim/pkg/netzero"
	"github.com/ccslim/ccslim/pkg/timeseries"
)

// Measures of scenario figures.
const (
	EndOfCentury = "End of Century"
	NetZeroCO2   = netzero.LabelCO2
	NetZeroGHG   = netzero.LabelGHG
)

// AllCategories labels groups that pool every selected category.
const AllCategories = "All"

// Row is one figure of one scenario.
type Row struct {
	timeseries.ScenarioID
	Variable string
	Category string
	Measure  string
	Value    float64
}

// CollectInput selects figures for grouping.
type CollectInput struct {
	// Series provides values at EndYear.
	Series *timeseries.Table
	// Snapshots provides net-zero values tagged with netzero sentinel years.
	Snapshots *timeseries.Table
	// Meta supplies scenario categories.
	Meta           timeseries.Meta
	CategoryColumn string
	Region         string
	EndYear        int
}

// Collect extracts figures of the region at the end year and at both
// net-zero events. Scenarios without category are skipped.
func Collect(in CollectInput) []Row {
	var res []Row
	add := func(t *timeseries.Table, year int, measure string) {
		if t == nil {
			return
		}
		for _, s := range t.Series() {
			if s.Region != in.Region {
				continue
			}
			id := s.ScenarioID()
			cat, ok := in.Meta.Get(id, in.CategoryColumn)
			if !ok || cat == "" {
				continue
			}
			res = append(res, Row{
				ScenarioID: id,
				Variable:   s.Variable,
				Category:   cat,
				Measure:    measure,
				Value:      s.At(year),
			})
		}
	}
	add(in.Series, in.EndYear, EndOfCentury)
	add(in.Snapshots, netzero.YearCO2, NetZeroCO2)
	add(in.Snapshots, netzero.YearGHG, NetZeroGHG)
	return res
}

// Group is a description of one measure of one variable in a category.
type Group struct {
	Measure  string
	Variable string
	Category string
	Description
}

// GroupRows describes rows per measure, variable and category, keeping
// only the given categories in their order. Every variable also gets a
// group that pools all given categories. Measures and variables keep the
// order of their first appearance.
func GroupRows(rows []Row, categories []string) []Group {
	type key struct{ measure, variable, category string }
	vals := make(map[key][]float64)
	var measures, variables []string

	for _, r := range rows {
		if !slices.Contains(categories, r.Category) {
			continue
		}
		if !slices.Contains(measures, r.Measure) {
			measures = append(measures, r.Measure)
		}
		if !slices.Contains(variables, r.Variable) {
			variables = append(variables, r.Variable)
		}
		k := key{r.Measure, r.Variable, r.Category}
		vals[k] = append(vals[k], r.Value)
		all := key{r.Measure, r.Variable, AllCategories}
		vals[all] = append(vals[all], r.Value)
	}

	cats := append(slices.Clone(categories), AllCategories)
	var res []Group
	for _, m := range measures {
		for _, v := range variables {
			for _, c := range cats {
				xs, ok := vals[key{m, v, c}]
				if !ok {
					continue
				}
				res = append(res, Group{
					Measure:     m,
					Variable:    v,
					Category:    c,
					Description: Describe(xs),
				})
			}
		}
	}
	return res
}

// Header returns column names of a statistics table.
func Header() []string {
	res := []string{"Measure", "Variable", "Category", "count", "mean", "std", "min"}
	for _, p := range Percentiles {
		res = append(res, strconv.Itoa(int(p*100+0.5))+"%")
	}
	return append(res, "max")
}

// Values returns the numbers of a group in the order of Header.
func (g Group) Values() []float64 {
	res := []float64{float64(g.Count), g.Mean, g.Std, g.Min}
	res = append(res, g.Quantiles...)
	return append(res, g.Max)
}
