package timeseries

import (
	"maps"
)

// Gap lists scenarios reported at a coarse region granularity but missing
// from a finer one.
type Gap struct {
	// Missing are the (model, scenario) pairs without finer data.
	Missing []ScenarioID
	// Models are the distinct models of Missing in order of appearance.
	Models []string
}

// Empty reports if the finer granularity covers every coarse scenario.
func (g Gap) Empty() bool {
	return len(g.Missing) == 0
}

// CoverageGap compares scenario coverage of two granularities. It is a
// diagnostic, nothing is removed from either table.
func CoverageGap(coarse, fine *Table) Gap {
	have := make(map[ScenarioID]struct{})
	for _, id := range fine.Scenarios() {
		have[id] = struct{}{}
	}

	var res Gap
	models := make(map[string]struct{})
	for _, id := range coarse.Scenarios() {
		if _, ok := have[id]; ok {
			continue
		}
		res.Missing = append(res.Missing, id)
		if _, ok := models[id.Model]; !ok {
			models[id.Model] = struct{}{}
			res.Models = append(res.Models, id.Model)
		}
	}
	return res
}

// Merge concatenates tables of different region granularities. The same
// key in two inputs means the granularities overlap and is an error.
// Scenario metadata is merged, earlier tables take precedence.
func Merge(tables ...*Table) (*Table, error) {
	res := NewTable()
	for _, t := range tables {
		for i := range t.rows {
			if err := res.Add(t.rows[i]); err != nil {
				return nil, err
			}
		}
		for id, attrs := range t.Meta {
			if _, ok := res.Meta[id]; ok {
				continue
			}
			res.Meta[id] = maps.Clone(attrs)
		}
	}
	return res, nil
}
