package timeseries

import (
	"maps"
	"slices"
)

// Meta holds per-scenario attributes such as the climate category.
type Meta map[ScenarioID]map[string]string

// Get returns an attribute of a scenario.
func (m Meta) Get(id ScenarioID, name string) (string, bool) {
	attrs, ok := m[id]
	if !ok {
		return "", false
	}
	res, ok := attrs[name]
	return res, ok
}

// Set stores an attribute of a scenario.
func (m Meta) Set(id ScenarioID, name, val string) {
	if _, ok := m[id]; !ok {
		m[id] = make(map[string]string)
	}
	m[id][name] = val
}

// Clone returns a deep copy.
func (m Meta) Clone() Meta {
	res := make(Meta, len(m))
	for k, v := range m {
		res[k] = maps.Clone(v)
	}
	return res
}

// Table is an ordered collection of series with unique keys.
type Table struct {
	rows  []Series
	index map[Key]int
	Meta  Meta
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		index: make(map[Key]int),
		Meta:  make(Meta),
	}
}

// Add appends a copy of the series. NaN values are dropped.
// A key that is already present is an error.
func (t *Table) Add(s Series) error {
	if _, ok := t.index[s.Key]; ok {
		return DuplicateKeyError(s.Key)
	}
	c := NewSeries(s.Key)
	for y, v := range s.Points {
		c.Set(y, v)
	}
	t.index[s.Key] = len(t.rows)
	t.rows = append(t.rows, c)
	return nil
}

// Len returns the number of series.
func (t *Table) Len() int {
	return len(t.rows)
}

// Series returns copies of all series in insertion order.
func (t *Table) Series() []Series {
	res := make([]Series, len(t.rows))
	for i := range t.rows {
		res[i] = t.rows[i].Clone()
	}
	return res
}

// Get returns a copy of the series with the key.
func (t *Table) Get(k Key) (Series, bool) {
	i, ok := t.index[k]
	if !ok {
		return Series{}, false
	}
	return t.rows[i].Clone(), true
}

// Find returns the first series matching the query.
func (t *Table) Find(q Query) (Series, bool) {
	for i := range t.rows {
		if q.Match(t.rows[i].Key) {
			return t.rows[i].Clone(), true
		}
	}
	return Series{}, false
}

// Years returns all years observed in any series, sorted.
func (t *Table) Years() []int {
	set := make(map[int]struct{})
	for i := range t.rows {
		for y := range t.rows[i].Points {
			set[y] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Scenarios returns distinct scenarios in order of first appearance.
func (t *Table) Scenarios() []ScenarioID {
	seen := make(map[ScenarioID]struct{})
	var res []ScenarioID
	for i := range t.rows {
		id := t.rows[i].ScenarioID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

// Values returns the value of every series at the year, NaN where missing.
func (t *Table) Values(year int) []float64 {
	res := make([]float64, len(t.rows))
	for i := range t.rows {
		res[i] = t.rows[i].At(year)
	}
	return res
}

// Filter returns a new table with the series matching the query and the
// metadata of their scenarios.
func (t *Table) Filter(q Query) *Table {
	res := NewTable()
	for i := range t.rows {
		if !q.Match(t.rows[i].Key) {
			continue
		}
		// keys are unique in t, Add cannot fail
		_ = res.Add(t.rows[i])
	}
	res.copyMeta(t.Meta)
	return res
}

// copyMeta copies the attributes of scenarios present in the table.
func (t *Table) copyMeta(m Meta) {
	for _, id := range t.Scenarios() {
		if attrs, ok := m[id]; ok {
			t.Meta[id] = maps.Clone(attrs)
		}
	}
}
