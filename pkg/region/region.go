// Package region groups country codes into IPCC regions.
//
// A Mapping is built once from a country lookup table and is read-only
// afterwards. Several granularities (5-region, 10-region, World) are built
// independently from the same lookup and do not need to agree.
package region

import (
	"slices"
	"strings"
)

// World is the label of the single region that covers every country code.
const World = "World"

// Lookup is a parsed country lookup table. Every row maps column names
// to raw cell values.
type Lookup struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports if the lookup table contains the column.
func (lk Lookup) HasColumn(col string) bool {
	return slices.Contains(lk.Columns, col)
}

// Mapping assigns country codes to region labels for one granularity.
type Mapping struct {
	name    string
	order   []string
	members map[string][]string
	regions map[string]string
}

// Build groups the codes from isoColumn by the labels in regionColumn.
// Rows without a region label are skipped. Regions keep the order in which
// they first appear in the lookup.
func Build(
	lk Lookup,
	isoColumn, regionColumn, name string,
) (*Mapping, error) {
	for _, col := range []string{isoColumn, regionColumn} {
		if !lk.HasColumn(col) {
			return nil, MissingColumnError(col, name)
		}
	}

	res := newMapping(name)
	for _, row := range lk.Rows {
		code := strings.TrimSpace(row[isoColumn])
		label := strings.TrimSpace(row[regionColumn])
		if code == "" || IsNull(label) {
			continue
		}
		if err := res.add(label, code); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// NewWorld builds the World mapping: every code that appears in the
// lookup, regardless of its regional labels.
func NewWorld(lk Lookup, isoColumn string) (*Mapping, error) {
	if !lk.HasColumn(isoColumn) {
		return nil, MissingColumnError(isoColumn, World)
	}

	res := newMapping(World)
	for _, row := range lk.Rows {
		code := strings.TrimSpace(row[isoColumn])
		if code == "" {
			continue
		}
		if err := res.add(World, code); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// FromGroups creates a mapping from explicit region groups. Region order
// follows the order of labels.
func FromGroups(
	name string,
	labels []string,
	groups map[string][]string,
) (*Mapping, error) {
	res := newMapping(name)
	for _, label := range labels {
		for _, code := range groups[label] {
			if err := res.add(label, code); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func newMapping(name string) *Mapping {
	return &Mapping{
		name:    name,
		members: make(map[string][]string),
		regions: make(map[string]string),
	}
}

func (m *Mapping) add(label, code string) error {
	if prev, ok := m.regions[code]; ok {
		if prev != label {
			return DuplicateCodeError(code, prev, label, m.name)
		}
		return nil
	}
	if _, ok := m.members[label]; !ok {
		m.order = append(m.order, label)
	}
	m.members[label] = append(m.members[label], code)
	m.regions[code] = label
	return nil
}

// Name returns the granularity name of the mapping.
func (m *Mapping) Name() string {
	return m.name
}

// Regions returns region labels in lookup order.
func (m *Mapping) Regions() []string {
	return slices.Clone(m.order)
}

// Members returns the country codes of a region, nil for unknown regions.
func (m *Mapping) Members(label string) []string {
	return slices.Clone(m.members[label])
}

// RegionOf returns the region of a country code.
func (m *Mapping) RegionOf(code string) (string, bool) {
	res, ok := m.regions[code]
	return res, ok
}

// Len returns the number of regions.
func (m *Mapping) Len() int {
	return len(m.order)
}

// IsNull reports if a raw cell value stands for a missing value.
func IsNull(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "nan", "n/a", "null", "none":
		return true
	}
	return false
}
