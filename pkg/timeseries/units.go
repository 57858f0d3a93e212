package timeseries

// Conversion factors between units used across sources. Thresholds come in
// Gt CO2 while scenario series are reported in Mt CO2/yr.
const (
	GtToMt = 1e3
	MtToGt = 1e-3
	MtToKt = 1e3
	KtToMt = 1e-3
)

// ConvertUnit returns a new table where every series with the unit `from`
// is multiplied by factor and relabelled with the unit `to`. Other series
// are copied unchanged.
func ConvertUnit(t *Table, from, to string, factor float64) (*Table, error) {
	res := NewTable()
	for _, s := range t.Series() {
		if s.Unit == from {
			s.Unit = to
			for y, v := range s.Points {
				s.Points[y] = v * factor
			}
		}
		if err := res.Add(s); err != nil {
			return nil, err
		}
	}
	res.Meta = t.Meta.Clone()
	return res, nil
}
