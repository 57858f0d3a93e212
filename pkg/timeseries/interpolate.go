package timeseries

import (
	"sort"
)

// YearRange returns the inclusive range of years from start to end.
func YearRange(start, end int) []int {
	if end < start {
		return nil
	}
	res := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		res = append(res, y)
	}
	return res
}

// Interpolate returns a new table where every series gets linearly
// interpolated values for the requested years. Only years strictly inside
// the observed range of a series are filled, nothing is extrapolated.
// Observed values, including those outside of years, are kept.
func Interpolate(t *Table, years []int) *Table {
	res := NewTable()
	for i := range t.rows {
		_ = res.Add(interpolateSeries(t.rows[i], years))
	}
	res.Meta = t.Meta.Clone()
	return res
}

func interpolateSeries(s Series, years []int) Series {
	res := s.Clone()
	obs := s.Years()
	if len(obs) < 2 {
		return res
	}
	first, last := obs[0], obs[len(obs)-1]

	for _, y := range years {
		if _, ok := s.Points[y]; ok || y < first || y > last {
			continue
		}
		// index of the first observed year after y
		j := sort.SearchInts(obs, y)
		x0, x1 := obs[j-1], obs[j]
		y0, y1 := s.Points[x0], s.Points[x1]
		res.Points[y] = y0 + (y1-y0)*float64(y-x0)/float64(x1-x0)
	}
	return res
}
