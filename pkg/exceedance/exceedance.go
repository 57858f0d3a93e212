// Package exceedance compares cumulative storage with physical limits.
//
// Two metrics are computed for every threshold: the number of years a
// scenario can keep storing at its net-zero CO2 rate before the limit is
// reached, and the calendar year its extrapolated cumulative storage first
// exceeds the limit. Undefined results are NaN and are never clamped.
package exceedance

import (
	"math"
	"sort"
)

// Threshold is a named storage limit in Gt CO2.
type Threshold struct {
	// Name is a short tag such as "high", "med" or "low".
	Name string `yaml:"name" mapstructure:"name"`
	// Field is the regional potential field the value is taken from.
	Field string `yaml:"field" mapstructure:"field"`
	// Note is a human readable description of the limit.
	Note string `yaml:"note" mapstructure:"note"`
	// Value is the limit in Gt CO2.
	Value float64 `yaml:"-" mapstructure:"-"`
}

// YearsToExceed returns (limit - value) / rate, the years until the limit
// is reached when storing at a constant rate. Negative results mean the
// limit is already exceeded. The result is NaN if the rate is NaN or zero.
func YearsToExceed(limit, value, rate float64) float64 {
	if math.IsNaN(rate) || rate == 0 {
		return math.NaN()
	}
	return (limit - value) / rate
}

// Extrapolate estimates a value for every year from start to end inclusive
// by piecewise linear interpolation through the observed points. Years
// before the first or after the last observation are linearly extrapolated
// from the first or last segment. With fewer than two observations only
// the observed years get values, all others are NaN.
func Extrapolate(points map[int]float64, start, end int) []float64 {
	if end < start {
		return nil
	}
	xs := make([]int, 0, len(points))
	for y, v := range points {
		if !math.IsNaN(v) {
			xs = append(xs, y)
		}
	}
	sort.Ints(xs)

	res := make([]float64, end-start+1)
	for i := range res {
		year := start + i
		if v, ok := points[year]; ok && !math.IsNaN(v) {
			res[i] = v
			continue
		}
		if len(xs) < 2 {
			res[i] = math.NaN()
			continue
		}
		j := segment(xs, year)
		x0, x1 := xs[j], xs[j+1]
		y0, y1 := points[x0], points[x1]
		res[i] = y0 + (y1-y0)*float64(year-x0)/float64(x1-x0)
	}
	return res
}

// segment returns index j so that the segment xs[j], xs[j+1] is used for
// year. Out of range years use the first or the last segment.
func segment(xs []int, year int) int {
	j := sort.SearchInts(xs, year) - 1
	return max(0, min(j, len(xs)-2))
}

// YearExceedance returns the first year from start to end whose
// extrapolated value is strictly greater than limit.
//
// A first match at the start of the domain is reported as NaN, the same as
// no match at all. Series that are above the limit from the very first
// year therefore read as "never exceeds".
func YearExceedance(points map[int]float64, limit float64, start, end int) float64 {
	vals := Extrapolate(points, start, end)
	for i, v := range vals {
		if v > limit {
			if i == 0 {
				return math.NaN()
			}
			return float64(start + i)
		}
	}
	return math.NaN()
}
