// Package stats summarises scenario storage figures per variable and
// climate category.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentiles reported by Describe.
var Percentiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// Description holds descriptive statistics of a sample.
type Description struct {
	Count int
	Mean  float64
	// Std is the sample standard deviation.
	Std float64
	Min float64
	// Quantiles follow the order of Percentiles.
	Quantiles []float64
	Max       float64
}

// Describe computes statistics ignoring NaN values. Statistics of an
// empty sample are NaN, the standard deviation of a single value is NaN.
func Describe(values []float64) Description {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}

	res := Description{
		Count:     len(xs),
		Mean:      math.NaN(),
		Std:       math.NaN(),
		Min:       math.NaN(),
		Max:       math.NaN(),
		Quantiles: make([]float64, len(Percentiles)),
	}
	for i := range res.Quantiles {
		res.Quantiles[i] = math.NaN()
	}
	if len(xs) == 0 {
		return res
	}

	slices.Sort(xs)
	res.Min = floats.Min(xs)
	res.Max = floats.Max(xs)
	if len(xs) == 1 {
		res.Mean = xs[0]
	} else {
		res.Mean, res.Std = stat.MeanStdDev(xs, nil)
	}
	for i, p := range Percentiles {
		res.Quantiles[i] = quantile(p, xs)
	}
	return res
}

// quantile interpolates linearly between closest ranks of sorted values
// at position p*(n-1). The estimator matches the default of common data
// frame libraries, which differs from the one of stat.Quantile.
func quantile(p float64, sorted []float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
