package timeseries

import (
	"gonum.org/v1/gonum/floats"
)

// CumulativePrefix is prepended to a variable name to label its
// running sum.
const CumulativePrefix = "Cumulative "

// CumulateOptions configures Cumulate.
type CumulateOptions struct {
	// Variable is the rate variable to accumulate.
	Variable string
	// Rename is the variable name of the output. Empty means
	// CumulativePrefix + Variable.
	Rename string
	// Start and End limit the years, both inclusive.
	Start, End int
	// Offset subtracts the value at Start from every point before summing.
	Offset bool
}

// CumulativeName returns the output variable name.
func (o CumulateOptions) CumulativeName() string {
	if o.Rename != "" {
		return o.Rename
	}
	return CumulativePrefix + o.Variable
}

// Cumulate builds running sums of one variable over a yearly grid. Series
// of the variable are interpolated on [Start, End], optionally re-based to
// Start and summed left to right. Scenario metadata is copied to the
// result.
func Cumulate(t *Table, opts CumulateOptions) (*Table, error) {
	if opts.End < opts.Start {
		return nil, YearRangeError(opts.Start, opts.End)
	}

	years := YearRange(opts.Start, opts.End)
	data := Interpolate(t.Filter(Query{Variable: opts.Variable}), years)

	res := NewTable()
	name := opts.CumulativeName()
	for _, s := range data.rows {
		var base float64
		if opts.Offset {
			v, ok := s.Value(opts.Start)
			if !ok {
				return nil, OffsetYearError(s.Key, opts.Start)
			}
			base = v
		}

		var obs []int
		var vals []float64
		for _, y := range years {
			if v, ok := s.Value(y); ok {
				obs = append(obs, y)
				vals = append(vals, v-base)
			}
		}
		floats.CumSum(vals, vals)

		key := s.Key
		key.Variable = name
		c := NewSeries(key)
		for i, y := range obs {
			c.Set(y, vals[i])
		}
		if err := res.Add(c); err != nil {
			return nil, err
		}
	}
	res.copyMeta(data.Meta)
	return res, nil
}
