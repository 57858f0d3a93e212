package timeseries

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func DuplicateKeyError(k Key) error {
	msg := "Series <em>%s | %s | %s | %s</em> appears more than once"
	vars := []any{k.Model, k.Scenario, k.Region, k.Variable}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeriesDuplicateKeyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: duplicate series key %q",
			fn.Name(), k.String()),
	}
}

func OffsetYearError(k Key, year int) error {
	msg := "Cannot offset <em>%s</em> of %s/%s: no value in %d"
	vars := []any{k.Variable, k.Model, k.Scenario, year}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeriesOffsetYearError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: series %q has no value in %d",
			fn.Name(), k.String(), year),
	}
}

func YearRangeError(start, end int) error {
	msg := "Year range <em>%d-%d</em> is empty"
	vars := []any{start, end}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeriesYearRangeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w",
			fn.Name(), errors.New("end year is before start year")),
	}
}
