package potential

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func OverrideFieldError(field string) error {
	msg := "World override field <em>%s</em> is not in the potential dataset"
	vars := []any{field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PotentialOverrideFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown override field %q", fn.Name(), field),
	}
}

func UnknownRegionError(reg string) error {
	msg := "Region <em>%s</em> is not in the regional potential table"
	vars := []any{reg}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PotentialUnknownRegionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown region %q", fn.Name(), reg),
	}
}

func UnknownFieldError(field, reg string) error {
	msg := "Threshold field <em>%s</em> is missing for region %s"
	vars := []any{field, reg}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PotentialUnknownFieldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: field %q missing for region %s",
			fn.Name(), field, reg),
	}
}
