package region

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func MissingColumnError(col, mapping string) error {
	msg := "Region lookup has no column <em>%s</em> (%s mapping)"
	vars := []any{col, mapping}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing column %q for %s mapping",
			fn.Name(), col, mapping),
	}
}

func DuplicateCodeError(code, prev, next, mapping string) error {
	msg := "Country <em>%s</em> belongs to both %s and %s (%s mapping)"
	vars := []any{code, prev, next, mapping}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegionDuplicateCodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: country %s assigned to %s and %s",
			fn.Name(), code, prev, next),
	}
}
