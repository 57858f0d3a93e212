package exceedance

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func UnknownRegionError(reg string) error {
	msg := "No storage limits for region <em>%s</em>"
	vars := []any{reg}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PotentialUnknownRegionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no limits for region %s", fn.Name(), reg),
	}
}
