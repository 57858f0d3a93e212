package iopipeline

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func ReportError(path string, err error) error {
	msg := "Cannot save run report <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: report %s: %w", fn.Name(), path, err),
	}
}

func CancelledError(err error) error {
	msg := "Pipeline was cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cancelled: %w", fn.Name(), err),
	}
}
