package iotable

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func MissingColumnError(path, col string) error {
	msg := "Column <em>%s</em> is missing in %s"
	vars := []any{col, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no column %q in %s", fn.Name(), col, path),
	}
}

func MissingSheetError(file, sheet string) error {
	msg := "Sheet <em>%s</em> is missing in %s"
	vars := []any{sheet, file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingSheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no sheet %q in %s", fn.Name(), sheet, file),
	}
}

func EmptyTableError(path string) error {
	msg := "Table <em>%s</em> has no header"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptyTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty table %s", fn.Name(), path),
	}
}

func ParseNumberError(path string, line int, col, val string) error {
	msg := "Cannot read number '%s' in column <em>%s</em> (%s, line %d)"
	vars := []any{val, col, path, line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseNumberError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s:%d column %q: bad number %q",
			fn.Name(), path, line, col, val),
	}
}

func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}
