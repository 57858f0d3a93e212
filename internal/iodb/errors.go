package iodb

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func ArchiveOpenError(path string, err error) error {
	msg := "Cannot create archive <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

func ArchiveSchemaError(path string, err error) error {
	msg := "Cannot create tables in archive <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: schema of %s: %w", fn.Name(), path, err),
	}
}

func ArchiveWriteError(table string, err error) error {
	msg := "Cannot write table <em>%s</em> to archive"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn.Name(), table, err),
	}
}

func ArchiveQueryError(table string, err error) error {
	msg := "Cannot query table <em>%s</em> of archive"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s: %w", fn.Name(), table, err),
	}
}

func NotOpenError() error {
	msg := "Archive is not open"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveNotOpenError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: archive is not open", fn.Name()),
	}
}
