package rules

import (
	"fmt"
	"runtime"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
)

func DefinitionError(rule, reason string) error {
	msg := "Invalid rule <em>%s</em>: %s"
	vars := []any{rule, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RulesDefinitionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: rule %q: %s", fn.Name(), rule, reason),
	}
}

func MissingValidationError(col string) error {
	msg := "Scenarios are not validated, missing meta column <em>%s</em>"
	vars := []any{col}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RulesMissingValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: missing meta column %s", fn.Name(), col),
	}
}
