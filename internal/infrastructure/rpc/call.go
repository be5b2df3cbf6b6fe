// Package rpc calls the scheduler's Postgres functions through gorm.
package rpc

import (
	"fmt"
	"strings"
)

// Arg is one named function argument. Cast, when set, wraps the placeholder
// in CAST(... AS type). gorm does not end a named placeholder at ':', so the
// ::type shorthand cannot be used.
type Arg struct {
	Name  string
	Value any
	Cast  string
}

// Call is one function invocation with named arguments.
type Call struct {
	Function string
	Args     []Arg
}

// SetSQL renders the call for set-returning functions:
// SELECT * FROM fn(p_a => @p_a, ...).
func (c Call) SetSQL() (string, map[string]any) {
	return fmt.Sprintf("SELECT * FROM %s(%s)", c.Function, c.argList()), c.namedArgs()
}

// ScalarSQL renders the call for functions returning a single value.
func (c Call) ScalarSQL() (string, map[string]any) {
	return fmt.Sprintf("SELECT %s(%s) AS result", c.Function, c.argList()), c.namedArgs()
}

func (c Call) argList() string {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		placeholder := "@" + a.Name
		if a.Cast != "" {
			placeholder = "CAST(" + placeholder + " AS " + a.Cast + ")"
		}
		parts = append(parts, a.Name+" => "+placeholder)
	}
	return strings.Join(parts, ", ")
}

func (c Call) namedArgs() map[string]any {
	args := make(map[string]any, len(c.Args))
	for _, a := range c.Args {
		args[a.Name] = a.Value
	}
	return args
}
