// Package fieldmap translates loosely-typed update payloads into validated,
// column-scoped assignments. Each entity declares a static table of external
// keys, target columns, and coercion rules; unknown payload keys are ignored.
package fieldmap

import (
	"errors"
	"fmt"
)

// ErrNoUpdatableFields means the payload contained none of the declared keys.
// Distinct from a field-level validation failure.
var ErrNoUpdatableFields = errors.New("no updatable fields in payload")

// FieldError names the offending payload key.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Rule coerces and validates a raw payload value.
type Rule func(value any) (any, error)

// Field binds one external payload key to a column. A nil Rule passes the
// value through untouched.
type Field struct {
	Key    string
	Column string
	Rule   Rule
}

// Mapping is iterated in declaration order; alias keys mapping to the same
// column may both match, the later one wins when collapsed to a column map.
type Mapping []Field

type Assignment struct {
	Column string
	Value  any
}

// Apply walks the declared fields against the payload. It performs no writes:
// callers persist the returned assignments themselves.
func (m Mapping) Apply(payload map[string]any) ([]Assignment, error) {
	var out []Assignment
	for _, f := range m {
		raw, ok := payload[f.Key]
		if !ok {
			continue
		}

		val := raw
		if f.Rule != nil {
			coerced, err := f.Rule(raw)
			if err != nil {
				return nil, &FieldError{Field: f.Key, Err: err}
			}
			val = coerced
		}

		out = append(out, Assignment{Column: f.Column, Value: val})
	}

	if len(out) == 0 {
		return nil, ErrNoUpdatableFields
	}
	return out, nil
}

// Columns collapses assignments into a column map suitable for a single
// UPDATE statement.
func Columns(assignments []Assignment) map[string]any {
	cols := make(map[string]any, len(assignments))
	for _, a := range assignments {
		cols[a.Column] = a.Value
	}
	return cols
}

// Has reports whether any assignment targets the column.
func Has(assignments []Assignment, column string) bool {
	_, ok := Value(assignments, column)
	return ok
}

// Value returns the last assignment targeting the column.
func Value(assignments []Assignment, column string) (any, bool) {
	var val any
	found := false
	for _, a := range assignments {
		if a.Column == column {
			val = a.Value
			found = true
		}
	}
	return val, found
}
