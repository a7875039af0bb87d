// Package validation holds the error taxonomy shared by the rate card and
// cost request models, plus the numeric parsing routine every raw form value
// goes through.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a rule violation.
type Kind string

const (
	Missing          Kind = "missing"
	NotPositive      Kind = "not_positive"
	NotInteger       Kind = "not_integer"
	DuplicateKey     Kind = "duplicate_key"
	UnknownEnumValue Kind = "unknown_enum_value"
	NotReady         Kind = "not_ready"
	OutOfRange       Kind = "out_of_range"
)

// FieldError is a single rule violation at a field path such as
// "materials[1].costPerKg".
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is every violation found in one validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err returns e as an error, or nil when there are no violations.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Has reports whether e contains a violation of kind at field.
func (e Errors) Has(field string, kind Kind) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

// ParseError reports a raw value that could not be coerced to its declared type.
type ParseError struct {
	Field string `json:"field"`
	Raw   string `json:"rawValue"`
	// OutOfRange is set for a number too large or too precise to accept.
	OutOfRange bool `json:"outOfRange,omitempty"`
}

func (e *ParseError) Error() string {
	if e.OutOfRange {
		return fmt.Sprintf("%s: %q is out of range", e.Field, e.Raw)
	}
	if strings.TrimSpace(e.Raw) == "" {
		return fmt.Sprintf("%s: value is empty", e.Field)
	}
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Raw)
}

// ParseErrors flattens err, which may be a single *ParseError or several
// joined with errors.Join, into its parse errors.
func ParseErrors(err error) []*ParseError {
	switch e := err.(type) {
	case nil:
		return nil
	case *ParseError:
		return []*ParseError{e}
	case interface{ Unwrap() []error }:
		var out []*ParseError
		for _, inner := range e.Unwrap() {
			out = append(out, ParseErrors(inner)...)
		}
		return out
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return []*ParseError{pe}
	}
	return nil
}
