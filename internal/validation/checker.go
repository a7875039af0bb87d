package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Checker accumulates FieldErrors across a validation pass. The zero value is
// ready to use.
type Checker struct {
	errs Errors
}

// Add records a violation.
func (c *Checker) Add(field string, kind Kind, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Kind: kind, Message: message})
}

// Required records Missing when value is blank and reports whether it was set.
func (c *Checker) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, Missing, "is required")
		return false
	}
	return true
}

func (c *Checker) inRange(field string, d decimal.Decimal) bool {
	if !InRange(d) {
		c.Add(field, OutOfRange, fmt.Sprintf("must have at most %d integer and %d fraction digits", MaxIntegerDigits, MaxFractionDigits))
		return false
	}
	return true
}

// Positive requires v to be set, within InRange and strictly greater than
// zero.
func (c *Checker) Positive(field string, v decimal.NullDecimal) bool {
	if !v.Valid {
		c.Add(field, Missing, "is required")
		return false
	}
	if !c.inRange(field, v.Decimal) {
		return false
	}
	if !v.Decimal.IsPositive() {
		c.Add(field, NotPositive, "must be greater than 0")
		return false
	}
	return true
}

// PositiveInteger requires v to be a whole number greater than zero.
func (c *Checker) PositiveInteger(field string, v decimal.NullDecimal) bool {
	if !c.Positive(field, v) {
		return false
	}
	if !v.Decimal.IsInteger() {
		c.Add(field, NotInteger, "must be a whole number")
		return false
	}
	return true
}

// IntegerInRange requires v to be a whole number within [lo, hi]. Values
// outside the range are reported as UnknownEnumValue since the range is the
// full set of accepted options.
func (c *Checker) IntegerInRange(field string, v decimal.NullDecimal, lo, hi int64) bool {
	if !v.Valid {
		c.Add(field, Missing, "is required")
		return false
	}
	if !c.inRange(field, v.Decimal) {
		return false
	}
	if !v.Decimal.IsInteger() {
		c.Add(field, NotInteger, "must be a whole number")
		return false
	}
	if v.Decimal.LessThan(decimal.NewFromInt(lo)) || v.Decimal.GreaterThan(decimal.NewFromInt(hi)) {
		c.Add(field, UnknownEnumValue, fmt.Sprintf("must be between %d and %d", lo, hi))
		return false
	}
	return true
}

// OneOf requires value to be one of allowed.
func (c *Checker) OneOf(field, value string, allowed []string) bool {
	if !c.Required(field, value) {
		return false
	}
	if !slices.Contains(allowed, value) {
		c.Add(field, UnknownEnumValue, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
		return false
	}
	return true
}

// Errors returns the violations recorded so far.
func (c *Checker) Errors() Errors {
	return c.errs
}
