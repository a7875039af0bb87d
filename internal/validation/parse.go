package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Raw is a value as submitted by a form. It decodes from a JSON string or
// number. A null or absent value leaves it unset, which later validation
// reports as Missing.
type Raw struct {
	Value string
	Set   bool
}

// RawOf returns a set Raw holding s.
func RawOf(s string) Raw {
	return Raw{Value: s, Set: true}
}

func (r *Raw) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Raw{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawOf(s)
		return nil
	}
	*r = RawOf(string(b))
	return nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	if !r.Set {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Bounds on accepted decimals. Within them every value converts to a finite,
// non-zero float64, every whole number fits an int64, and comparisons stay
// cheap however large the written exponent is.
const (
	MaxIntegerDigits  = 15
	MaxFractionDigits = 20
)

var maxMagnitude = decimal.New(1, MaxIntegerDigits)

// InRange reports whether d has at most MaxIntegerDigits digits before the
// decimal point and at most MaxFractionDigits after it. The exponent is
// checked first so that the comparison never rescales by a large power of ten.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxFractionDigits || exp > MaxIntegerDigits {
		return false
	}
	return d.Abs().LessThan(maxMagnitude)
}

// ParseDecimal coerces raw into a decimal. Surrounding whitespace is ignored.
// An unset raw yields an invalid NullDecimal and no error; an empty,
// non-numeric or out of range value fails with *ParseError.
func ParseDecimal(field string, raw Raw) (decimal.NullDecimal, error) {
	if !raw.Set {
		return decimal.NullDecimal{}, nil
	}
	s := strings.TrimSpace(raw.Value)
	if s == "" {
		return decimal.NullDecimal{}, &ParseError{Field: field, Raw: raw.Value}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, &ParseError{Field: field, Raw: raw.Value}
	}
	if !InRange(d) {
		return decimal.NullDecimal{}, &ParseError{Field: field, Raw: raw.Value, OutOfRange: true}
	}
	return decimal.NewNullDecimal(d), nil
}

// Parser runs ParseDecimal over many fields and keeps every failure.
type Parser struct {
	errs []error
}

// Decimal parses raw for field, recording any failure.
func (p *Parser) Decimal(field string, raw Raw) decimal.NullDecimal {
	d, err := ParseDecimal(field, raw)
	if err != nil {
		p.errs = append(p.errs, err)
	}
	return d
}

// Err returns the joined parse errors, or nil.
func (p *Parser) Err() error {
	return errors.Join(p.errs...)
}
