// Package estimate models one cost estimation job: the physical and
// production parameters sent to the pricing service and the result it
// returns.
package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/validation"
)

// Accepted option values for the categorical fields of a Request.
var (
	LaminationTypes = []string{"gloss", "matt", "none"}
	FinishingTypes  = []string{"uv", "emboss", "foilStamping", "spotUV", "dripOff", "metpet", "none"}
	PastingTypes    = []string{"sidePasting", "bottomPasting", "taping"}
)

// Colour count ranges offered by the estimate form.
const (
	MaxCMYKColors    = 4
	MaxPantoneColors = 3
)

// Request is a single estimation job. Dimensions are in millimetres.
type Request struct {
	Length         decimal.NullDecimal `json:"length"`
	Width          decimal.NullDecimal `json:"width"`
	SheetLength    decimal.NullDecimal `json:"sheetLength"`
	SheetWidth     decimal.NullDecimal `json:"sheetWidth"`
	Quantity       decimal.NullDecimal `json:"quantity"`
	GSM            decimal.NullDecimal `json:"gsm"`
	MaterialType   string              `json:"materialType"`
	CMYKColors     decimal.NullDecimal `json:"cmykColors"`
	PantoneColors  decimal.NullDecimal `json:"pantoneColors"`
	LaminationType string              `json:"laminationType"`
	FinishingType  string              `json:"finishingType"`
	PastingType    string              `json:"pastingType"`
}

// Form is a Request as typed into the estimate form.
type Form struct {
	Length         validation.Raw `json:"length"`
	Width          validation.Raw `json:"width"`
	SheetLength    validation.Raw `json:"sheetLength"`
	SheetWidth     validation.Raw `json:"sheetWidth"`
	Quantity       validation.Raw `json:"quantity"`
	GSM            validation.Raw `json:"gsm"`
	MaterialType   string         `json:"materialType"`
	CMYKColors     validation.Raw `json:"cmykColors"`
	PantoneColors  validation.Raw `json:"pantoneColors"`
	LaminationType string         `json:"laminationType"`
	FinishingType  string         `json:"finishingType"`
	PastingType    string         `json:"pastingType"`
}

// Parse coerces the numeric fields of f. Any value that is present but not a
// number fails the whole form with the joined *validation.ParseError values.
func (f Form) Parse() (Request, error) {
	var p validation.Parser
	req := Request{
		Length:         p.Decimal("length", f.Length),
		Width:          p.Decimal("width", f.Width),
		SheetLength:    p.Decimal("sheetLength", f.SheetLength),
		SheetWidth:     p.Decimal("sheetWidth", f.SheetWidth),
		Quantity:       p.Decimal("quantity", f.Quantity),
		GSM:            p.Decimal("gsm", f.GSM),
		MaterialType:   f.MaterialType,
		CMYKColors:     p.Decimal("cmykColors", f.CMYKColors),
		PantoneColors:  p.Decimal("pantoneColors", f.PantoneColors),
		LaminationType: f.LaminationType,
		FinishingType:  f.FinishingType,
		PastingType:    f.PastingType,
	}
	if err := p.Err(); err != nil {
		return Request{}, err
	}
	return req, nil
}
