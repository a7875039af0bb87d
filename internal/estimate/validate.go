package estimate

import (
	"fmt"
	"strings"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/validation"
)

// Validate checks req against its own rules and against the loaded rate
// card. A nil card defers the material check with a NotReady error.
func Validate(req Request, card *ratecard.Card) error {
	var v validation.Checker

	v.Positive("length", req.Length)
	v.Positive("width", req.Width)
	v.Positive("sheetLength", req.SheetLength)
	v.Positive("sheetWidth", req.SheetWidth)
	v.PositiveInteger("quantity", req.Quantity)
	v.Positive("gsm", req.GSM)

	if v.Required("materialType", req.MaterialType) {
		switch {
		case card == nil:
			v.Add("materialType", validation.NotReady, "rate card has not been loaded")
		case !card.HasMaterial(req.MaterialType):
			v.Add("materialType", validation.UnknownEnumValue,
				fmt.Sprintf("must be one of %s", strings.Join(card.MaterialNames(), ", ")))
		}
	}

	v.IntegerInRange("cmykColors", req.CMYKColors, 0, MaxCMYKColors)
	v.IntegerInRange("pantoneColors", req.PantoneColors, 0, MaxPantoneColors)
	v.OneOf("laminationType", req.LaminationType, LaminationTypes)
	v.OneOf("finishingType", req.FinishingType, FinishingTypes)
	v.OneOf("pastingType", req.PastingType, PastingTypes)

	return v.Errors().Err()
}
