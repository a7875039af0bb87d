package estimate

import (
	"strings"

	"github.com/bitsandvolts/boxcost/internal/ordered"
)

// Payload is the calculate-cost request body.
type Payload struct {
	Length         float64 `json:"length"`
	Width          float64 `json:"width"`
	SheetLength    float64 `json:"sheetLength"`
	SheetWidth     float64 `json:"sheetWidth"`
	Quantity       int64   `json:"quantity"`
	GSM            float64 `json:"gsm"`
	MaterialType   string  `json:"materialType"`
	CMYKColors     int64   `json:"cmykColors"`
	PantoneColors  int64   `json:"pantoneColors"`
	LaminationType string  `json:"laminationType"`
	FinishingType  string  `json:"finishingType"`
	PastingType    string  `json:"pastingType"`
}

// ToPayload shapes a validated request for the wire.
func ToPayload(req Request) Payload {
	return Payload{
		Length:         req.Length.Decimal.InexactFloat64(),
		Width:          req.Width.Decimal.InexactFloat64(),
		SheetLength:    req.SheetLength.Decimal.InexactFloat64(),
		SheetWidth:     req.SheetWidth.Decimal.InexactFloat64(),
		Quantity:       req.Quantity.Decimal.IntPart(),
		GSM:            req.GSM.Decimal.InexactFloat64(),
		MaterialType:   strings.TrimSpace(req.MaterialType),
		CMYKColors:     req.CMYKColors.Decimal.IntPart(),
		PantoneColors:  req.PantoneColors.Decimal.IntPart(),
		LaminationType: req.LaminationType,
		FinishingType:  req.FinishingType,
		PastingType:    req.PastingType,
	}
}

// Result is the pricing service response. The breakdown keeps the order in
// which the service listed its components.
type Result struct {
	Breakdown  ordered.Object[float64] `json:"breakdown"`
	TotalCost  float64                 `json:"totalCost"`
	CostPerBox float64                 `json:"costPerBox"`
}
