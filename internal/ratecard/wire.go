package ratecard

import "github.com/bitsandvolts/boxcost/internal/ordered"

// Wire is the rate card as the rate service stores and serves it. Numbers are
// pointers so a missing field can be told apart from zero.
type Wire struct {
	Material   ordered.Object[WireMaterial]   `json:"material"`
	Printing   *WirePrinting                  `json:"printing"`
	Lamination ordered.Object[WireLamination] `json:"lamination"`
	Finishing  ordered.Object[WireFinishing]  `json:"finishing"`
	Punching   *WirePerSheet                  `json:"punching"`
	Pasting    *WirePasting                   `json:"pasting"`
	Machine    *WireMachine                   `json:"machine"`
	DieCutting *WirePerSheet                  `json:"dieCutting"`
}

type WireMaterial struct {
	CostPerKg *float64 `json:"costPerKg"`
	Unit      string   `json:"unit"`
}

// WirePrinting rates are per 1000 sheets per colour. The service stores them
// scaled by 100 relative to the display rate.
type WirePrinting struct {
	CMYK      *WireColorRate `json:"cmyk"`
	Pantone   *WireColorRate `json:"pantone"`
	MinCharge *WireMinCharge `json:"minCharge"`
}

type WireColorRate struct {
	RatePer1000Sheets *float64 `json:"ratePer1000Sheets"`
	Unit              string   `json:"unit,omitempty"`
}

type WireMinCharge struct {
	ThresholdSheets *float64 `json:"thresholdSheets"`
	MinAmount       *float64 `json:"minAmount"`
	Unit            string   `json:"unit,omitempty"`
}

type WireLamination struct {
	ColdGlue *float64 `json:"coldGlue"`
	Thermal  *float64 `json:"thermal"`
	Unit     string   `json:"unit"`
}

type WireFinishing struct {
	DefaultRate *float64 `json:"defaultRate"`
	Unit        string   `json:"unit,omitempty"`
}

type WirePerSheet struct {
	RatePerSheet *float64 `json:"ratePerSheet"`
	Unit         string   `json:"unit,omitempty"`
}

type WirePasting struct {
	SidePasting   *float64 `json:"sidePasting"`
	BottomPasting *float64 `json:"bottomPasting"`
	Taping        *float64 `json:"taping"`
	Unit          string   `json:"unit,omitempty"`
}

type WireMachine struct {
	Speed       *float64         `json:"speed"`
	CostPerHour *float64         `json:"costPerHour"`
	Unit        *WireMachineUnit `json:"unit,omitempty"`
}

type WireMachineUnit struct {
	Speed string `json:"speed"`
	Cost  string `json:"cost"`
}

// Wire unit labels sent with every rate update.
const (
	printingUnit  = "INR/1000 sheets per color"
	minChargeUnit = "INR"
	punchingUnit  = "INR/sheet"
	machineSpeed  = "sheets/hour"
	machineCost   = "INR/hour"
)
