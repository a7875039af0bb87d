package ratecard

import "github.com/bitsandvolts/boxcost/internal/ordered"

const (
	materialUnit   = "INR/kg"
	laminationUnit = "INR/100 sq.inch"
)

// DefaultWire returns the initial rate card used to seed an empty rate store.
func DefaultWire() Wire {
	return Wire{
		Material: ordered.Object[WireMaterial]{
			{Key: "FBB", Value: WireMaterial{CostPerKg: f(45), Unit: materialUnit}},
			{Key: "kraftBrown", Value: WireMaterial{CostPerKg: f(38), Unit: materialUnit}},
			{Key: "kraftWhite", Value: WireMaterial{CostPerKg: f(42), Unit: materialUnit}},
			{Key: "artCard", Value: WireMaterial{CostPerKg: f(50), Unit: materialUnit}},
		},
		Printing: &WirePrinting{
			CMYK:    &WireColorRate{RatePer1000Sheets: f(250), Unit: printingUnit},
			Pantone: &WireColorRate{RatePer1000Sheets: f(320), Unit: printingUnit},
			MinCharge: &WireMinCharge{
				ThresholdSheets: f(1000),
				MinAmount:       f(500),
				Unit:            minChargeUnit,
			},
		},
		Lamination: ordered.Object[WireLamination]{
			{Key: "matte", Value: WireLamination{ColdGlue: f(0.85), Thermal: f(1.2), Unit: laminationUnit}},
			{Key: "gloss", Value: WireLamination{ColdGlue: f(0.90), Thermal: f(1.25), Unit: laminationUnit}},
			{Key: "velvet", Value: WireLamination{ColdGlue: f(1.15), Thermal: f(1.45), Unit: laminationUnit}},
		},
		Finishing: ordered.Object[WireFinishing]{
			{Key: "foilStamping", Value: WireFinishing{DefaultRate: f(8.5), Unit: FinishingUnit}},
			{Key: "dripOff", Value: WireFinishing{DefaultRate: f(4.8), Unit: FinishingUnit}},
			{Key: "spotUV", Value: WireFinishing{DefaultRate: f(6.2), Unit: FinishingUnit}},
			{Key: "metpet", Value: WireFinishing{DefaultRate: f(12.5), Unit: FinishingUnit}},
		},
		Punching: &WirePerSheet{RatePerSheet: f(0.5), Unit: punchingUnit},
		Pasting: &WirePasting{
			SidePasting:   f(0.45),
			BottomPasting: f(0.38),
			Taping:        f(0.52),
			Unit:          PastingUnit,
		},
		Machine: &WireMachine{
			Speed:       f(2500),
			CostPerHour: f(850),
			Unit:        &WireMachineUnit{Speed: machineSpeed, Cost: machineCost},
		},
		DieCutting: &WirePerSheet{RatePerSheet: f(0.75)},
	}
}

func f(v float64) *float64 { return &v }
