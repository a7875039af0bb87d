package ratecard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/validation"
)

// Form is a rate card as submitted by the editor. It has the same JSON shape
// as Card, but every rate is kept as its raw submitted text until Parse.
type Form struct {
	Materials  []MaterialForm            `json:"materials"`
	Printing   PrintingForm              `json:"printing"`
	Lamination []LaminationForm          `json:"lamination"`
	Finishing  map[string]validation.Raw `json:"finishing"`
	DieCutting PerSheetForm              `json:"dieCutting"`
	Punching   PerSheetForm              `json:"punching"`
	Pasting    PastingForm               `json:"pasting"`
	Machine    MachineForm               `json:"machine"`
}

type MaterialForm struct {
	Name      string         `json:"name"`
	CostPerKg validation.Raw `json:"costPerKg"`
	Unit      string         `json:"unit"`
	WireKey   string         `json:"wireKey,omitempty"`
}

type PrintingForm struct {
	CMYK struct {
		RatePerBatch   validation.Raw `json:"ratePerBatch"`
		MinBatchSheets validation.Raw `json:"minBatchSheets"`
	} `json:"cmyk"`
	Pantone struct {
		RatePerBatch    validation.Raw `json:"ratePerBatch"`
		MinChargeAmount validation.Raw `json:"minChargeAmount"`
	} `json:"pantone"`
}

type LaminationForm struct {
	FinishType   string         `json:"finishType"`
	ColdGlueRate validation.Raw `json:"coldGlueRate"`
	ThermalRate  validation.Raw `json:"thermalRate"`
	Unit         string         `json:"unit"`
	WireKey      string         `json:"wireKey,omitempty"`
}

type PerSheetForm struct {
	RatePerSheet validation.Raw `json:"ratePerSheet"`
}

type PastingForm struct {
	SidePasting   validation.Raw `json:"sidePasting"`
	BottomPasting validation.Raw `json:"bottomPasting"`
	Taping        validation.Raw `json:"taping"`
}

type MachineForm struct {
	Speed       validation.Raw `json:"speed"`
	CostPerHour validation.Raw `json:"costPerHour"`
}

// Parse coerces every rate of f. Fields absent from the form stay unset for
// Validate to report; present values that do not parse fail the whole form
// with the joined *validation.ParseError values and a zero Card.
func (f Form) Parse() (Card, error) {
	var p validation.Parser

	card := Card{
		Materials:  make([]Material, 0, len(f.Materials)),
		Lamination: make([]Lamination, 0, len(f.Lamination)),
	}
	for i, m := range f.Materials {
		card.Materials = append(card.Materials, Material{
			Name:      m.Name,
			CostPerKg: p.Decimal(fmt.Sprintf("materials[%d].costPerKg", i), m.CostPerKg),
			Unit:      m.Unit,
			WireKey:   m.WireKey,
		})
	}

	card.Printing.CMYK = CMYK{
		RatePerBatch:   p.Decimal("printing.cmyk.ratePerBatch", f.Printing.CMYK.RatePerBatch),
		MinBatchSheets: p.Decimal("printing.cmyk.minBatchSheets", f.Printing.CMYK.MinBatchSheets),
	}
	card.Printing.Pantone = Pantone{
		RatePerBatch:    p.Decimal("printing.pantone.ratePerBatch", f.Printing.Pantone.RatePerBatch),
		MinChargeAmount: p.Decimal("printing.pantone.minChargeAmount", f.Printing.Pantone.MinChargeAmount),
	}

	for i, l := range f.Lamination {
		card.Lamination = append(card.Lamination, Lamination{
			FinishType:   l.FinishType,
			ColdGlueRate: p.Decimal(fmt.Sprintf("lamination[%d].coldGlueRate", i), l.ColdGlueRate),
			ThermalRate:  p.Decimal(fmt.Sprintf("lamination[%d].thermalRate", i), l.ThermalRate),
			Unit:         l.Unit,
			WireKey:      l.WireKey,
		})
	}

	if f.Finishing != nil {
		card.Finishing = make(map[string]decimal.NullDecimal, len(f.Finishing))
		for _, key := range sortedKeys(f.Finishing) {
			card.Finishing[key] = p.Decimal("finishing."+key, f.Finishing[key])
		}
	}

	card.DieCutting.RatePerSheet = p.Decimal("dieCutting.ratePerSheet", f.DieCutting.RatePerSheet)
	card.Punching.RatePerSheet = p.Decimal("punching.ratePerSheet", f.Punching.RatePerSheet)
	card.Pasting = Pasting{
		SidePasting:   p.Decimal("pasting.sidePasting", f.Pasting.SidePasting),
		BottomPasting: p.Decimal("pasting.bottomPasting", f.Pasting.BottomPasting),
		Taping:        p.Decimal("pasting.taping", f.Pasting.Taping),
	}
	card.Machine = Machine{
		Speed:       p.Decimal("machine.speed", f.Machine.Speed),
		CostPerHour: p.Decimal("machine.costPerHour", f.Machine.CostPerHour),
	}

	if err := p.Err(); err != nil {
		return Card{}, err
	}
	return card, nil
}
