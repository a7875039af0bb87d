package ratecard

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/naming"
)

// MappingError reports a wire payload that lacks a required field.
type MappingError struct {
	Path   string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// FromWire converts a fetched rate card into its display shape. It checks
// structure only: every missing field is reported as a *MappingError (joined
// when there are several), and rate values are left for Validate.
func FromWire(w Wire) (Card, error) {
	var in inbound

	if w.Material == nil {
		in.missing("material")
	}
	materials := make([]Material, 0, len(w.Material))
	for _, e := range w.Material {
		materials = append(materials, Material{
			Name:      naming.Title(e.Key),
			CostPerKg: in.number("material."+e.Key+".costPerKg", e.Value.CostPerKg),
			Unit:      e.Value.Unit,
			WireKey:   e.Key,
		})
	}

	var printing Printing
	switch {
	case w.Printing == nil:
		in.missing("printing")
	default:
		if w.Printing.CMYK == nil {
			in.missing("printing.cmyk")
		} else {
			printing.CMYK.RatePerBatch = in.scaled("printing.cmyk.ratePer1000Sheets", w.Printing.CMYK.RatePer1000Sheets)
		}
		if w.Printing.Pantone == nil {
			in.missing("printing.pantone")
		} else {
			printing.Pantone.RatePerBatch = in.scaled("printing.pantone.ratePer1000Sheets", w.Printing.Pantone.RatePer1000Sheets)
		}
		if w.Printing.MinCharge == nil {
			in.missing("printing.minCharge")
		} else {
			printing.CMYK.MinBatchSheets = in.number("printing.minCharge.thresholdSheets", w.Printing.MinCharge.ThresholdSheets)
			printing.Pantone.MinChargeAmount = in.number("printing.minCharge.minAmount", w.Printing.MinCharge.MinAmount)
		}
	}

	if w.Lamination == nil {
		in.missing("lamination")
	}
	lamination := make([]Lamination, 0, len(w.Lamination))
	for _, e := range w.Lamination {
		lamination = append(lamination, Lamination{
			FinishType:   naming.Capitalize(e.Key),
			ColdGlueRate: in.number("lamination."+e.Key+".coldGlue", e.Value.ColdGlue),
			ThermalRate:  in.number("lamination."+e.Key+".thermal", e.Value.Thermal),
			Unit:         e.Value.Unit,
			WireKey:      e.Key,
		})
	}

	if w.Finishing == nil {
		in.missing("finishing")
	}
	finishing := make(map[string]decimal.NullDecimal, len(w.Finishing))
	for _, e := range w.Finishing {
		finishing[e.Key] = in.number("finishing."+e.Key+".defaultRate", e.Value.DefaultRate)
	}

	var dieCutting, punching PerSheet
	if w.DieCutting == nil {
		in.missing("dieCutting")
	} else {
		dieCutting.RatePerSheet = in.number("dieCutting.ratePerSheet", w.DieCutting.RatePerSheet)
	}
	if w.Punching == nil {
		in.missing("punching")
	} else {
		punching.RatePerSheet = in.number("punching.ratePerSheet", w.Punching.RatePerSheet)
	}

	var pasting Pasting
	if w.Pasting == nil {
		in.missing("pasting")
	} else {
		pasting = Pasting{
			SidePasting:   in.number("pasting.sidePasting", w.Pasting.SidePasting),
			BottomPasting: in.number("pasting.bottomPasting", w.Pasting.BottomPasting),
			Taping:        in.number("pasting.taping", w.Pasting.Taping),
		}
	}

	var machine Machine
	if w.Machine == nil {
		in.missing("machine")
	} else {
		machine = Machine{
			Speed:       in.number("machine.speed", w.Machine.Speed),
			CostPerHour: in.number("machine.costPerHour", w.Machine.CostPerHour),
		}
	}

	if err := in.err(); err != nil {
		return Card{}, err
	}
	return Card{
		Materials:  materials,
		Printing:   printing,
		Lamination: lamination,
		Finishing:  finishing,
		DieCutting: dieCutting,
		Punching:   punching,
		Pasting:    pasting,
		Machine:    machine,
	}, nil
}

type inbound struct {
	errs []error
}

func (in *inbound) missing(path string) {
	in.errs = append(in.errs, &MappingError{Path: path, Reason: "missing"})
}

func (in *inbound) number(path string, v *float64) decimal.NullDecimal {
	if v == nil {
		in.missing(path)
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}

// scaled undoes the ×100 precision scaling of printing rates.
func (in *inbound) scaled(path string, v *float64) decimal.NullDecimal {
	d := in.number(path, v)
	if d.Valid {
		d.Decimal = d.Decimal.Shift(-2)
	}
	return d
}

func (in *inbound) err() error {
	return errors.Join(in.errs...)
}
