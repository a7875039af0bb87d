package ratecard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/naming"
	"github.com/bitsandvolts/boxcost/internal/ordered"
	"github.com/bitsandvolts/boxcost/internal/validation"
)

// ToWire shapes c for the rate-update endpoint. The mapping is all or
// nothing: an unset or out of range rate, or two entries that normalize to the same wire key
// abort it with the joined *MappingError values and no payload.
func ToWire(c Card) (Wire, error) {
	var out outbound

	w := Wire{
		Material:   make(ordered.Object[WireMaterial], 0, len(c.Materials)),
		Lamination: make(ordered.Object[WireLamination], 0, len(c.Lamination)),
		Finishing:  make(ordered.Object[WireFinishing], 0, len(c.Finishing)),
	}

	for i, m := range c.Materials {
		key := materialKey(m)
		path := fmt.Sprintf("materials[%d]", i)
		if _, dup := w.Material.Get(key); dup {
			out.fail(path+".name", fmt.Sprintf("wire key %q is already used", key))
			continue
		}
		w.Material = append(w.Material, ordered.Entry[WireMaterial]{Key: key, Value: WireMaterial{
			CostPerKg: out.number(path+".costPerKg", m.CostPerKg),
			Unit:      m.Unit,
		}})
	}

	w.Printing = &WirePrinting{
		CMYK: &WireColorRate{
			RatePer1000Sheets: out.scaled("printing.cmyk.ratePerBatch", c.Printing.CMYK.RatePerBatch),
			Unit:              printingUnit,
		},
		Pantone: &WireColorRate{
			RatePer1000Sheets: out.scaled("printing.pantone.ratePerBatch", c.Printing.Pantone.RatePerBatch),
			Unit:              printingUnit,
		},
		MinCharge: &WireMinCharge{
			ThresholdSheets: out.number("printing.cmyk.minBatchSheets", c.Printing.CMYK.MinBatchSheets),
			MinAmount:       out.number("printing.pantone.minChargeAmount", c.Printing.Pantone.MinChargeAmount),
			Unit:            minChargeUnit,
		},
	}

	for i, l := range c.Lamination {
		key := laminationKey(l)
		path := fmt.Sprintf("lamination[%d]", i)
		if _, dup := w.Lamination.Get(key); dup {
			out.fail(path+".finishType", fmt.Sprintf("wire key %q is already used", key))
			continue
		}
		w.Lamination = append(w.Lamination, ordered.Entry[WireLamination]{Key: key, Value: WireLamination{
			ColdGlue: out.number(path+".coldGlueRate", l.ColdGlueRate),
			Thermal:  out.number(path+".thermalRate", l.ThermalRate),
			Unit:     l.Unit,
		}})
	}

	for _, key := range finishingOrder(c.Finishing) {
		w.Finishing = append(w.Finishing, ordered.Entry[WireFinishing]{Key: key, Value: WireFinishing{
			DefaultRate: out.number("finishing."+key, c.Finishing[key]),
			Unit:        FinishingUnit,
		}})
	}

	w.Punching = &WirePerSheet{
		RatePerSheet: out.number("punching.ratePerSheet", c.Punching.RatePerSheet),
		Unit:         punchingUnit,
	}
	w.Pasting = &WirePasting{
		SidePasting:   out.number("pasting.sidePasting", c.Pasting.SidePasting),
		BottomPasting: out.number("pasting.bottomPasting", c.Pasting.BottomPasting),
		Taping:        out.number("pasting.taping", c.Pasting.Taping),
		Unit:          PastingUnit,
	}
	w.Machine = &WireMachine{
		Speed:       out.number("machine.speed", c.Machine.Speed),
		CostPerHour: out.number("machine.costPerHour", c.Machine.CostPerHour),
		Unit:        &WireMachineUnit{Speed: machineSpeed, Cost: machineCost},
	}
	w.DieCutting = &WirePerSheet{
		RatePerSheet: out.number("dieCutting.ratePerSheet", c.DieCutting.RatePerSheet),
	}

	if err := errors.Join(out.errs...); err != nil {
		return Wire{}, err
	}
	return w, nil
}

// materialKey keeps the fetched key while the name is still the one derived
// from it, so "artCardPremium" survives an unedited round trip.
func materialKey(m Material) string {
	name := strings.TrimSpace(m.Name)
	if m.WireKey != "" && naming.Title(m.WireKey) == name {
		return m.WireKey
	}
	return naming.CompoundKey(name)
}

func laminationKey(l Lamination) string {
	ft := strings.TrimSpace(l.FinishType)
	if l.WireKey != "" && naming.Capitalize(l.WireKey) == ft {
		return l.WireKey
	}
	return strings.ToLower(ft)
}

// finishingOrder lists the fixed finishing keys first, then any others sorted.
func finishingOrder(m map[string]decimal.NullDecimal) []string {
	keys := make([]string, 0, len(m))
	for _, k := range FinishingKeys {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	for _, k := range sortedKeys(m) {
		if !slices.Contains(FinishingKeys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

type outbound struct {
	errs []error
}

func (o *outbound) fail(path, reason string) {
	o.errs = append(o.errs, &MappingError{Path: path, Reason: reason})
}

func (o *outbound) number(path string, v decimal.NullDecimal) *float64 {
	return o.convert(path, v, 0)
}

// scaled applies the ×100 precision scaling of printing rates.
func (o *outbound) scaled(path string, v decimal.NullDecimal) *float64 {
	return o.convert(path, v, 2)
}

func (o *outbound) convert(path string, v decimal.NullDecimal, shift int32) *float64 {
	if !v.Valid {
		o.fail(path, "missing")
		return nil
	}
	if !validation.InRange(v.Decimal) {
		o.fail(path, "out of range")
		return nil
	}
	f := v.Decimal.Shift(shift).InexactFloat64()
	return &f
}
