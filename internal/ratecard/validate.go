package ratecard

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bitsandvolts/boxcost/internal/validation"
)

// Validate checks every rate of c and returns all violations as
// validation.Errors, or nil when the card is complete.
func Validate(c Card) error {
	var v validation.Checker

	if len(c.Materials) == 0 {
		v.Add("materials", validation.Missing, "at least one material is required")
	}
	seen := make(map[string]int, len(c.Materials))
	for i, m := range c.Materials {
		field := fmt.Sprintf("materials[%d]", i)
		if v.Required(field+".name", m.Name) {
			name := strings.TrimSpace(m.Name)
			if first, dup := seen[name]; dup {
				v.Add(field+".name", validation.DuplicateKey, fmt.Sprintf("duplicates materials[%d].name %q", first, name))
			} else {
				seen[name] = i
			}
		}
		v.Positive(field+".costPerKg", m.CostPerKg)
		v.Required(field+".unit", m.Unit)
	}

	v.Positive("printing.cmyk.ratePerBatch", c.Printing.CMYK.RatePerBatch)
	v.PositiveInteger("printing.cmyk.minBatchSheets", c.Printing.CMYK.MinBatchSheets)
	v.Positive("printing.pantone.ratePerBatch", c.Printing.Pantone.RatePerBatch)
	v.Positive("printing.pantone.minChargeAmount", c.Printing.Pantone.MinChargeAmount)

	finishTypes := make(map[string]int, len(c.Lamination))
	for i, l := range c.Lamination {
		field := fmt.Sprintf("lamination[%d]", i)
		if v.Required(field+".finishType", l.FinishType) {
			ft := strings.TrimSpace(l.FinishType)
			if first, dup := finishTypes[ft]; dup {
				v.Add(field+".finishType", validation.DuplicateKey, fmt.Sprintf("duplicates lamination[%d].finishType %q", first, ft))
			} else {
				finishTypes[ft] = i
			}
		}
		v.Positive(field+".coldGlueRate", l.ColdGlueRate)
		v.Positive(field+".thermalRate", l.ThermalRate)
		v.Required(field+".unit", l.Unit)
	}

	for _, key := range FinishingKeys {
		rate, ok := c.Finishing[key]
		if !ok {
			v.Add("finishing."+key, validation.Missing, "is required")
			continue
		}
		v.Positive("finishing."+key, rate)
	}
	for _, key := range sortedKeys(c.Finishing) {
		if !slices.Contains(FinishingKeys, key) {
			v.Add("finishing."+key, validation.UnknownEnumValue,
				fmt.Sprintf("must be one of %s", strings.Join(FinishingKeys, ", ")))
		}
	}

	v.Positive("dieCutting.ratePerSheet", c.DieCutting.RatePerSheet)
	v.Positive("punching.ratePerSheet", c.Punching.RatePerSheet)
	v.Positive("pasting.sidePasting", c.Pasting.SidePasting)
	v.Positive("pasting.bottomPasting", c.Pasting.BottomPasting)
	v.Positive("pasting.taping", c.Pasting.Taping)
	v.Positive("machine.speed", c.Machine.Speed)
	v.Positive("machine.costPerHour", c.Machine.CostPerHour)

	return v.Errors().Err()
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
