// Package ratecard is the rate card domain model: the display shape edited by
// an administrator, its wire representation, the mappings between the two
// and the validation rules applied before a card is saved.
package ratecard

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// FinishingKeys is the fixed set of finishing processes a card prices.
var FinishingKeys = []string{"foilStamping", "dripOff", "spotUV", "metpet"}

// FinishingUnit is the display unit of every finishing rate.
const FinishingUnit = "INR/100 sq.inch (approx)"

// PastingUnit is the display unit of every pasting rate.
const PastingUnit = "INR/box"

// Material is a board or paper priced by weight.
//
// WireKey is the key the material had on the wire when the card was fetched.
// It is only used to send the same key back and plays no part in equality.
type Material struct {
	Name      string              `json:"name"`
	CostPerKg decimal.NullDecimal `json:"costPerKg"`
	Unit      string              `json:"unit"`
	WireKey   string              `json:"wireKey,omitempty"`
}

// CMYK is process-colour printing, charged per batch of sheets per colour.
type CMYK struct {
	RatePerBatch   decimal.NullDecimal `json:"ratePerBatch"`
	MinBatchSheets decimal.NullDecimal `json:"minBatchSheets"`
}

// Pantone is spot-colour printing with a minimum charge.
type Pantone struct {
	RatePerBatch    decimal.NullDecimal `json:"ratePerBatch"`
	MinChargeAmount decimal.NullDecimal `json:"minChargeAmount"`
}

type Printing struct {
	CMYK    CMYK    `json:"cmyk"`
	Pantone Pantone `json:"pantone"`
}

// Lamination prices one film finish for both glue processes.
type Lamination struct {
	FinishType   string              `json:"finishType"`
	ColdGlueRate decimal.NullDecimal `json:"coldGlueRate"`
	ThermalRate  decimal.NullDecimal `json:"thermalRate"`
	Unit         string              `json:"unit"`
	WireKey      string              `json:"wireKey,omitempty"`
}

type PerSheet struct {
	RatePerSheet decimal.NullDecimal `json:"ratePerSheet"`
}

// Pasting rates are per unit produced.
type Pasting struct {
	SidePasting   decimal.NullDecimal `json:"sidePasting"`
	BottomPasting decimal.NullDecimal `json:"bottomPasting"`
	Taping        decimal.NullDecimal `json:"taping"`
}

// Machine is press throughput (sheets/hour) and its hourly cost.
type Machine struct {
	Speed       decimal.NullDecimal `json:"speed"`
	CostPerHour decimal.NullDecimal `json:"costPerHour"`
}

// Card is a complete rate card. Rates encode as decimal strings ("2.5"), and
// an unset rate encodes as null.
type Card struct {
	Materials  []Material                     `json:"materials"`
	Printing   Printing                       `json:"printing"`
	Lamination []Lamination                   `json:"lamination"`
	Finishing  map[string]decimal.NullDecimal `json:"finishing"`
	DieCutting PerSheet                       `json:"dieCutting"`
	Punching   PerSheet                       `json:"punching"`
	Pasting    Pasting                        `json:"pasting"`
	Machine    Machine                        `json:"machine"`
}

// MaterialNames returns the trimmed material names in card order.
func (c Card) MaterialNames() []string {
	names := make([]string, 0, len(c.Materials))
	for _, m := range c.Materials {
		names = append(names, strings.TrimSpace(m.Name))
	}
	return names
}

// HasMaterial reports whether name matches a material of the card.
func (c Card) HasMaterial(name string) bool {
	return slices.Contains(c.MaterialNames(), strings.TrimSpace(name))
}

// Clone returns a deep copy of c.
func (c Card) Clone() Card {
	out := c
	out.Materials = slices.Clone(c.Materials)
	out.Lamination = slices.Clone(c.Lamination)
	if c.Finishing != nil {
		out.Finishing = maps.Clone(c.Finishing)
	}
	return out
}

// Equal reports whether c and o hold the same rates. Decimals compare by
// value, so "2.5" equals "2.50". Wire key back-references are ignored.
func (c Card) Equal(o Card) bool {
	if len(c.Materials) != len(o.Materials) || len(c.Lamination) != len(o.Lamination) {
		return false
	}
	for i, m := range c.Materials {
		n := o.Materials[i]
		if m.Name != n.Name || m.Unit != n.Unit || !decimalEqual(m.CostPerKg, n.CostPerKg) {
			return false
		}
	}
	for i, l := range c.Lamination {
		n := o.Lamination[i]
		if l.FinishType != n.FinishType || l.Unit != n.Unit ||
			!decimalEqual(l.ColdGlueRate, n.ColdGlueRate) || !decimalEqual(l.ThermalRate, n.ThermalRate) {
			return false
		}
	}
	if len(c.Finishing) != len(o.Finishing) {
		return false
	}
	for k, v := range c.Finishing {
		w, ok := o.Finishing[k]
		if !ok || !decimalEqual(v, w) {
			return false
		}
	}
	pairs := [][2]decimal.NullDecimal{
		{c.Printing.CMYK.RatePerBatch, o.Printing.CMYK.RatePerBatch},
		{c.Printing.CMYK.MinBatchSheets, o.Printing.CMYK.MinBatchSheets},
		{c.Printing.Pantone.RatePerBatch, o.Printing.Pantone.RatePerBatch},
		{c.Printing.Pantone.MinChargeAmount, o.Printing.Pantone.MinChargeAmount},
		{c.DieCutting.RatePerSheet, o.DieCutting.RatePerSheet},
		{c.Punching.RatePerSheet, o.Punching.RatePerSheet},
		{c.Pasting.SidePasting, o.Pasting.SidePasting},
		{c.Pasting.BottomPasting, o.Pasting.BottomPasting},
		{c.Pasting.Taping, o.Pasting.Taping},
		{c.Machine.Speed, o.Machine.Speed},
		{c.Machine.CostPerHour, o.Machine.CostPerHour},
	}
	for _, p := range pairs {
		if !decimalEqual(p[0], p[1]) {
			return false
		}
	}
	return true
}

func decimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
