// Package report turns a pricing result into labelled, two-decimal line
// items and renders them as PDF or XLSX documents.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/estimate"
	"github.com/bitsandvolts/boxcost/internal/naming"
)

// Line is one component of the cost breakdown.
type Line struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Report is a cost result ready for display. Amounts are fixed to two
// decimal places.
type Report struct {
	Lines      []Line `json:"lines"`
	TotalCost  string `json:"totalCost"`
	CostPerBox string `json:"costPerBox"`
}

// Format labels every breakdown entry in the order the pricing service
// returned them and rounds every amount.
func Format(res estimate.Result) Report {
	lines := make([]Line, 0, len(res.Breakdown))
	for _, e := range res.Breakdown {
		lines = append(lines, Line{Label: naming.Title(e.Key), Amount: Round(e.Value)})
	}
	return Report{
		Lines:      lines,
		TotalCost:  Round(res.TotalCost),
		CostPerBox: Round(res.CostPerBox),
	}
}

// Round fixes v to two decimal places, rounding half away from zero on the
// shortest decimal form of v: 2.675 gives "2.68" and -1.005 gives "-1.01".
func Round(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
