package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	headerBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	altBg      = &props.Color{Red: 248, Green: 249, Blue: 250}
	mutedColor = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDF renders d as an A4 document: a component table followed by the totals
// table.
func PDF(d Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).
		WithTopMargin(14).
		WithRightMargin(14).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, d)
	addComponentTable(m, d.Lines)
	m.AddRows(row.New(10))
	addTotalsTable(m, d)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate estimate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, d Document) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(Title, props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Ref: "+d.Reference, props.Text{
				Size:  8,
				Align: align.Left,
				Color: mutedColor,
			})),
			col.New(6).Add(text.New("Date: "+d.CreatedDate, props.Text{
				Size:  8,
				Align: align.Right,
				Color: mutedColor,
			})),
		),
		row.New(4),
	)
}

func addComponentTable(m core.Maroto, lines []Line) {
	addTableHeader(m, "Component", "Cost")

	for i, l := range lines {
		label := col.New(8).Add(text.New(l.Label, props.Text{Size: 9, Align: align.Left}))
		amount := col.New(4).Add(text.New(FormatRs(l.Amount), props.Text{Size: 9, Align: align.Right}))
		if i%2 == 1 {
			style := &props.Cell{BackgroundColor: altBg}
			label = label.WithStyle(style)
			amount = amount.WithStyle(style)
		}
		m.AddRows(row.New(7).Add(label, amount))
	}
}

func addTotalsTable(m core.Maroto, d Document) {
	addTableHeader(m, "Total Cost", "Cost Per Box")

	value := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
	perBox := value
	perBox.Align = align.Right
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New(FormatRs(d.TotalCost), value)),
			col.New(4).Add(text.New(FormatRs(d.CostPerBox), perBox)),
		),
	)
}

func addTableHeader(m core.Maroto, left, right string) {
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextRight := headerText
	headerTextRight.Align = align.Right
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New(left, headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New(right, headerTextRight)).WithStyle(&headerCell),
		),
	)
}
