package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Estimate"

// Excel renders d as a single-sheet workbook mirroring the PDF tables.
func Excel(d Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 20); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#212529"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	if err := f.MergeCell(sheetName, "A1", "B1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	w := &sheetWriter{f: f, sheet: sheetName}
	w.set("A1", Title)
	w.style("A1", "B1", titleStyle)
	w.set("A2", "Ref: "+d.Reference)
	w.set("A3", "Date: "+d.CreatedDate)

	r := 5
	header := func(left, right string) {
		w.set(fmt.Sprintf("A%d", r), left)
		w.set(fmt.Sprintf("B%d", r), right)
		w.style(fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), headerStyle)
		r++
	}
	body := func(left, right string) {
		a, b := fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r)
		w.set(a, sanitizeExcelCell(left))
		w.set(b, FormatINR(right))
		w.style(a, a, bodyStyle)
		w.style(b, b, amountStyle)
		r++
	}

	header("Component", "Cost")
	for _, l := range d.Lines {
		body(l.Label, l.Amount)
	}
	r++
	header("Total Cost", "Cost Per Box")
	w.set(fmt.Sprintf("A%d", r), FormatINR(d.TotalCost))
	w.set(fmt.Sprintf("B%d", r), FormatINR(d.CostPerBox))
	w.style(fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), amountStyle)
	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter sets cells on one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, v any) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
		w.err = fmt.Errorf("set cell %s: %w", cell, err)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellStyle(w.sheet, from, to, id); err != nil {
		w.err = fmt.Errorf("set style %s:%s: %w", from, to, err)
	}
}

// sanitizeExcelCell prefixes values Excel would treat as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
