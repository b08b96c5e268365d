package export

import (
	"fmt"

	"commission_go/internal/engine"

	"github.com/xuri/excelize/v2"
)

const breakdownSheet = "Breakdown"

var breakdownHeaders = []string{"Line", "Type", "Priority", "Description", "Exact Subtotal", "Amount"}

// BreakdownWorkbook renders a tabulation as a single-sheet workbook. The
// Amount column holds the penny-allocated values, which sum to the total row.
func BreakdownWorkbook(orderID string, r *engine.Result) (*excelize.File, error) {
	allocated, err := r.Allocate()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", breakdownSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	for i, header := range breakdownHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(breakdownSheet, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(breakdownHeaders), 1)
	f.SetCellStyle(breakdownSheet, "A1", lastHeader, headerStyle)

	for i, s := range r.Lines {
		row := i + 2
		f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", row), string(s.Line.ID))
		f.SetCellValue(breakdownSheet, fmt.Sprintf("B%d", row), s.Line.Type.String())
		f.SetCellValue(breakdownSheet, fmt.Sprintf("C%d", row), s.Line.Priority)
		f.SetCellValue(breakdownSheet, fmt.Sprintf("D%d", row), s.Line.Description)
		f.SetCellValue(breakdownSheet, fmt.Sprintf("E%d", row), s.Value.Amount.String())
		f.SetCellValue(breakdownSheet, fmt.Sprintf("F%d", row), allocated[s.Line.ID].Amount.InexactFloat64())
	}

	totalRow := len(r.Lines) + 3
	f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", totalRow), "Total")
	if orderID != "" {
		f.SetCellValue(breakdownSheet, fmt.Sprintf("D%d", totalRow), orderID)
	}
	f.SetCellValue(breakdownSheet, fmt.Sprintf("E%d", totalRow), r.Exact.Amount.String())
	f.SetCellValue(breakdownSheet, fmt.Sprintf("F%d", totalRow), r.Total.Amount.InexactFloat64())
	f.SetCellStyle(breakdownSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("F%d", totalRow), headerStyle)

	f.SetColWidth(breakdownSheet, "A", "A", 38)
	f.SetColWidth(breakdownSheet, "B", "F", 16)

	return f, nil
}

// WriteBreakdown saves the breakdown workbook to path.
func WriteBreakdown(path, orderID string, r *engine.Result) error {
	f, err := BreakdownWorkbook(orderID, r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
