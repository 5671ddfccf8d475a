package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// RenderXLSX writes the report as a spreadsheet at path, with the
// template's title and header above the data and the footer below it.
func RenderXLSX(path string, rep *Report, tpl RenderedTemplate) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	row := 1
	if tpl.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(xlsxSheet, cell, tpl.Title); err != nil {
			return fmt.Errorf("writing title: %w", err)
		}
		row += 2
	}
	if tpl.Header != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(xlsxSheet, cell, tpl.Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		row += 2
	}

	for col, name := range headerRow(rep) {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return fmt.Errorf("writing column header: %w", err)
		}
	}
	row++

	for _, cells := range dataRows(rep) {
		for col, value := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return fmt.Errorf("writing data cell: %w", err)
			}
		}
		row++
	}

	row++
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(xlsxSheet, cell, fmt.Sprintf("Total: %s h", formatHours(rep.TotalHours()))); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if tpl.Footer != "" {
		row += 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(xlsxSheet, cell, tpl.Footer); err != nil {
			return fmt.Errorf("writing footer: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
