package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pomet/internal/table"
)

const excelSheet = "Sheet1"

// writeExcel writes the table as an xlsx workbook with the header in
// row 1. Date cells are written as real date values with a date number
// format so they render as dates, not serial numbers.
func (e *Exporter) writeExcel(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			switch v.Kind() {
			case table.KindNull:
				cells[j] = nil
			case table.KindNumber:
				cells[j] = v.Num()
			case table.KindTime:
				cells[j] = v.Date()
			default:
				cells[j] = v.Str()
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(excelSheet, ref, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
		for j, v := range row {
			if v.Kind() != table.KindTime {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(excelSheet, cell, cell, dateStyle); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
