package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes one sheet per section with a styled header row.
func writeWorkbook(w io.Writer, doc document) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sec := range doc.Sections {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sec.Sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sec.Sheet); err != nil {
			return err
		}

		if err := writeSheetRow(f, sec.Sheet, 1, sec.Header); err != nil {
			return err
		}
		if err := f.SetRowStyle(sec.Sheet, 1, 1, headerStyle); err != nil {
			return err
		}
		for r, row := range sec.Rows {
			if err := writeSheetRow(f, sec.Sheet, r+2, row); err != nil {
				return err
			}
		}

		last, _ := excelize.ColumnNumberToName(len(sec.Header))
		if err := f.SetColWidth(sec.Sheet, "A", last, 16); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
