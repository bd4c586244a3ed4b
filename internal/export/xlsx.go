package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"apptdash/domain/appointment"
)

// WriteXLSX serializes a view as an Excel workbook on Sheet1 with the same
// rows and column order as the CSV export. The stream writer keeps memory
// flat for full-table downloads.
func WriteXLSX(w io.Writer, v appointment.View) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(v.Table.Columns))
	for i, col := range v.Table.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	cells := make([]interface{}, len(v.Table.Columns))
	for r, row := range v.Rows {
		for i, col := range v.Table.Columns {
			cells[i] = row.Value(col)
		}
		anchor, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", r+2, err)
		}
		if err := sw.SetRow(anchor, cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
