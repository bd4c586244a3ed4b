package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"apptdash/domain/appointment"
)

// Suggested download filenames for the two serializations of a view.
const (
	FilenameCSV  = "filtered_medical_appointments.csv"
	FilenameXLSX = "filtered_medical_appointments.xlsx"
)

// WriteCSV serializes a view as UTF-8 comma-separated values with a header
// row and no index column, in the table's column order. Re-parsing the
// output yields the same rows and columns that produced it.
func WriteCSV(w io.Writer, v appointment.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(v.Table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(v.Table.Columns))
	for _, row := range v.Rows {
		for i, col := range v.Table.Columns {
			record[i] = row.Value(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
