package ui

import (
	"fmt"
	"net/http"

	"apptdash/internal/export"
)

// handleDownloadCSV streams the current filtered view as CSV. The selection
// is re-applied from the query string, so the download always matches what
// the dashboard shows.
func (a *App) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	view := a.viewFromQuery(r)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FilenameCSV))
	if err := export.WriteCSV(w, view); err != nil {
		a.log.WithError(err).Error("CSV download failed")
	}
}

// handleDownloadXLSX streams the same view as an Excel workbook.
func (a *App) handleDownloadXLSX(w http.ResponseWriter, r *http.Request) {
	view := a.viewFromQuery(r)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FilenameXLSX))
	if err := export.WriteXLSX(w, view); err != nil {
		a.log.WithError(err).Error("XLSX download failed")
	}
}
