package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"

	"apptdash/internal/analysis"
)

// handleHealth reports the loaded snapshot, mainly for smoke checks.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"snapshot_id": a.table.SnapshotID,
		"rows":        a.table.RowCount(),
		"source_file": a.table.SourceFile,
		"loaded_at":   a.table.LoadedAt,
	})
}

// handleAbout renders the methodology notes from the embedded Markdown.
func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	raw, err := embeddedFiles.ReadFile("templates/about.md")
	if err != nil {
		a.log.WithError(err).Error("Methodology notes missing from embedded files")
		http.Error(w, "About page unavailable", http.StatusInternalServerError)
		return
	}

	a.renderTemplate(w, "about.html", map[string]interface{}{
		"Title":   "Methodology",
		"Content": template.HTML(markdown.ToHTML(raw, nil, nil)),
	})
}

// handleInsights serves the correlation panel for the current selection.
func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, analysis.Correlate(a.viewFromQuery(r)))
}
