package ui

import (
	"net/http"

	"apptdash/internal/analysis"
)

// Individual chart payloads, for clients that refresh one chart at a time.

func (a *App) handleOutcomesChart(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, analysis.OutcomeSplit(a.viewFromQuery(r)))
}

func (a *App) handleAgesChart(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, analysis.AgeHistogram(a.viewFromQuery(r)))
}

func (a *App) handleWeekdaysChart(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, analysis.WeekdayBreakdown(a.viewFromQuery(r)))
}

func (a *App) handleNeighbourhoodsChart(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, analysis.TopNeighbourhoods(a.viewFromQuery(r), analysis.TopNeighbourhoodLimit))
}
