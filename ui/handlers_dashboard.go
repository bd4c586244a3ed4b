package ui

import (
	"net/http"

	"apptdash/domain/appointment"
	"apptdash/internal/analysis"
)

// summaryPayload is the JSON shape of the four summary scalars. The two
// means are null for an empty view instead of carrying a meaningless zero.
type summaryPayload struct {
	TotalAppointments int      `json:"total_appointments"`
	NoShowRate        *float64 `json:"no_show_rate"`
	AvgWaitingDays    *float64 `json:"avg_waiting_days"`
	UniquePatients    int      `json:"unique_patients"`
	RateLabel         string   `json:"rate_label"`
	WaitingLabel      string   `json:"waiting_label"`
}

func toSummaryPayload(s analysis.Summary) summaryPayload {
	p := summaryPayload{
		TotalAppointments: s.TotalAppointments,
		UniquePatients:    s.UniquePatients,
		RateLabel:         s.RateLabel(),
		WaitingLabel:      s.WaitingLabel(),
	}
	if !s.Empty {
		rate, wait := s.NoShowRate, s.AvgWaitingDays
		p.NoShowRate = &rate
		p.AvgWaitingDays = &wait
	}
	return p
}

type dashboardPayload struct {
	Summary        summaryPayload               `json:"summary"`
	Outcomes       []analysis.OutcomeCount      `json:"outcomes"`
	Ages           []analysis.AgeBucket         `json:"ages"`
	Weekdays       []analysis.WeekdayCount      `json:"weekdays"`
	Neighbourhoods []analysis.NeighbourhoodRate `json:"neighbourhoods"`
	Selection      appointment.Selection        `json:"selection"`
	RowCount       int                          `json:"row_count"`
}

// handleIndex renders the dashboard page for the current selection. Summary
// cards and the table render server-side; charts fetch their data through
// the dashboard API.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := a.viewFromQuery(r)

	data := map[string]interface{}{
		"Title":          "Medical Appointments Dashboard",
		"Summary":        analysis.Summarize(view),
		"Genders":        a.table.Genders,
		"Neighbourhoods": a.table.Neighbourhoods,
		"Selection":      view.Selection,
		"TableRowCount":  a.table.RowCount(),
		"SnapshotID":     a.table.SnapshotID,
		"Table":          a.buildTablePage(view, tableQuery{page: 1, pageSize: defaultPageSize}),
	}
	a.renderTemplate(w, "index.html", data)
}

// handleDashboard returns the full snapshot for one apply action: summary
// scalars plus all four chart aggregates.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := a.viewFromQuery(r)
	snap, err := analysis.BuildSnapshot(view)
	if err != nil {
		a.log.WithError(err).Error("Snapshot computation failed")
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, dashboardPayload{
		Summary:        toSummaryPayload(snap.Summary),
		Outcomes:       snap.Outcomes,
		Ages:           snap.Ages,
		Weekdays:       snap.Weekdays,
		Neighbourhoods: snap.Neighbourhoods,
		Selection:      view.Selection,
		RowCount:       view.RowCount(),
	})
}

// handleSummary serves the summary cards, as an HTML fragment for fragment
// fetches and as JSON otherwise.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := analysis.Summarize(a.viewFromQuery(r))
	if isHTMX(r) {
		a.renderTemplate(w, "summary_cards.html", summary)
		return
	}
	a.writeJSON(w, http.StatusOK, toSummaryPayload(summary))
}
