package ui

import (
	"net/http"
	"strconv"

	"apptdash/domain/appointment"
	"apptdash/internal/filter"
)

// selectionFromQuery decodes the filter selection from query parameters:
// repeated gender and neighbourhood params plus an inclusive age_min/age_max
// pair. Absent or junk numeric input falls back to the configured defaults;
// selections are repaired, never rejected.
func (a *App) selectionFromQuery(r *http.Request) appointment.Selection {
	q := r.URL.Query()
	sel := appointment.Selection{
		AgeMin:         a.defaults.AgeMin,
		AgeMax:         a.defaults.AgeMax,
		Genders:        q["gender"],
		Neighbourhoods: q["neighbourhood"],
	}
	if v, err := strconv.Atoi(q.Get("age_min")); err == nil {
		sel.AgeMin = v
	}
	if v, err := strconv.Atoi(q.Get("age_max")); err == nil {
		sel.AgeMax = v
	}
	return filter.Normalize(sel)
}

// viewFromQuery applies the decoded selection to the full table.
func (a *App) viewFromQuery(r *http.Request) appointment.View {
	return filter.Apply(a.table, a.selectionFromQuery(r))
}
