package ui

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"apptdash/domain/appointment"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// searchColumns are the text columns the table's contains-search scans.
var searchColumns = []string{
	appointment.ColPatientID,
	appointment.ColAppointmentID,
	appointment.ColGender,
	appointment.ColNeighbourhood,
	appointment.ColDayOfWeek,
	appointment.ColNoShow,
}

type tableQuery struct {
	page     int
	pageSize int
	sortCol  string
	order    string
	search   string
}

// tablePage is one rendered page of the filtered view.
type tablePage struct {
	Columns    []string              `json:"columns"`
	Rows       [][]string            `json:"rows"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalRows  int                   `json:"total_rows"`
	TotalPages int                   `json:"total_pages"`
	Sort       string                `json:"sort,omitempty"`
	Order      string                `json:"order,omitempty"`
	Search     string                `json:"search,omitempty"`
	Selection  appointment.Selection `json:"selection"`
}

func (p tablePage) HasPrev() bool { return p.Page > 1 }
func (p tablePage) HasNext() bool { return p.Page < p.TotalPages }

// handleAppointments serves one page of the filtered view, searched and
// sorted as requested: an HTML fragment for fragment fetches, JSON
// otherwise.
func (a *App) handleAppointments(w http.ResponseWriter, r *http.Request) {
	view := a.viewFromQuery(r)
	page := a.buildTablePage(view, tableQueryFromRequest(r))
	if isHTMX(r) {
		a.renderTemplate(w, "appointments_table.html", page)
		return
	}
	a.writeJSON(w, http.StatusOK, page)
}

func tableQueryFromRequest(r *http.Request) tableQuery {
	q := r.URL.Query()
	tq := tableQuery{
		page:     intParam(q.Get("page"), 1),
		pageSize: intParam(q.Get("page_size"), defaultPageSize),
		sortCol:  q.Get("sort"),
		order:    q.Get("order"),
		search:   strings.TrimSpace(q.Get("q")),
	}
	if tq.page < 1 {
		tq.page = 1
	}
	if tq.pageSize < 1 || tq.pageSize > maxPageSize {
		tq.pageSize = defaultPageSize
	}
	return tq
}

func (a *App) buildTablePage(view appointment.View, q tableQuery) tablePage {
	rows := view.Rows
	if q.search != "" {
		rows = searchRows(rows, q.search)
	}
	if q.sortCol != "" {
		rows = sortRows(rows, q.sortCol, q.order == "desc")
	}

	total := len(rows)
	totalPages := (total + q.pageSize - 1) / q.pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if q.page > totalPages {
		q.page = totalPages
	}
	start := (q.page - 1) * q.pageSize
	end := start + q.pageSize
	if end > total {
		end = total
	}

	cells := make([][]string, 0, end-start)
	for _, row := range rows[start:end] {
		record := make([]string, len(view.Table.Columns))
		for i, col := range view.Table.Columns {
			record[i] = row.Value(col)
		}
		cells = append(cells, record)
	}

	return tablePage{
		Columns:    view.Table.Columns,
		Rows:       cells,
		Page:       q.page,
		PageSize:   q.pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		Sort:       q.sortCol,
		Order:      q.order,
		Search:     q.search,
		Selection:  view.Selection,
	}
}

// searchRows keeps rows whose text columns contain the query,
// case-insensitively, preserving row order.
func searchRows(rows []appointment.Appointment, query string) []appointment.Appointment {
	query = strings.ToLower(query)
	out := make([]appointment.Appointment, 0, len(rows))
	for _, row := range rows {
		for _, col := range searchColumns {
			if strings.Contains(strings.ToLower(row.Value(col)), query) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// sortRows returns a sorted copy; the view itself stays in table order.
// Unknown columns leave the order untouched. The sort is stable so equal
// keys keep their filtered order.
func sortRows(rows []appointment.Appointment, column string, desc bool) []appointment.Appointment {
	less := lessFunc(column)
	if less == nil {
		return rows
	}
	sorted := make([]appointment.Appointment, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(column string) func(a, b appointment.Appointment) bool {
	switch column {
	case appointment.ColAge:
		return func(a, b appointment.Appointment) bool { return a.Age < b.Age }
	case appointment.ColWaitingDays:
		return func(a, b appointment.Appointment) bool { return a.WaitingDays < b.WaitingDays }
	case appointment.ColHandcap:
		return func(a, b appointment.Appointment) bool { return a.Handcap < b.Handcap }
	case appointment.ColNoShowFlag:
		return func(a, b appointment.Appointment) bool { return a.NoShowFlag < b.NoShowFlag }
	case appointment.ColScheduledDay:
		return func(a, b appointment.Appointment) bool { return a.ScheduledDay.Before(b.ScheduledDay) }
	case appointment.ColAppointmentDay:
		return func(a, b appointment.Appointment) bool { return a.AppointmentDay.Before(b.AppointmentDay) }
	}
	for _, known := range appointment.SourceColumns {
		if column == known {
			return func(a, b appointment.Appointment) bool { return a.Value(column) < b.Value(column) }
		}
	}
	if column == appointment.ColDayOfWeek {
		return func(a, b appointment.Appointment) bool { return a.DayOfWeek < b.DayOfWeek }
	}
	return nil
}

func intParam(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
