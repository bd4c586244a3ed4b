package ui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"apptdash/domain/appointment"
	"apptdash/internal/config"
)

// testApp serves the canonical three-row table: F/30/A attended,
// M/45/B missed, F/70/A missed.
func testApp(t *testing.T) *App {
	t.Helper()

	rows := []appointment.Appointment{
		{
			PatientID: "p1", AppointmentID: "a1", Gender: "F", Age: 30, Neighbourhood: "A",
			ScheduledDay:   time.Date(2016, 4, 25, 10, 0, 0, 0, time.UTC),
			AppointmentDay: time.Date(2016, 5, 2, 0, 0, 0, 0, time.UTC),
			NoShow:         appointment.OutcomeAttended, DayOfWeek: "Monday", WaitingDays: 6,
		},
		{
			PatientID: "p2", AppointmentID: "a2", Gender: "M", Age: 45, Neighbourhood: "B",
			ScheduledDay:   time.Date(2016, 4, 26, 10, 0, 0, 0, time.UTC),
			AppointmentDay: time.Date(2016, 5, 3, 0, 0, 0, 0, time.UTC),
			NoShow:         appointment.OutcomeNoShow, DayOfWeek: "Tuesday", WaitingDays: 6, NoShowFlag: 1,
		},
		{
			PatientID: "p3", AppointmentID: "a3", Gender: "F", Age: 70, Neighbourhood: "A",
			ScheduledDay:   time.Date(2016, 4, 27, 10, 0, 0, 0, time.UTC),
			AppointmentDay: time.Date(2016, 5, 6, 0, 0, 0, 0, time.UTC),
			NoShow:         appointment.OutcomeNoShow, DayOfWeek: "Friday", WaitingDays: 8, NoShowFlag: 1,
		},
	}
	table := &appointment.Table{
		SnapshotID:     "test-snapshot",
		SourceFile:     "appointments.csv",
		Columns:        append(append([]string{}, appointment.SourceColumns...), appointment.DerivedColumns...),
		Rows:           rows,
		Genders:        []string{"F", "M"},
		Neighbourhoods: []string{"A", "B"},
		AgeMin:         30,
		AgeMax:         70,
		LoadedAt:       time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{Filter: config.FilterConfig{AgeMin: appointment.DefaultAgeMin, AgeMax: appointment.DefaultAgeMax}}

	app, err := NewApp(table, cfg, log)
	require.NoError(t, err)
	return app
}

func doRequest(t *testing.T, app *App, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status     string `json:"status"`
		SnapshotID string `json:"snapshot_id"`
		Rows       int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test-snapshot", body.SnapshotID)
	assert.Equal(t, 3, body.Rows)
}

func TestIndexRendersDashboard(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Medical Appointments")
	assert.Contains(t, body, `<option value="A"`, "neighbourhood options come from the table")
	assert.Contains(t, body, "Total appointments")
}

func TestIndexPreselectsFilters(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/?gender=F&age_min=20&age_max=80", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="F" checked`)
	assert.Contains(t, body, `value="20"`)
	assert.Contains(t, body, `value="80"`)
}

func TestSummaryJSONWorkedExample(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/summary?gender=F", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalAppointments int      `json:"total_appointments"`
		NoShowRate        *float64 `json:"no_show_rate"`
		RateLabel         string   `json:"rate_label"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalAppointments)
	require.NotNil(t, body.NoShowRate)
	assert.InDelta(t, 50.0, *body.NoShowRate, 1e-9)
	assert.Equal(t, "50.00%", body.RateLabel)
}

func TestSummaryEmptyViewSerializesNulls(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/summary?age_min=99&age_max=99", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalAppointments int      `json:"total_appointments"`
		NoShowRate        *float64 `json:"no_show_rate"`
		AvgWaitingDays    *float64 `json:"avg_waiting_days"`
		RateLabel         string   `json:"rate_label"`
		WaitingLabel      string   `json:"waiting_label"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.TotalAppointments)
	assert.Nil(t, body.NoShowRate)
	assert.Nil(t, body.AvgWaitingDays)
	assert.Equal(t, "N/A", body.RateLabel)
	assert.Equal(t, "N/A", body.WaitingLabel)
}

func TestSummaryFragment(t *testing.T) {
	header := http.Header{"HX-Request": []string{"true"}}
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/summary", header)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "No-show rate")
}

func TestDashboardSnapshot(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/dashboard?gender=F&gender=M", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Outcomes []struct {
			Outcome string `json:"outcome"`
			Count   int    `json:"count"`
		} `json:"outcomes"`
		Weekdays []struct {
			Day string `json:"day"`
		} `json:"weekdays"`
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 3, body.RowCount)
	require.Len(t, body.Outcomes, 2)
	assert.Equal(t, body.RowCount, body.Outcomes[0].Count+body.Outcomes[1].Count)
	require.Len(t, body.Weekdays, 7)
	assert.Equal(t, "Monday", body.Weekdays[0].Day)
	assert.Equal(t, "Sunday", body.Weekdays[6].Day)
}

func TestAppointmentsPagination(t *testing.T) {
	app := testApp(t)

	rec := doRequest(t, app, http.MethodGet, "/api/appointments?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		Rows       [][]string `json:"rows"`
		Page       int        `json:"page"`
		TotalRows  int        `json:"total_rows"`
		TotalPages int        `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Len(t, first.Rows, 2)
	assert.Equal(t, 3, first.TotalRows)
	assert.Equal(t, 2, first.TotalPages)

	rec = doRequest(t, app, http.MethodGet, "/api/appointments?page=2&page_size=2", nil)
	var second struct {
		Rows [][]string `json:"rows"`
		Page int        `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Len(t, second.Rows, 1)
	assert.Equal(t, 2, second.Page)
}

func TestAppointmentsJunkParamsFallBack(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/appointments?page=-3&page_size=9999", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, defaultPageSize, body.PageSize)
}

func TestAppointmentsSearch(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/appointments?q=b", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows      [][]string `json:"rows"`
		TotalRows int        `json:"total_rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.TotalRows)
	assert.Equal(t, "p2", body.Rows[0][0], "only the B-neighbourhood row matches")
}

func TestAppointmentsSort(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/appointments?sort=age&order=desc", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	ageIdx := -1
	for i, col := range body.Columns {
		if col == appointment.ColAge {
			ageIdx = i
		}
	}
	require.GreaterOrEqual(t, ageIdx, 0)
	require.Len(t, body.Rows, 3)
	assert.Equal(t, "70", body.Rows[0][ageIdx])
	assert.Equal(t, "30", body.Rows[2][ageIdx])
}

func TestAppointmentsFragment(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/appointments?partial=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<table>")
	assert.Contains(t, rec.Body.String(), "Page 1 of 1")
}

func TestDownloadCSV(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/download/csv?gender=F", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_medical_appointments.csv")

	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus the two F rows")
	assert.Equal(t, "p1", records[1][0])
	assert.Equal(t, "p3", records[2][0])
}

func TestDownloadXLSX(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/download/xlsx", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_medical_appointments.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Len(t, rows, 4, "header plus all three rows")
}

func TestChartEndpoints(t *testing.T) {
	app := testApp(t)
	for _, path := range []string{
		"/api/charts/outcomes",
		"/api/charts/ages",
		"/api/charts/weekdays",
		"/api/charts/neighbourhoods",
	} {
		rec := doRequest(t, app, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var payload []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), path)
		assert.NotEmpty(t, payload, path)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/api/insights", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SampleSize int  `json:"sample_size"`
		Empty      bool `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.SampleSize)
	assert.False(t, body.Empty)
}

func TestAboutPage(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/about", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Methodology")
	assert.Contains(t, rec.Body.String(), "waiting_days")
}

func TestStaticAssetsServed(t *testing.T) {
	rec := doRequest(t, testApp(t), http.MethodGet, "/static/style.css", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "body"), "stylesheet body should come through")
}
