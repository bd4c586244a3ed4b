package ingest

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"apptdash/domain/appointment"
	"apptdash/internal/errors"
)

// timestampLayouts are tried in order when parsing the two date columns.
var timestampLayouts = []string{time.RFC3339, "2006-01-02 15:04:05"}

// requiredColumns must all be present after header normalization.
var requiredColumns = []string{
	appointment.ColPatientID,
	appointment.ColGender,
	appointment.ColScheduledDay,
	appointment.ColAppointmentDay,
	appointment.ColAge,
	appointment.ColNeighbourhood,
	appointment.ColNoShow,
}

// Loader turns the raw source table into the typed in-memory Table with its
// derived columns. Loading happens exactly once per process; any malformed
// row aborts the load, there is no partial-data mode.
type Loader struct {
	log *logrus.Logger
}

// NewLoader creates a loader that reports through the given logger.
func NewLoader(log *logrus.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads, types, and derives the dataset at path.
func (l *Loader) Load(path string) (*appointment.Table, error) {
	records, err := NewDataReader(path, l.log).ReadRecords()
	if err != nil {
		return nil, errors.WithCode(errors.CodeDataError, err)
	}

	table, err := buildTable(records, path)
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"snapshot_id":    table.SnapshotID,
		"rows":           table.RowCount(),
		"columns":        len(table.Columns),
		"neighbourhoods": len(table.Neighbourhoods),
		"age_span":       strconv.Itoa(table.AgeMin) + "-" + strconv.Itoa(table.AgeMax),
	}).Info("Dataset loaded")
	return table, nil
}

// NormalizeHeader lower-cases, trims, and replaces hyphens with underscores,
// so the source's "No-show" header becomes "no_show".
func NormalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "-", "_")
}

func buildTable(records [][]string, source string) (*appointment.Table, error) {
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[NormalizeHeader(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.DataErrorf("required column %q missing from source table", col)
		}
	}

	// Export column order: recognized source columns as they are defined,
	// then the derived columns.
	columns := make([]string, 0, len(appointment.SourceColumns)+len(appointment.DerivedColumns))
	for _, col := range appointment.SourceColumns {
		if _, ok := index[col]; ok {
			columns = append(columns, col)
		}
	}
	columns = append(columns, appointment.DerivedColumns...)

	rows := make([]appointment.Appointment, 0, len(records)-1)
	genders := make(map[string]bool)
	neighbourhoods := make(map[string]bool)
	ageMin, ageMax := 0, 0

	for i, record := range records[1:] {
		row, err := parseRow(record, index)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d is malformed", i+2)
		}
		if len(rows) == 0 || row.Age < ageMin {
			ageMin = row.Age
		}
		if len(rows) == 0 || row.Age > ageMax {
			ageMax = row.Age
		}
		genders[row.Gender] = true
		neighbourhoods[row.Neighbourhood] = true
		rows = append(rows, row)
	}

	return &appointment.Table{
		SnapshotID:     uuid.NewString(),
		SourceFile:     source,
		Columns:        columns,
		Rows:           rows,
		Genders:        sortedKeys(genders),
		Neighbourhoods: sortedKeys(neighbourhoods),
		AgeMin:         ageMin,
		AgeMax:         ageMax,
		LoadedAt:       time.Now().UTC(),
	}, nil
}

func parseRow(record []string, index map[string]int) (appointment.Appointment, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	scheduled, err := parseTimestamp(get(appointment.ColScheduledDay))
	if err != nil {
		return appointment.Appointment{}, errors.DataErrorf("unparseable scheduled timestamp %q", get(appointment.ColScheduledDay))
	}
	day, err := parseTimestamp(get(appointment.ColAppointmentDay))
	if err != nil {
		return appointment.Appointment{}, errors.DataErrorf("unparseable appointment timestamp %q", get(appointment.ColAppointmentDay))
	}
	age, err := strconv.Atoi(get(appointment.ColAge))
	if err != nil {
		return appointment.Appointment{}, errors.DataErrorf("unparseable age %q", get(appointment.ColAge))
	}
	noShow := get(appointment.ColNoShow)
	if noShow != appointment.OutcomeAttended && noShow != appointment.OutcomeNoShow {
		return appointment.Appointment{}, errors.DataErrorf("unrecognized outcome label %q", noShow)
	}

	row := appointment.Appointment{
		PatientID:      get(appointment.ColPatientID),
		AppointmentID:  get(appointment.ColAppointmentID),
		Gender:         get(appointment.ColGender),
		ScheduledDay:   scheduled,
		AppointmentDay: day,
		Age:            age,
		Neighbourhood:  get(appointment.ColNeighbourhood),
		Scholarship:    get(appointment.ColScholarship) == "1",
		Hipertension:   get(appointment.ColHipertension) == "1",
		Diabetes:       get(appointment.ColDiabetes) == "1",
		Alcoholism:     get(appointment.ColAlcoholism) == "1",
		Handcap:        intOrZero(get(appointment.ColHandcap)),
		SMSReceived:    get(appointment.ColSMSReceived) == "1",
		NoShow:         noShow,
	}
	row.WaitingDays = waitingDays(scheduled, day)
	row.DayOfWeek = day.Weekday().String()
	if row.Missed() {
		row.NoShowFlag = 1
	}
	return row, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// waitingDays is the floor of the delta between the two timestamps in whole
// days. A visit scheduled after midnight UTC of the same day comes out as
// -1, matching the source data's bookkeeping; negative values are kept, not
// corrected.
func waitingDays(scheduled, day time.Time) int {
	d := day.Sub(scheduled)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 && d < 0 {
		days--
	}
	return days
}

func intOrZero(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
