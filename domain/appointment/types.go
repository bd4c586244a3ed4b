package appointment

import (
	"strconv"
	"time"
)

// Outcome labels exactly as they appear in the source data. "No" means the
// patient attended, "Yes" means they did not show up.
const (
	OutcomeAttended = "No"
	OutcomeNoShow   = "Yes"
)

// Default inclusive age bounds applied when a selection does not narrow them.
const (
	DefaultAgeMin = 0
	DefaultAgeMax = 100
)

// WeekdayOrder is the fixed category order for every weekday aggregate,
// independent of which weekdays the data contains.
var WeekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Canonical column names after header normalization (lower-cased, trimmed,
// hyphens replaced with underscores).
const (
	ColPatientID      = "patientid"
	ColAppointmentID  = "appointmentid"
	ColGender         = "gender"
	ColScheduledDay   = "scheduledday"
	ColAppointmentDay = "appointmentday"
	ColAge            = "age"
	ColNeighbourhood  = "neighbourhood"
	ColScholarship    = "scholarship"
	ColHipertension   = "hipertension"
	ColDiabetes       = "diabetes"
	ColAlcoholism     = "alcoholism"
	ColHandcap        = "handcap"
	ColSMSReceived    = "sms_received"
	ColNoShow         = "no_show"
	ColWaitingDays    = "waiting_days"
	ColDayOfWeek      = "day_of_week"
	ColNoShowFlag     = "no_show_flag"
)

// SourceColumns lists the recognized source columns in canonical order.
var SourceColumns = []string{
	ColPatientID,
	ColAppointmentID,
	ColGender,
	ColScheduledDay,
	ColAppointmentDay,
	ColAge,
	ColNeighbourhood,
	ColScholarship,
	ColHipertension,
	ColDiabetes,
	ColAlcoholism,
	ColHandcap,
	ColSMSReceived,
	ColNoShow,
}

// DerivedColumns are appended after the source columns at load time.
var DerivedColumns = []string{ColWaitingDays, ColDayOfWeek, ColNoShowFlag}

// Appointment is one source row after typing and column derivation.
type Appointment struct {
	PatientID      string    `json:"patient_id"`
	AppointmentID  string    `json:"appointment_id"`
	Gender         string    `json:"gender"`
	ScheduledDay   time.Time `json:"scheduled_day"`
	AppointmentDay time.Time `json:"appointment_day"`
	Age            int       `json:"age"`
	Neighbourhood  string    `json:"neighbourhood"`
	Scholarship    bool      `json:"scholarship"`
	Hipertension   bool      `json:"hipertension"`
	Diabetes       bool      `json:"diabetes"`
	Alcoholism     bool      `json:"alcoholism"`
	Handcap        int       `json:"handcap"`
	SMSReceived    bool      `json:"sms_received"`
	NoShow         string    `json:"no_show"`

	// Derived at load time.
	WaitingDays int    `json:"waiting_days"`
	DayOfWeek   string `json:"day_of_week"`
	NoShowFlag  int    `json:"no_show_flag"`
}

// Missed reports whether the patient did not show up.
func (a Appointment) Missed() bool {
	return a.NoShow == OutcomeNoShow
}

// Value returns the serialized cell value for a canonical column name.
// Timestamps serialize as RFC3339 (the source format), condition flags as
// 0/1. Unknown columns return the empty string.
func (a Appointment) Value(column string) string {
	switch column {
	case ColPatientID:
		return a.PatientID
	case ColAppointmentID:
		return a.AppointmentID
	case ColGender:
		return a.Gender
	case ColScheduledDay:
		return a.ScheduledDay.Format(time.RFC3339)
	case ColAppointmentDay:
		return a.AppointmentDay.Format(time.RFC3339)
	case ColAge:
		return strconv.Itoa(a.Age)
	case ColNeighbourhood:
		return a.Neighbourhood
	case ColScholarship:
		return flag01(a.Scholarship)
	case ColHipertension:
		return flag01(a.Hipertension)
	case ColDiabetes:
		return flag01(a.Diabetes)
	case ColAlcoholism:
		return flag01(a.Alcoholism)
	case ColHandcap:
		return strconv.Itoa(a.Handcap)
	case ColSMSReceived:
		return flag01(a.SMSReceived)
	case ColNoShow:
		return a.NoShow
	case ColWaitingDays:
		return strconv.Itoa(a.WaitingDays)
	case ColDayOfWeek:
		return a.DayOfWeek
	case ColNoShowFlag:
		return strconv.Itoa(a.NoShowFlag)
	}
	return ""
}

func flag01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Table is the full dataset, loaded once per process and never mutated
// afterwards. Every filtered view is a fresh derivation from it.
type Table struct {
	SnapshotID     string        `json:"snapshot_id"`
	SourceFile     string        `json:"source_file"`
	Columns        []string      `json:"columns"`
	Rows           []Appointment `json:"-"`
	Genders        []string      `json:"genders"`
	Neighbourhoods []string      `json:"neighbourhoods"`
	AgeMin         int           `json:"age_min"`
	AgeMax         int           `json:"age_max"`
	LoadedAt       time.Time     `json:"loaded_at"`
}

// RowCount returns the number of rows in the full table.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Selection is an immutable filter value. Empty gender and neighbourhood
// sets match everything; the age interval is always applied, both ends
// inclusive.
type Selection struct {
	Genders        []string `json:"genders,omitempty"`
	AgeMin         int      `json:"age_min"`
	AgeMax         int      `json:"age_max"`
	Neighbourhoods []string `json:"neighbourhoods,omitempty"`
}

// NewSelection returns a selection with no constraints beyond the default
// age interval.
func NewSelection() Selection {
	return Selection{AgeMin: DefaultAgeMin, AgeMax: DefaultAgeMax}
}

// View is a read-only, order-preserving subset of a table.
type View struct {
	Table     *Table
	Selection Selection
	Rows      []Appointment
}

// RowCount returns the number of rows in the view.
func (v View) RowCount() int {
	return len(v.Rows)
}

// IsEmpty reports whether the view holds no rows.
func (v View) IsEmpty() bool {
	return len(v.Rows) == 0
}
