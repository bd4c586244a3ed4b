package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"apptdash/domain/appointment"
)

// Summary holds the four dashboard scalars for a filtered view. The two
// means are undefined over an empty view; Empty marks that case so no NaN
// ever reaches the display.
type Summary struct {
	TotalAppointments int     `json:"total_appointments"`
	NoShowRate        float64 `json:"no_show_rate"` // percent, 0-100
	AvgWaitingDays    float64 `json:"avg_waiting_days"`
	UniquePatients    int     `json:"unique_patients"`
	Empty             bool    `json:"empty"`
}

// RateLabel renders the no-show rate with two decimals, or N/A for an
// empty view.
func (s Summary) RateLabel() string {
	if s.Empty {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", s.NoShowRate)
}

// WaitingLabel renders the average waiting days with one decimal, or N/A
// for an empty view.
func (s Summary) WaitingLabel() string {
	if s.Empty {
		return "N/A"
	}
	return fmt.Sprintf("%.1f days", s.AvgWaitingDays)
}

// Summarize computes the summary scalars for a view. Pure; safe to call
// concurrently with any other aggregate.
func Summarize(v appointment.View) Summary {
	if v.IsEmpty() {
		return Summary{Empty: true}
	}

	flags := make([]float64, len(v.Rows))
	waits := make([]float64, len(v.Rows))
	patients := make(map[string]bool, len(v.Rows))
	for i, row := range v.Rows {
		flags[i] = float64(row.NoShowFlag)
		waits[i] = float64(row.WaitingDays)
		patients[row.PatientID] = true
	}

	rate, _ := stats.Mean(flags)
	wait, _ := stats.Mean(waits)

	return Summary{
		TotalAppointments: v.RowCount(),
		NoShowRate:        rate * 100,
		AvgWaitingDays:    wait,
		UniquePatients:    len(patients),
	}
}
