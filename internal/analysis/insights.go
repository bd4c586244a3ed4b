package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"apptdash/domain/appointment"
)

// FactorCorrelation is the Pearson correlation between one record factor
// and the no-show flag.
type FactorCorrelation struct {
	Factor      string  `json:"factor"`
	Coefficient float64 `json:"coefficient"`
}

// Insights carries the supplemental statistics behind the insights panel.
type Insights struct {
	Factors       []FactorCorrelation `json:"factors"`
	MedianWaiting float64             `json:"median_waiting_days"`
	P90Waiting    float64             `json:"p90_waiting_days"`
	SampleSize    int                 `json:"sample_size"`
	Empty         bool                `json:"empty"`
}

var insightFactors = []struct {
	name    string
	extract func(appointment.Appointment) float64
}{
	{appointment.ColAge, func(a appointment.Appointment) float64 { return float64(a.Age) }},
	{appointment.ColWaitingDays, func(a appointment.Appointment) float64 { return float64(a.WaitingDays) }},
	{appointment.ColSMSReceived, func(a appointment.Appointment) float64 { return boolToFloat(a.SMSReceived) }},
	{appointment.ColScholarship, func(a appointment.Appointment) float64 { return boolToFloat(a.Scholarship) }},
	{appointment.ColHipertension, func(a appointment.Appointment) float64 { return boolToFloat(a.Hipertension) }},
	{appointment.ColDiabetes, func(a appointment.Appointment) float64 { return boolToFloat(a.Diabetes) }},
	{appointment.ColAlcoholism, func(a appointment.Appointment) float64 { return boolToFloat(a.Alcoholism) }},
	{appointment.ColHandcap, func(a appointment.Appointment) float64 { return float64(a.Handcap) }},
}

// Correlate computes the Pearson correlation of each record factor against
// the no-show flag over the view, plus waiting-time distribution stats.
// Factors with zero variance, and views with fewer than three rows, report
// no coefficient. Strongest factors come first.
func Correlate(v appointment.View) Insights {
	if v.IsEmpty() {
		return Insights{Empty: true}
	}

	flags := make([]float64, len(v.Rows))
	waits := make([]float64, len(v.Rows))
	for i, row := range v.Rows {
		flags[i] = float64(row.NoShowFlag)
		waits[i] = float64(row.WaitingDays)
	}

	insights := Insights{SampleSize: v.RowCount()}
	insights.MedianWaiting, _ = stats.Median(waits)
	insights.P90Waiting, _ = stats.Percentile(waits, 90)

	if len(v.Rows) < 3 {
		return insights
	}

	xs := make([]float64, len(v.Rows))
	for _, factor := range insightFactors {
		for i, row := range v.Rows {
			xs[i] = factor.extract(row)
		}
		r := stat.Correlation(xs, flags, nil)
		if math.IsNaN(r) {
			continue
		}
		insights.Factors = append(insights.Factors, FactorCorrelation{Factor: factor.name, Coefficient: r})
	}
	sort.SliceStable(insights.Factors, func(i, j int) bool {
		return math.Abs(insights.Factors[i].Coefficient) > math.Abs(insights.Factors[j].Coefficient)
	})
	return insights
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
