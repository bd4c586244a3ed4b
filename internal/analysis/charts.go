package analysis

import (
	"sort"

	"apptdash/domain/appointment"
)

// OutcomeCount is one slice of the outcome split.
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// OutcomeSplit counts rows per outcome label, attended first.
func OutcomeSplit(v appointment.View) []OutcomeCount {
	attended, missed := 0, 0
	for _, row := range v.Rows {
		if row.Missed() {
			missed++
		} else {
			attended++
		}
	}
	return []OutcomeCount{
		{Outcome: appointment.OutcomeAttended, Count: attended},
		{Outcome: appointment.OutcomeNoShow, Count: missed},
	}
}

// AgeBucket carries both outcome counts for one observed age.
type AgeBucket struct {
	Age      int `json:"age"`
	Attended int `json:"attended"`
	NoShows  int `json:"no_shows"`
}

// AgeHistogram counts rows per observed integer age, split by outcome,
// ages ascending. Two distributions over one age axis.
func AgeHistogram(v appointment.View) []AgeBucket {
	byAge := make(map[int]*AgeBucket)
	for _, row := range v.Rows {
		b := byAge[row.Age]
		if b == nil {
			b = &AgeBucket{Age: row.Age}
			byAge[row.Age] = b
		}
		if row.Missed() {
			b.NoShows++
		} else {
			b.Attended++
		}
	}

	buckets := make([]AgeBucket, 0, len(byAge))
	for _, b := range byAge {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Age < buckets[j].Age })
	return buckets
}

// WeekdayCount carries both outcome counts for one weekday.
type WeekdayCount struct {
	Day      string `json:"day"`
	Attended int    `json:"attended"`
	NoShows  int    `json:"no_shows"`
}

// WeekdayBreakdown counts rows per weekday, split by outcome. The result
// always has exactly seven entries in Monday-through-Sunday order; weekdays
// absent from the view count zero instead of disappearing.
func WeekdayBreakdown(v appointment.View) []WeekdayCount {
	pos := make(map[string]int, len(appointment.WeekdayOrder))
	out := make([]WeekdayCount, len(appointment.WeekdayOrder))
	for i, day := range appointment.WeekdayOrder {
		pos[day] = i
		out[i] = WeekdayCount{Day: day}
	}
	for _, row := range v.Rows {
		i, ok := pos[row.DayOfWeek]
		if !ok {
			continue
		}
		if row.Missed() {
			out[i].NoShows++
		} else {
			out[i].Attended++
		}
	}
	return out
}

// NeighbourhoodRate is the mean no-show rate for one neighbourhood.
type NeighbourhoodRate struct {
	Neighbourhood string  `json:"neighbourhood"`
	NoShowRate    float64 `json:"no_show_rate"` // percent, 0-100
	Appointments  int     `json:"appointments"`
}

// TopNeighbourhoods ranks every neighbourhood present in the view by mean
// no-show rate, descending, returning at most limit entries. Groups are
// collected alphabetically and the rate sort is stable, so ties resolve
// alphabetically run after run.
func TopNeighbourhoods(v appointment.View, limit int) []NeighbourhoodRate {
	type group struct {
		total  int
		missed int
	}
	groups := make(map[string]*group)
	for _, row := range v.Rows {
		g := groups[row.Neighbourhood]
		if g == nil {
			g = &group{}
			groups[row.Neighbourhood] = g
		}
		g.total++
		if row.Missed() {
			g.missed++
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	rates := make([]NeighbourhoodRate, 0, len(names))
	for _, name := range names {
		g := groups[name]
		rates = append(rates, NeighbourhoodRate{
			Neighbourhood: name,
			NoShowRate:    float64(g.missed) / float64(g.total) * 100,
			Appointments:  g.total,
		})
	}
	sort.SliceStable(rates, func(i, j int) bool { return rates[i].NoShowRate > rates[j].NoShowRate })

	if limit > 0 && len(rates) > limit {
		rates = rates[:limit]
	}
	return rates
}
