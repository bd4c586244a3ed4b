package analysis

import (
	"golang.org/x/sync/errgroup"

	"apptdash/domain/appointment"
)

// TopNeighbourhoodLimit caps the neighbourhood ranking on the dashboard.
const TopNeighbourhoodLimit = 10

// Snapshot bundles everything one dashboard refresh needs.
type Snapshot struct {
	Summary        Summary             `json:"summary"`
	Outcomes       []OutcomeCount      `json:"outcomes"`
	Ages           []AgeBucket         `json:"ages"`
	Weekdays       []WeekdayCount      `json:"weekdays"`
	Neighbourhoods []NeighbourhoodRate `json:"neighbourhoods"`
}

// BuildSnapshot computes the summary and the four chart aggregates for a
// view, fanning the chart computations out in parallel. Each aggregate is
// pure over the immutable view and writes a distinct field.
func BuildSnapshot(v appointment.View) (*Snapshot, error) {
	snap := &Snapshot{Summary: Summarize(v)}

	var g errgroup.Group
	g.Go(func() error {
		snap.Outcomes = OutcomeSplit(v)
		return nil
	})
	g.Go(func() error {
		snap.Ages = AgeHistogram(v)
		return nil
	})
	g.Go(func() error {
		snap.Weekdays = WeekdayBreakdown(v)
		return nil
	})
	g.Go(func() error {
		snap.Neighbourhoods = TopNeighbourhoods(v, TopNeighbourhoodLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
