package v1

import (
	"time"

	"github.com/jwodder/axum-hammer/internal/models"
)

// NewDuration converts d, clamping negative values to zero.
func NewDuration(d time.Duration) Duration {
	if d < 0 {
		return Duration{}
	}
	return Duration{
		Secs:  uint64(d / time.Second),
		Nanos: uint32(d % time.Second),
	}
}

// AsDuration converts back to a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d.Secs)*time.Second + time.Duration(d.Nanos)
}

func NewTraversalFromModel(t models.Traversal) Traversal {
	times := make([]Duration, 0, len(t.RequestTimes))
	for _, rt := range t.RequestTimes {
		times = append(times, NewDuration(rt))
	}

	return Traversal{
		Workers:      t.Workers,
		Elapsed:      NewDuration(t.Elapsed),
		RequestTimes: times,
		Mean:         NewDuration(t.Stats.Mean),
		StdDev:       NewDuration(t.Stats.StdDev),
		Min:          NewDuration(t.Stats.Min),
		Max:          NewDuration(t.Stats.Max),
		P50:          NewDuration(t.Stats.P50),
		P95:          NewDuration(t.Stats.P95),
	}
}

func NewReportFromModel(run models.Run) Report {
	r := Report{
		RunID:      run.ID.String(),
		URL:        run.URL,
		Source:     run.Source,
		Requests:   run.Requests,
		StartedAt:  run.StartedAt.UTC(),
		Traversals: make([]Traversal, 0, len(run.Traversals)),
	}
	for _, t := range run.Traversals {
		r.Traversals = append(r.Traversals, NewTraversalFromModel(t))
	}
	return r
}
