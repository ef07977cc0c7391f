package services

import (
	"context"
	"math/rand/v2"
	"time"

	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

const DefaultSleepMin uint64 = 500

// SleepParams bounds a random sleep, in milliseconds, both ends included.
type SleepParams struct {
	Min uint64
	Max uint64
}

// NewSleepParams applies the defaults: min is 500 and max is twice min. An explicit max
// must be greater than min.
func NewSleepParams(minMs, maxMs *uint64) (SleepParams, error) {
	p := SleepParams{Min: DefaultSleepMin}
	if minMs != nil {
		p.Min = *minMs
	}

	switch {
	case maxMs == nil:
		p.Max = saturatingDouble(p.Min)
	case *maxMs > p.Min:
		p.Max = *maxMs
	default:
		return SleepParams{}, srvErrors.NewInvalidSleepParamsError(p.Min, *maxMs)
	}
	return p, nil
}

// Duration picks a duration uniformly in [Min, Max] milliseconds.
func (p SleepParams) Duration() time.Duration {
	span := p.Max - p.Min
	ms := p.Min
	if span > 0 {
		if span == ^uint64(0) {
			ms += rand.Uint64()
		} else {
			ms += rand.Uint64N(span + 1)
		}
	}
	return time.Duration(ms) * time.Millisecond
}

// Sleeper waits random durations on behalf of /sleep requests.
type Sleeper struct{}

func NewSleeper() *Sleeper {
	return &Sleeper{}
}

// Sleep waits for a duration drawn from p. It returns early with ctx's error when ctx ends.
func (s *Sleeper) Sleep(ctx context.Context, p SleepParams) (time.Duration, error) {
	d := p.Duration()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func saturatingDouble(v uint64) uint64 {
	if v > ^uint64(0)/2 {
		return ^uint64(0)
	}
	return v * 2
}
