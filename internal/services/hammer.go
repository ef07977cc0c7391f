package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/jobs"
	"github.com/jwodder/axum-hammer/internal/models"
	"github.com/jwodder/axum-hammer/internal/util"
	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
	"github.com/jwodder/axum-hammer/pkg/scheduler"
)

// RunSpec describes one hammer invocation.
type RunSpec struct {
	Target     *url.URL
	Source     string
	Requests   int
	Workers    []int
	BufferSize int
	// WaitReady is the longest time spent polling Target before the first traversal.
	// Zero disables polling.
	WaitReady time.Duration
}

type Hammer struct {
	factory scheduler.CallerFactory[*url.URL, time.Duration]
	getter  jobs.Getter
	builder *jobs.Builder
	// OnTraversal, when set, is called after every completed traversal.
	OnTraversal func(models.Traversal)

	mu    sync.Mutex
	state models.RunState
}

// NewHammerService returns a service issuing requests through callers built by factory.
// getter is used for readiness polling and for fetching subpage indexes.
func NewHammerService(factory scheduler.CallerFactory[*url.URL, time.Duration], getter jobs.Getter) *Hammer {
	return &Hammer{
		factory: factory,
		getter:  getter,
		builder: jobs.NewBuilder(getter),
		state:   models.RunStateWaiting,
	}
}

func (h *Hammer) State() models.RunState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Hammer) setState(s models.RunState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
}

// Run performs one traversal per entry of rs.Workers, in order. The first failed request
// aborts the run: the returned Run holds the traversals completed so far.
func (h *Hammer) Run(ctx context.Context, rs RunSpec) (*models.Run, error) {
	logger := zap.S().Named("hammer")
	run := models.NewRun(rs.Target.String(), rs.Source, rs.Requests)

	h.setState(models.RunStateWaiting)
	if rs.WaitReady > 0 {
		if err := h.WaitReady(ctx, rs.Target, rs.WaitReady); err != nil {
			h.setState(models.RunStateFailed)
			return run, err
		}
	}

	urls, err := h.builder.Build(ctx, rs.Source, rs.Target, rs.Requests)
	if err != nil {
		h.setState(models.RunStateFailed)
		return run, err
	}

	h.setState(models.RunStateRunning)
	logger.Infow("run started", "run_id", run.ID, "url", run.URL, "requests", len(urls), "workers", rs.Workers)

	for _, workers := range rs.Workers {
		t, err := h.traverse(ctx, urls, workers, rs.BufferSize)
		if err != nil {
			h.setState(models.RunStateFailed)
			logger.Errorw("traversal failed", "run_id", run.ID, "workers", workers, "error", err)
			return run, fmt.Errorf("traversal with %d workers failed: %w", workers, err)
		}
		logger.Infow("traversal completed", "run_id", run.ID, "workers", workers, "elapsed", t.Elapsed, "mean", t.Stats.Mean)

		run.Traversals = append(run.Traversals, t)
		if h.OnTraversal != nil {
			h.OnTraversal(t)
		}
	}

	h.setState(models.RunStateCompleted)
	return run, nil
}

func (h *Hammer) traverse(ctx context.Context, urls []*url.URL, workers, bufferSize int) (models.Traversal, error) {
	start := time.Now()

	stream, err := scheduler.New(ctx, slices.Values(urls), workers, h.factory, scheduler.WithBufferSize(bufferSize))
	if err != nil {
		return models.Traversal{}, err
	}
	defer stream.Close()

	times, err := scheduler.TryCollect(ctx, stream)
	if err != nil {
		return models.Traversal{}, err
	}

	return models.Traversal{
		Workers:      workers,
		Elapsed:      time.Since(start),
		RequestTimes: times,
		Stats:        Summarize(times),
	}, nil
}

// WaitReady polls target with exponential backoff until it answers or maxElapsed passes.
// Any response below 500 counts as ready.
func (h *Hammer) WaitReady(ctx context.Context, target *url.URL, maxElapsed time.Duration) error {
	logger := zap.S().Named("hammer")

	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		_, err := h.getter.Get(ctx, target)
		if err == nil {
			return struct{}{}, nil
		}
		var statusErr *srvErrors.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
			return struct{}{}, nil
		}
		logger.Debugw("target not ready", "url", target.String(), "attempt", attempt, "error", err)
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
	if err != nil {
		return fmt.Errorf("target %s not ready after %s: %w", target, maxElapsed, err)
	}

	logger.Infow("target ready", "url", target.String(), "attempts", attempt)
	return nil
}

// Summarize computes the statistics of a traversal's request times.
func Summarize(times []time.Duration) models.Stats {
	return models.Stats{
		Mean:   util.Mean(times),
		StdDev: util.StdDev(times),
		Min:    util.Min(times),
		Max:    util.Max(times),
		P50:    util.Percentile(times, 50),
		P95:    util.Percentile(times, 95),
	}
}
