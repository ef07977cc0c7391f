package scheduler

import (
	"context"
)

// Caller performs a single job. Every worker owns exactly one Caller.
type Caller[J, T any] interface {
	Call(ctx context.Context, job J) (T, error)
}

type CallerFunc[J, T any] func(ctx context.Context, job J) (T, error)

func (f CallerFunc[J, T]) Call(ctx context.Context, job J) (T, error) {
	return f(ctx, job)
}

// CallerFactory builds one Caller per worker slot.
type CallerFactory[J, T any] func() (Caller[J, T], error)

type Result[J, T any] struct {
	Job  J
	Data T
	Err  error
}

// WorkerState represents the current state of a worker.
type WorkerState string

const (
	// WorkerStateIdle - between jobs
	WorkerStateIdle WorkerState = "idle"
	// WorkerStateRunning - a call is in progress
	WorkerStateRunning WorkerState = "running"
	// WorkerStateDrained - the job queue was empty
	WorkerStateDrained WorkerState = "terminated-drained"
	// WorkerStateConsumerGone - the stream was closed while a result was pending
	WorkerStateConsumerGone WorkerState = "terminated-consumer-gone"
	// WorkerStateCancelled - the worker context was cancelled
	WorkerStateCancelled WorkerState = "terminated-cancelled"
)

func (s WorkerState) Terminated() bool {
	switch s {
	case WorkerStateDrained, WorkerStateConsumerGone, WorkerStateCancelled:
		return true
	default:
		return false
	}
}
