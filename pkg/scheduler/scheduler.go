package scheduler

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"go.uber.org/zap"

	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

// DefaultBufferSize is the capacity of the result channel unless WithBufferSize is given.
const DefaultBufferSize = 32

type options struct {
	bufferSize int
}

type Option func(*options)

// WithBufferSize sets the result channel capacity. Values below 1 are raised to 1.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = max(n, 1)
	}
}

type worker[J, T any] struct {
	id        int
	caller    Caller[J, T]
	jobs      *JobQueue[J]
	out       chan<- Result[J, T]
	gone      <-chan struct{}
	setState  func(id int, state WorkerState)
	cancelled func()
}

func (w worker[J, T]) Work(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	state := w.loop(ctx)
	w.setState(w.id, state)
	if state == WorkerStateCancelled {
		w.cancelled()
	}
	zap.S().Named("scheduler").Debugw("worker terminated", "worker", w.id, "state", state)
}

func (w worker[J, T]) loop(ctx context.Context) WorkerState {
	for {
		select {
		case <-w.gone:
			return WorkerStateConsumerGone
		default:
		}
		if ctx.Err() != nil {
			if w.jobs.Len() == 0 {
				return WorkerStateDrained
			}
			return WorkerStateCancelled
		}

		job, ok := w.jobs.PopNext()
		if !ok {
			return WorkerStateDrained
		}

		w.setState(w.id, WorkerStateRunning)
		r := w.perform(ctx, job)
		if ctx.Err() != nil {
			// the call was abandoned, its outcome is not a result
			return WorkerStateCancelled
		}

		select {
		case w.out <- r:
		case <-w.gone:
			return WorkerStateConsumerGone
		case <-ctx.Done():
			return WorkerStateCancelled
		}
		w.setState(w.id, WorkerStateIdle)
	}
}

func (w worker[J, T]) perform(ctx context.Context, job J) (r Result[J, T]) {
	r.Job = job
	defer func() {
		if rec := recover(); rec != nil {
			r.Err = fmt.Errorf("worker panicked: %v", rec)
		}
	}()

	r.Data, r.Err = w.caller.Call(ctx, job)
	return r
}

// New builds one Caller per worker, queues every job and starts nbWorkers workers.
// Nothing is started if nbWorkers is below 1 or if any Caller cannot be built.
// Cancelling ctx cancels every worker, as does closing the returned Stream.
func New[J, T any](ctx context.Context, jobs iter.Seq[J], nbWorkers int, factory CallerFactory[J, T], opts ...Option) (*Stream[J, T], error) {
	if nbWorkers < 1 {
		return nil, srvErrors.NewInvalidWorkerCountError(nbWorkers)
	}

	o := options{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	callers := make([]Caller[J, T], 0, nbWorkers)
	for i := range nbWorkers {
		c, err := factory()
		if err != nil {
			return nil, srvErrors.NewClientConstructionError(i, err)
		}
		callers = append(callers, c)
	}

	results := make(chan Result[J, T], o.bufferSize)
	s := &Stream[J, T]{
		results: results,
		parent:  ctx,
		gone:    make(chan struct{}),
		cancels: make([]context.CancelFunc, 0, nbWorkers),
		states:  make([]WorkerState, nbWorkers),
	}

	q := NewJobQueue(jobs)
	zap.S().Named("scheduler").Debugw("starting workers", "workers", nbWorkers, "jobs", q.Len(), "buffer", o.bufferSize)

	for i, c := range callers {
		workerCtx, cancel := context.WithCancel(ctx)
		s.cancels = append(s.cancels, cancel)
		s.states[i] = WorkerStateIdle

		w := worker[J, T]{
			id:        i,
			caller:    c,
			jobs:      q,
			out:       results,
			gone:      s.gone,
			setState:  s.setState,
			cancelled: s.workerCancelled,
		}
		s.wg.Add(1)
		go w.Work(workerCtx, &s.wg)
	}

	go func() {
		s.wg.Wait()
		close(results)
	}()

	return s, nil
}
