package scheduler

import (
	"context"
	"sync"
)

// Stream delivers results in completion order. It must be closed on every exit path;
// closing it before it is exhausted cancels every worker.
type Stream[J, T any] struct {
	results <-chan Result[J, T]
	parent  context.Context
	gone    chan struct{}
	cancels []context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	states []WorkerState
	err    error
}

// Next blocks until a result is available. It returns false once every worker has
// terminated and all results were consumed, after Close, or when ctx is done.
func (s *Stream[J, T]) Next(ctx context.Context) (Result[J, T], bool) {
	var zero Result[J, T]

	select {
	case <-s.gone:
		return zero, false
	default:
	}

	select {
	case r, ok := <-s.results:
		return r, ok
	case <-s.gone:
		return zero, false
	case <-ctx.Done():
		return zero, false
	}
}

// C returns the underlying result channel. It is closed after every worker terminated.
func (s *Stream[J, T]) C() <-chan Result[J, T] {
	return s.results
}

// Close cancels every worker and blocks until every Caller has returned, so a Caller
// that ignores its context keeps Close from returning. It is idempotent.
func (s *Stream[J, T]) Close() {
	s.once.Do(func() {
		close(s.gone)
		for _, cancel := range s.cancels {
			cancel()
		}
		s.wg.Wait()
	})
}

// WorkerStates returns a snapshot of every worker's state, indexed by worker id.
func (s *Stream[J, T]) WorkerStates() []WorkerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WorkerState, len(s.states))
	copy(out, s.states)
	return out
}

// Err returns the cause of the context passed to New when that context ended before
// every job produced a result. It is nil after a complete run and after Close.
func (s *Stream[J, T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream[J, T]) setState(id int, state WorkerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// workerCancelled records the parent's cause. Close closes gone before cancelling the
// workers, so a cancelled worker with gone still open was stopped by the parent.
func (s *Stream[J, T]) workerCancelled() {
	select {
	case <-s.gone:
		return
	default:
	}
	if s.parent.Err() == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = context.Cause(s.parent)
	}
}

// TryCollect pulls results until the stream ends or a failure is seen. On failure the
// data gathered so far is returned with that error and the remaining work is cancelled.
// If the context given to New ends first, its cause is returned; if ctx ends first,
// ctx.Err() is returned. The stream is always closed on return.
func TryCollect[J, T any](ctx context.Context, s *Stream[J, T]) ([]T, error) {
	defer s.Close()

	var out []T
	for {
		r, ok := s.Next(ctx)
		if !ok {
			if err := s.Err(); err != nil {
				return out, err
			}
			return out, ctx.Err()
		}
		if r.Err != nil {
			return out, r.Err
		}
		out = append(out, r.Data)
	}
}

// Collect pulls every result, failures included, then closes the stream. A short
// slice is told apart from a complete run by Stream.Err.
func Collect[J, T any](ctx context.Context, s *Stream[J, T]) []Result[J, T] {
	defer s.Close()

	var out []Result[J, T]
	for {
		r, ok := s.Next(ctx)
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
