package scheduler

import (
	"iter"
	"sync"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

// JobQueue is a FIFO of pending jobs shared by all workers.
// It is filled once at construction and only drained afterwards.
type JobQueue[J any] struct {
	mu   sync.Mutex
	jobs queue[J]
}

func NewJobQueue[J any](jobs iter.Seq[J]) *JobQueue[J] {
	q := &JobQueue[J]{}
	if jobs == nil {
		return q
	}
	for j := range jobs {
		q.jobs.Push(j)
	}
	return q
}

// PopNext removes and returns the oldest job. The lock is held for the pop only.
func (q *JobQueue[J]) PopNext() (J, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.jobs.Len() == 0 {
		var zero J
		return zero, false
	}
	return q.jobs.Pop(), true
}

func (q *JobQueue[J]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs.Len()
}
