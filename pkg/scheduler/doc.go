// Package scheduler implements a bounded worker pool that streams results back to a
// single consumer.
//
// A fixed set of N workers drains a shared job queue. Each worker owns one Caller and
// performs at most one call at a time, so at most N calls are ever in flight regardless
// of the number of jobs. Results are delivered in completion order through a bounded
// channel wrapped by a Stream. Closing the Stream cancels every worker.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              New()                                  │
//	│                                                                     │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │                      Job Queue                          │        │
//	│  │  [job1] [job2] [job3] ...          (filled once, FIFO)  │        │
//	│  └────────────────────────────┬────────────────────────────┘        │
//	│                               │ PopNext()                           │
//	│         ┌─────────────────────┼─────────────────────┐               │
//	│         ▼                     ▼                     ▼               │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  │   Caller 1   │      │   Caller 2   │      │   Caller N   │       │
//	│  └──────┬───────┘      └──────┬───────┘      └──────┬───────┘       │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                               ▼                                     │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │              Result Channel (capacity C)                │        │
//	│  └────────────────────────────┬────────────────────────────┘        │
//	└───────────────────────────────┼─────────────────────────────────────┘
//	                                ▼
//	                    Stream.Next() / Stream.C()
//
// # Core Components
//
// JobQueue:
//   - Populated once from the job sequence at construction
//   - PopNext holds the lock for the pop only, never across a call
//   - Each job is popped by exactly one worker
//
// Worker:
//   - Owns one Caller, never shared
//   - Loops: pop, call, send
//   - Recovers from panics in the Caller and reports them as that job's error
//
// Stream:
//   - Pull-based: Next blocks until a result arrives or the channel is closed
//   - Holds one cancel func per worker
//   - Close cancels all workers and blocks until every Caller has returned
//   - Err reports the cause when the parent context ended the stream early
//
// # Worker Lifecycle
//
//	┌───────────┐   PopNext() ok    ┌───────────┐
//	│   Idle    │ ────────────────► │  Running  │
//	│           │ ◄──────────────── │           │
//	└─────┬─────┘   result sent     └─────┬─────┘
//	      │                               │
//	      │ queue empty                   │ ctx cancelled / stream closed
//	      ▼                               ▼
//	┌─────────────────────────────────────────────────┐
//	│ Terminated: drained | consumer-gone | cancelled │
//	└─────────────────────────────────────────────────┘
//
// The terminal states are equivalent for the consumer; they are kept for diagnostics
// (see Stream.WorkerStates) and logged at debug level.
//
// # Backpressure
//
// The result channel has a fixed capacity (DefaultBufferSize unless WithBufferSize is
// given). When it is full, workers block on send and stop popping jobs, so memory use is
// bounded by the channel capacity and not by the number of jobs.
//
// # Cancellation
//
// Each worker runs with a context derived from the context passed to New:
//
//	workerCtx, cancel := context.WithCancel(ctx)
//
// Cancellation hierarchy:
//   - stream.Close() → cancels every worker context and waits for the workers
//   - parent ctx cancelled → cancels every worker context
//
// Callers must honour ctx so that an in-flight call is abandoned on cancellation. A call
// that returns after its context was cancelled produces no result. Close is idempotent
// (uses sync.Once) and is a no-op for workers that already terminated.
//
// # Errors
//
// Per-job failures are delivered as Result.Err and never stop the stream or the other
// workers. New only fails before anything is started:
//
//   - InvalidWorkerCountError when nbWorkers < 1
//   - ClientConstructionError when the CallerFactory fails for any slot
//
// # Usage Example
//
//	stream, err := scheduler.New(ctx, slices.Values(urls), 4, client.NewFactory(cfg))
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for {
//	    r, ok := stream.Next(ctx)
//	    if !ok {
//	        break
//	    }
//	    if r.Err != nil {
//	        return r.Err // deferred Close cancels the remaining calls
//	    }
//	    log.Printf("%s took %s", r.Job, r.Data)
//	}
//
// TryCollect wraps the loop above and Collect keeps pulling past failures.
package scheduler
