// Package services implements the load-run logic of hammer.
//
// The Hammer service drives the scheduler: it builds the job list once, then performs one
// traversal per configured worker count and summarizes the request times of each.
//
// # Service Dependency Graph
//
//	cmd/hammer
//	    │
//	    ▼
//	Hammer ──► jobs.Builder ──► Getter (index fetch)
//	   │
//	   ├──► Getter (readiness polling, cenkalti/backoff)
//	   │
//	   └──► scheduler.New ──► CallerFactory (one client per worker)
//
// # Run State Machine
//
//	┌─────────┐    ┌─────────┐    ┌───────────┐
//	│ Waiting │───►│ Running │───►│ Completed │
//	└─────────┘    └─────────┘    └───────────┘
//	     │              │
//	     ▼              ▼
//	┌─────────────────────────┐
//	│         Failed          │
//	└─────────────────────────┘
//
// States:
//   - Waiting: polling the target (only with WaitReady > 0) and building the job list
//   - Running: traversals in progress, one at a time
//   - Completed: every traversal finished
//   - Failed: a request, the readiness poll or the job source failed
//
// Key behaviors:
//   - Traversals run sequentially, in the order of RunSpec.Workers
//   - Within a traversal the first failed request stops it; closing the stream cancels
//     the requests still in flight
//   - A failed run returns the traversals completed before the failure
//   - Elapsed time covers client construction, every request and result collection
//
// Usage:
//
//	svc := services.NewHammerService(client.NewFactory(clientCfg), probeClient)
//	run, err := svc.Run(ctx, services.RunSpec{
//	    Target:   target,
//	    Source:   config.SourceRepeat,
//	    Requests: 100,
//	    Workers:  []int{1, 2, 4, 8},
//	})
package services
