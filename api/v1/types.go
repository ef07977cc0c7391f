package v1

import "time"

// Duration is a span of time split into whole seconds and the remaining nanoseconds.
type Duration struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

type Traversal struct {
	Workers      int        `json:"workers"`
	Elapsed      Duration   `json:"elapsed"`
	RequestTimes []Duration `json:"request_times"`
	Mean         Duration   `json:"mean"`
	StdDev       Duration   `json:"stddev"`
	Min          Duration   `json:"min"`
	Max          Duration   `json:"max"`
	P50          Duration   `json:"p50"`
	P95          Duration   `json:"p95"`
}

type Report struct {
	RunID      string      `json:"run_id"`
	URL        string      `json:"url"`
	Source     string      `json:"source"`
	Requests   int         `json:"requests"`
	StartedAt  time.Time   `json:"started_at"`
	Traversals []Traversal `json:"traversals"`
}
