package models

import (
	"time"

	"github.com/google/uuid"
)

// Stats summarizes the request times of one traversal.
type Stats struct {
	Mean   time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
	P50    time.Duration
	P95    time.Duration
}

// Traversal is one pass over the job source with a given number of workers.
type Traversal struct {
	Workers      int
	Elapsed      time.Duration
	RequestTimes []time.Duration
	Stats        Stats
}

// Run holds every traversal of a hammer invocation.
type Run struct {
	ID         uuid.UUID
	URL        string
	Source     string
	Requests   int
	StartedAt  time.Time
	Traversals []Traversal
}

func NewRun(url, source string, requests int) *Run {
	return &Run{
		ID:        uuid.New(),
		URL:       url,
		Source:    source,
		Requests:  requests,
		StartedAt: time.Now(),
	}
}
