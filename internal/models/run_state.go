package models

// RunState represents the current state of a hammer run.
type RunState string

const (
	// RunStateWaiting - polling the target until it answers
	RunStateWaiting RunState = "waiting"
	// RunStateRunning - traversals in progress
	RunStateRunning RunState = "running"
	// RunStateCompleted - every traversal finished
	RunStateCompleted RunState = "completed"
	// RunStateFailed - a request failed and the run was aborted
	RunStateFailed RunState = "failed"
)

func (s RunState) Value() string {
	return string(s)
}
