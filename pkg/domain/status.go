package domain

import (
	"sync"
	"time"
)

// Failure records one failed unit of work.
type Failure struct {
	Task string    `json:"task"`
	Err  string    `json:"err"`
	At   time.Time `json:"at"`
}

// RunStatus aggregates the outcome of all work executed under a session.
// Safe for concurrent use.
type RunStatus struct {
	mu        sync.Mutex
	succeeded int
	failures  []Failure
	updated   time.Time
}

// RunStatusSnapshot is an immutable copy of a RunStatus.
type RunStatusSnapshot struct {
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
	Updated   time.Time `json:"updated"`
}

// NewRunStatus creates an empty status.
func NewRunStatus() *RunStatus {
	return &RunStatus{}
}

// Record adds the outcome of one task. A nil err counts as success.
func (s *RunStatus) Record(task string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updated = time.Now()
	if err == nil {
		s.succeeded++
		return
	}
	s.failures = append(s.failures, Failure{Task: task, Err: err.Error(), At: s.updated})
}

// Snapshot returns a copy of the current counters.
func (s *RunStatus) Snapshot() RunStatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	failures := make([]Failure, len(s.failures))
	copy(failures, s.failures)
	return RunStatusSnapshot{
		Succeeded: s.succeeded,
		Failed:    len(s.failures),
		Failures:  failures,
		Updated:   s.updated,
	}
}
