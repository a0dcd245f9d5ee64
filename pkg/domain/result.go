package domain

import (
	"fmt"
	"sync"
)

// Result is the mutable outcome a single task accumulates into.
type Result struct {
	Name string

	mu       sync.Mutex
	messages []string
	err      error
}

// NewResult creates an empty result for the named task.
func NewResult(name string) *Result {
	return &Result{Name: name}
}

// Addf appends a formatted message.
func (r *Result) Addf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// Fail marks the result as failed. The first error wins.
func (r *Result) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// Err returns the recorded failure, if any.
func (r *Result) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Messages returns a copy of the accumulated messages.
func (r *Result) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
