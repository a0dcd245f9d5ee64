package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a non-default session ID is not registered.
var ErrSessionNotFound = errors.New("session not found")

// ErrMissingContext reports a read from a context cell that was never set.
// It is diagnostic only: callers receive an absent value, not a failure.
var ErrMissingContext = errors.New("missing execution context")

// ErrPoolClosed is returned when work is submitted to a pool that has been closed.
var ErrPoolClosed = errors.New("worker pool closed")

// PanicError carries a value recovered from a panicking unit of work.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("work panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
