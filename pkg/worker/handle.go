package worker

import "context"

// Handle tracks one submitted unit of work.
type Handle struct {
	id        string
	sessionID string
	done      chan struct{}
	err       error
}

func newHandle(id, sessionID string) *Handle {
	return &Handle{
		id:        id,
		sessionID: sessionID,
		done:      make(chan struct{}),
	}
}

// ID identifies the task in logs.
func (h *Handle) ID() string {
	return h.id
}

// SessionID is the session captured at submission, or "" when none was active.
func (h *Handle) SessionID() string {
	return h.sessionID
}

// Done is closed once the task has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the task's failure. It is only meaningful after Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}
