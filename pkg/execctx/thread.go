package execctx

import (
	"log/slog"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/cell"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/google/uuid"
)

// Thread is the set of context cells belonging to one execution thread.
// It is not safe for concurrent use; only its owning goroutine may touch it.
type Thread struct {
	id      string
	session cell.Cell[*domain.Session]
	result  cell.Cell[*domain.Result]
	logger  *slog.Logger
}

// ThreadOption configures a Thread.
type ThreadOption func(*Thread)

// WithLogger sets the logger used for missing-context diagnostics.
func WithLogger(logger *slog.Logger) ThreadOption {
	return func(t *Thread) {
		t.logger = logger
	}
}

// WithID overrides the generated thread identifier.
func WithID(id string) ThreadOption {
	return func(t *Thread) {
		t.id = id
	}
}

// NewThread creates a Thread with empty cells.
func NewThread(opts ...ThreadOption) *Thread {
	t := &Thread{
		id:     uuid.NewString(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID identifies the thread in logs.
func (t *Thread) ID() string {
	return t.id
}

// SetSession makes s the active session of this thread.
func (t *Thread) SetSession(s *domain.Session) {
	t.session.Set(s)
}

// Session returns the active session, if any.
func (t *Thread) Session() (*domain.Session, bool) {
	return t.session.Get()
}

// ClearSession removes the active session.
func (t *Thread) ClearSession() {
	t.session.Clear()
}

// HasSession reports whether a session is active on this thread.
func (t *Thread) HasSession() bool {
	return t.session.Has()
}

// SetResult makes r the current result of this thread.
func (t *Thread) SetResult(r *domain.Result) {
	t.result.Set(r)
}

// Result returns the current result. A read on an unset thread is not an error
// for the caller, but it is logged so missing context can be traced.
func (t *Thread) Result() (*domain.Result, bool) {
	r, ok := t.result.Get()
	if !ok {
		t.logger.Debug("result read without context", "thread_id", t.id, "err", domain.ErrMissingContext)
	}
	return r, ok
}

// ClearResult drops the current result. Owners of pooled threads must call it once
// the result is no longer needed so the reference is not retained by the worker.
func (t *Thread) ClearResult() {
	t.result.Clear()
}

// HasResult reports whether a result is set.
func (t *Thread) HasResult() bool {
	return t.result.Has()
}

// SessionCell exposes the raw session cell for propagation.
func (t *Thread) SessionCell() *cell.Cell[*domain.Session] {
	return &t.session
}

// ResultCell exposes the raw result cell for propagation.
func (t *Thread) ResultCell() *cell.Cell[*domain.Result] {
	return &t.result
}
