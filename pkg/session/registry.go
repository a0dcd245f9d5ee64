package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
)

// Factory constructs a new Session. It is only ever called under the registry lock,
// once per unique identifier.
type Factory func(id string, config any) *domain.Session

// Registry is a concurrency-safe mapping from session identifier to Session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	current  *domain.Session

	factory Factory
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics enables session counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithFactory replaces domain.NewSession as the session constructor.
func WithFactory(f Factory) Option {
	return func(r *Registry) {
		r.factory = f
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*domain.Session),
		factory:  domain.NewSession,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create returns the session registered under id, constructing it on first use.
// An empty id means domain.DefaultSessionID.
//
// Creation is de-duplicating, not updating: when id is already registered the
// existing session is returned unchanged, config is ignored, and created is false.
func (r *Registry) Create(id string, config any) (s *domain.Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(domain.NormalizeID(id), config)
}

func (r *Registry) createLocked(id string, config any) (*domain.Session, bool) {
	if s, ok := r.sessions[id]; ok {
		if config != nil {
			r.logger.Debug("session exists, config ignored", "session_id", id)
		}
		return s, false
	}

	s := r.factory(id, config)
	r.sessions[id] = s
	r.metrics.SessionCreated()
	r.logger.Debug("session created", "session_id", id)
	return s, true
}

// Get returns the session registered under id. The default session is created on
// first lookup; any other unknown id fails with domain.ErrSessionNotFound.
func (r *Registry) Get(id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(domain.NormalizeID(id))
}

func (r *Registry) getLocked(id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	if id == domain.DefaultSessionID {
		s, _ := r.createLocked(id, nil)
		return s, nil
	}
	return nil, fmt.Errorf("lookup %q: %w", id, domain.ErrSessionNotFound)
}

// SetCurrent makes the session registered under id the registry's current session.
func (r *Registry) SetCurrent(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getLocked(domain.NormalizeID(id))
	if err != nil {
		return err
	}
	r.current = s
	return nil
}

// Current returns the current session, falling back to (and caching) the default
// session when none has been set.
func (r *Registry) Current() *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		r.current, _ = r.getLocked(domain.DefaultSessionID)
	}
	return r.current
}

// List returns the registered identifiers in sorted order.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Resolve picks the session a top-level entry point should run under.
// An explicit id wins; then the session active on ctx's thread; then a session
// scoped with NewContext; finally the registry's current session.
func (r *Registry) Resolve(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		return r.Get(id)
	}
	if th, ok := execctx.ThreadFrom(ctx); ok {
		if s, ok := th.Session(); ok {
			return s, nil
		}
	}
	if s, ok := FromContext(ctx); ok {
		return s, nil
	}
	return r.Current(), nil
}
