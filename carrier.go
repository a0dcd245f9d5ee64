package carrier

import (
	"context"
	"log/slog"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/propagate"
	"github.com/aretw0/carrier/pkg/session"
	"github.com/aretw0/carrier/pkg/worker"
)

// Runtime is the high-level entry point: a session registry plus a worker pool whose
// submissions carry the caller's session.
type Runtime struct {
	registry   *session.Registry
	propagator *propagate.Propagator
	pool       *worker.Pool

	workers        int
	carryResults   bool
	failureHandler worker.FailureHandler
	logger         *slog.Logger
	metrics        *observability.Metrics
}

// Option defines a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithWorkers sets the pool size. Values below 1 mean runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(r *Runtime) {
		r.workers = n
	}
}

// WithResultPropagation also carries the submitter's current result into tasks.
func WithResultPropagation() Option {
	return func(r *Runtime) {
		r.carryResults = true
	}
}

// WithFailureHandler registers a callback for failed tasks.
func WithFailureHandler(fn worker.FailureHandler) Option {
	return func(r *Runtime) {
		r.failureHandler = fn
	}
}

// WithRegistry injects an existing registry instead of creating one.
func WithRegistry(reg *session.Registry) Option {
	return func(r *Runtime) {
		r.registry = reg
	}
}

// WithLogger configures the structured logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMetrics enables instrumentation on all components.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runtime) {
		r.metrics = m
	}
}

// New builds a Runtime and starts its pool.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(rt)
	}

	if rt.registry == nil {
		rt.registry = session.NewRegistry(
			session.WithLogger(rt.logger),
			session.WithMetrics(rt.metrics),
		)
	}

	carriers := []propagate.Carrier{propagate.SessionCarrier()}
	if rt.carryResults {
		carriers = append(carriers, propagate.ResultCarrier())
	}
	rt.propagator = propagate.New(
		propagate.WithCarriers(carriers...),
		propagate.WithLogger(rt.logger),
		propagate.WithMetrics(rt.metrics),
	)

	rt.pool = worker.New(
		worker.WithSize(rt.workers),
		worker.WithPropagator(rt.propagator),
		worker.WithFailureHandler(rt.failureHandler),
		worker.WithLogger(rt.logger),
		worker.WithMetrics(rt.metrics),
	)
	return rt
}

// Registry returns the session registry.
func (r *Runtime) Registry() *session.Registry {
	return r.registry
}

// Pool returns the worker pool.
func (r *Runtime) Pool() *worker.Pool {
	return r.pool
}

// Propagator returns the propagator the pool wraps work with.
func (r *Runtime) Propagator() *propagate.Propagator {
	return r.propagator
}

// Bind resolves a session (see session.Registry.Resolve) and makes it the active
// session of the thread bound to ctx, binding a new thread if ctx has none.
func (r *Runtime) Bind(ctx context.Context, id string) (context.Context, error) {
	s, err := r.registry.Resolve(ctx, id)
	if err != nil {
		return ctx, err
	}
	ctx, th := execctx.Ensure(ctx, execctx.WithLogger(r.logger))
	th.SetSession(s)
	return ctx, nil
}

// Session returns the session active on ctx's thread.
func (r *Runtime) Session(ctx context.Context) (*domain.Session, bool) {
	th, ok := execctx.ThreadFrom(ctx)
	if !ok {
		return nil, false
	}
	return th.Session()
}

// Submit queues work carrying the context of ctx's thread.
func (r *Runtime) Submit(ctx context.Context, work propagate.Work) (*worker.Handle, error) {
	return r.pool.Submit(ctx, work)
}

// Close stops the pool after queued work has finished.
func (r *Runtime) Close() {
	r.pool.Close()
}
