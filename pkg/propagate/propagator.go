package propagate

import (
	"context"
	"log/slog"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
)

// Work is a unit of work. It runs with the executing thread bound to ctx.
// Failure is reported by returning an error or by panicking.
type Work func(ctx context.Context) error

// Func adapts a function with no arguments and no result to Work.
func Func(f func()) Work {
	return func(context.Context) error {
		f()
		return nil
	}
}

// Propagator wraps work so that context captured at submission is visible while it
// executes.
type Propagator struct {
	carriers []Carrier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithCarriers replaces the default carrier set.
func WithCarriers(carriers ...Carrier) Option {
	return func(p *Propagator) {
		p.carriers = carriers
	}
}

// WithLogger configures a logger for the Propagator.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Propagator) {
		p.logger = logger
	}
}

// WithMetrics enables propagation counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Propagator) {
		p.metrics = m
	}
}

// New creates a Propagator. By default it carries the active session only.
func New(opts ...Option) *Propagator {
	p := &Propagator{
		carriers: []Carrier{SessionCarrier()},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wrap captures the context of the thread bound to ctx and returns work that
// replays it on whichever thread executes it.
//
// Capture happens now, on the caller's goroutine. When the returned Work runs, each
// captured value is installed on the executing thread (a throwaway Thread is bound
// if the executing ctx has none), w runs, and the executing thread's previous values
// are restored on every exit path, panics included. Errors and panics from w are
// passed through untouched.
func (p *Propagator) Wrap(ctx context.Context, w Work) Work {
	src, _ := execctx.ThreadFrom(ctx)

	snapshots := make([]Snapshot, len(p.carriers))
	for i, c := range p.carriers {
		snapshots[i] = c.Capture(src)
	}

	return func(runCtx context.Context) error {
		if runCtx == nil {
			runCtx = context.Background()
		}
		runCtx, dst := execctx.Ensure(runCtx)

		for i, snap := range snapshots {
			restore, installed := snap.Install(dst)
			defer restore()

			if installed {
				name := p.carriers[i].Name()
				p.metrics.Propagated(name)
				p.logger.Debug("context installed", "carrier", name, "thread_id", dst.ID())
			}
		}

		return w(runCtx)
	}
}
