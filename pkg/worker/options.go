package worker

import (
	"log/slog"

	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/propagate"
)

// FailureHandler is told about every task that returned an error or panicked.
// It runs on the worker goroutine after the task's context has been restored.
type FailureHandler func(h *Handle, err error)

// Option configures a Pool.
type Option func(*Pool)

// WithSize sets the number of worker goroutines. Values below 1 mean runtime.NumCPU.
func WithSize(n int) Option {
	return func(p *Pool) {
		p.size = n
	}
}

// WithPropagator sets the propagator used to wrap submitted work.
func WithPropagator(prop *propagate.Propagator) Option {
	return func(p *Pool) {
		p.propagator = prop
	}
}

// WithFailureHandler registers a callback for failed tasks.
func WithFailureHandler(fn FailureHandler) Option {
	return func(p *Pool) {
		p.onFailure = fn
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithMetrics enables pool instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}
