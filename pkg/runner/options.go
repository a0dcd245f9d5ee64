package runner

import (
	"log/slog"

	"github.com/aretw0/carrier/pkg/registry"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithSessionID pins the batch to a session. Without it the session is resolved
// from the caller's context or the registry's current session.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithCatalog configures the named work catalog used by RunNamed.
func WithCatalog(catalog *registry.Registry) Option {
	return func(r *Runner) {
		r.Catalog = catalog
	}
}

// WithMiddleware adds middlewares applied to every item, outermost first.
func WithMiddleware(mws ...Middleware) Option {
	return func(r *Runner) {
		r.Middleware = append(r.Middleware, mws...)
	}
}
