// Package cli wires configuration, logging, metrics and the carrier runtime together
// for the command-line entry points.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/carrier"
	"github.com/aretw0/carrier/internal/config"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/registry"
	"github.com/aretw0/carrier/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
)

// App bundles everything a command needs.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Prometheus *prometheus.Registry
	Metrics    *observability.Metrics
	Runtime    *carrier.Runtime
	Catalog    *registry.Registry
}

// Bootstrap loads configuration and starts a runtime. Callers must Close the App.
func Bootstrap(configPath string, overrides map[string]any) (*App, error) {
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)

	rt := carrier.New(
		carrier.WithWorkers(cfg.Workers),
		carrier.WithLogger(logger),
		carrier.WithMetrics(metrics),
		carrier.WithFailureHandler(func(h *worker.Handle, err error) {
			logger.Error("task failed", "task_id", h.ID(), "session_id", h.SessionID(), "err", err)
		}),
	)
	if err := cfg.Apply(rt.Registry()); err != nil {
		rt.Close()
		return nil, err
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Prometheus: promReg,
		Metrics:    metrics,
		Runtime:    rt,
		Catalog:    BuiltinCatalog(),
	}, nil
}

// Close stops the runtime.
func (a *App) Close() {
	a.Runtime.Close()
}

// BuiltinCatalog returns the demonstration work shipped with the CLI.
//
//   - echo: records the session it ran under into the task result.
//   - count: increments a counter in the session's work product.
//   - sleep: waits briefly, honouring cancellation.
//   - fail: always fails.
func BuiltinCatalog() *registry.Registry {
	catalog := registry.NewRegistry()
	var counter atomic.Int64

	catalog.Register("echo", func(ctx context.Context) error {
		th, ok := execctx.ThreadFrom(ctx)
		if !ok {
			return fmt.Errorf("echo: no execution thread")
		}
		s, ok := th.Session()
		if !ok {
			return fmt.Errorf("echo: no active session")
		}
		if res, ok := th.Result(); ok {
			res.Addf("session=%s thread=%s", s.ID, th.ID())
		}
		return nil
	})

	catalog.Register("count", func(ctx context.Context) error {
		th, ok := execctx.ThreadFrom(ctx)
		if !ok {
			return fmt.Errorf("count: no execution thread")
		}
		s, ok := th.Session()
		if !ok {
			return fmt.Errorf("count: no active session")
		}
		s.ConversionState.Put("count", counter.Add(1))
		return nil
	})

	catalog.Register("sleep", func(ctx context.Context) error {
		select {
		case <-time.After(50 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	catalog.Register("fail", func(context.Context) error {
		return fmt.Errorf("fail: requested failure")
	})

	return catalog
}
