package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/ports"
	"github.com/aretw0/carrier/pkg/propagate"
	"github.com/aretw0/carrier/pkg/registry"
	"github.com/aretw0/carrier/pkg/worker"
	"golang.org/x/sync/errgroup"
)

// Submitter queues work for asynchronous execution.
type Submitter interface {
	Submit(ctx context.Context, work propagate.Work) (*worker.Handle, error)
}

// Item is one named unit of work in a batch.
type Item struct {
	Name string
	Work propagate.Work
}

// Outcome is the result of one item.
type Outcome struct {
	Name     string   `json:"name"`
	TaskID   string   `json:"task_id"`
	Err      string   `json:"err,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// Report summarises a batch.
type Report struct {
	SessionID string                   `json:"session_id"`
	Outcomes  []Outcome                `json:"outcomes"`
	Status    domain.RunStatusSnapshot `json:"status"`
}

// Failed reports whether any item failed.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Err != "" {
			return true
		}
	}
	return false
}

// Runner submits batches of work under a session.
type Runner struct {
	Registry   ports.SessionRegistry
	Pool       Submitter
	Catalog    *registry.Registry
	Middleware []Middleware
	SessionID  string
	Logger     *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(reg ports.SessionRegistry, pool Submitter, opts ...Option) *Runner {
	r := &Runner{
		Registry: reg,
		Pool:     pool,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunNamed runs catalog entries by name.
func (r *Runner) RunNamed(ctx context.Context, names ...string) (*Report, error) {
	if r.Catalog == nil {
		return nil, errors.New("runner has no catalog")
	}
	items := make([]Item, 0, len(names))
	for _, name := range names {
		w, err := r.Catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Name: name, Work: w})
	}
	return r.Run(ctx, items...)
}

// Run submits every item and waits for all of them. Item failures are recorded in
// the report and the session's RunStatus; the returned error is reserved for
// failures of the batch itself (unknown session, closed pool, cancelled ctx).
//
// If a submission fails, Run stops submitting, waits for the items already queued
// and returns their report together with the error.
func (r *Runner) Run(ctx context.Context, items ...Item) (*Report, error) {
	s, err := r.Registry.Resolve(ctx, r.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	ctx, th := execctx.Ensure(ctx)
	previous, hadPrevious := th.Session()
	th.SetSession(s)
	defer func() {
		if hadPrevious {
			th.SetSession(previous)
			return
		}
		th.ClearSession()
	}()

	report := &Report{
		SessionID: s.ID,
		Outcomes:  make([]Outcome, len(items)),
	}
	handles := make([]*worker.Handle, 0, len(items))
	results := make([]*domain.Result, 0, len(items))

	var submitErr error
	for _, item := range items {
		res := domain.NewResult(item.Name)
		mws := append([]Middleware{WithResult(res)}, r.Middleware...)

		h, err := r.Pool.Submit(ctx, Chain(item.Work, mws...))
		if err != nil {
			submitErr = fmt.Errorf("failed to submit %s: %w", item.Name, err)
			break
		}
		handles = append(handles, h)
		results = append(results, res)
	}
	// Work already queued keeps running under s; wait for it either way.
	items = items[:len(handles)]
	report.Outcomes = report.Outcomes[:len(handles)]

	var g errgroup.Group
	for i := range handles {
		g.Go(func() error {
			err := handles[i].Wait(ctx)
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return err
			}

			s.RunStatus.Record(items[i].Name, err)
			out := Outcome{
				Name:     items[i].Name,
				TaskID:   handles[i].ID(),
				Messages: results[i].Messages(),
			}
			if err != nil {
				out.Err = err.Error()
				r.Logger.Debug("item failed", "session_id", s.ID, "task_id", out.TaskID, "err", err)
			}
			report.Outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Status = s.RunStatus.Snapshot()
	if submitErr != nil {
		r.Logger.Warn("batch aborted", "session_id", s.ID, "submitted", len(handles), "err", submitErr)
		return report, submitErr
	}
	r.Logger.Info("batch finished",
		"session_id", s.ID,
		"items", len(items),
		"failed", report.Status.Failed,
	)
	return report, nil
}
