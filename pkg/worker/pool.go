package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/propagate"
	"github.com/eapache/queue"
	"github.com/google/uuid"
)

type job struct {
	handle *Handle
	work   propagate.Work
}

// Pool runs units of work on a fixed set of worker goroutines.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	backlog *queue.Queue // of job; guarded by mu
	closed  bool
	wg      sync.WaitGroup

	size       int
	propagator *propagate.Propagator
	onFailure  FailureHandler
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New starts a pool.
func New(opts ...Option) *Pool {
	p := &Pool{
		backlog: queue.New(),
		logger:  logging.NewNop(),
	}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	if p.size <= 0 {
		p.size = runtime.NumCPU()
	}
	if p.propagator == nil {
		p.propagator = propagate.New(propagate.WithLogger(p.logger), propagate.WithMetrics(p.metrics))
	}

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit wraps work with the context of the thread bound to ctx and queues it.
// It returns domain.ErrPoolClosed once Close has been called.
func (p *Pool) Submit(ctx context.Context, work propagate.Work) (*Handle, error) {
	if work == nil {
		return nil, errors.New("nil work")
	}

	var sessionID string
	if th, ok := execctx.ThreadFrom(ctx); ok {
		if s, ok := th.Session(); ok {
			sessionID = s.ID
		}
	}

	// Wrap here, on the submitting goroutine: this is the capture point.
	j := job{
		handle: newHandle(uuid.NewString(), sessionID),
		work:   p.propagator.Wrap(ctx, work),
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, domain.ErrPoolClosed
	}
	p.backlog.Add(j)
	p.metrics.Backlog(p.backlog.Length())
	p.mu.Unlock()
	p.cond.Signal()

	p.metrics.TaskSubmitted()
	p.logger.Debug("task submitted", "task_id", j.handle.id, "session_id", sessionID)
	return j.handle, nil
}

// Close stops accepting work, lets queued work finish and waits for the workers.
// It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) run(id int) {
	defer p.wg.Done()

	th := execctx.NewThread(
		execctx.WithID(fmt.Sprintf("worker-%d", id)),
		execctx.WithLogger(p.logger),
	)
	ctx := execctx.WithThread(context.Background(), th)

	for {
		j, ok := p.next()
		if !ok {
			return
		}
		p.execute(ctx, th, j)
	}
}

// next blocks until work is available. It reports false once the pool is closed
// and the backlog is drained.
func (p *Pool) next() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.backlog.Length() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.backlog.Length() == 0 {
		return job{}, false
	}
	j := p.backlog.Remove().(job)
	p.metrics.Backlog(p.backlog.Length())
	return j, true
}

func (p *Pool) execute(ctx context.Context, th *execctx.Thread, j job) {
	start := time.Now()
	err := safeExecute(ctx, j.work)
	took := time.Since(start)
	defer j.handle.finish(err)

	outcome := observability.OutcomeSuccess
	if err != nil {
		outcome = observability.OutcomeError
		var pe *domain.PanicError
		if errors.As(err, &pe) {
			outcome = observability.OutcomePanic
		}
		p.logger.Warn("task failed",
			"task_id", j.handle.id,
			"session_id", j.handle.sessionID,
			"thread_id", th.ID(),
			"err", err,
		)
		p.notifyFailure(th, j.handle, err)
	}
	p.metrics.TaskCompleted(outcome, took)
}

// notifyFailure runs the FailureHandler. A panicking handler is logged and does
// not take the worker down.
func (p *Pool) notifyFailure(th *execctx.Thread, h *Handle, err error) {
	if p.onFailure == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			p.logger.Error("failure handler panicked",
				"task_id", h.id,
				"thread_id", th.ID(),
				"panic", v,
			)
		}
	}()
	p.onFailure(h, err)
}

// safeExecute turns a panic into a *domain.PanicError. By the time recover runs,
// the wrapped work has already restored the worker's thread.
func safeExecute(ctx context.Context, work propagate.Work) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &domain.PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return work(ctx)
}
