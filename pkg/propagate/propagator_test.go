package propagate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/propagate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitter returns a ctx bound to a thread that has s as its session.
func submitter(s *domain.Session) context.Context {
	ctx, th := execctx.Ensure(context.Background())
	if s != nil {
		th.SetSession(s)
	}
	return ctx
}

// worker returns a ctx bound to a thread whose prior session is prev.
func worker(prev *domain.Session) (context.Context, *execctx.Thread) {
	th := execctx.NewThread()
	if prev != nil {
		th.SetSession(prev)
	}
	return execctx.WithThread(context.Background(), th), th
}

func sessionOf(t *testing.T, ctx context.Context) *domain.Session {
	t.Helper()
	th, ok := execctx.ThreadFrom(ctx)
	require.True(t, ok)
	s, _ := th.Session()
	return s
}

func TestWrap_RestoresOnEveryExitPath(t *testing.T) {
	s := domain.NewSession("S", nil)
	r := domain.NewSession("R", nil)
	boom := errors.New("boom")

	cases := []struct {
		name    string
		prev    *domain.Session
		body    func() error
		wantErr error
	}{
		{"normal, prior session", r, func() error { return nil }, nil},
		{"normal, no prior session", nil, func() error { return nil }, nil},
		{"error, prior session", r, func() error { return boom }, boom},
		{"error, no prior session", nil, func() error { return boom }, boom},
		{"panic, prior session", r, func() error { panic(boom) }, nil},
		{"panic, no prior session", nil, func() error { panic(boom) }, nil},
	}

	p := propagate.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var during *domain.Session
			wrapped := p.Wrap(submitter(s), func(ctx context.Context) error {
				during = sessionOf(t, ctx)
				return tc.body()
			})

			runCtx, th := worker(tc.prev)
			var err error
			func() {
				defer func() {
					if v := recover(); v != nil {
						assert.Same(t, boom, v, "panic must pass through unchanged")
					}
				}()
				err = wrapped(runCtx)
			}()

			assert.Same(t, s, during, "captured session must be visible during work")
			assert.Equal(t, tc.wantErr, err, "error must pass through unchanged")

			got, ok := th.Session()
			if tc.prev == nil {
				assert.False(t, ok, "worker thread must be cleared")
			} else {
				assert.Same(t, tc.prev, got, "worker thread must be restored")
			}
		})
	}
}

func TestWrap_CapturesAtWrapTime(t *testing.T) {
	first := domain.NewSession("first", nil)
	second := domain.NewSession("second", nil)

	ctx, caller := execctx.Ensure(context.Background())
	caller.SetSession(first)

	var during *domain.Session
	wrapped := propagate.New().Wrap(ctx, func(ctx context.Context) error {
		during = sessionOf(t, ctx)
		return nil
	})

	// Changing the caller after submission does not affect the wrapped work.
	caller.SetSession(second)

	runCtx, _ := worker(nil)
	require.NoError(t, wrapped(runCtx))
	assert.Same(t, first, during)
}

func TestWrap_NothingCapturedLeavesWorkerValueInPlace(t *testing.T) {
	r := domain.NewSession("R", nil)
	runCtx, th := worker(r)

	var during *domain.Session
	wrapped := propagate.New().Wrap(submitter(nil), func(ctx context.Context) error {
		during = sessionOf(t, ctx)
		return nil
	})
	require.NoError(t, wrapped(runCtx))

	assert.Same(t, r, during, "worker value must not be cleared or replaced")
	got, _ := th.Session()
	assert.Same(t, r, got)
}

func TestWrap_WorkCannotLeakItsOwnWrites(t *testing.T) {
	runCtx, th := worker(nil)

	wrapped := propagate.New().Wrap(context.Background(), func(ctx context.Context) error {
		inner, _ := execctx.ThreadFrom(ctx)
		inner.SetSession(domain.NewSession("leak", nil))
		return nil
	})
	require.NoError(t, wrapped(runCtx))

	assert.False(t, th.HasSession())
}

func TestWrap_ExecutingContextWithoutThread(t *testing.T) {
	s := domain.NewSession("S", nil)

	var during *domain.Session
	wrapped := propagate.New().Wrap(submitter(s), func(ctx context.Context) error {
		during = sessionOf(t, ctx)
		return nil
	})

	require.NoError(t, wrapped(context.Background()))
	assert.Same(t, s, during)
}

func TestWrap_ResultCarrier(t *testing.T) {
	s := domain.NewSession("S", nil)
	res := domain.NewResult("task")

	ctx, caller := execctx.Ensure(context.Background())
	caller.SetSession(s)
	caller.SetResult(res)

	p := propagate.New(propagate.WithCarriers(propagate.SessionCarrier(), propagate.ResultCarrier()))
	wrapped := p.Wrap(ctx, func(ctx context.Context) error {
		th, _ := execctx.ThreadFrom(ctx)
		got, ok := th.Result()
		require.True(t, ok)
		got.Addf("done")
		return nil
	})

	runCtx, th := worker(nil)
	require.NoError(t, wrapped(runCtx))

	assert.Equal(t, []string{"done"}, res.Messages())
	assert.False(t, th.HasResult())
	assert.False(t, th.HasSession())
}

func TestWrap_DefaultCarriesSessionOnly(t *testing.T) {
	ctx, caller := execctx.Ensure(context.Background())
	caller.SetResult(domain.NewResult("task"))

	var hadResult bool
	wrapped := propagate.New().Wrap(ctx, func(ctx context.Context) error {
		th, _ := execctx.ThreadFrom(ctx)
		hadResult = th.HasResult()
		return nil
	})

	runCtx, _ := worker(nil)
	require.NoError(t, wrapped(runCtx))
	assert.False(t, hadResult)
}

func TestWrap_ReusedWorkerThread(t *testing.T) {
	// One worker thread serving many submitters must only ever observe the
	// session of the submitter whose work it is running.
	runCtx, th := worker(nil)
	p := propagate.New()

	for i := 0; i < 20; i++ {
		var want *domain.Session
		if i%2 == 0 {
			want = domain.NewSession("s", nil)
		}

		wrapped := p.Wrap(submitter(want), func(ctx context.Context) error {
			assert.Equal(t, want, sessionOf(t, ctx))
			return nil
		})
		require.NoError(t, wrapped(runCtx))
		assert.False(t, th.HasSession(), "iteration %d left context behind", i)
	}
}

func TestWrap_Metrics(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	p := propagate.New(propagate.WithMetrics(m))

	wrapped := p.Wrap(submitter(domain.NewSession("S", nil)), propagate.Func(func() {}))
	runCtx, _ := worker(nil)
	require.NoError(t, wrapped(runCtx))

	skipped := p.Wrap(submitter(nil), propagate.Func(func() {}))
	require.NoError(t, skipped(runCtx))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Propagations.WithLabelValues("session")))
}
