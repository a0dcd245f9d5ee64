package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/ports"
	"github.com/aretw0/carrier/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Contract(t *testing.T) {
	ports.RunSessionRegistryContract(t, func() ports.SessionRegistry {
		return session.NewRegistry()
	})
}

func TestRegistry_ConcurrentCreateConstructsOnce(t *testing.T) {
	var constructed atomic.Int32
	reg := session.NewRegistry(session.WithFactory(func(id string, cfg any) *domain.Session {
		constructed.Add(1)
		return domain.NewSession(id, cfg)
	}))

	const n = 100
	var wg sync.WaitGroup
	var createdCount atomic.Int32
	results := make([]*domain.Session, n)
	start := make(chan struct{})

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			s, created := reg.Create("X", map[string]any{"worker": i})
			if created {
				createdCount.Add(1)
			}
			results[i] = s
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), constructed.Load())
	assert.Equal(t, int32(1), createdCount.Load())
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestRegistry_ConcurrentGetDefault(t *testing.T) {
	var constructed atomic.Int32
	reg := session.NewRegistry(session.WithFactory(func(id string, cfg any) *domain.Session {
		constructed.Add(1)
		return domain.NewSession(id, cfg)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := reg.Get("")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, reg.Current())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), constructed.Load())
	assert.Equal(t, []string{domain.DefaultSessionID}, reg.List())
}

func TestRegistry_CreateDefaultsEmptyID(t *testing.T) {
	reg := session.NewRegistry()
	s, created := reg.Create("", "cfg")
	require.True(t, created)
	assert.Equal(t, domain.DefaultSessionID, s.ID)
	assert.Equal(t, "cfg", s.Config)

	got, err := reg.Get(domain.DefaultSessionID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestRegistry_FreshAggregatesPerSession(t *testing.T) {
	reg := session.NewRegistry()
	a, _ := reg.Create("a", nil)
	b, _ := reg.Create("b", nil)

	assert.NotSame(t, a.RunStatus, b.RunStatus)
	assert.NotSame(t, a.ConversionState, b.ConversionState)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Metrics(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	reg := session.NewRegistry(session.WithMetrics(m))

	reg.Create("a", nil)
	reg.Create("a", nil)
	_, _ = reg.Get("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsCreated))
}

func TestRegistry_ResolveOrder(t *testing.T) {
	reg := session.NewRegistry()
	onThread, _ := reg.Create("thread", nil)
	scoped, _ := reg.Create("scoped", nil)
	current, _ := reg.Create("current", nil)
	require.NoError(t, reg.SetCurrent("current"))

	ctx := context.Background()
	got, err := reg.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Same(t, current, got)

	ctx = session.NewContext(ctx, scoped)
	got, _ = reg.Resolve(ctx, "")
	assert.Same(t, scoped, got)

	ctx, th := execctx.Ensure(ctx)
	th.SetSession(onThread)
	got, _ = reg.Resolve(ctx, "")
	assert.Same(t, onThread, got)

	_, err = reg.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestFromContext_Empty(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)
}
