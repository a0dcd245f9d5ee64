package ports

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/carrier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionRegistryContract runs a suite of tests to verify that a SessionRegistry
// implementation adheres to the defined interface contract. newRegistry must return
// an empty registry on every call.
func RunSessionRegistryContract(t *testing.T, newRegistry func() SessionRegistry) {
	t.Run("Idempotent Create", func(t *testing.T) {
		reg := newRegistry()
		cfg1 := map[string]any{"v": 1}
		cfg2 := map[string]any{"v": 2}

		first, created := reg.Create("batch-7", cfg1)
		require.True(t, created)
		second, created := reg.Create("batch-7", cfg2)
		assert.False(t, created)

		assert.Same(t, first, second)
		assert.Equal(t, cfg1, second.Config, "second config must be ignored")
	})

	t.Run("Default Fallback", func(t *testing.T) {
		reg := newRegistry()

		byEmpty, err := reg.Get("")
		require.NoError(t, err)
		byName, err := reg.Get(domain.DefaultSessionID)
		require.NoError(t, err)

		assert.Same(t, byEmpty, byName)
		assert.Equal(t, domain.DefaultSessionID, byName.ID)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		reg := newRegistry()
		s, err := reg.Get("missing")
		assert.Nil(t, s)
		assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
	})

	t.Run("Current Caching", func(t *testing.T) {
		reg := newRegistry()
		a := reg.Current()
		b := reg.Current()
		require.NotNil(t, a)
		assert.Same(t, a, b)
		assert.Equal(t, domain.DefaultSessionID, a.ID)
	})

	t.Run("SetCurrent", func(t *testing.T) {
		reg := newRegistry()
		s, _ := reg.Create("batch-7", nil)

		require.NoError(t, reg.SetCurrent("batch-7"))
		assert.Same(t, s, reg.Current())

		err := reg.SetCurrent("missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.Same(t, s, reg.Current(), "failed SetCurrent must keep the previous pointer")
	})

	t.Run("Resolve", func(t *testing.T) {
		reg := newRegistry()
		s, _ := reg.Create("explicit", nil)

		got, err := reg.Resolve(context.Background(), "explicit")
		require.NoError(t, err)
		assert.Same(t, s, got)

		got, err = reg.Resolve(context.Background(), "")
		require.NoError(t, err)
		assert.Same(t, reg.Current(), got)
	})

	t.Run("Concurrent Create", func(t *testing.T) {
		reg := newRegistry()
		const n = 64

		var wg sync.WaitGroup
		results := make([]*domain.Session, n)
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				results[i], _ = reg.Create("X", nil)
			}(i)
		}
		close(start)
		wg.Wait()

		for _, s := range results {
			assert.Same(t, results[0], s)
		}
		assert.Contains(t, reg.List(), "X")
	})
}
