package observability_test

import (
	"testing"
	"time"

	"github.com/aretw0/carrier/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.SessionCreated()
	m.TaskSubmitted()
	m.TaskSubmitted()
	m.TaskCompleted(observability.OutcomeError, 10*time.Millisecond)
	m.Backlog(3)
	m.Propagated("session")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TasksCompleted.WithLabelValues(observability.OutcomeError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PoolBacklog))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Propagations.WithLabelValues("session")))

	count, err := testutil.GatherAndCount(reg, "carrier_task_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.SessionCreated()
		m.TaskSubmitted()
		m.TaskCompleted(observability.OutcomeSuccess, time.Second)
		m.Backlog(1)
		m.Propagated("session")
	})
}
