package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/observability"
	"github.com/aretw0/carrier/pkg/registry"
	"github.com/aretw0/carrier/pkg/session"
	"github.com/aretw0/carrier/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *session.Registry) {
	t.Helper()

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)
	reg := session.NewRegistry(session.WithMetrics(metrics))

	pool := worker.New(worker.WithSize(2), worker.WithMetrics(metrics))
	t.Cleanup(pool.Close)

	catalog := registry.NewRegistry()
	catalog.Register("tag", func(ctx context.Context) error {
		th, _ := execctx.ThreadFrom(ctx)
		s, ok := th.Session()
		if !ok {
			return errors.New("no session")
		}
		s.ConversionState.Put("tagged", true)
		return nil
	})
	catalog.Register("fail", func(context.Context) error { return errors.New("bad row") })

	return NewHandler(&Server{
		Registry: reg,
		Pool:     pool,
		Catalog:  catalog,
		Gatherer: promReg,
	}), reg
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rr := do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	h, _ := newTestServer(t)
	rr := do(t, h, "GET", "/info", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "carrier", resp.App)
	assert.NotEmpty(t, resp.Version)
	assert.Equal(t, "0.1.0", resp.ApiVersion)
}

func TestSessions_CreateIsIdempotent(t *testing.T) {
	h, reg := newTestServer(t)

	rr := do(t, h, "POST", "/sessions", CreateSessionRequest{Id: "batch-7", Config: &map[string]interface{}{"v": 1}})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, h, "POST", "/sessions", CreateSessionRequest{Id: "batch-7", Config: &map[string]interface{}{"v": 2}})
	assert.Equal(t, http.StatusOK, rr.Code)

	var v SessionView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, "batch-7", v.Id)
	require.NotNil(t, v.Config)
	assert.Equal(t, map[string]interface{}{"v": float64(1)}, *v.Config)

	rr = do(t, h, "GET", "/sessions", nil)
	assert.Contains(t, rr.Body.String(), "batch-7")
	assert.Equal(t, 1, len(reg.List()))
}

func TestSessions_GetNotFound(t *testing.T) {
	h, _ := newTestServer(t)

	rr := do(t, h, "GET", "/sessions/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "session not found")

	rr = do(t, h, "GET", "/sessions/default", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "default session is created on first lookup")
}

func TestSessions_Current(t *testing.T) {
	h, reg := newTestServer(t)
	reg.Create("nightly", nil)

	rr := do(t, h, "GET", "/sessions/current", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"default"`)

	rr = do(t, h, "PUT", "/sessions/current", SetCurrentRequest{Id: "nightly"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nightly", reg.Current().ID)

	rr = do(t, h, "PUT", "/sessions/current", SetCurrentRequest{Id: "ghost"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTasks_RunUnderSession(t *testing.T) {
	h, reg := newTestServer(t)
	s, _ := reg.Create("batch-7", nil)
	wait := true

	rr := do(t, h, "POST", "/sessions/batch-7/tasks", SubmitTaskRequest{Work: "tag", Wait: &wait})
	require.Equal(t, http.StatusOK, rr.Code)

	var task TaskView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.True(t, task.Done)
	assert.Nil(t, task.Err)
	assert.Equal(t, "batch-7", task.SessionId)

	_, ok := s.ConversionState.Get("tagged")
	assert.True(t, ok)

	rr = do(t, h, "POST", "/sessions/batch-7/tasks", SubmitTaskRequest{Work: "fail", Wait: &wait})
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	require.NotNil(t, task.Err)
	assert.Equal(t, "bad row", *task.Err)
	assert.Equal(t, 1, s.RunStatus.Snapshot().Failed)

	rr = do(t, h, "POST", "/sessions/batch-7/tasks", SubmitTaskRequest{Work: "tag"})
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestTasks_Errors(t *testing.T) {
	h, _ := newTestServer(t)

	rr := do(t, h, "POST", "/sessions/ghost/tasks", SubmitTaskRequest{Work: "tag"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, "POST", "/sessions/default/tasks", SubmitTaskRequest{Work: "nope"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest("POST", "/sessions/default/tasks", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	do(t, h, "POST", "/sessions", CreateSessionRequest{Id: "a"})

	rr := do(t, h, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "carrier_sessions_created_total 1")
}

func TestOpenAPISpec(t *testing.T) {
	h, _ := newTestServer(t)

	rr := do(t, h, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/yaml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "/sessions/{id}/tasks")

	swagger, err := GetSwagger()
	require.NoError(t, err)
	for _, p := range []string{"/health", "/info", "/sessions", "/sessions/current", "/sessions/{id}", "/sessions/{id}/tasks"} {
		assert.NotNil(t, swagger.Paths.Find(p), p)
	}

	rr = do(t, h, "GET", "/swagger", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSessions_ViewReportsFailures(t *testing.T) {
	h, reg := newTestServer(t)
	s, _ := reg.Create("etl", nil)
	s.RunStatus.Record("load", errors.New("disk full"))

	rr := do(t, h, "GET", "/sessions/etl", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var v SessionView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Nil(t, v.Config)
	assert.Equal(t, 1, v.Status.Failed)
	require.NotNil(t, v.Status.Failures)
	assert.Equal(t, "load", (*v.Status.Failures)[0].Task)
	assert.Equal(t, "disk full", (*v.Status.Failures)[0].Err)
}
