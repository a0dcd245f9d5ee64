package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/carrier"
	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/domain"
	"github.com/aretw0/carrier/pkg/execctx"
	"github.com/aretw0/carrier/pkg/ports"
	"github.com/aretw0/carrier/pkg/propagate"
	"github.com/aretw0/carrier/pkg/registry"
	"github.com/aretw0/carrier/pkg/worker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Submitter queues work for asynchronous execution.
type Submitter interface {
	Submit(ctx context.Context, work propagate.Work) (*worker.Handle, error)
}

// Server implements the generated ServerInterface over a session registry and a pool.
type Server struct {
	Registry ports.SessionRegistry
	Pool     Submitter
	Catalog  *registry.Registry
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// NewHandler creates a new HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.Logger.Error("failed to load OpenAPI spec", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.Logger.Warn("bad request parameters", "path", r.URL.Path, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <title>Carrier Admin API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, InfoResponse{
		App:        "carrier",
		Version:    strings.TrimSpace(carrier.Version),
		ApiVersion: apiVersion,
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionList{Sessions: s.Registry.List()})
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var cfg any
	if body.Config != nil {
		cfg = *body.Config
	}
	sess, created := s.Registry.Create(body.Id, cfg)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, view(sess))
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	sess, err := s.Registry.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(sess))
}

// GetCurrentSession handles the GET /sessions/current request.
func (s *Server) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view(s.Registry.Current()))
}

// SetCurrentSession handles the PUT /sessions/current request.
func (s *Server) SetCurrentSession(w http.ResponseWriter, r *http.Request) {
	var body SetCurrentSessionJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Registry.SetCurrent(body.Id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(s.Registry.Current()))
}

// SubmitTask handles the POST /sessions/{id}/tasks request.
func (s *Server) SubmitTask(w http.ResponseWriter, r *http.Request, id SessionID) {
	if s.Pool == nil || s.Catalog == nil {
		http.Error(w, "Task execution not configured", http.StatusNotImplemented)
		return
	}

	var body SubmitTaskJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.Registry.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	work, err := s.Catalog.Lookup(body.Work)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	// Each request is its own execution thread.
	ctx, th := execctx.Ensure(r.Context(), execctx.WithLogger(s.Logger))
	th.SetSession(sess)

	h, err := s.Pool.Submit(ctx, func(ctx context.Context) error {
		err := work(ctx)
		sess.RunStatus.Record(body.Work, err)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	task := TaskView{Id: h.ID(), SessionId: h.SessionID()}
	if body.Wait == nil || !*body.Wait {
		writeJSON(w, http.StatusAccepted, task)
		return
	}

	err = h.Wait(r.Context())
	if r.Context().Err() != nil {
		return // client went away
	}
	task.Done = true
	if err != nil {
		msg := err.Error()
		task.Err = &msg
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrPoolClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.Logger.Error("request failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func view(s *domain.Session) SessionView {
	snap := s.RunStatus.Snapshot()
	status := RunStatus{
		Succeeded: snap.Succeeded,
		Failed:    snap.Failed,
		Updated:   snap.Updated,
	}
	if len(snap.Failures) > 0 {
		failures := make([]FailureView, len(snap.Failures))
		for i, f := range snap.Failures {
			failures[i] = FailureView{Task: f.Task, Err: f.Err, At: f.At}
		}
		status.Failures = &failures
	}

	v := SessionView{
		Id:        s.ID,
		CreatedAt: s.CreatedAt.UTC(),
		Status:    status,
		Products:  s.ConversionState.Keys(),
	}
	if cfg, ok := s.Config.(map[string]any); ok {
		v.Config = &cfg
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
