// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"das_notify/internal/domain"
)

// Executor runs one dispatcher invocation.
type Executor interface {
	Execute(ctx context.Context, p domain.Params) (domain.Result, error)
}

// Handlers is the host surface: it renders the parameter schema and runs
// invocations with host-imposed limits (in-flight cap, timeout).
type Handlers struct {
	Exec     Executor
	Resolve  func(ref string) (string, error) // connector -> URL
	Inflight *semaphore.Weighted
	Timeout  time.Duration
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type executionRequest struct {
	Parameters map[string]string `json:"parameters"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/script", h.describe)
	s.mux.Post("/v1/executions", h.execute)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) describe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Describe())
}

func (h *Handlers) execute(w http.ResponseWriter, r *http.Request) {
	var req executionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected {\"parameters\":{...}}")
		return
	}

	p := domain.ParamsFromValues(req.Parameters)
	if err := p.Validate(); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid parameters", err.Error())
		return
	}
	if h.Resolve != nil {
		u, err := h.Resolve(p.Connector)
		if err != nil {
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid connector", err.Error())
			return
		}
		p.Connector = u
	}

	if h.Inflight != nil {
		if !h.Inflight.TryAcquire(1) {
			writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "too many executions in flight")
			return
		}
		defer h.Inflight.Release(1)
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res, err := h.Exec.Execute(ctx, p)
	if err != nil {
		log.Warn().Err(err).Str("document_id", p.DocumentID).Msg("execution failed")
		switch {
		case errors.Is(err, domain.ErrParse):
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid input", err.Error())
		case errors.Is(err, domain.ErrDispatch), errors.Is(err, domain.ErrInvalidResponse):
			writeProblem(w, http.StatusBadGateway, "DAS rejected notification", err.Error())
		default:
			writeProblem(w, http.StatusInternalServerError, "Execution failed", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}
