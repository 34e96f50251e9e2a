package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineStatus reports whether the analysis loop is ready to serve traffic
// and how far it has progressed.
type PipelineStatus interface {
	CheckReadiness(ctx context.Context) error
	BatchStats() (processed uint64, last time.Time)
}

// Server exposes the analyzer's health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics routes.
// Readiness and progress come from the running pipeline.
func NewServer(addr string, status PipelineStatus, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(status))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("analyzer http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "tank-compliance-etl",
	})
}

// readyResponse is the /readyz payload. Batch progress is included so
// operators can tell a stalled pipeline from one that never started.
type readyResponse struct {
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
	BatchesProcessed uint64 `json:"batches_processed"`
	LastBatchAt      string `json:"last_batch_at,omitempty"`
}

func handleReady(status PipelineStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		processed, last := status.BatchStats()
		resp := readyResponse{Status: "ready", BatchesProcessed: processed}
		if !last.IsZero() {
			resp.LastBatchAt = last.UTC().Format(time.RFC3339)
		}

		if err := status.CheckReadiness(ctx); err != nil {
			resp.Status = "not ready"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
