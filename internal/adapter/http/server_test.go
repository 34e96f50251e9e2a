package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/reliantgeo/tank-compliance-etl/internal/adapter/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStatus struct {
	err       error
	processed uint64
	last      time.Time
}

func (m *mockStatus) CheckReadiness(_ context.Context) error { return m.err }

func (m *mockStatus) BatchStats() (uint64, time.Time) { return m.processed, m.last }

func newTestServer(status *mockStatus) *httpadapter.Server {
	return httpadapter.NewServer(":0", status, slog.Default())
}

type readyBody struct {
	Status           string `json:"status"`
	Error            string `json:"error"`
	BatchesProcessed uint64 `json:"batches_processed"`
	LastBatchAt      string `json:"last_batch_at"`
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockStatus{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "tank-compliance-etl", body["service"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	last := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	srv := newTestServer(&mockStatus{processed: 7, last: last})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body readyBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, uint64(7), body.BatchesProcessed)
	assert.Equal(t, "2025-03-14T09:00:00Z", body.LastBatchAt)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockStatus{err: fmt.Errorf("no site-document batch has completed yet")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body readyBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body.Status)
	assert.Equal(t, "no site-document batch has completed yet", body.Error)
	assert.Zero(t, body.BatchesProcessed)
	assert.Empty(t, body.LastBatchAt)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockStatus{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
