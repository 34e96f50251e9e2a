package mapbox

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-token", 2*time.Second, slog.Default())
	c.baseURL = server.URL
	return c
}

func TestForwardGeocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "4800 Fournace Pl")
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		fmt.Fprint(w, `{
			"features": [{
				"center": [-95.4614, 29.7007],
				"place_name": "4800 Fournace Place, Bellaire, Texas 77401, United States",
				"text": "Fournace Place",
				"relevance": 0.96
			}]
		}`)
	})

	result, err := client.ForwardGeocode(context.Background(), "4800 Fournace Pl, Bellaire, TX")
	require.NoError(t, err)

	assert.InDelta(t, 29.7007, result.Lat, 1e-9)
	assert.InDelta(t, -95.4614, result.Lon, 1e-9)
	assert.Equal(t, "4800 Fournace Place, Bellaire, Texas 77401, United States", result.FormattedAddress)
	assert.Equal(t, "Fournace Place", result.PlaceName)
	assert.InDelta(t, 0.96, result.Confidence, 1e-9)
}

func TestForwardGeocode_NoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"features": []}`)
	})

	result, err := client.ForwardGeocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Empty(t, result.FormattedAddress)
	assert.Zero(t, result.Lat)
	assert.Zero(t, result.Lon)
}

func TestForwardGeocode_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Not Authorized"}`)
	})

	_, err := client.ForwardGeocode(context.Background(), "4800 Fournace Pl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestForwardGeocode_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := client.ForwardGeocode(context.Background(), "4800 Fournace Pl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestForwardGeocode_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprint(w, `{"features": []}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ForwardGeocode(ctx, "4800 Fournace Pl")
	assert.Error(t, err)
}
