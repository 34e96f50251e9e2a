package mapbox

import (
	"context"
	"fmt"
	"testing"

	"github.com/reliantgeo/tank-compliance-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
}

func (m *countingGeocoder) ForwardGeocode(_ context.Context, _ string) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, nil
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Lat: 29.70, Lon: -95.46, PlaceName: "Bellaire", FormattedAddress: "4800 Fournace Pl, Bellaire, TX"},
	}
	cached := NewCachedGeocoder(inner, 10)

	r1, err := cached.ForwardGeocode(context.Background(), "4800 Fournace Pl, Bellaire, TX")
	require.NoError(t, err)
	assert.Equal(t, "Bellaire", r1.PlaceName)

	r2, err := cached.ForwardGeocode(context.Background(), "4800 Fournace Pl, Bellaire, TX")
	require.NoError(t, err)
	assert.Equal(t, "Bellaire", r2.PlaceName)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedGeocoder_KeyIsCaseInsensitive(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{FormattedAddress: "4800 Fournace Pl, Bellaire, TX"},
	}
	cached := NewCachedGeocoder(inner, 10)

	_, err := cached.ForwardGeocode(context.Background(), "4800 FOURNACE PL, Bellaire, TX")
	require.NoError(t, err)
	_, err = cached.ForwardGeocode(context.Background(), "  4800 fournace pl, bellaire, tx ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{}}
	cached := NewCachedGeocoder(inner, 10)

	_, err := cached.ForwardGeocode(context.Background(), "nowhere")
	require.NoError(t, err)
	_, err = cached.ForwardGeocode(context.Background(), "nowhere")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty results should be retried")
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", domain.GeocodingResult{PlaceName: "A"})
	cache.put("b", domain.GeocodingResult{PlaceName: "B"})

	// Touch "a" so "b" becomes least recently used.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", domain.GeocodingResult{PlaceName: "C"})

	_, ok = cache.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", domain.GeocodingResult{PlaceName: "A1"})
	cache.put("a", domain.GeocodingResult{PlaceName: "A2"})

	got, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, "A2", got.PlaceName)
	assert.Len(t, cache.entries, 1)
}

func TestLRUCache_ManyEntries(t *testing.T) {
	cache := newLRUCache(100)

	for i := 0; i < 250; i++ {
		cache.put(fmt.Sprintf("key-%d", i), domain.GeocodingResult{})
	}

	assert.Len(t, cache.entries, 100)

	// The newest entries survive.
	_, ok := cache.get("key-249")
	assert.True(t, ok)
	_, ok = cache.get("key-0")
	assert.False(t, ok)
}
