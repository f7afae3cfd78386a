package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

// --- mock for cache tests ---

type countingSource struct {
	csvCalls   int
	layerCalls int
	csv        string
	layer      []byte
	err        error
}

func (m *countingSource) FetchCSV(_ context.Context, _ string) (string, error) {
	m.csvCalls++
	return m.csv, m.err
}

func (m *countingSource) FetchLayer(_ context.Context, _ string) ([]byte, error) {
	m.layerCalls++
	return m.layer, m.err
}

func newCached(inner Source, size int) *CachedSource {
	return NewCachedSource(inner, size, observability.NewMetricsForTesting())
}

// --- CachedSource tests ---

func TestCachedSource_LayerCacheHit(t *testing.T) {
	inner := &countingSource{layer: []byte(`{"type":"FeatureCollection","features":[]}`)}
	cached := newCached(inner, 10)

	d1, err := cached.FetchLayer(context.Background(), "counties.geojson")
	require.NoError(t, err)
	d2, err := cached.FetchLayer(context.Background(), "counties.geojson")
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Equal(t, 1, inner.layerCalls, "should only call inner once")
}

func TestCachedSource_DifferentLayersMiss(t *testing.T) {
	inner := &countingSource{layer: []byte(`{}`)}
	cached := newCached(inner, 10)

	_, _ = cached.FetchLayer(context.Background(), "counties.geojson")
	_, _ = cached.FetchLayer(context.Background(), "routes.geojson")

	assert.Equal(t, 2, inner.layerCalls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSource{err: assert.AnError}
	cached := newCached(inner, 10)

	_, err := cached.FetchLayer(context.Background(), "counties.geojson")
	require.Error(t, err)
	_, err = cached.FetchLayer(context.Background(), "counties.geojson")
	require.Error(t, err)

	assert.Equal(t, 2, inner.layerCalls, "failed fetches must be retried")
}

func TestCachedSource_CSVNeverCached(t *testing.T) {
	inner := &countingSource{csv: "County\nELK"}
	cached := newCached(inner, 10)

	_, _ = cached.FetchCSV(context.Background(), "donations_2024.csv")
	_, _ = cached.FetchCSV(context.Background(), "donations_2024.csv")

	assert.Equal(t, 2, inner.csvCalls, "CSV logs change between refreshes")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A"), value)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	value, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("B"), value)

	value, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, []byte("C"), value)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	// Access "a" to promote it
	c.get("a")

	// Insert "c" - should evict "b" (LRU), not "a"
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A2"), value)
}
