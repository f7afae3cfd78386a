package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

const testLayerJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "Elk", "total_lbs": 1200},
			"geometry": {"type": "Point", "coordinates": [-120.5, 38.2]}
		}
	]
}`

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting())
}

func TestClient_FetchCSV_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/donations_2024.csv", r.URL.Path)
		_, _ = w.Write([]byte("County,Proteins LBS\nELK,10\n"))
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).FetchCSV(context.Background(), "donations_2024.csv")
	require.NoError(t, err)
	assert.Equal(t, "County,Proteins LBS\nELK,10\n", text)
}

func TestClient_FetchCSV_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such file", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchCSV(context.Background(), "missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestClient_FetchCSV_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // immediately: connection refused

	_, err := testClient(srv.URL).FetchCSV(context.Background(), "donations_2024.csv")
	require.Error(t, err)
}

func TestClient_FetchLayer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tri_county_boundaries.geojson", r.URL.Path)
		_, _ = w.Write([]byte(testLayerJSON))
	}))
	defer srv.Close()

	doc, err := testClient(srv.URL).FetchLayer(context.Background(), "tri_county_boundaries.geojson")
	require.NoError(t, err)
	assert.JSONEq(t, testLayerJSON, string(doc))
}

func TestClient_FetchLayer_InvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"not-geojson"`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchLayer(context.Background(), "broken.geojson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.geojson")
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL).FetchCSV(ctx, "slow.csv")
	require.Error(t, err)
}
