package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"github.com/tricountyrescue/rescue-dashboard/internal/dashboard"
	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
)

// SnapshotStore reads chart snapshots loaded by the refresher.
type SnapshotStore interface {
	Get(chart string) (dashboard.Snapshot, bool)
	List() []dashboard.Snapshot
}

// LayerSource fetches GeoJSON layer documents by file name.
type LayerSource interface {
	FetchLayer(ctx context.Context, file string) ([]byte, error)
}

// API serves the dashboard data the browser consumes: chart snapshots, XLSX
// exports, and choropleth-styled map layers.
type API struct {
	store         SnapshotStore
	layers        LayerSource
	layerFiles    map[string]string // layer name -> file on the data host
	valueProperty string
	ramp          domain.ColorRamp
	logger        *slog.Logger
}

// NewAPI wires the dashboard API handlers.
func NewAPI(store SnapshotStore, layers LayerSource, layerFiles map[string]string, valueProperty string, ramp domain.ColorRamp, logger *slog.Logger) *API {
	return &API{
		store:         store,
		layers:        layers,
		layerFiles:    layerFiles,
		valueProperty: valueProperty,
		ramp:          ramp,
		logger:        logger,
	}
}

func (a *API) handleListCharts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.List())
}

func (a *API) handleGetChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("chart")
	snap, ok := a.store.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown chart: " + name})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleGetLayer serves one GeoJSON layer with choropleth styling applied.
// A failed layer fetch is this request's 502, never a server-wide failure.
func (a *API) handleGetLayer(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("layer")
	file, ok := a.layerFiles[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown layer: " + name})
		return
	}

	doc, err := a.layers.FetchLayer(r.Context(), file)
	if err != nil {
		a.logger.Error("layer fetch failed", "layer", name, "file", file, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "layer unavailable: " + name})
		return
	}

	fc, err := geojson.UnmarshalFeatureCollection(doc)
	if err != nil {
		a.logger.Error("layer decode failed", "layer", name, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "layer unavailable: " + name})
		return
	}

	domain.StyleLayer(fc, a.valueProperty, a.ramp)
	writeJSON(w, http.StatusOK, fc)
}
