package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard refresh loop and its adapters.
type Metrics struct {
	RefreshRunning  prometheus.Gauge
	DatasetsLoaded  prometheus.Gauge
	RefreshDuration prometheus.Histogram

	RowsParsed  prometheus.Counter
	RowsSkipped prometheus.Counter

	// Fetch metrics.
	FetchErrors   *prometheus.CounterVec   // labels: chart
	FetchDuration *prometheus.HistogramVec // labels: kind={csv,layer}
	LayerCache    *prometheus.CounterVec   // labels: result={hit,miss}

	// Snapshot publishing metrics.
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rescue_dashboard",
			Name:      "refresh_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		DatasetsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rescue_dashboard",
			Name:      "datasets_loaded",
			Help:      "Number of charts with a loaded snapshot.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rescue_dashboard",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-parse-aggregate refresh cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "rows_parsed_total",
			Help:      "Total CSV data rows parsed across all refreshes.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "rows_skipped_total",
			Help:      "Total rows excluded by the county filter.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "fetch_errors_total",
			Help:      "Dataset refresh failures by chart.",
		}, []string{"chart"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rescue_dashboard",
			Name:      "fetch_duration_seconds",
			Help:      "Data host request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
		LayerCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "layer_cache_total",
			Help:      "GeoJSON layer cache lookups by result.",
		}, []string{"result"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "snapshots_published_total",
			Help:      "Chart snapshots published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescue_dashboard",
			Name:      "publish_errors_total",
			Help:      "Failed snapshot publish attempts.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshRunning,
		m.DatasetsLoaded,
		m.RefreshDuration,
		m.RowsParsed,
		m.RowsSkipped,
		m.FetchErrors,
		m.FetchDuration,
		m.LayerCache,
		m.SnapshotsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rescue_dashboard", Name: "refresh_running"}),
		DatasetsLoaded:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rescue_dashboard", Name: "datasets_loaded"}),
		RefreshDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rescue_dashboard", Name: "refresh_duration_seconds"}),
		RowsParsed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "rows_parsed_total"}),
		RowsSkipped:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "rows_skipped_total"}),
		FetchErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "fetch_errors_total"}, []string{"chart"}),
		FetchDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "rescue_dashboard", Name: "fetch_duration_seconds"}, []string{"kind"}),
		LayerCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "layer_cache_total"}, []string{"result"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "snapshots_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rescue_dashboard", Name: "publish_errors_total"}),
	}
}
