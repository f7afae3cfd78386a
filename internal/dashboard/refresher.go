package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tricountyrescue/rescue-dashboard/internal/config"
	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

// CSVSource fetches one donation log as raw text.
type CSVSource interface {
	FetchCSV(ctx context.Context, file string) (string, error)
}

// SnapshotPublisher forwards refreshed snapshots to downstream consumers.
type SnapshotPublisher interface {
	PublishSnapshots(ctx context.Context, snaps []Snapshot) error
}

// Options carries the refresher's dashboard configuration. Mapping, county
// column, and counties are explicit values rather than package state so tests
// can substitute alternates.
type Options struct {
	Datasets     []config.Dataset
	Mapping      domain.CategoryMapping
	CountyColumn string
	Counties     domain.CountySet
	Interval     time.Duration
}

// Refresher runs the periodic fetch-parse-aggregate cycle over all
// configured datasets.
type Refresher struct {
	source    CSVSource
	store     *Store
	publisher SnapshotPublisher // nil disables publishing
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Refresher. Pass a nil publisher to disable snapshot publishing.
func New(source CSVSource, store *Store, publisher SnapshotPublisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		source:    source,
		store:     store,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one chart snapshot has loaded,
// or an error describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no chart snapshot loaded yet")
	}
	return nil
}

// Run refreshes all datasets immediately, then on every interval tick, until
// the context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "datasets", len(r.opts.Datasets), "interval", r.opts.Interval)
	r.metrics.RefreshRunning.Set(1)
	defer r.metrics.RefreshRunning.Set(0)

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	r.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// refreshAll runs one cycle. One dataset's failure is logged and counted but
// never blocks the rest; its previous snapshot stays served.
func (r *Refresher) refreshAll(ctx context.Context) {
	start := time.Now()
	refreshed := make([]Snapshot, 0, len(r.opts.Datasets))

	for _, d := range r.opts.Datasets {
		snap, err := r.refreshDataset(ctx, d)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("dataset refresh failed", "chart", d.Chart, "file", d.File, "error", err)
			r.metrics.FetchErrors.WithLabelValues(d.Chart).Inc()
			continue
		}
		r.store.Put(d.Chart, snap)
		refreshed = append(refreshed, snap)
		r.logger.Debug("dataset refreshed",
			"chart", d.Chart,
			"total_pounds", snap.Chart.TotalPounds,
			"slices", len(snap.Chart.Slices),
		)
	}

	if len(refreshed) == 0 {
		return
	}

	r.ready.Store(true)
	r.metrics.DatasetsLoaded.Set(float64(r.store.Len()))
	r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	r.publish(ctx, refreshed)
}

func (r *Refresher) refreshDataset(ctx context.Context, d config.Dataset) (Snapshot, error) {
	text, err := r.source.FetchCSV(ctx, d.File)
	if err != nil {
		return Snapshot{}, err
	}

	rows := domain.Parse(text)
	r.metrics.RowsParsed.Add(float64(len(rows)))

	skipped := 0
	for _, row := range rows {
		if !r.opts.Counties.Contains(row[r.opts.CountyColumn]) {
			skipped++
		}
	}
	r.metrics.RowsSkipped.Add(float64(skipped))

	totals := domain.Aggregate(rows, r.opts.Mapping, r.opts.CountyColumn, r.opts.Counties)

	return Snapshot{
		Chart:       domain.BuildChart(d.Chart, totals),
		SourceFile:  d.File,
		RefreshedAt: clock.Now(),
	}, nil
}

func (r *Refresher) publish(ctx context.Context, snaps []Snapshot) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishSnapshots(ctx, snaps); err != nil {
		r.logger.Warn("snapshot publish failed", "count", len(snaps), "error", err)
		r.metrics.PublishErrors.Inc()
		return
	}
	r.metrics.SnapshotsPublished.Add(float64(len(snaps)))
}
