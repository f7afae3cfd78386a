package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tricountyrescue/rescue-dashboard/internal/adapter/fetch"
	httpadapter "github.com/tricountyrescue/rescue-dashboard/internal/adapter/http"
	kafkaadapter "github.com/tricountyrescue/rescue-dashboard/internal/adapter/kafka"
	"github.com/tricountyrescue/rescue-dashboard/internal/config"
	"github.com/tricountyrescue/rescue-dashboard/internal/dashboard"
	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

func main() {
	// Local development convenience; absent .env files are not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := fetch.NewClient(cfg.DataBaseURL, cfg.FetchTimeout, logger, metrics)
	source := fetch.NewCachedSource(client, cfg.LayerCacheSize, metrics)

	charts := make([]string, 0, len(cfg.Datasets))
	for _, d := range cfg.Datasets {
		charts = append(charts, d.Chart)
	}
	store := dashboard.NewStore(charts)

	// Snapshot publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher dashboard.SnapshotPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	refresher := dashboard.New(source, store, publisher, dashboard.Options{
		Datasets:     cfg.Datasets,
		Mapping:      domain.DefaultCategoryMapping,
		CountyColumn: domain.DefaultCountyColumn,
		Counties:     domain.DefaultCounties(),
		Interval:     cfg.RefreshInterval,
	}, logger, metrics)

	api := httpadapter.NewAPI(store, source, cfg.Layers, cfg.LayerValueProperty, domain.DefaultPoundsRamp, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, refresher, api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the refresh loop.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
