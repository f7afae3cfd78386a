package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dataset binds a chart name to the CSV file that feeds it.
type Dataset struct {
	Chart string
	File  string
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Data host configuration.
	DataBaseURL     string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	LayerCacheSize  int

	// Dashboard content: which CSV logs feed which charts, which GeoJSON
	// files serve as map layers, and which feature property drives the
	// choropleth ramp.
	Datasets           []Dataset
	Layers             map[string]string
	LayerValueProperty string

	// Snapshot publishing configuration (feature-flagged via
	// KAFKA_ENABLED / KAFKA_BROKERS).
	KafkaBrokers       []string
	KafkaSnapshotTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parsePositiveDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}

	datasets, err := parseDatasets(envOrDefault("DATASETS",
		"donations-2024:donations_2024.csv,donations-2023:donations_2023.csv"))
	if err != nil {
		return nil, err
	}

	layers, err := parseLayers(envOrDefault("LAYERS", "counties:tri_county_boundaries.geojson"))
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataBaseURL:     envOrDefault("DATA_BASE_URL", "https://data.tricountyrescue.org/dashboard"),
		FetchTimeout:    fetchTimeout,
		RefreshInterval: refreshInterval,
		LayerCacheSize:  parseLayerCacheSize(),

		Datasets:           datasets,
		Layers:             layers,
		LayerValueProperty: envOrDefault("LAYER_VALUE_PROPERTY", "total_lbs"),

		KafkaBrokers:       brokers,
		KafkaSnapshotTopic: envOrDefault("KAFKA_SNAPSHOT_TOPIC", "dashboard-snapshots"),
		KafkaEnabled:       kafkaEnabled,
	}

	if _, err := url.ParseRequestURI(cfg.DataBaseURL); err != nil {
		return nil, fmt.Errorf("invalid DATA_BASE_URL: %w", err)
	}
	if len(cfg.Datasets) == 0 {
		return nil, errors.New("DATASETS must name at least one chart")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// parseDatasets parses "chart:file,chart:file" pairs, preserving order.
// Chart names become URL path segments and result keys, so both halves must
// be non-empty.
func parseDatasets(raw string) ([]Dataset, error) {
	var datasets []Dataset
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		chart, file, ok := strings.Cut(pair, ":")
		chart, file = strings.TrimSpace(chart), strings.TrimSpace(file)
		if !ok || chart == "" || file == "" {
			return nil, fmt.Errorf("invalid DATASETS entry %q, want chart:file", pair)
		}
		datasets = append(datasets, Dataset{Chart: chart, File: file})
	}
	return datasets, nil
}

func parseLayers(raw string) (map[string]string, error) {
	layers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, file, ok := strings.Cut(pair, ":")
		name, file = strings.TrimSpace(name), strings.TrimSpace(file)
		if !ok || name == "" || file == "" {
			return nil, fmt.Errorf("invalid LAYERS entry %q, want name:file", pair)
		}
		layers[name] = file
	}
	return layers, nil
}

func parseLayerCacheSize() int {
	if s := os.Getenv("LAYER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 16
}
