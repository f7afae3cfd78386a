// Package fetch retrieves donation CSV logs and GeoJSON layers from the
// static data host.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

// Source retrieves dashboard input files by name.
type Source interface {
	// FetchCSV returns the raw text of a donation log.
	FetchCSV(ctx context.Context, file string) (string, error)

	// FetchLayer returns a GeoJSON layer document, validated to be a
	// parseable FeatureCollection.
	FetchLayer(ctx context.Context, file string) ([]byte, error)
}

// Client implements Source over HTTP against a base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a data host client. The timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		metrics: metrics,
	}
}

// FetchCSV retrieves one donation log as raw text.
func (c *Client) FetchCSV(ctx context.Context, file string) (string, error) {
	body, err := c.doRequest(ctx, file, "csv")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchLayer retrieves one GeoJSON layer. The document is unmarshalled once
// here so a corrupt upload fails at fetch time rather than per request.
func (c *Client) FetchLayer(ctx context.Context, file string) ([]byte, error) {
	body, err := c.doRequest(ctx, file, "layer")
	if err != nil {
		return nil, err
	}
	if _, err := geojson.UnmarshalFeatureCollection(body); err != nil {
		return nil, fmt.Errorf("layer %s is not a feature collection: %w", file, err)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, file, kind string) ([]byte, error) {
	fullURL := c.baseURL + "/" + url.PathEscape(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", file, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return body, nil
}
