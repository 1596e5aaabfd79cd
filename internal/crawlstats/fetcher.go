// Package crawlstats fetches and parses the pre-aggregated Common Crawl
// MIME type statistics CSV. Fetch and parse failures are fatal to a run;
// the trend classifier downstream assumes well-typed input.
package crawlstats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crawltrends/crawltrends/internal/logging"
)

// DefaultFetchTimeout bounds the statistics download when no timeout is configured.
const DefaultFetchTimeout = 60 * time.Second

// Client downloads the statistics file over HTTP
type Client struct {
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a new statistics client
func NewClient(logger *logging.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch downloads the raw statistics CSV from the configured URL.
// No retries: an unreachable source fails the whole run.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching stats from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats body: %w", err)
	}

	c.logger.Info("Fetched crawl statistics",
		"url", url,
		"bytes", len(data),
		"latency_ms", time.Since(start).Milliseconds())

	return data, nil
}
