// Package wiki fetches raw page text from the item wiki.
//
// Requests are made one at a time by the caller. There are no retries: a
// transport error or a non-2xx status is returned as is and ends the run.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"spawnscraper/internal/config"
)

var ErrStatus = errors.New("unexpected wiki status")

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	var limiter *rate.Limiter
	if cfg.FetchRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.FetchRatePerSec), 1)
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    limiter,
		logger:     logger,
	}
}

// Fetch returns the response body of a GET to pageURL.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	c.logger.Debug("fetched page", "url", pageURL, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %d: %s", ErrStatus, pageURL, resp.StatusCode, truncate(body, 200))
	}
	return string(body), nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
