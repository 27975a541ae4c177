// Package scanclient is the HTTP collaborator that submits content to the
// scoring service and fetches history and statistics. It holds no workflow
// state; failures map to generic sentinel errors while the transport detail
// goes to the logger.
package scanclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/webclient"
)

var (
	// ErrScanUnavailable is the generic, non-leaking error for any scan
	// transport failure or non-2xx response.
	ErrScanUnavailable = errors.New("unable to complete scan")

	// ErrHistoryUnavailable covers history fetch failures. Callers degrade
	// to an empty list rather than surfacing detail.
	ErrHistoryUnavailable = errors.New("unable to load scan history")

	// ErrStatsUnavailable covers stats fetch failures. Callers degrade to a
	// zeroed stats view.
	ErrStatsUnavailable = errors.New("unable to load scan statistics")
)

// Client talks to the scoring service API under baseURL.
type Client struct {
	baseURL string
	wc      webclient.WebClient
	logger  logging.Logger
}

// New creates a Client. baseURL is the service root without the /api suffix,
// e.g. "http://localhost:8000".
func New(baseURL string, wc webclient.WebClient, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewStdoutLogger("scanclient")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		wc:      wc,
		logger:  logger.With(logging.Field{Key: "component", Value: "scanclient"}),
	}
}

// Scan submits content for evaluation, letting the service auto-detect the
// content type. The returned result carries the risk_score-shaped payload;
// tier derivation stays with the caller.
func (c *Client) Scan(ctx context.Context, content string) (*model.ScanResult, error) {
	return c.ScanTyped(ctx, content, "")
}

// ScanTyped submits content with an explicit content type, skipping the
// service's auto-detection.
func (c *Client) ScanTyped(ctx context.Context, content string, scanType model.ScanType) (*model.ScanResult, error) {
	body, err := json.Marshal(model.ScanRequest{Content: content, ScanType: scanType})
	if err != nil {
		return nil, fmt.Errorf("encode scan request: %w", err)
	}

	hdrs := http.Header{}
	hdrs.Set("Content-Type", "application/json")

	resp, err := c.wc.Do(ctx, &webclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + "/api/scan",
		Headers: hdrs,
		Body:    body,
	})
	if err != nil {
		c.logger.Warn("scan request failed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrScanUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("scan request rejected",
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, ErrScanUnavailable
	}

	var result model.ScanResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		c.logger.Warn("scan response malformed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrScanUnavailable
	}
	return &result, nil
}

// History fetches the most recent scans, newest-first, up to ten entries.
func (c *Client) History(ctx context.Context) ([]model.ScanResult, error) {
	resp, err := c.wc.Get(ctx, c.baseURL+"/api/history")
	if err != nil {
		c.logger.Warn("history fetch failed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrHistoryUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("history fetch rejected",
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, ErrHistoryUnavailable
	}

	var entries []model.ScanResult
	if err := json.Unmarshal(resp.Body, &entries); err != nil {
		c.logger.Warn("history response malformed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrHistoryUnavailable
	}
	return entries, nil
}

// Stats fetches the aggregate counters.
func (c *Client) Stats(ctx context.Context) (*model.StatsResponse, error) {
	resp, err := c.wc.Get(ctx, c.baseURL+"/api/stats")
	if err != nil {
		c.logger.Warn("stats fetch failed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrStatsUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("stats fetch rejected",
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, ErrStatsUnavailable
	}

	var payload model.StatsResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		c.logger.Warn("stats response malformed",
			logging.Field{Key: "error", Value: err.Error()})
		return nil, ErrStatsUnavailable
	}
	return &payload, nil
}

// Health pings the service. Returns nil when it reports healthy.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.wc.Get(ctx, c.baseURL+"/api/health")
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: status %d", resp.StatusCode)
	}
	return nil
}
