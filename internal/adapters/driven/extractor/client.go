// Package extractor provides the scraping API client used to capture
// posts. The heavy lifting runs on the companion backend, which wraps
// the scraping provider and polls the run to completion.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PostExtractor = (*Client)(nil)

// Default configuration values. Scraping runs take a while, so the
// request timeout is generous, and the limiter keeps rapid captures
// from burning through the provider's quota.
const (
	DefaultTimeout   = 2 * time.Minute
	DefaultRateLimit = rate.Limit(0.5)
	DefaultBurst     = 2
)

// ClientConfig holds configuration for the extractor client.
type ClientConfig struct {
	// BaseURL is the companion backend URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 2m).
	Timeout time.Duration

	// RateLimit is requests per second (default: 0.5).
	RateLimit rate.Limit

	// Burst is the limiter burst size (default: 2).
	Burst int
}

// Client calls the backend's extraction endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new extractor client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("extractor: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
	}, nil
}

// extractRequest is the /get_post_info request format.
type extractRequest struct {
	URL      string `json:"url"`
	ApifyKey string `json:"apify_key"`
}

// extractResponse is the /get_post_info response format. Data is either
// a single post object or an array with the post first.
type extractResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Extract runs a scraping job for one post URL.
func (c *Client) Extract(ctx context.Context, url, apiKey string) (domain.RawPost, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	jsonBody, err := json.Marshal(extractRequest{URL: url, ApifyKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/get_post_info", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("extraction request for %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint returned %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	var result extractResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		if result.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, result.Error)
		}
		return nil, domain.ErrExtractionFailed
	}

	return decodeRaw(result.Data)
}

// decodeRaw accepts both payload shapes: a single object, or an array
// where the first element is the post.
func decodeRaw(data json.RawMessage) (domain.RawPost, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrExtractionFailed)
	}

	var single domain.RawPost
	if err := json.Unmarshal(data, &single); err == nil {
		return single, nil
	}

	var list []domain.RawPost
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: empty result list", domain.ErrExtractionFailed)
		}
		return list[0], nil
	}

	return nil, fmt.Errorf("%w: unexpected payload shape", domain.ErrExtractionFailed)
}
