// Package assistant provides the client for the companion backend's AI
// endpoints: retrieval-augmented chat, semantic search and roadmap
// generation.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Assistant = (*Client)(nil)

// DefaultTimeout covers chat and roadmap generation, which run an LLM
// call server-side.
const DefaultTimeout = 2 * time.Minute

// ClientConfig holds configuration for the assistant client.
type ClientConfig struct {
	// BaseURL is the companion backend URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 2m).
	Timeout time.Duration
}

// Client calls the backend's AI endpoints.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new assistant client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("assistant: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// chatRequest is the /chat request format.
type chatRequest struct {
	Message string            `json:"message"`
	History []driven.ChatTurn `json:"conversation_history,omitempty"`
}

// chatResponse is the /chat response format.
type chatResponse struct {
	Response string `json:"response"`
	Sources  []struct {
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata"`
		Score    float64        `json:"similarity_score"`
	} `json:"sources"`
	Error string `json:"error,omitempty"`
}

// searchRequest is the /search_posts_v2 request format.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchResponse is the /search_posts_v2 response format.
type searchResponse struct {
	Results []struct {
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata"`
		Score    float64        `json:"similarity_score"`
	} `json:"results"`
	Error string `json:"error,omitempty"`
}

// roadmapRequest is the /roadmap request format.
type roadmapRequest struct {
	Goal string `json:"goal"`
}

// roadmapResponse is the /roadmap response format.
type roadmapResponse struct {
	Roadmap *domain.Roadmap `json:"roadmap"`
	Error   string          `json:"error,omitempty"`
}

// Chat answers a message in the context of the prior history.
func (c *Client) Chat(ctx context.Context, message string, history []driven.ChatTurn) (*driven.ChatReply, error) {
	var resp chatResponse
	if err := c.post(ctx, "/chat", chatRequest{Message: message, History: history}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssistantUnavailable, resp.Error)
	}

	sources := make([]domain.ChatSource, 0, len(resp.Sources))
	for _, src := range resp.Sources {
		sources = append(sources, domain.ChatSource{
			Content: src.Content,
			PostID:  metaString(src.Metadata, "post_id"),
			Author:  metaString(src.Metadata, "author"),
			Score:   src.Score,
		})
	}
	return &driven.ChatReply{Text: resp.Response, Sources: sources}, nil
}

// Search runs a semantic query against the post index.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	var resp searchResponse
	if err := c.post(ctx, "/search_posts_v2", searchRequest{Query: query, Limit: limit}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrSearchUnavailable, resp.Error)
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, hit := range resp.Results {
		results = append(results, domain.SearchResult{
			Content: hit.Content,
			PostID:  metaString(hit.Metadata, "post_id"),
			Author:  metaString(hit.Metadata, "author"),
			URL:     metaString(hit.Metadata, "url"),
			Score:   hit.Score,
		})
	}
	return results, nil
}

// GenerateRoadmap builds a learning plan from the user's goal.
func (c *Client) GenerateRoadmap(ctx context.Context, goal string) (*domain.Roadmap, error) {
	var resp roadmapResponse
	if err := c.post(ctx, "/roadmap", roadmapRequest{Goal: goal}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssistantUnavailable, resp.Error)
	}
	if resp.Roadmap == nil {
		return nil, fmt.Errorf("%w: empty roadmap", domain.ErrAssistantUnavailable)
	}
	if resp.Roadmap.Goal == "" {
		resp.Roadmap.Goal = goal
	}
	return resp.Roadmap, nil
}

func metaString(meta map[string]any, key string) string {
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: endpoint returned %d", domain.ErrAssistantUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
