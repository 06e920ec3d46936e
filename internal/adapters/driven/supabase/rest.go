package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
)

// Ensure RESTClient implements the interfaces.
var (
	_ driven.PostStore   = (*RESTClient)(nil)
	_ driven.SearchIndex = (*RESTClient)(nil)
)

// RESTClient talks to the /rest/v1 endpoints. The posts table is shared
// across accounts: reads return every row, and signing in is needed only
// to obtain the bearer token the backend requires for writes.
type RESTClient struct {
	client  *http.Client
	baseURL string
	anonKey string
	tokens  driven.TokenProvider
}

// NewRESTClient creates a new REST client.
func NewRESTClient(cfg Config, tokens driven.TokenProvider) (*RESTClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("supabase: base URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase: anon key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultAuthTimeout
	}

	return &RESTClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		anonKey: cfg.AnonKey,
		tokens:  tokens,
	}, nil
}

// postRow is the posts table row format.
type postRow struct {
	ID           string             `json:"id,omitempty"`
	ExternalID   string             `json:"external_id"`
	Platform     string             `json:"platform"`
	URL          string             `json:"url"`
	AuthorName   string             `json:"author_name"`
	AuthorID     string             `json:"author_id,omitempty"`
	AuthorAvatar string             `json:"author_avatar,omitempty"`
	Content      string             `json:"content"`
	Summary      string             `json:"summary,omitempty"`
	Sentiment    string             `json:"sentiment,omitempty"`
	Topics       []string           `json:"topics,omitempty"`
	Category     string             `json:"category,omitempty"`
	PublishedAt  *time.Time         `json:"published_at,omitempty"`
	Likes        int                `json:"likes"`
	Comments     int                `json:"comments"`
	Shares       int                `json:"shares"`
	Reactions    map[string]int     `json:"reactions,omitempty"`
	Media        []domain.MediaItem `json:"media,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	OCRText      string             `json:"ocr_text,omitempty"`
	CreatedAt    *time.Time         `json:"created_at,omitempty"`
}

func rowFromPost(p *domain.SavedPost) postRow {
	row := postRow{
		ExternalID:   p.ExternalID,
		Platform:     p.Platform,
		URL:          p.URL,
		AuthorName:   p.AuthorName,
		AuthorID:     p.AuthorID,
		AuthorAvatar: p.AuthorAvatar,
		Content:      p.Text,
		Summary:      p.Summary,
		Sentiment:    p.Sentiment,
		Topics:       p.Topics,
		Category:     p.Category,
		Likes:        p.Engagement.Likes,
		Comments:     p.Engagement.Comments,
		Shares:       p.Engagement.Shares,
		Reactions:    p.Reactions,
		Media:        p.Media,
		ImageURL:     p.ImageURL,
		OCRText:      p.OCRText,
	}
	if !p.PublishedAt.IsZero() {
		published := p.PublishedAt
		row.PublishedAt = &published
	}
	return row
}

func (r postRow) post() domain.SavedPost {
	post := domain.SavedPost{
		ID:           r.ID,
		ExternalID:   r.ExternalID,
		Platform:     r.Platform,
		URL:          r.URL,
		AuthorName:   r.AuthorName,
		AuthorID:     r.AuthorID,
		AuthorAvatar: r.AuthorAvatar,
		Text:         r.Content,
		Summary:      r.Summary,
		Sentiment:    r.Sentiment,
		Topics:       r.Topics,
		Category:     r.Category,
		Engagement: domain.Engagement{
			Likes:    r.Likes,
			Comments: r.Comments,
			Shares:   r.Shares,
		},
		Reactions: r.Reactions,
		Media:     r.Media,
		ImageURL:  r.ImageURL,
		OCRText:   r.OCRText,
	}
	if r.PublishedAt != nil {
		post.PublishedAt = *r.PublishedAt
	}
	if r.CreatedAt != nil {
		post.CreatedAt = *r.CreatedAt
	}
	return post
}

// Insert saves a post and returns it with the backend-assigned id.
func (c *RESTClient) Insert(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	var rows []postRow
	err := c.do(ctx, http.MethodPost, "/rest/v1/posts", rowFromPost(post), &rows, "return=representation")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}
	saved := rows[0].post()
	return &saved, nil
}

// List returns all saved posts, newest first.
func (c *RESTClient) List(ctx context.Context) ([]domain.SavedPost, error) {
	var rows []postRow
	err := c.do(ctx, http.MethodGet, "/rest/v1/posts?select=*&order=created_at.desc", nil, &rows, "")
	if err != nil {
		return nil, err
	}
	posts := make([]domain.SavedPost, len(rows))
	for i, row := range rows {
		posts[i] = row.post()
	}
	return posts, nil
}

// Get returns one post by its backend id.
func (c *RESTClient) Get(ctx context.Context, id string) (*domain.SavedPost, error) {
	var rows []postRow
	path := "/rest/v1/posts?select=*&id=eq." + url.QueryEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows, ""); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	post := rows[0].post()
	return &post, nil
}

// Delete removes a post row by its backend id.
func (c *RESTClient) Delete(ctx context.Context, id string) error {
	path := "/rest/v1/posts?id=eq." + url.QueryEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// DeleteByPostID removes all search index rows for one post. Index rows
// carry the external post id in their metadata column.
func (c *RESTClient) DeleteByPostID(ctx context.Context, externalPostID string) error {
	path := "/rest/v1/documents?metadata-%3E%3Epost_id=eq." + url.QueryEscape(externalPostID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// do sends a request to a REST endpoint with the user's token.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out any, prefer string) error {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: rest endpoint returned %d", domain.ErrAuthRequired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rest endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
