package mcp

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// mockPostService implements driving.PostService for testing.
type mockPostService struct {
	posts    []domain.SavedPost
	results  []domain.SearchResult
	captured *domain.SavedPost
	gotMode  domain.SearchMode
	gotURL   string
	err      error
}

func (m *mockPostService) Fetch(ctx context.Context, url string) (*domain.SavedPost, error) {
	return m.captured, m.err
}

func (m *mockPostService) Save(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	return post, m.err
}

func (m *mockPostService) Capture(ctx context.Context, url string) (*domain.SavedPost, error) {
	m.gotURL = url
	return m.captured, m.err
}

func (m *mockPostService) List(ctx context.Context) ([]domain.SavedPost, error) {
	return m.posts, m.err
}

func (m *mockPostService) Delete(ctx context.Context, id string) error {
	return m.err
}

func (m *mockPostService) Search(
	ctx context.Context, query string, mode domain.SearchMode,
) ([]domain.SearchResult, error) {
	m.gotMode = mode
	return m.results, m.err
}

// mockChatService implements driving.ChatService for testing.
type mockChatService struct {
	transcript []domain.ChatMessage
	gotText    string
	err        error
}

func (m *mockChatService) Transcript(ctx context.Context) ([]domain.ChatMessage, error) {
	return m.transcript, m.err
}

func (m *mockChatService) Send(ctx context.Context, text string) ([]domain.ChatMessage, error) {
	m.gotText = text
	return m.transcript, m.err
}

func (m *mockChatService) Clear(ctx context.Context) error {
	return m.err
}

// mockRoadmapService implements driving.RoadmapService for testing.
type mockRoadmapService struct {
	roadmap   *domain.Roadmap
	completed map[string]bool
	err       error
}

func (m *mockRoadmapService) Current(ctx context.Context) (*domain.Roadmap, map[string]bool, error) {
	return m.roadmap, m.completed, m.err
}

func (m *mockRoadmapService) Generate(ctx context.Context, goal string) (*domain.Roadmap, error) {
	return m.roadmap, m.err
}

func (m *mockRoadmapService) ToggleStage(ctx context.Context, stageID string) (map[string]bool, error) {
	return m.completed, m.err
}
