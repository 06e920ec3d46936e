package services

import (
	"context"
	"fmt"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockAuthAPI implements driven.AuthAPI for testing.
type mockAuthAPI struct {
	session      *domain.Session
	signUpResult *domain.SignUpResult
	refreshed    *domain.Session

	signInErr  error
	signUpErr  error
	refreshErr error
	signOutErr error
	resetErr   error

	signOutCalls int
	refreshCalls int
	resetEmails  []string
}

func (m *mockAuthAPI) SignUp(_ context.Context, _, _, _ string) (*domain.SignUpResult, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.signUpResult, nil
}

func (m *mockAuthAPI) SignInWithPassword(_ context.Context, _, _ string) (*domain.Session, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.session, nil
}

func (m *mockAuthAPI) SignInWithOAuth(_ context.Context, _ string) (*domain.Session, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.session, nil
}

func (m *mockAuthAPI) RefreshSession(_ context.Context, _ string) (*domain.Session, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshed, nil
}

func (m *mockAuthAPI) SignOut(_ context.Context, _ string) error {
	m.signOutCalls++
	return m.signOutErr
}

func (m *mockAuthAPI) RequestPasswordReset(_ context.Context, email string) error {
	m.resetEmails = append(m.resetEmails, email)
	return m.resetErr
}

// mockExtractor implements driven.PostExtractor for testing.
type mockExtractor struct {
	raw     domain.RawPost
	err     error
	gotURL  string
	gotKey  string
	calls   int
}

func (m *mockExtractor) Extract(_ context.Context, url, apiKey string) (domain.RawPost, error) {
	m.calls++
	m.gotURL = url
	m.gotKey = apiKey
	if m.err != nil {
		return nil, m.err
	}
	return m.raw, nil
}

// mockPostStore implements driven.PostStore for testing.
type mockPostStore struct {
	posts     []domain.SavedPost
	insertErr error
	listErr   error
	deleteErr error

	deleted []string
	nextID  int
}

func (m *mockPostStore) Insert(_ context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.nextID++
	saved := *post
	saved.ID = fmt.Sprintf("row-%d", m.nextID)
	m.posts = append([]domain.SavedPost{saved}, m.posts...)
	return &saved, nil
}

func (m *mockPostStore) List(_ context.Context) ([]domain.SavedPost, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.posts, nil
}

func (m *mockPostStore) Get(_ context.Context, id string) (*domain.SavedPost, error) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			return &m.posts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPostStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	kept := m.posts[:0]
	for _, p := range m.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	return nil
}

// mockSearchIndex implements driven.SearchIndex for testing.
type mockSearchIndex struct {
	deleteErr error
	deleted   []string
}

func (m *mockSearchIndex) DeleteByPostID(_ context.Context, externalPostID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, externalPostID)
	return nil
}

// mockAssistant implements driven.Assistant for testing.
type mockAssistant struct {
	reply      *driven.ChatReply
	hits       []domain.SearchResult
	roadmap    *domain.Roadmap
	chatErr    error
	searchErr  error
	roadmapErr error

	gotMessage string
	gotHistory []driven.ChatTurn
	gotQuery   string
}

func (m *mockAssistant) Chat(_ context.Context, message string, history []driven.ChatTurn) (*driven.ChatReply, error) {
	m.gotMessage = message
	m.gotHistory = history
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	return m.reply, nil
}

func (m *mockAssistant) Search(_ context.Context, query string, _ int) ([]domain.SearchResult, error) {
	m.gotQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockAssistant) GenerateRoadmap(_ context.Context, _ string) (*domain.Roadmap, error) {
	if m.roadmapErr != nil {
		return nil, m.roadmapErr
	}
	return m.roadmap, nil
}
