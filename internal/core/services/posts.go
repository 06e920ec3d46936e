package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure PostService implements the interface.
var _ driving.PostService = (*PostService)(nil)

// defaultSemanticLimit caps semantic search hits before merging.
const defaultSemanticLimit = 20

// PostService manages the saved post library.
type PostService struct {
	extractor driven.PostExtractor
	store     driven.PostStore
	index     driven.SearchIndex
	assistant driven.Assistant
	prefs     driving.PreferencesService
	sessions  driving.SessionService

	mu     sync.RWMutex
	loaded []domain.SavedPost
}

// NewPostService creates a new post service.
func NewPostService(
	extractor driven.PostExtractor,
	store driven.PostStore,
	index driven.SearchIndex,
	assistant driven.Assistant,
	prefs driving.PreferencesService,
	sessions driving.SessionService,
) *PostService {
	return &PostService{
		extractor: extractor,
		store:     store,
		index:     index,
		assistant: assistant,
		prefs:     prefs,
		sessions:  sessions,
	}
}

// Fetch scrapes a post URL and maps it, without saving.
func (s *PostService) Fetch(ctx context.Context, url string) (*domain.SavedPost, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: post URL is required", domain.ErrInvalidInput)
	}

	key, err := s.prefs.ExtractionKey()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, domain.ErrExtractionKeyMissing
	}

	logger.Section("Capture")
	logger.Debug("extracting %s", url)
	raw, err := s.extractor.Extract(ctx, url, key)
	if err != nil {
		return nil, err
	}

	post, err := domain.NewSavedPost(raw)
	if err != nil {
		return nil, err
	}
	if post.URL == "" {
		post.URL = url
	}
	return post, nil
}

// Save persists a fetched post to the library.
func (s *PostService) Save(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error) {
	if err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	saved, err := s.store.Insert(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("saving post: %w", err)
	}
	logger.Info("saved post %s by %s", saved.ID, saved.AuthorName)

	s.invalidate()
	return saved, nil
}

// Capture is Fetch followed by Save.
func (s *PostService) Capture(ctx context.Context, url string) (*domain.SavedPost, error) {
	if err := s.requireAuth(ctx); err != nil {
		return nil, err
	}
	post, err := s.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, post)
}

// List returns the library, newest first. The result is kept for
// keyword search until the library changes. The table is readable
// without a token, but the client still asks for a session so the
// whole feed sits behind one sign-in.
func (s *PostService) List(ctx context.Context) ([]domain.SavedPost, error) {
	if err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	s.mu.Lock()
	s.loaded = posts
	s.mu.Unlock()
	return posts, nil
}

// Delete removes a post row, then best effort removes its search index
// rows. An index failure is logged and swallowed: the orphaned rows are
// invisible to listing and only cost a stale search hit.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.requireAuth(ctx); err != nil {
		return err
	}

	post, err := s.findLoaded(id)
	if err != nil {
		post, err = s.store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("looking up post %s: %w", id, err)
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting post %s: %w", id, err)
	}
	s.invalidate()

	if post.ExternalID != "" {
		if err := s.index.DeleteByPostID(ctx, post.ExternalID); err != nil {
			logger.Warn("search index rows for post %s left behind: %v", post.ExternalID, err)
		}
	}
	return nil
}

// Search queries the library in the given mode.
func (s *PostService) Search(ctx context.Context, query string, mode domain.SearchMode) ([]domain.SearchResult, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, mode)
	}
	if err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	if mode == domain.SearchSemantic {
		hits, err := s.assistant.Search(ctx, query, defaultSemanticLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
		}
		return domain.MergeResultsByPost(hits), nil
	}

	posts, err := s.keywordCorpus(ctx)
	if err != nil {
		return nil, err
	}
	matched := domain.FilterPostsKeyword(posts, query)
	results := make([]domain.SearchResult, 0, len(matched))
	for _, p := range matched {
		results = append(results, domain.SearchResult{
			Content: p.Text,
			PostID:  p.ExternalID,
			Author:  p.AuthorName,
			URL:     p.URL,
			Score:   1.0,
		})
	}
	return results, nil
}

// keywordCorpus returns the loaded list, fetching it on first use.
func (s *PostService) keywordCorpus(ctx context.Context) ([]domain.SavedPost, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded != nil {
		return loaded, nil
	}
	return s.List(ctx)
}

func (s *PostService) findLoaded(id string) (*domain.SavedPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			return &s.loaded[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *PostService) invalidate() {
	s.mu.Lock()
	s.loaded = nil
	s.mu.Unlock()
}

func (s *PostService) requireAuth(ctx context.Context) error {
	if _, err := s.sessions.Current(ctx); err != nil {
		return err
	}
	if s.sessions.State() != domain.SessionAuthenticated {
		return domain.ErrAuthRequired
	}
	return nil
}
