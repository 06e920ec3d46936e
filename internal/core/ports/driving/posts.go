package driving

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// PostService manages the saved post library: capture, listing,
// deletion and search.
type PostService interface {
	// Fetch scrapes a post URL and maps it, without saving.
	Fetch(ctx context.Context, url string) (*domain.SavedPost, error)

	// Save persists a fetched post to the library.
	Save(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error)

	// Capture is Fetch followed by Save.
	Capture(ctx context.Context, url string) (*domain.SavedPost, error)

	// List returns the library, newest first.
	List(ctx context.Context) ([]domain.SavedPost, error)

	// Delete removes a post and, best effort, its search index rows.
	Delete(ctx context.Context, id string) error

	// Search queries the library. Keyword mode filters the loaded list
	// locally; semantic mode asks the backend's vector index.
	Search(ctx context.Context, query string, mode domain.SearchMode) ([]domain.SearchResult, error)
}
