package driven

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// PostStore is the hosted post library. Rows are scoped to the signed-in
// user by the backend's row-level security, not by this interface.
type PostStore interface {
	// Insert saves a post and returns it with the backend-assigned id.
	Insert(ctx context.Context, post *domain.SavedPost) (*domain.SavedPost, error)

	// List returns all saved posts, newest first.
	List(ctx context.Context) ([]domain.SavedPost, error)

	// Get returns one post by its backend id.
	Get(ctx context.Context, id string) (*domain.SavedPost, error)

	// Delete removes a post row by its backend id.
	Delete(ctx context.Context, id string) error
}

// SearchIndex is the backend's vector index over post content. The
// index references posts by their external (platform) id.
type SearchIndex interface {
	// DeleteByPostID removes all index rows for one post.
	DeleteByPostID(ctx context.Context, externalPostID string) error
}
