package driven

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// ChatTurn is one prior exchange sent as conversation history.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatReply is the assistant's answer with its grounding excerpts.
type ChatReply struct {
	Text    string
	Sources []domain.ChatSource
}

// Assistant is the AI backend: retrieval-augmented chat over the
// user's saved posts, semantic search, and roadmap generation.
type Assistant interface {
	// Chat answers a message in the context of the prior history.
	Chat(ctx context.Context, message string, history []ChatTurn) (*ChatReply, error)

	// Search runs a semantic query against the post index. Results may
	// contain several chunks of the same post; callers merge them.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// GenerateRoadmap builds a learning plan from the user's goal and
	// their saved posts.
	GenerateRoadmap(ctx context.Context, goal string) (*domain.Roadmap, error)
}
