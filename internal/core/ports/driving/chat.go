package driving

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// ChatService manages the persistent assistant conversation.
type ChatService interface {
	// Transcript returns the stored conversation, seeding a greeting
	// into an empty one.
	Transcript(ctx context.Context) ([]domain.ChatMessage, error)

	// Send appends the user's message to the transcript, asks the
	// assistant, appends the reply and returns the updated transcript.
	// A backend failure yields an apology bubble, not an error.
	Send(ctx context.Context, text string) ([]domain.ChatMessage, error)

	// Clear erases the stored transcript.
	Clear(ctx context.Context) error
}
