package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who produced a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// WelcomeText seeds an empty conversation.
const WelcomeText = "Hello! I'm your AI assistant. How can I help you today?"

// ErrorReplyText is shown in place of an assistant answer when the
// backend call fails. The failure itself is logged, not displayed.
const ErrorReplyText = "I apologize, but I encountered an error. Please ensure the backend server is running and try again."

// ChatSource is a saved-post excerpt the assistant grounded its answer on.
type ChatSource struct {
	// Content is the excerpt text.
	Content string `json:"content"`

	// PostID is the external id of the post the excerpt came from.
	PostID string `json:"post_id,omitempty"`

	// Author is the post author's display name, may be empty.
	Author string `json:"author,omitempty"`

	// Score is the retrieval similarity score.
	Score float64 `json:"score"`
}

// ChatMessage is one entry in the conversation transcript.
type ChatMessage struct {
	// ID uniquely identifies the message within the transcript.
	ID string `json:"id"`

	// Role is who wrote the message.
	Role ChatRole `json:"role"`

	// Text is the message body.
	Text string `json:"text"`

	// Timestamp is when the message was created locally.
	Timestamp time.Time `json:"timestamp"`

	// Sources are the excerpts behind an assistant answer.
	Sources []ChatSource `json:"sources,omitempty"`

	// IsError marks an assistant bubble that stands in for a failed
	// backend call. Error bubbles carry no sources.
	IsError bool `json:"is_error,omitempty"`
}

// NewUserMessage creates a transcript entry for user input.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage creates a transcript entry for an assistant answer.
func NewAssistantMessage(text string, sources []ChatSource) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now().UTC(),
		Sources:   sources,
	}
}

// NewErrorReply creates the fixed apology bubble used when the
// assistant backend is unreachable.
func NewErrorReply() ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      ErrorReplyText,
		Timestamp: time.Now().UTC(),
		IsError:   true,
	}
}

// NewWelcomeMessage creates the greeting that opens a fresh transcript.
func NewWelcomeMessage() ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      WelcomeText,
		Timestamp: time.Now().UTC(),
	}
}
