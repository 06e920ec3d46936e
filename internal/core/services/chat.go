package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// keyTranscript is where the serialised conversation lives.
const keyTranscript = "chat.transcript"

// historyWindow limits how many prior messages are sent as context.
const historyWindow = 20

// ChatService manages the persistent assistant conversation.
type ChatService struct {
	assistant driven.Assistant
	store     driven.KVStore
}

// NewChatService creates a new chat service.
func NewChatService(assistant driven.Assistant, store driven.KVStore) *ChatService {
	return &ChatService{assistant: assistant, store: store}
}

// Transcript returns the stored conversation. An empty transcript is
// seeded with the greeting, which is only persisted once the user sends
// their first message.
func (s *ChatService) Transcript(_ context.Context) ([]domain.ChatMessage, error) {
	transcript, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(transcript) == 0 {
		transcript = []domain.ChatMessage{domain.NewWelcomeMessage()}
	}
	return transcript, nil
}

// Send appends the user's message, persists the transcript before the
// backend call, then appends the assistant's reply. A backend failure
// becomes the fixed apology bubble; the real error is only logged.
func (s *ChatService) Send(ctx context.Context, text string) ([]domain.ChatMessage, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}

	transcript, err := s.Transcript(ctx)
	if err != nil {
		return nil, err
	}

	transcript = append(transcript, domain.NewUserMessage(text))
	if err := s.save(transcript); err != nil {
		return nil, err
	}

	reply, err := s.assistant.Chat(ctx, text, history(transcript[:len(transcript)-1]))
	if err != nil {
		logger.Warn("assistant call failed: %v", err)
		transcript = append(transcript, domain.NewErrorReply())
	} else {
		transcript = append(transcript, domain.NewAssistantMessage(reply.Text, reply.Sources))
	}

	if err := s.save(transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// Clear erases the stored transcript.
func (s *ChatService) Clear(_ context.Context) error {
	if err := s.store.Remove(keyTranscript); err != nil {
		return fmt.Errorf("clearing transcript: %w", err)
	}
	return nil
}

// history converts transcript entries into backend chat turns, keeping
// only the most recent window and skipping error bubbles.
func history(transcript []domain.ChatMessage) []driven.ChatTurn {
	start := 0
	if len(transcript) > historyWindow {
		start = len(transcript) - historyWindow
	}
	turns := make([]driven.ChatTurn, 0, len(transcript)-start)
	for _, msg := range transcript[start:] {
		if msg.IsError {
			continue
		}
		turns = append(turns, driven.ChatTurn{Role: string(msg.Role), Text: msg.Text})
	}
	return turns
}

func (s *ChatService) load() ([]domain.ChatMessage, error) {
	values, err := s.store.Get(keyTranscript)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	blob, ok := values[keyTranscript]
	if !ok || blob == "" {
		return nil, nil
	}
	var transcript []domain.ChatMessage
	if err := json.Unmarshal([]byte(blob), &transcript); err != nil {
		logger.Warn("discarding unreadable transcript: %v", err)
		return nil, nil
	}
	return transcript, nil
}

func (s *ChatService) save(transcript []domain.ChatMessage) error {
	blob, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("serialising transcript: %w", err)
	}
	if err := s.store.Set(map[string]string{keyTranscript: string(blob)}); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}
