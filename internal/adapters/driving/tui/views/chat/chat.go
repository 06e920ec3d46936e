// Package chat provides the assistant conversation view.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// View represents the chat view: the persistent assistant conversation.
type View struct {
	styles *styles.Styles
	keymap keymap.KeyMap
	input  *input.TextField

	chat driving.ChatService
	ctx  context.Context

	transcript []domain.ChatMessage
	width      int
	height     int
	loaded     bool
	busy       bool
	err        error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km keymap.KeyMap, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		keymap: km,
		input:  input.NewTextField("Message", "ask about your posts", s),
		chat:   chat,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
	v.input.Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init triggers the transcript load.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadTranscript())
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TranscriptLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.loaded = true
		v.transcript = msg.Transcript
		return v, nil

	case messages.ChatReplyReceived:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.transcript = msg.Transcript
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		return v, v.send()
	case tea.KeyCtrlL:
		return v, v.clear()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// loadTranscript fetches the stored conversation.
func (v *View) loadTranscript() tea.Cmd {
	return func() tea.Msg {
		transcript, err := v.chat.Transcript(v.ctx)
		return messages.TranscriptLoaded{Transcript: transcript, Err: err}
	}
}

// send submits the typed message. The user bubble shows immediately;
// the reply lands when the backend answers.
func (v *View) send() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" || v.busy {
		return nil
	}

	v.busy = true
	v.err = nil
	v.input.Reset()
	v.transcript = append(v.transcript, domain.NewUserMessage(text))

	return func() tea.Msg {
		transcript, err := v.chat.Send(v.ctx, text)
		return messages.ChatReplyReceived{Transcript: transcript, Err: err}
	}
}

// clear erases the conversation.
func (v *View) clear() tea.Cmd {
	return func() tea.Msg {
		if err := v.chat.Clear(v.ctx); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		transcript, err := v.chat.Transcript(v.ctx)
		return messages.TranscriptLoaded{Transcript: transcript, Err: err}
	}
}

// View renders the chat view.
func (v *View) View() string {
	sections := make([]string, 0, len(v.transcript)*2+8)

	sections = append(sections, v.styles.Title.Render("Conversation"), "")

	bubbleWidth := v.width - 12
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for _, m := range v.visibleMessages() {
		sections = append(sections, v.renderMessage(m, bubbleWidth), "")
	}

	if v.busy {
		sections = append(sections, v.styles.Muted.Render("Thinking..."), "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.input.View())
	sections = append(sections, v.styles.Help.Render("enter send · ctrl+l clear · esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// visibleMessages returns the tail of the transcript that fits on screen.
func (v *View) visibleMessages() []domain.ChatMessage {
	fit := (v.height - 8) / 3
	if fit < 1 {
		fit = 1
	}
	if len(v.transcript) <= fit {
		return v.transcript
	}
	return v.transcript[len(v.transcript)-fit:]
}

func (v *View) renderMessage(m domain.ChatMessage, width int) string {
	switch {
	case m.IsError:
		return v.styles.ErrorMessage.Width(width).Render(m.Text)
	case m.Role == domain.RoleUser:
		bubble := v.styles.UserMessage.Width(width).Render(m.Text)
		return lipgloss.NewStyle().PaddingLeft(8).Render(bubble)
	default:
		out := v.styles.AssistantMessage.Width(width).Render(m.Text)
		if len(m.Sources) > 0 {
			out += "\n" + v.styles.Muted.Render(v.renderSources(m.Sources))
		}
		return out
	}
}

// renderSources lists the saved posts an answer drew from.
func (v *View) renderSources(sources []domain.ChatSource) string {
	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		label := s.Author
		if label == "" {
			label = s.PostID
		}
		lines = append(lines, fmt.Sprintf("  ↳ %s (%.2f)", label, s.Score))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width - 6)
}

// SetStyles swaps the styling, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.input.SetStyles(s)
}

// Transcript returns the displayed conversation.
func (v *View) Transcript() []domain.ChatMessage {
	return v.transcript
}

// Busy reports whether an assistant call is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
