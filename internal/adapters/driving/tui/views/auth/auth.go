// Package auth provides the sign-in and registration view for the TUI.
package auth

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// Mode selects between the sign-in and registration forms.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeRegister
)

// View represents the authentication view.
type View struct {
	styles *styles.Styles
	keymap keymap.KeyMap

	email    *input.TextField
	password *input.TextField
	name     *input.TextField

	session driving.SessionService
	ctx     context.Context

	mode    Mode
	focus   int
	width   int
	height  int
	busy    bool
	err     error
	notice  string
	pending *domain.SignUpResult
}

// NewView creates a new authentication view.
func NewView(s *styles.Styles, km keymap.KeyMap, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:   s,
		keymap:   km,
		email:    input.NewTextField("Email", "you@example.com", s),
		password: input.NewPasswordField("Password", s),
		name:     input.NewTextField("Display name", "optional", s),
		session:  session,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
	v.email.Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.email.Init()
}

// Update handles messages for the authentication view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SignInCompleted:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = ""
		return v, func() tea.Msg {
			return messages.SessionChanged{Session: msg.Session}
		}

	case messages.ErrorOccurred:
		v.busy = false
		v.err = msg.Err
		return v, nil
	}

	return v, v.forwardToFocused(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab:
		v.cycleFocus(1)
		return v, nil
	case tea.KeyShiftTab:
		v.cycleFocus(-1)
		return v, nil
	case tea.KeyEnter:
		return v, v.submit()
	case tea.KeyCtrlR:
		v.toggleMode()
		return v, nil
	}

	return v, v.forwardToFocused(msg)
}

// fields returns the active form fields in focus order.
func (v *View) fields() []*input.TextField {
	if v.mode == ModeRegister {
		return []*input.TextField{v.email, v.password, v.name}
	}
	return []*input.TextField{v.email, v.password}
}

func (v *View) cycleFocus(step int) {
	fields := v.fields()
	fields[v.focus].Blur()
	v.focus = (v.focus + step + len(fields)) % len(fields)
	fields[v.focus].Focus()
}

func (v *View) toggleMode() {
	if v.mode == ModeSignIn {
		v.mode = ModeRegister
	} else {
		v.mode = ModeSignIn
		if v.focus >= len(v.fields()) {
			v.focus = 0
			v.email.Focus()
		}
	}
	v.err = nil
	v.notice = ""
}

func (v *View) forwardToFocused(msg tea.Msg) tea.Cmd {
	fields := v.fields()
	var cmd tea.Cmd
	fields[v.focus], cmd = fields[v.focus].Update(msg)
	return cmd
}

// submit runs the sign-in or registration call.
func (v *View) submit() tea.Cmd {
	email := v.email.Value()
	password := v.password.Value()
	if email == "" || password == "" {
		v.err = domain.ErrInvalidInput
		return nil
	}

	v.busy = true
	v.err = nil

	if v.mode == ModeRegister {
		name := v.name.Value()
		return func() tea.Msg {
			result, err := v.session.SignUp(v.ctx, email, password, name)
			if err != nil {
				return messages.SignInCompleted{Err: err}
			}
			if result.ConfirmationRequired {
				return messages.SignInCompleted{Err: domain.ErrEmailNotConfirmed}
			}
			return messages.SignInCompleted{Session: result.Session}
		}
	}

	return func() tea.Msg {
		session, err := v.session.SignIn(v.ctx, email, password)
		if err != nil {
			return messages.SignInCompleted{Err: err}
		}
		return messages.SignInCompleted{Session: session}
	}
}

// View renders the authentication view.
func (v *View) View() string {
	sections := make([]string, 0, 10)

	title := "Sign in to PostChat"
	if v.mode == ModeRegister {
		title = "Create a PostChat account"
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	for _, field := range v.fields() {
		sections = append(sections, field.View(), "")
	}

	if v.busy {
		sections = append(sections, v.styles.Muted.Render("Signing in..."), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(presentError(v.err)), "")
	}
	if v.notice != "" {
		sections = append(sections, v.styles.Success.Render(v.notice), "")
	}

	hint := "enter submit · tab next field · ctrl+r register · esc back"
	if v.mode == ModeRegister {
		hint = "enter submit · tab next field · ctrl+r sign in · esc back"
	}
	sections = append(sections, v.styles.Help.Render(hint))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// presentError maps auth failures to the messages shown on the form.
func presentError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		return "Check your inbox to confirm your email, then sign in"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Email and password are required"
	default:
		return err.Error()
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, field := range []*input.TextField{v.email, v.password, v.name} {
		field.SetWidth(min(width-6, 48))
	}
}

// SetStyles swaps the styling, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.email.SetStyles(s)
	v.password.SetStyles(s)
	v.name.SetStyles(s)
}

// Mode returns the active form mode.
func (v *View) CurrentMode() Mode {
	return v.mode
}

// Busy reports whether a submission is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the form.
func (v *View) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.name.Reset()
	v.focus = 0
	v.err = nil
	v.notice = ""
	v.busy = false
	v.email.Focus()
}
