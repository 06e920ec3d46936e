package auth

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// MockSessionService implements the subset of driving.SessionService the
// auth view uses for testing.
type MockSessionService struct {
	SignInFunc func(ctx context.Context, email, password string) (*domain.Session, error)
	SignUpFunc func(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error)
}

func (m *MockSessionService) Current(ctx context.Context) (*domain.Session, error) { return nil, nil }
func (m *MockSessionService) State() domain.SessionState                           { return domain.SessionUnknown }

func (m *MockSessionService) SignUp(
	ctx context.Context, email, password, displayName string,
) (*domain.SignUpResult, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, displayName)
	}
	return &domain.SignUpResult{}, nil
}

func (m *MockSessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockSessionService) SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error) {
	return nil, nil
}

func (m *MockSessionService) SignOut(ctx context.Context) error { return nil }

func (m *MockSessionService) ResetPassword(ctx context.Context, email string) error { return nil }

func (m *MockSessionService) Subscribe(fn driving.SessionListener) driving.Unsubscribe {
	return func() {}
}

func newTestView(session *MockSessionService) *View {
	v := NewView(nil, keymap.DefaultKeyMap(), session)
	v.SetDimensions(80, 24)
	return v
}

func typeInto(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// TestView_SignIn_Success tests a successful sign-in submission.
func TestView_SignIn_Success(t *testing.T) {
	var gotEmail, gotPassword string
	v := newTestView(&MockSessionService{
		SignInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			gotEmail = email
			gotPassword = password
			return &domain.Session{UserID: "u1", Email: email}, nil
		},
	})

	typeInto(v, "ada@example.com")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "secret")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Equal(t, "secret", gotPassword)
	completed, ok := msg.(messages.SignInCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "u1", completed.Session.UserID)
}

// TestView_SignIn_InvalidCredentials tests the friendly error message.
func TestView_SignIn_InvalidCredentials(t *testing.T) {
	v := newTestView(&MockSessionService{
		SignInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	typeInto(v, "ada@example.com")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "wrong")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.ErrorIs(t, v.Err(), domain.ErrInvalidCredentials)
	assert.Contains(t, v.View(), "Invalid email or password")
}

// TestView_SignIn_EmptyFields tests that blank submissions are rejected locally.
func TestView_SignIn_EmptyFields(t *testing.T) {
	v := newTestView(&MockSessionService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

// TestView_Register_Success tests the registration form.
func TestView_Register_Success(t *testing.T) {
	var gotName string
	v := newTestView(&MockSessionService{
		SignUpFunc: func(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error) {
			gotName = displayName
			return &domain.SignUpResult{Session: &domain.Session{UserID: "u2", Email: email}}, nil
		},
	})

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, ModeRegister, v.CurrentMode())

	typeInto(v, "grace@example.com")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "secret")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "Grace")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, "Grace", gotName)
	completed, ok := msg.(messages.SignInCompleted)
	require.True(t, ok)
	assert.Equal(t, "u2", completed.Session.UserID)
}

// TestView_Register_ConfirmationRequired tests pending email confirmation.
func TestView_Register_ConfirmationRequired(t *testing.T) {
	v := newTestView(&MockSessionService{
		SignUpFunc: func(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error) {
			return &domain.SignUpResult{ConfirmationRequired: true}, nil
		},
	})

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	typeInto(v, "new@example.com")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "secret")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Contains(t, v.View(), "confirm your email")
}

// TestView_ModeToggle tests flipping between sign-in and registration.
func TestView_ModeToggle(t *testing.T) {
	v := newTestView(&MockSessionService{})

	assert.Equal(t, ModeSignIn, v.CurrentMode())
	assert.Contains(t, v.View(), "Sign in to PostChat")

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, ModeRegister, v.CurrentMode())
	assert.Contains(t, v.View(), "Create a PostChat account")

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, ModeSignIn, v.CurrentMode())
}

// TestView_Reset tests clearing the form.
func TestView_Reset(t *testing.T) {
	v := newTestView(&MockSessionService{})
	typeInto(v, "ada@example.com")

	v.Reset()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}
