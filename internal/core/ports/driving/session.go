package driving

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// SessionListener is notified whenever the session changes. A nil
// session means the user signed out.
type SessionListener func(session *domain.Session)

// Unsubscribe removes a previously registered listener.
type Unsubscribe func()

// SessionService manages the user's authentication lifecycle: sign-in,
// sign-out, cached session restore and change notification.
type SessionService interface {
	// Current returns the active session, restoring and refreshing the
	// cached one on first call. Returns nil, nil when anonymous.
	Current(ctx context.Context) (*domain.Session, error)

	// State returns what is currently known about the session without
	// touching the network.
	State() domain.SessionState

	// SignUp registers a new account and, unless email confirmation is
	// pending, signs the user in.
	SignUp(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignInWithOAuth runs the provider's browser flow.
	SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error)

	// SignOut tears the session down locally and remotely. Calling it
	// without a session is a no-op.
	SignOut(ctx context.Context) error

	// ResetPassword requests a password reset email.
	ResetPassword(ctx context.Context, email string) error

	// Subscribe registers a listener for session changes. The returned
	// function unsubscribes it.
	Subscribe(fn SessionListener) Unsubscribe
}
