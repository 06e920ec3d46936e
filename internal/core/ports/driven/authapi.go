package driven

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// AuthAPI talks to the hosted auth backend. Implementations translate
// upstream failure payloads via domain.MapAuthMessage so callers only
// see domain errors.
type AuthAPI interface {
	// SignUp registers a new account. When the backend requires email
	// confirmation the returned result carries no session yet.
	SignUp(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error)

	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)

	// SignInWithOAuth runs the provider's browser flow and returns the
	// resulting session. Blocks until the flow completes or ctx ends.
	SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error)

	// RefreshSession trades a refresh token for a fresh session.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error)

	// SignOut revokes the session on the backend.
	SignOut(ctx context.Context, accessToken string) error

	// RequestPasswordReset sends a reset email. Always succeeds for
	// well-formed addresses regardless of whether an account exists.
	RequestPasswordReset(ctx context.Context, email string) error
}
