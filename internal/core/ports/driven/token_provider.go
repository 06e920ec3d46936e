package driven

import "context"

// TokenProvider provides access tokens for authenticated backend calls.
// Implementations handle token refresh transparently, so adapters never
// see an expired token.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it is refreshed first.
	// Returns domain.ErrAuthRequired when no session exists.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a valid session is available.
	IsAuthenticated() bool
}
