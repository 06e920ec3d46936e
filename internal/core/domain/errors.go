package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials indicates the email or password was rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed indicates sign-in was refused because the
	// address has not been verified yet.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrSessionExpired indicates the cached session could not be refreshed.
	ErrSessionExpired = errors.New("session expired")

	// Capture Errors.

	// ErrExtractionFailed indicates the scraping run returned no usable post.
	ErrExtractionFailed = errors.New("post extraction failed")

	// ErrExtractionKeyMissing indicates no scraping API key is configured.
	ErrExtractionKeyMissing = errors.New("extraction API key not configured")

	// ErrRateLimited indicates the scraping API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Backend Errors.

	// ErrAssistantUnavailable indicates the assistant backend could not be
	// reached or returned a failure.
	ErrAssistantUnavailable = errors.New("assistant backend unavailable")

	// ErrSearchUnavailable indicates semantic search is not available.
	ErrSearchUnavailable = errors.New("semantic search unavailable")

	// ErrPersistence indicates a local store read or write failed.
	ErrPersistence = errors.New("local persistence failed")
)

// AuthError carries a human-readable reason from the auth backend that
// does not map onto one of the sentinel errors above.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// upstream message for a rejected password sign-in, rewritten before display.
const upstreamInvalidLogin = "Invalid login credentials"

// MapAuthMessage converts an upstream auth failure message into a domain
// error. Known messages map to sentinels, anything else is passed through
// verbatim as an AuthError.
func MapAuthMessage(msg string) error {
	switch msg {
	case upstreamInvalidLogin:
		return ErrInvalidCredentials
	case "Email not confirmed":
		return ErrEmailNotConfirmed
	case "":
		return &AuthError{Reason: "authentication failed"}
	default:
		return &AuthError{Reason: msg}
	}
}
