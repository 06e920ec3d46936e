package domain

import (
	"strings"
	"time"
)

// SessionState describes what is currently known about the signed-in user.
// A fresh process starts in SessionUnknown until the cached session has
// been inspected, then settles on one of the other two states.
type SessionState int

const (
	// SessionUnknown means the cached session has not been checked yet.
	SessionUnknown SessionState = iota

	// SessionAnonymous means no valid session exists.
	SessionAnonymous

	// SessionAuthenticated means a valid session is active.
	SessionAuthenticated
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an authenticated user session issued by the auth backend.
type Session struct {
	// UserID is the backend's identifier for the user.
	UserID string `json:"user_id"`

	// Email is the sign-in address.
	Email string `json:"email"`

	// DisplayName is the optional profile name supplied at registration.
	DisplayName string `json:"display_name,omitempty"`

	// AvatarURL is the optional profile picture, mainly set by OAuth providers.
	AvatarURL string `json:"avatar_url,omitempty"`

	// AccessToken authorises API calls on behalf of the user.
	AccessToken string `json:"access_token"`

	// RefreshToken obtains a new access token once the current one expires.
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is when the access token stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the access token has expired or is about to.
// A 30 second buffer avoids using a token that dies mid-request.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt.Add(-30 * time.Second))
}

// ShortName returns the best available name for greeting the user:
// the display name, then the local part of the email, then "there".
func (s *Session) ShortName() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if at := strings.Index(s.Email, "@"); at > 0 {
		return s.Email[:at]
	}
	return "there"
}

// SignUpResult is the outcome of a registration attempt. When the backend
// requires email confirmation no session is issued yet.
type SignUpResult struct {
	// Session is the active session, nil when confirmation is pending.
	Session *Session

	// ConfirmationRequired is true when the user must verify their email
	// before the first sign-in.
	ConfirmationRequired bool
}
