// Package supabase provides adapters for the hosted backend: the auth
// API and the post library's REST interface.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/oauth"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure AuthClient implements the interface.
var _ driven.AuthAPI = (*AuthClient)(nil)

// Default configuration values.
const (
	DefaultAuthTimeout  = 30 * time.Second
	DefaultOAuthTimeout = 3 * time.Minute
)

// Config holds the connection settings shared by the supabase adapters.
type Config struct {
	// BaseURL is the project URL, e.g. https://xyz.supabase.co.
	BaseURL string

	// AnonKey is the project's publishable API key.
	AnonKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// AuthClient talks to the /auth/v1 endpoints.
type AuthClient struct {
	client  *http.Client
	baseURL string
	anonKey string

	// openBrowser and waitTimeout are swappable for tests.
	openBrowser  func(url string) error
	oauthTimeout time.Duration
}

// NewAuthClient creates a new auth client.
func NewAuthClient(cfg Config) (*AuthClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("supabase: base URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase: anon key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultAuthTimeout
	}

	return &AuthClient{
		client:       &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		anonKey:      cfg.AnonKey,
		openBrowser:  oauth.OpenBrowser,
		oauthTimeout: DefaultOAuthTimeout,
	}, nil
}

// sessionResponse is the /auth/v1 session payload.
type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	} `json:"user"`
}

// errorResponse is the /auth/v1 failure payload. Older endpoints use
// msg, newer ones use error_description or message.
type errorResponse struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	default:
		return e.ErrorDescription
	}
}

func (r *sessionResponse) session() *domain.Session {
	return &domain.Session{
		UserID:       r.User.ID,
		Email:        r.User.Email,
		DisplayName:  r.User.UserMetadata.Name,
		AvatarURL:    r.User.UserMetadata.AvatarURL,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
}

// SignUp registers a new account. A response without an access token
// means the project requires email confirmation first.
func (c *AuthClient) SignUp(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if displayName != "" {
		body["data"] = map[string]string{"name": displayName}
	}

	var resp sessionResponse
	if err := c.post(ctx, "/auth/v1/signup", body, "", &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return &domain.SignUpResult{ConfirmationRequired: true}, nil
	}
	return &domain.SignUpResult{Session: resp.session()}, nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp sessionResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", body, "", &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// SignInWithOAuth runs the provider's browser flow with PKCE: start a
// local callback server, open the authorize URL, exchange the returned
// code for a session.
func (c *AuthClient) SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error) {
	state := oauth.GenerateState()
	server := oauth.NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}
	defer server.Stop()

	cfg := &oauth2.Config{
		ClientID:    c.anonKey,
		RedirectURL: server.RedirectURI(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.baseURL + "/auth/v1/authorize",
			TokenURL: c.baseURL + "/auth/v1/token",
		},
	}

	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("provider", provider),
	)

	logger.Info("opening browser for %s sign-in", provider)
	if err := c.openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("opening browser: %w", err)
	}

	code, err := server.WaitForCode(c.oauthTimeout)
	if err != nil {
		return nil, fmt.Errorf("waiting for callback: %w", err)
	}

	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	session := &domain.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if err := c.fetchUser(ctx, session); err != nil {
		logger.Warn("fetching user profile: %v", err)
	}
	return session, nil
}

// RefreshSession trades a refresh token for a fresh session.
func (c *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var resp sessionResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=refresh_token", body, "", &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// SignOut revokes the session on the backend.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "/auth/v1/logout", map[string]string{}, accessToken, nil)
}

// RequestPasswordReset sends a reset email.
func (c *AuthClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/v1/recover", map[string]string{"email": email}, "", nil)
}

// fetchUser fills the session's profile fields from /auth/v1/user.
func (c *AuthClient) fetchUser(ctx context.Context, session *domain.Session) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user endpoint returned %d", resp.StatusCode)
	}

	var user struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	session.UserID = user.ID
	session.Email = user.Email
	session.DisplayName = user.UserMetadata.Name
	session.AvatarURL = user.UserMetadata.AvatarURL
	return nil
}

// post sends a JSON request to an auth endpoint and decodes the
// response into out when it is non-nil. Failure payloads are mapped
// into domain errors.
func (c *AuthClient) post(ctx context.Context, path string, body any, userToken string, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if userToken != "" {
		req.Header.Set("Authorization", "Bearer "+userToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			return domain.MapAuthMessage(errResp.text())
		}
		return domain.MapAuthMessage(fmt.Sprintf("auth endpoint returned %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
