package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
	"github.com/postchat-labs/postchat-cli/internal/logger"
)

// Ensure SessionService implements the interfaces.
var (
	_ driving.SessionService = (*SessionService)(nil)
	_ driven.TokenProvider   = (*SessionService)(nil)
)

// keySession is where the serialised session lives in the local store.
const keySession = "session.cached"

// SessionService manages the authentication lifecycle. It restores the
// cached session lazily on first use, refreshes expired tokens
// transparently and notifies subscribers on every change.
type SessionService struct {
	api   driven.AuthAPI
	cache driven.KVStore

	mu        sync.RWMutex
	state     domain.SessionState
	session   *domain.Session
	listeners map[int]driving.SessionListener
	nextID    int
}

// NewSessionService creates a new session service. The state starts
// unknown until Current or State is asked to resolve it.
func NewSessionService(api driven.AuthAPI, cache driven.KVStore) *SessionService {
	return &SessionService{
		api:       api,
		cache:     cache,
		state:     domain.SessionUnknown,
		listeners: map[int]driving.SessionListener{},
	}
}

// Current returns the active session, restoring and refreshing the
// cached one on first call. Returns nil, nil when anonymous.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.RLock()
	state, session := s.state, s.session
	s.mu.RUnlock()

	if state != domain.SessionUnknown {
		return session, nil
	}
	return s.restore(ctx)
}

// restore loads the cached session, refreshing it if expired. Any
// failure settles the state on anonymous rather than erroring: a stale
// cache is not the caller's problem.
func (s *SessionService) restore(ctx context.Context) (*domain.Session, error) {
	values, err := s.cache.Get(keySession)
	if err != nil {
		return nil, fmt.Errorf("reading cached session: %w", err)
	}

	blob, ok := values[keySession]
	if !ok || blob == "" {
		s.setSession(nil, false)
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(blob), &session); err != nil {
		logger.Warn("discarding unreadable cached session: %v", err)
		s.clearCache()
		s.setSession(nil, false)
		return nil, nil
	}

	if session.IsExpired() {
		logger.Debug("cached session expired, refreshing")
		refreshed, err := s.api.RefreshSession(ctx, session.RefreshToken)
		if err != nil {
			logger.Info("session refresh failed, signing out locally: %v", err)
			s.clearCache()
			s.setSession(nil, true)
			return nil, nil
		}
		s.persist(refreshed)
		s.setSession(refreshed, true)
		return refreshed, nil
	}

	s.setSession(&session, false)
	return &session, nil
}

// State returns the current session state without touching the network.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SignUp registers a new account. When no email confirmation is needed
// the returned session becomes the active one.
func (s *SessionService) SignUp(ctx context.Context, email, password, displayName string) (*domain.SignUpResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	result, err := s.api.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	if result.Session != nil {
		s.persist(result.Session)
		s.setSession(result.Session, true)
	}
	return result, nil
}

// SignIn authenticates with email and password.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	session, err := s.api.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.persist(session)
	s.setSession(session, true)
	logger.Info("signed in as %s", session.Email)
	return session, nil
}

// SignInWithOAuth runs the provider's browser flow.
func (s *SessionService) SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error) {
	session, err := s.api.SignInWithOAuth(ctx, provider)
	if err != nil {
		return nil, err
	}
	s.persist(session)
	s.setSession(session, true)
	logger.Info("signed in via %s as %s", provider, session.Email)
	return session, nil
}

// SignOut tears the session down locally first, then revokes it on the
// backend. A remote failure is logged, not returned: the local state is
// already gone and a second SignOut must stay a quiet no-op.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	s.clearCache()
	s.setSession(nil, true)

	if session == nil || session.AccessToken == "" {
		return nil
	}
	if err := s.api.SignOut(ctx, session.AccessToken); err != nil {
		logger.Warn("remote sign-out failed: %v", err)
	}
	return nil
}

// ResetPassword requests a password reset email.
func (s *SessionService) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	return s.api.RequestPasswordReset(ctx, email)
}

// Subscribe registers a listener for session changes.
func (s *SessionService) Subscribe(fn driving.SessionListener) driving.Unsubscribe {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// GetToken returns a valid access token, refreshing if needed.
func (s *SessionService) GetToken(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", domain.ErrAuthRequired
	}
	if !session.IsExpired() {
		return session.AccessToken, nil
	}

	refreshed, err := s.api.RefreshSession(ctx, session.RefreshToken)
	if err != nil {
		s.clearCache()
		s.setSession(nil, true)
		return "", fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	s.persist(refreshed)
	s.setSession(refreshed, true)
	return refreshed.AccessToken, nil
}

// IsAuthenticated returns true if a valid session is available.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == domain.SessionAuthenticated
}

// persist writes the session to the local store. A write failure only
// costs the next process start a sign-in, so it is logged and ignored.
func (s *SessionService) persist(session *domain.Session) {
	blob, err := json.Marshal(session)
	if err != nil {
		logger.Warn("serialising session: %v", err)
		return
	}
	if err := s.cache.Set(map[string]string{keySession: string(blob)}); err != nil {
		logger.Warn("caching session: %v", err)
	}
}

func (s *SessionService) clearCache() {
	if err := s.cache.Remove(keySession); err != nil {
		logger.Warn("clearing cached session: %v", err)
	}
}

// setSession updates the state and, when notify is set, fans the change
// out to subscribers. Listeners run outside the lock.
func (s *SessionService) setSession(session *domain.Session, notify bool) {
	s.mu.Lock()
	s.session = session
	if session != nil {
		s.state = domain.SessionAuthenticated
	} else {
		s.state = domain.SessionAnonymous
	}
	var listeners []driving.SessionListener
	if notify {
		listeners = make([]driving.SessionListener, 0, len(s.listeners))
		for _, fn := range s.listeners {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
