package application

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/output"
	"garmin-gateway/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// Session struct - the active authenticated Garmin context. A Session is
// never mutated after creation; rotation swaps in a new one.
type Session struct {
	Client        output.GarminSession
	Account       string
	EstablishedAt time.Time
}

// SessionSource interface - gives readers one snapshot of the active session
type SessionSource interface {
	Current() *Session
}

// AuthService struct - Application service implementing session bootstrap and rotation
type AuthService struct {
	store    output.SessionStore
	client   output.GarminClient
	email    string
	password string
	now      func() time.Time

	// writers serialize on mu; readers only load active
	mu     sync.Mutex
	active atomic.Pointer[Session]
}

// NewAuthService func - Creates new auth service. email and password are the
// configured account credentials used for the first login.
func NewAuthService(store output.SessionStore, client output.GarminClient, email, password string) *AuthService {
	return &AuthService{
		store:    store,
		client:   client,
		email:    email,
		password: password,
		now:      time.Now,
	}
}

// Current func - returns the active session or nil
func (s *AuthService) Current() *Session {
	return s.active.Load()
}

// Ready func - reports whether a session is active
func (s *AuthService) Ready() bool {
	return s.active.Load() != nil
}

// Bootstrap func - Use case: resume the persisted session, or log in with the
// configured credentials and persist the new tokens
func (s *AuthService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Ready(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	if s.store.HasSession() {
		logrus.Info("Loading stored Garmin tokens")
		session, err := s.resume(ctx)
		if err == nil {
			s.activate(session)
			metrics.RecordSessionEvent("resumed")
			logrus.Info("Successfully authenticated with stored tokens")
			return nil
		}
		metrics.RecordSessionEvent("resume_failed")
		logrus.Warnf("Failed to use stored tokens: %v", err)
	}

	if s.email == "" || s.password == "" {
		return fmt.Errorf("%w: GARMIN_EMAIL and GARMIN_PASSWORD must be set for initial login", domain.ErrConfiguration)
	}

	logrus.Info("Initiating new login")
	session, err := s.login(ctx, s.email, s.password, nil)
	if err != nil {
		metrics.RecordSessionEvent("login_failed")
		logrus.Errorf("Login failed: %v", err)
		return err
	}
	s.activate(session)
	metrics.RecordSessionEvent("logged_in")
	logrus.Info("Successfully authenticated and stored tokens")
	return nil
}

// Rotate func - Use case: replace the active session with one for new
// credentials. The stored tokens are cleared first; on login failure the
// previous session keeps serving.
func (s *AuthService) Rotate(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: Email and password required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Infof("Updating credentials for %s", email)

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear stored tokens: %w", err)
	}

	session, err := s.login(ctx, email, password, nil)
	if err != nil {
		metrics.RecordSessionEvent("rotate_failed")
		logrus.Errorf("Failed to update credentials: %v", err)
		return err
	}
	s.activate(session)
	metrics.RecordSessionEvent("rotated")
	return nil
}

// Login func - Use case: interactive login that may answer an MFA challenge
// through prompt. The new tokens are persisted and the session activated.
func (s *AuthService) Login(ctx context.Context, email, password string, prompt domain.MFAPrompt) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: Email and password required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Ready(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	session, err := s.login(ctx, email, password, prompt)
	if err != nil {
		return nil, err
	}
	s.activate(session)
	metrics.RecordSessionEvent("logged_in")
	return session, nil
}

// Logout func - Use case: forget the persisted tokens and the active session
func (s *AuthService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear stored tokens: %w", err)
	}
	s.active.Store(nil)
	metrics.RecordSessionEvent("logged_out")
	return nil
}

// resume rebuilds the session from disk and writes back refreshed tokens
func (s *AuthService) resume(ctx context.Context) (*Session, error) {
	tokens, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	client, err := s.client.Resume(ctx, tokens)
	if err != nil {
		return nil, err
	}

	current, err := client.Tokens()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(current.OAuth1, tokens.OAuth1) || !bytes.Equal(current.OAuth2, tokens.OAuth2) {
		if err := s.store.Save(current); err != nil {
			logrus.Warnf("Failed to store refreshed tokens: %v", err)
		}
	}
	return s.newSession(client), nil
}

// login authenticates and persists the resulting tokens
func (s *AuthService) login(ctx context.Context, email, password string, prompt domain.MFAPrompt) (*Session, error) {
	client, err := s.client.Login(ctx, email, password, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}

	tokens, err := client.Tokens()
	if err != nil {
		return nil, fmt.Errorf("serialize tokens: %w", err)
	}
	if err := s.store.Save(tokens); err != nil {
		return nil, fmt.Errorf("store tokens: %w", err)
	}
	return s.newSession(client), nil
}

func (s *AuthService) newSession(client output.GarminSession) *Session {
	return &Session{
		Client:        client,
		Account:       client.DisplayName(),
		EstablishedAt: s.now(),
	}
}

func (s *AuthService) activate(session *Session) {
	s.active.Store(session)
}
