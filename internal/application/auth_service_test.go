package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/output"
)

// TestBootstrapFreshLogin tests first login with configured credentials
func TestBootstrapFreshLogin(t *testing.T) {
	store := &MockSessionStore{}
	client := &MockGarminClient{}
	svc := NewAuthService(store, client, "pat@example.com", "secret")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if client.ResumeCalls != 0 {
		t.Errorf("expected no resume attempt, got: %d", client.ResumeCalls)
	}
	if client.LoginCalls != 1 {
		t.Errorf("expected one login, got: %d", client.LoginCalls)
	}
	if !store.HasSession() {
		t.Error("expected both artifacts to be stored")
	}
	if !svc.Ready() || svc.Current().Account != "pat@example.com" {
		t.Errorf("expected active session for pat@example.com, got: %+v", svc.Current())
	}
}

// TestBootstrapMissingCredentials tests that a first login needs both credentials
func TestBootstrapMissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"no email", "", "secret"},
		{"no password", "pat@example.com", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGarminClient{}
			svc := NewAuthService(&MockSessionStore{}, client, tt.email, tt.password)

			err := svc.Bootstrap(context.Background())
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got: %v", err)
			}
			if client.LoginCalls != 0 {
				t.Errorf("expected no login attempt, got: %d", client.LoginCalls)
			}
			if svc.Ready() {
				t.Error("expected no active session")
			}
		})
	}
}

// TestBootstrapStoreNotWritable tests that an unusable token directory is fatal
func TestBootstrapStoreNotWritable(t *testing.T) {
	store := &MockSessionStore{ReadyFunc: func() error { return errors.New("read-only file system") }}
	svc := NewAuthService(store, &MockGarminClient{}, "pat@example.com", "secret")

	if err := svc.Bootstrap(context.Background()); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got: %v", err)
	}
}

// TestBootstrapResumesStoredSession tests resumption without credentials
func TestBootstrapResumesStoredSession(t *testing.T) {
	store := &MockSessionStore{}
	store.Save(tokensFor("stored"))
	store.SaveCalls = 0
	client := &MockGarminClient{}
	svc := NewAuthService(store, client, "", "")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if client.ResumeCalls != 1 || client.LoginCalls != 0 {
		t.Errorf("expected resume only, got resume=%d login=%d", client.ResumeCalls, client.LoginCalls)
	}
	if store.SaveCalls != 0 {
		t.Errorf("expected unchanged tokens not to be rewritten, got %d saves", store.SaveCalls)
	}
	if svc.Current().Account != "resumed" {
		t.Errorf("expected resumed session, got: %+v", svc.Current())
	}
}

// TestBootstrapPersistsRefreshedTokens tests that tokens refreshed on resume are written back
func TestBootstrapPersistsRefreshedTokens(t *testing.T) {
	store := &MockSessionStore{}
	store.Save(tokensFor("stored"))
	client := &MockGarminClient{
		ResumeFunc: func(ctx context.Context, tokens domain.TokenArtifacts) (output.GarminSession, error) {
			return &MockGarminSession{Name: "resumed", Artifacts: tokensFor("refreshed")}, nil
		},
	}
	svc := NewAuthService(store, client, "", "")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !bytes.Equal(store.Stored().OAuth2, tokensFor("refreshed").OAuth2) {
		t.Errorf("expected refreshed tokens on disk, got: %s", store.Stored().OAuth2)
	}
}

// TestBootstrapFallsBackToLogin tests that a failed resumption is not fatal
func TestBootstrapFallsBackToLogin(t *testing.T) {
	store := &MockSessionStore{}
	store.Save(tokensFor("stale"))
	client := &MockGarminClient{
		ResumeFunc: func(ctx context.Context, tokens domain.TokenArtifacts) (output.GarminSession, error) {
			return nil, errors.New("token rejected")
		},
	}
	svc := NewAuthService(store, client, "pat@example.com", "secret")

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if client.ResumeCalls != 1 || client.LoginCalls != 1 {
		t.Errorf("expected resume then login, got resume=%d login=%d", client.ResumeCalls, client.LoginCalls)
	}
	if !bytes.Equal(store.Stored().OAuth1, tokensFor("pat@example.com").OAuth1) {
		t.Errorf("expected fresh tokens stored, got: %s", store.Stored().OAuth1)
	}
}

// TestBootstrapResumeFailureWithoutCredentials tests the fall-through still needs credentials
func TestBootstrapResumeFailureWithoutCredentials(t *testing.T) {
	store := &MockSessionStore{}
	store.Save(tokensFor("stale"))
	client := &MockGarminClient{
		ResumeFunc: func(ctx context.Context, tokens domain.TokenArtifacts) (output.GarminSession, error) {
			return nil, errors.New("token rejected")
		},
	}
	svc := NewAuthService(store, client, "", "")

	if err := svc.Bootstrap(context.Background()); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got: %v", err)
	}
}

// TestBootstrapLoginFailure tests that a failed first login is an authentication error
func TestBootstrapLoginFailure(t *testing.T) {
	store := &MockSessionStore{}
	client := &MockGarminClient{
		LoginFunc: func(ctx context.Context, email, password string, prompt domain.MFAPrompt) (output.GarminSession, error) {
			return nil, errors.New("unexpected sso page title")
		},
	}
	svc := NewAuthService(store, client, "pat@example.com", "wrong")

	err := svc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got: %v", err)
	}
	if svc.Ready() || store.HasSession() {
		t.Error("expected no session and no stored tokens")
	}
}

// TestBootstrapMFARequired tests that the HTTP path cannot answer MFA
func TestBootstrapMFARequired(t *testing.T) {
	client := &MockGarminClient{
		LoginFunc: func(ctx context.Context, email, password string, prompt domain.MFAPrompt) (output.GarminSession, error) {
			if prompt != nil {
				t.Error("expected no prompt on bootstrap")
			}
			return nil, domain.ErrMFARequired
		},
	}
	svc := NewAuthService(&MockSessionStore{}, client, "pat@example.com", "secret")

	err := svc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrAuthentication) || !errors.Is(err, domain.ErrMFARequired) {
		t.Fatalf("expected authentication error wrapping ErrMFARequired, got: %v", err)
	}
}

func bootstrapped(t *testing.T, store *MockSessionStore, client *MockGarminClient) *AuthService {
	t.Helper()
	svc := NewAuthService(store, client, "old@example.com", "secret")
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return svc
}

// TestRotateRequiresCredentials tests validation before anything is touched
func TestRotateRequiresCredentials(t *testing.T) {
	store := &MockSessionStore{}
	client := &MockGarminClient{}
	svc := bootstrapped(t, store, client)

	err := svc.Rotate(context.Background(), "new@example.com", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if store.ClearCalls != 0 {
		t.Errorf("expected tokens untouched, got %d clears", store.ClearCalls)
	}
	if client.LoginCalls != 1 {
		t.Errorf("expected no extra login, got: %d", client.LoginCalls)
	}
}

// TestRotateSuccess tests that the new session replaces the old one
func TestRotateSuccess(t *testing.T) {
	store := &MockSessionStore{}
	client := &MockGarminClient{}
	svc := bootstrapped(t, store, client)
	previous := svc.Current()

	if err := svc.Rotate(context.Background(), "new@example.com", "pw"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if store.ClearCalls != 1 {
		t.Errorf("expected tokens cleared once, got: %d", store.ClearCalls)
	}
	current := svc.Current()
	if current == previous || current.Account != "new@example.com" {
		t.Errorf("expected new active session, got: %+v", current)
	}
	if !bytes.Equal(store.Stored().OAuth1, tokensFor("new@example.com").OAuth1) {
		t.Errorf("expected new tokens stored, got: %s", store.Stored().OAuth1)
	}
}

// TestRotateLoginFailureKeepsSession tests that the old session stays active
func TestRotateLoginFailureKeepsSession(t *testing.T) {
	store := &MockSessionStore{}
	client := &MockGarminClient{}
	svc := bootstrapped(t, store, client)
	previous := svc.Current()

	client.LoginFunc = func(ctx context.Context, email, password string, prompt domain.MFAPrompt) (output.GarminSession, error) {
		return nil, errors.New("bad credentials")
	}

	err := svc.Rotate(context.Background(), "new@example.com", "wrong")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got: %v", err)
	}
	if store.ClearCalls != 1 || store.HasSession() {
		t.Errorf("expected stored tokens to be cleared, clears=%d", store.ClearCalls)
	}
	if client.LoginCalls != 2 || client.LastEmail != "new@example.com" {
		t.Errorf("expected a login attempt for the new account, got %d for %s", client.LoginCalls, client.LastEmail)
	}
	if svc.Current() != previous {
		t.Error("expected previous session to remain active")
	}
}

// TestRotateSaveFailureKeepsSession tests that an unpersisted login is not activated
func TestRotateSaveFailureKeepsSession(t *testing.T) {
	store := &MockSessionStore{}
	svc := bootstrapped(t, store, &MockGarminClient{})
	previous := svc.Current()

	store.SaveFunc = func(domain.TokenArtifacts) error { return errors.New("disk full") }

	if err := svc.Rotate(context.Background(), "new@example.com", "pw"); err == nil {
		t.Fatal("expected an error")
	}
	if svc.Current() != previous {
		t.Error("expected previous session to remain active")
	}
}

// TestLoginWithPrompt tests that the interactive path hands the prompt through
func TestLoginWithPrompt(t *testing.T) {
	var gotPrompt bool
	client := &MockGarminClient{
		LoginFunc: func(ctx context.Context, email, password string, prompt domain.MFAPrompt) (output.GarminSession, error) {
			gotPrompt = prompt != nil
			return &MockGarminSession{Name: "runner42", Artifacts: tokensFor(email)}, nil
		},
	}
	store := &MockSessionStore{}
	svc := NewAuthService(store, client, "", "")

	prompt := func(ctx context.Context) (string, error) { return "123456", nil }
	session, err := svc.Login(context.Background(), "pat@example.com", "secret", prompt)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !gotPrompt {
		t.Error("expected prompt to reach the client")
	}
	if session.Account != "runner42" || !store.HasSession() {
		t.Errorf("expected stored session for runner42, got: %+v", session)
	}
}

// TestLogout tests that tokens and the active session are dropped
func TestLogout(t *testing.T) {
	store := &MockSessionStore{}
	svc := bootstrapped(t, store, &MockGarminClient{})

	if err := svc.Logout(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if svc.Ready() || store.HasSession() {
		t.Error("expected no session after logout")
	}
}
