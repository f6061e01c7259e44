package garmin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/output"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Compile-time check to ensure apiSession implements GarminSession interface
var _ output.GarminSession = (*apiSession)(nil)

const socialProfilePath = "/userprofile-service/socialProfile"

// apiSession struct - an authenticated connectapi context. Bearer tokens are
// attached by an oauth2.Transport whose source re-exchanges the OAuth1 token
// once the current access token expires.
type apiSession struct {
	adapter *ClientAdapter
	client  *http.Client

	mu     sync.Mutex
	oauth1 *OAuth1Token
	oauth2 *OAuth2Token

	displayName string

	// raw profile value; nil when the profile has none
	fullName any
}

// exchangeSource struct - oauth2.TokenSource backed by the OAuth1 exchange
type exchangeSource struct {
	session *apiSession
}

// Token exchanges the OAuth1 token for a new access token
func (e exchangeSource) Token() (*oauth2.Token, error) {
	s := e.session
	ctx := context.Background()

	c, err := s.adapter.getConsumer(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	oauth1 := s.oauth1
	s.mu.Unlock()

	token, err := s.adapter.exchange(ctx, c, oauth1)
	if err != nil {
		return nil, fmt.Errorf("refresh oauth2 token: %w", err)
	}

	s.mu.Lock()
	s.oauth2 = token
	s.mu.Unlock()

	logrus.Info("Refreshed Garmin OAuth2 token")

	return token.bearer(), nil
}

// newSession wires the bearer transport and loads the social profile, which
// doubles as a check that the tokens are accepted
func (a *ClientAdapter) newSession(ctx context.Context, oauth1 *OAuth1Token, oauth2Token *OAuth2Token) (*apiSession, error) {
	s := &apiSession{
		adapter: a,
		oauth1:  oauth1,
		oauth2:  oauth2Token,
	}
	s.client = &http.Client{
		Timeout: a.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(oauth2Token.bearer(), exchangeSource{session: s}),
			Base:   a.httpClient.Transport,
		},
	}

	raw, err := s.connectAPI(ctx, socialProfilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("load social profile: %w", err)
	}
	profile, _ := raw.(map[string]any)
	s.displayName, _ = profile["displayName"].(string)
	s.fullName = profile["fullName"]
	if name, ok := s.fullName.(string); ok && name == "" {
		s.fullName = nil
	}
	if s.displayName == "" {
		return nil, errors.New("social profile carries no display name")
	}

	logrus.Infof("Garmin session established for %s", s.displayName)

	return s, nil
}

// DisplayName func
func (s *apiSession) DisplayName() string {
	return s.displayName
}

// Tokens serializes the current OAuth1 and OAuth2 tokens
func (s *apiSession) Tokens() (domain.TokenArtifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return encodeTokens(s.oauth1, s.oauth2)
}

// connectAPI issues a GET against connectapi and decodes the JSON body.
// An empty body or 204 yields nil.
func (s *apiSession) connectAPI(ctx context.Context, path string, query url.Values) (any, error) {
	target := s.adapter.apiBaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", ssoUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp, "GET "+path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrUpstream, path, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, path, err)
	}
	return payload, nil
}
