package garmin

import (
	"fmt"
	"net/url"
	"time"

	"garmin-gateway/internal/domain"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// OAuth1Token struct - long-lived token obtained from a login ticket.
// Field names follow the garth oauth1_token.json layout.
type OAuth1Token struct {
	OAuthToken             string  `json:"oauth_token"`
	OAuthTokenSecret       string  `json:"oauth_token_secret"`
	MFAToken               *string `json:"mfa_token"`
	MFAExpirationTimestamp *string `json:"mfa_expiration_timestamp"`
	Domain                 *string `json:"domain"`
}

// OAuth2Token struct - short-lived bearer token exchanged from the OAuth1 token.
// Field names follow the garth oauth2_token.json layout.
type OAuth2Token struct {
	Scope                 string `json:"scope"`
	JTI                   string `json:"jti"`
	TokenType             string `json:"token_type"`
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	ExpiresIn             int64  `json:"expires_in"`
	ExpiresAt             int64  `json:"expires_at"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

// setExpirations derives absolute expiry times from the relative ones
func (t *OAuth2Token) setExpirations(now time.Time) {
	t.ExpiresAt = now.Unix() + t.ExpiresIn
	t.RefreshTokenExpiresAt = now.Unix() + t.RefreshTokenExpiresIn
}

// bearer converts to the x/oauth2 representation used by the bearer transport
func (t *OAuth2Token) bearer() *oauth2.Token {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    tokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       time.Unix(t.ExpiresAt, 0),
	}
}

// parseOAuth1Token reads the form-encoded preauthorized response
func parseOAuth1Token(body string, domainName string) (*OAuth1Token, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("parse oauth1 response: %w", err)
	}
	token := &OAuth1Token{
		OAuthToken:       values.Get("oauth_token"),
		OAuthTokenSecret: values.Get("oauth_token_secret"),
		Domain:           &domainName,
	}
	if token.OAuthToken == "" || token.OAuthTokenSecret == "" {
		return nil, fmt.Errorf("oauth1 response carries no token")
	}
	if v := values.Get("mfa_token"); v != "" {
		token.MFAToken = &v
	}
	if v := values.Get("mfa_expiration_timestamp"); v != "" {
		token.MFAExpirationTimestamp = &v
	}
	return token, nil
}

// encodeTokens serializes both tokens the way garth.save writes them
func encodeTokens(o1 *OAuth1Token, o2 *OAuth2Token) (domain.TokenArtifacts, error) {
	b1, err := json.MarshalIndent(o1, "", "    ")
	if err != nil {
		return domain.TokenArtifacts{}, fmt.Errorf("encode oauth1 token: %w", err)
	}
	b2, err := json.MarshalIndent(o2, "", "    ")
	if err != nil {
		return domain.TokenArtifacts{}, fmt.Errorf("encode oauth2 token: %w", err)
	}
	return domain.TokenArtifacts{OAuth1: b1, OAuth2: b2}, nil
}

// decodeTokens parses persisted token artifacts
func decodeTokens(tokens domain.TokenArtifacts) (*OAuth1Token, *OAuth2Token, error) {
	if !tokens.Complete() {
		return nil, nil, domain.ErrNoTokens
	}
	var o1 OAuth1Token
	if err := json.Unmarshal(tokens.OAuth1, &o1); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", domain.OAuth1TokenFile, err)
	}
	var o2 OAuth2Token
	if err := json.Unmarshal(tokens.OAuth2, &o2); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", domain.OAuth2TokenFile, err)
	}
	if o1.OAuthToken == "" || o2.AccessToken == "" {
		return nil, nil, fmt.Errorf("%w: token files are incomplete", domain.ErrNoTokens)
	}
	return &o1, &o2, nil
}
