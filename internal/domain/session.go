package domain

import "context"

// Token artifact file names, shared with the garth/garminconnect tooling
const (
	OAuth1TokenFile = "oauth1_token.json"
	OAuth2TokenFile = "oauth2_token.json"
)

// TokenArtifacts holds the two serialized credential blobs produced by one login.
// The bytes are opaque here; only the Garmin client adapter interprets them.
type TokenArtifacts struct {
	OAuth1 []byte
	OAuth2 []byte
}

// Complete reports whether both artifacts are present
func (t TokenArtifacts) Complete() bool {
	return len(t.OAuth1) > 0 && len(t.OAuth2) > 0
}

// MFAPrompt obtains a one-time code for multi-factor login.
// A nil prompt means the caller cannot answer an MFA challenge.
type MFAPrompt func(ctx context.Context) (string, error)
