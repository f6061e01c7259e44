package output

import (
	"context"

	"garmin-gateway/internal/domain"
)

// GarminClient interface - Output port
// Establishes authenticated sessions against Garmin Connect.
type GarminClient interface {
	// Resume rebuilds a session from persisted token artifacts without
	// contacting the login endpoint. Expired access tokens may be refreshed.
	Resume(ctx context.Context, tokens domain.TokenArtifacts) (GarminSession, error)

	// Login performs a fresh credential login. prompt is consulted when the
	// account requires a one-time code; a nil prompt makes that case fail with
	// domain.ErrMFARequired.
	Login(ctx context.Context, email, password string, prompt domain.MFAPrompt) (GarminSession, error)
}

// GarminSession interface - an authenticated Garmin Connect context
type GarminSession interface {
	// DisplayName is the account's public display name used in per-user endpoints
	DisplayName() string

	// Tokens serializes the session's current credentials for persistence
	Tokens() (domain.TokenArtifacts, error)

	// Fetch issues one upstream operation and returns the decoded JSON payload
	Fetch(ctx context.Context, op domain.Operation, params domain.OperationParams) (any, error)
}
