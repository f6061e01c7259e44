package output

import "garmin-gateway/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for persisting the Garmin token artifacts
// between process restarts. The artifacts are opaque bytes at this layer.
type SessionStore interface {
	// Ready ensures the storage location exists, creating parents as needed.
	Ready() error

	// HasSession reports whether both token artifacts are present.
	HasSession() bool

	// Load reads both token artifacts. Returns domain.ErrNoTokens when either is missing.
	Load() (domain.TokenArtifacts, error)

	// Save writes both token artifacts, replacing any previous ones.
	Save(tokens domain.TokenArtifacts) error

	// Clear removes both token artifacts.
	// This operation is idempotent - clearing an empty store is not an error.
	Clear() error
}
