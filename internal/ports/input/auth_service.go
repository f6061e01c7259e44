package input

import "context"

// AuthService interface - Input port (use case)
// Establishes and replaces the process-wide Garmin session
type AuthService interface {
	// Bootstrap resumes the persisted session or performs the first login
	Bootstrap(ctx context.Context) error

	// Rotate replaces the active session using new account credentials
	Rotate(ctx context.Context, email, password string) error

	// Ready reports whether a session is active
	Ready() bool
}
