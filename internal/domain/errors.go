package domain

import "errors"

// Error categories. Callers wrap these with fmt.Errorf("%w: ...") and the
// HTTP adapter picks the status code with errors.Is.

var (
	// ErrConfiguration indicates required configuration is missing (fatal at startup)
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates a login or session resumption against Garmin Connect failed
	ErrAuthentication = errors.New("authentication failed")

	// ErrValidation indicates malformed request parameters or body
	ErrValidation = errors.New("invalid request")

	// ErrUnauthorized indicates a missing or wrong admin key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates an unknown route
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable indicates no Garmin session is active yet
	ErrServiceUnavailable = errors.New("api not initialized")

	// ErrUpstream indicates a Garmin Connect API call failed
	ErrUpstream = errors.New("upstream error")

	// ErrNoData indicates Garmin Connect returned an empty payload where one was required
	ErrNoData = errors.New("no data")

	// ErrMFARequired indicates the account needs a one-time code and no prompt was supplied
	ErrMFARequired = errors.New("multi-factor authentication required")

	// ErrNoTokens indicates the token directory does not hold a complete token pair
	ErrNoTokens = errors.New("no persisted tokens")
)
