package http

type (
	// UpdateCredentialsRequest struct - HTTP request DTO for credential rotation
	UpdateCredentialsRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// DateQuery struct - single calendar day, defaults to today
	DateQuery struct {
		Date string `query:"date" validate:"isodate"`
	}

	// RangeQuery struct - inclusive day range, defaults to the last seven days
	RangeQuery struct {
		Start string `query:"start" validate:"isodate"`
		End   string `query:"end" validate:"isodate"`
	}

	// LimitQuery struct - page size for list endpoints
	LimitQuery struct {
		Limit int `query:"limit" validate:"gte=0"`
	}
)

// defaultLimit is the activity count returned when no limit is given
const defaultLimit = 10
