package input

import (
	"context"
	"time"

	"garmin-gateway/internal/domain"
)

// HealthService interface - Input port (use case)
// Reads health data through the active Garmin session. Upstream failures are
// reported in the returned domain.Result and never as panics.
type HealthService interface {
	Call(ctx context.Context, op domain.Operation, params domain.OperationParams) domain.Result
	Sleep(ctx context.Context, date string) domain.Result
	HeartRate(ctx context.Context, date string) domain.Result
	HRVRange(ctx context.Context, start, end time.Time) domain.HRVRange
}
