package application

import (
	"context"
	"fmt"
	"time"

	"garmin-gateway/internal/domain"
	"garmin-gateway/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// HealthService struct - Application service implementing the health data use cases.
// Every upstream call is wrapped into a domain.Result; nothing it does panics out.
type HealthService struct {
	sessions SessionSource
}

// NewHealthService func - Creates new health service
func NewHealthService(sessions SessionSource) *HealthService {
	return &HealthService{
		sessions: sessions,
	}
}

// Call func - Use case: run one upstream operation through the active session
func (s *HealthService) Call(ctx context.Context, op domain.Operation, params domain.OperationParams) domain.Result {
	session := s.sessions.Current()
	if session == nil {
		return domain.Failure(domain.ErrServiceUnavailable)
	}
	return s.invoke(ctx, session, op, params)
}

// Sleep func - Use case: sleep data for one night in summary form
func (s *HealthService) Sleep(ctx context.Context, date string) domain.Result {
	result := s.Call(ctx, domain.OpSleep, domain.OperationParams{Date: date})
	if !result.OK() {
		return result
	}
	raw, ok := result.Data.(map[string]any)
	if !ok || domain.IsEmpty(raw) {
		return domain.Failure(domain.ErrNoData)
	}
	return domain.Success(domain.ShapeSleep(raw))
}

// HeartRate func - Use case: one day of heart rate samples in compact form
func (s *HealthService) HeartRate(ctx context.Context, date string) domain.Result {
	result := s.Call(ctx, domain.OpHeartRates, domain.OperationParams{Date: date})
	if !result.OK() {
		return result
	}
	raw, ok := result.Data.(map[string]any)
	if !ok || domain.IsEmpty(raw) {
		return domain.Failure(domain.ErrNoData)
	}
	return domain.Success(domain.ShapeHeartRate(raw))
}

// HRVRange func - Use case: HRV data for each day from start to end inclusive.
// Days run one after another on the same session snapshot; a day that fails
// or has no data contributes no entry.
func (s *HealthService) HRVRange(ctx context.Context, start, end time.Time) domain.HRVRange {
	out := domain.HRVRange{
		Period: domain.Period{
			Start: start.Format(domain.OnlyDate),
			End:   end.Format(domain.OnlyDate),
		},
		Data: []domain.HRVEntry{},
	}

	session := s.sessions.Current()
	if session == nil {
		return out
	}

	for _, day := range domain.DaysBetween(start, end) {
		date := day.Format(domain.OnlyDate)
		result := s.invoke(ctx, session, domain.OpHRV, domain.OperationParams{Date: date})
		if !result.OK() {
			logrus.Debugf("Skipping HRV for %s: %v", date, result.Err)
			continue
		}
		if domain.IsEmpty(result.Data) {
			continue
		}
		out.Data = append(out.Data, domain.HRVEntry{Date: date, Data: result.Data})
	}
	return out
}

// invoke runs one call and converts errors and panics into a failed Result
func (s *HealthService) invoke(ctx context.Context, session *Session, op domain.Operation, params domain.OperationParams) (result domain.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Garmin call %s panicked: %v", op, r)
			result = domain.Failure(fmt.Errorf("%w: %v", domain.ErrUpstream, r))
		}

		outcome := metrics.OutcomeOK
		switch {
		case !result.OK():
			outcome = metrics.OutcomeError
		case domain.IsEmpty(result.Data):
			outcome = metrics.OutcomeEmpty
		}
		metrics.RecordUpstreamCall(string(op), outcome, time.Since(start))
	}()

	data, err := session.Client.Fetch(ctx, op, params)
	if err != nil {
		logrus.Warnf("Garmin call %s failed: %v", op, err)
		return domain.Failure(err)
	}
	return domain.Success(data)
}
