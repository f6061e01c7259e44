package garmin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"garmin-gateway/internal/domain"
)

// endpoint resolves an operation to a connectapi path and query
type endpoint func(s *apiSession, p domain.OperationParams) (string, url.Values)

var endpoints = map[domain.Operation]endpoint{
	domain.OpUserProfile: fixed("/userprofile-service/userprofile/user-settings"),
	domain.OpUserSummary: func(s *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/usersummary-service/usersummary/daily/" + s.userPath(), url.Values{"calendarDate": {p.Date}}
	},
	domain.OpHeartRates: func(s *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/wellness-service/wellness/dailyHeartRate/" + s.userPath(), url.Values{"date": {p.Date}}
	},
	domain.OpRestingHeartRate: func(s *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/userstats-service/wellness/daily/" + s.userPath(), url.Values{
			"fromDate":  {p.Date},
			"untilDate": {p.Date},
			"metricId":  {"60"},
		}
	},
	domain.OpSteps: func(s *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/wellness-service/wellness/dailySummaryChart/" + s.userPath(), url.Values{"date": {p.Date}}
	},
	domain.OpDailySteps: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/usersummary-service/stats/steps/daily/" + p.Start + "/" + p.End, nil
	},
	domain.OpSleep: func(s *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/wellness-service/wellness/dailySleepData/" + s.userPath(), url.Values{
			"date":                  {p.Date},
			"nonSleepBufferMinutes": {"60"},
		}
	},
	domain.OpHRV:    byDate("/hrv-service/hrv/"),
	domain.OpStress: byDate("/wellness-service/wellness/dailyStress/"),
	domain.OpBodyBattery: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/wellness-service/wellness/bodyBattery/reports/daily", url.Values{
			"startDate": {p.Start},
			"endDate":   {p.End},
		}
	},
	domain.OpBodyComposition: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/weight-service/weight/dateRange", url.Values{
			"startDate": {p.Date},
			"endDate":   {p.Date},
		}
	},
	domain.OpWeighIns: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/weight-service/weight/range/" + p.Start + "/" + p.End, url.Values{"includeAll": {"true"}}
	},
	domain.OpActivities: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/activitylist-service/activities/search/activities", url.Values{
			"start": {"0"},
			"limit": {strconv.Itoa(p.Limit)},
		}
	},
	domain.OpActivitiesForDate: byDate("/mobile-gateway/heartRate/forDate/"),
	domain.OpDevices:           fixed("/device-service/deviceregistration/devices"),
	domain.OpTrainingReadiness: byDate("/metrics-service/metrics/trainingreadiness/"),
	domain.OpSpO2:              byDate("/wellness-service/wellness/daily/spo2/"),
	domain.OpRespiration:       byDate("/wellness-service/wellness/daily/respiration/"),
	domain.OpHydration:         byDate("/usersummary-service/usersummary/hydration/daily/"),
	domain.OpIntensityMinutes:  byDate("/wellness-service/wellness/daily/im/"),
	domain.OpGoals: func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return "/goal-service/goal/goals", url.Values{
			"status": {string(p.Goal)},
			"start":  {"1"},
			"limit":  {"30"},
		}
	},
	domain.OpBadges: fixed("/badge-service/badge/earned"),
	domain.OpPersonalRecords: func(s *apiSession, _ domain.OperationParams) (string, url.Values) {
		return "/personalrecord-service/personalrecord/prs/" + s.userPath(), nil
	},
}

// userPath is the display name as a single escaped path segment
func (s *apiSession) userPath() string {
	return url.PathEscape(s.displayName)
}

func fixed(path string) endpoint {
	return func(*apiSession, domain.OperationParams) (string, url.Values) {
		return path, nil
	}
}

func byDate(prefix string) endpoint {
	return func(_ *apiSession, p domain.OperationParams) (string, url.Values) {
		return prefix + p.Date, nil
	}
}

// Fetch issues one upstream operation. Composite operations are assembled
// from several calls here so callers see one result.
func (s *apiSession) Fetch(ctx context.Context, op domain.Operation, p domain.OperationParams) (any, error) {
	switch op {
	case domain.OpFullName:
		return s.fullName, nil
	case domain.OpStatsAndBody:
		return s.statsAndBody(ctx, p)
	case domain.OpLastActivity:
		return s.lastActivity(ctx)
	}

	ep, ok := endpoints[op]
	if !ok {
		return nil, fmt.Errorf("unsupported operation %q", op)
	}
	path, query := ep(s, p)
	return s.connectAPI(ctx, path, query)
}

// statsAndBody merges the daily summary with the body composition averages
func (s *apiSession) statsAndBody(ctx context.Context, p domain.OperationParams) (any, error) {
	summary, err := s.Fetch(ctx, domain.OpUserSummary, p)
	if err != nil {
		return nil, err
	}
	body, err := s.Fetch(ctx, domain.OpBodyComposition, p)
	if err != nil {
		return nil, err
	}

	merged := map[string]any{}
	if m, ok := summary.(map[string]any); ok {
		for k, v := range m {
			merged[k] = v
		}
	}
	if m, ok := body.(map[string]any); ok {
		if avg, ok := m["totalAverage"].(map[string]any); ok {
			for k, v := range avg {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

// lastActivity returns the most recent activity or nil
func (s *apiSession) lastActivity(ctx context.Context) (any, error) {
	raw, err := s.Fetch(ctx, domain.OpActivities, domain.OperationParams{Limit: 1})
	if err != nil {
		return nil, err
	}
	if list, ok := raw.([]any); ok && len(list) > 0 {
		return list[0], nil
	}
	return nil, nil
}
