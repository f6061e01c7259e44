package domain

import "reflect"

// GoalType selects which goal list to fetch
type GoalType string

const (
	// GoalTypeActive - currently running goals (default)
	GoalTypeActive GoalType = "active"
	// GoalTypeFuture - scheduled goals
	GoalTypeFuture GoalType = "future"
	// GoalTypePast - finished goals
	GoalTypePast GoalType = "past"
)

// Valid reports whether g is one of the known goal types
func (g GoalType) Valid() bool {
	switch g {
	case GoalTypeActive, GoalTypeFuture, GoalTypePast:
		return true
	}
	return false
}

// Operation names one upstream Garmin Connect call
type Operation string

const (
	OpUserProfile       Operation = "user_profile"
	OpFullName          Operation = "full_name"
	OpUserSummary       Operation = "user_summary"
	OpStatsAndBody      Operation = "stats_and_body"
	OpHeartRates        Operation = "heart_rates"
	OpRestingHeartRate  Operation = "resting_heart_rate"
	OpSteps             Operation = "steps"
	OpDailySteps        Operation = "daily_steps"
	OpSleep             Operation = "sleep"
	OpHRV               Operation = "hrv"
	OpStress            Operation = "stress"
	OpBodyBattery       Operation = "body_battery"
	OpBodyComposition   Operation = "body_composition"
	OpWeighIns          Operation = "weigh_ins"
	OpActivities        Operation = "activities"
	OpLastActivity      Operation = "last_activity"
	OpActivitiesForDate Operation = "activities_for_date"
	OpDevices           Operation = "devices"
	OpTrainingReadiness Operation = "training_readiness"
	OpSpO2              Operation = "spo2"
	OpRespiration       Operation = "respiration"
	OpHydration         Operation = "hydration"
	OpIntensityMinutes  Operation = "intensity_minutes"
	OpGoals             Operation = "goals"
	OpBadges            Operation = "badges"
	OpPersonalRecords   Operation = "personal_records"
)

// OperationParams carries the already-validated arguments of an upstream call.
// Dates use the OnlyDate layout.
type OperationParams struct {
	Date  string
	Start string
	End   string
	Limit int
	Goal  GoalType
}

// Result is the outcome of one upstream call: Data on success, Err otherwise
type Result struct {
	Data any
	Err  error
}

// Success func
func Success(data any) Result {
	return Result{Data: data}
}

// Failure func
func Failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the call succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

type (
	// Period struct - inclusive date range echoed back to the caller
	Period struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}

	// HRVEntry struct - one day of HRV data
	HRVEntry struct {
		Date string `json:"date"`
		Data any    `json:"data"`
	}

	// HRVRange struct - per-day HRV payloads for a date range
	HRVRange struct {
		Period Period     `json:"period"`
		Data   []HRVEntry `json:"data"`
	}
)

// IsEmpty reports whether an upstream payload carries nothing: nil, an empty
// object or list, an empty string, false, or zero.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}
