package domain

import "strconv"

// Sleep stage groups concatenated into SleepSummary.Timeseries, in this order
var sleepStages = []string{"deep", "light", "rem", "awake"}

// SleepSummary struct - normalized view of a dailySleepData payload
type SleepSummary struct {
	Date               any            `json:"date"`
	SleepScore         any            `json:"sleep_score"`
	Quality            any            `json:"quality"`
	TotalSeconds       any            `json:"total_seconds"`
	TotalHours         float64        `json:"total_hours"`
	DeepSeconds        any            `json:"deep_seconds"`
	DeepHours          float64        `json:"deep_hours"`
	LightSeconds       any            `json:"light_seconds"`
	LightHours         float64        `json:"light_hours"`
	RemSeconds         any            `json:"rem_seconds"`
	RemHours           float64        `json:"rem_hours"`
	AwakeSeconds       any            `json:"awake_seconds"`
	AwakeHours         float64        `json:"awake_hours"`
	RestlessSeconds    any            `json:"restless_seconds"`
	RestlessPercentage any            `json:"restless_percentage"`
	AwakeCount         any            `json:"awake_count"`
	DailySleepDTO      map[string]any `json:"dasd"`
	Timeseries         []any          `json:"timeseries"`
}

// ShapeSleep converts a raw dailySleepData payload into a SleepSummary.
// Missing fields come out as null (or 0 for the derived hour values).
func ShapeSleep(raw map[string]any) SleepSummary {
	dto := object(raw["dailySleepDTO"])
	levels := object(dto["sleepLevels"])

	date := dto["sleepStartTimeGMT"]
	if date == nil {
		date = ""
	}

	timeseries := make([]any, 0)
	for _, stage := range sleepStages {
		if segments, ok := levels[stage].([]any); ok {
			timeseries = append(timeseries, segments...)
		}
	}

	return SleepSummary{
		Date:               date,
		SleepScore:         dto["sleepScore"],
		Quality:            dto["sleepQuality"],
		TotalSeconds:       dto["sleepTimeSeconds"],
		TotalHours:         secondsToHours(dto["sleepTimeSeconds"]),
		DeepSeconds:        dto["deepSleepSeconds"],
		DeepHours:          secondsToHours(dto["deepSleepSeconds"]),
		LightSeconds:       dto["lightSleepSeconds"],
		LightHours:         secondsToHours(dto["lightSleepSeconds"]),
		RemSeconds:         dto["remSleepSeconds"],
		RemHours:           secondsToHours(dto["remSleepSeconds"]),
		AwakeSeconds:       dto["awakeSleepSeconds"],
		AwakeHours:         secondsToHours(dto["awakeSleepSeconds"]),
		RestlessSeconds:    dto["restlessSeconds"],
		RestlessPercentage: dto["restlessPeriodsPercentage"],
		AwakeCount:         dto["awakeCount"],
		DailySleepDTO:      dto,
		Timeseries:         timeseries,
	}
}

// secondsToHours divides by 3600 and rounds the exact quotient to one decimal
// place, ties to even
func secondsToHours(v any) float64 {
	seconds, ok := number(v)
	if !ok {
		return 0
	}
	hours, err := strconv.ParseFloat(strconv.FormatFloat(seconds/3600, 'f', 1, 64), 64)
	if err != nil {
		return 0
	}
	return hours
}

// object returns v as a JSON object, or an empty one
func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// number reads a JSON number decoded as any
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
