package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestShapeHeartRate tests conversion of heart rate pairs into timestamped points
func TestShapeHeartRate(t *testing.T) {
	raw := map[string]any{
		"calendarDate":     "2023-11-14",
		"restingHeartRate": float64(52),
		"maxHeartRate":     float64(140),
		"minHeartRate":     float64(48),
		"heartRateValues": []any{
			[]any{float64(1700000000000), float64(60)},
			[]any{float64(1700000060000), float64(62)},
		},
	}

	got := ShapeHeartRate(raw)
	want := HeartRateSummary{
		Date:      "2023-11-14",
		RestingHR: float64(52),
		MaxHR:     float64(140),
		MinHR:     float64(48),
		AvgHR:     nil,
		Timeseries: []HeartRatePoint{
			{Time: "2023-11-14T22:13:20+00:00", BPM: float64(60)},
			{Time: "2023-11-14T22:14:20+00:00", BPM: float64(62)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShapeHeartRate() mismatch (-want +got):\n%s", diff)
	}
}

// TestShapeHeartRateSkipsMalformedPairs tests that broken samples are dropped
func TestShapeHeartRateSkipsMalformedPairs(t *testing.T) {
	raw := map[string]any{
		"heartRateValues": []any{
			[]any{float64(1700000000000)},
			"not a pair",
			[]any{nil, float64(70)},
			[]any{float64(1700000000500), nil},
		},
	}

	got := ShapeHeartRate(raw)
	if got.Date != "" {
		t.Errorf("expected empty date, got: %v", got.Date)
	}
	want := []HeartRatePoint{{Time: "2023-11-14T22:13:20.500000+00:00", BPM: nil}}
	if diff := cmp.Diff(want, got.Timeseries); diff != "" {
		t.Errorf("timeseries mismatch (-want +got):\n%s", diff)
	}
}

// TestShapeHeartRateEmpty tests that a payload without samples yields an empty series
func TestShapeHeartRateEmpty(t *testing.T) {
	got := ShapeHeartRate(map[string]any{"heartRateValues": nil})
	if got.Timeseries == nil || len(got.Timeseries) != 0 {
		t.Errorf("expected empty non-nil timeseries, got: %#v", got.Timeseries)
	}
}

// TestShapeSleep tests the sleep summary fields and stage ordering
func TestShapeSleep(t *testing.T) {
	deep := map[string]any{"startGMT": "d"}
	light := map[string]any{"startGMT": "l"}
	rem := map[string]any{"startGMT": "r"}
	awake := map[string]any{"startGMT": "a"}
	dto := map[string]any{
		"sleepStartTimeGMT":         "2024-03-01T22:00:00",
		"sleepScore":                float64(81),
		"sleepQuality":              "GOOD",
		"sleepTimeSeconds":          float64(27000),
		"deepSleepSeconds":          float64(5400),
		"lightSleepSeconds":         float64(14400),
		"remSleepSeconds":           float64(6120),
		"awakeSleepSeconds":         float64(1440),
		"restlessSeconds":           float64(300),
		"restlessPeriodsPercentage": float64(2),
		"awakeCount":                float64(1),
		"sleepLevels": map[string]any{
			"awake": []any{awake},
			"rem":   []any{rem},
			"light": []any{light},
			"deep":  []any{deep},
		},
	}

	got := ShapeSleep(map[string]any{"dailySleepDTO": dto})

	if got.Date != "2024-03-01T22:00:00" {
		t.Errorf("expected date 2024-03-01T22:00:00, got: %v", got.Date)
	}
	hours := map[string][2]float64{
		"total": {got.TotalHours, 7.5},
		"deep":  {got.DeepHours, 1.5},
		"light": {got.LightHours, 4.0},
		"rem":   {got.RemHours, 1.7},
		"awake": {got.AwakeHours, 0.4},
	}
	for name, pair := range hours {
		if pair[0] != pair[1] {
			t.Errorf("expected %s hours %v, got: %v", name, pair[1], pair[0])
		}
	}
	if got.SleepScore != float64(81) || got.Quality != "GOOD" {
		t.Errorf("unexpected score/quality: %v/%v", got.SleepScore, got.Quality)
	}
	wantSeries := []any{deep, light, rem, awake}
	if diff := cmp.Diff(wantSeries, got.Timeseries); diff != "" {
		t.Errorf("timeseries mismatch (-want +got):\n%s", diff)
	}
}

// TestShapeSleepMissingDTO tests defaults when dailySleepDTO is absent
func TestShapeSleepMissingDTO(t *testing.T) {
	got := ShapeSleep(map[string]any{"wellnessEpochSPO2DataDTOList": []any{}})

	if got.Date != "" {
		t.Errorf("expected empty date, got: %v", got.Date)
	}
	if got.SleepScore != nil || got.TotalSeconds != nil {
		t.Errorf("expected nil score and seconds, got: %v/%v", got.SleepScore, got.TotalSeconds)
	}
	if got.TotalHours != 0 {
		t.Errorf("expected 0 total hours, got: %v", got.TotalHours)
	}
	if got.DailySleepDTO == nil || len(got.DailySleepDTO) != 0 {
		t.Errorf("expected empty dasd object, got: %#v", got.DailySleepDTO)
	}
	if got.Timeseries == nil || len(got.Timeseries) != 0 {
		t.Errorf("expected empty timeseries, got: %#v", got.Timeseries)
	}
}

// TestSleepHoursRounding tests one-decimal rounding of the exact quotient
func TestSleepHoursRounding(t *testing.T) {
	tests := []struct {
		seconds float64
		want    float64
	}{
		{540, 0.1},
		{900, 0.2},
		{1260, 0.3},
		{2700, 0.8},
		{4500, 1.2},
		{8100, 2.2},
		{27000, 7.5},
	}
	for _, tt := range tests {
		got := ShapeSleep(map[string]any{"dailySleepDTO": map[string]any{"deepSleepSeconds": tt.seconds}})
		if got.DeepHours != tt.want {
			t.Errorf("%v seconds: expected %v hours, got: %v", tt.seconds, tt.want, got.DeepHours)
		}
	}
}
