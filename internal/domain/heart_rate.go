package domain

// HeartRatePoint struct - one sample of the per-minute heart rate series
type HeartRatePoint struct {
	Time string `json:"time"`
	BPM  any    `json:"bpm"`
}

// HeartRateSummary struct - compact view of a dailyHeartRate payload
type HeartRateSummary struct {
	Date       any              `json:"date"`
	RestingHR  any              `json:"resting_hr"`
	MaxHR      any              `json:"max_hr"`
	MinHR      any              `json:"min_hr"`
	AvgHR      any              `json:"avg_hr"`
	Timeseries []HeartRatePoint `json:"timeseries"`
}

// ShapeHeartRate converts heartRateValues [epoch_millis, bpm] pairs into
// timestamped points and passes the daily summary values through.
// Pairs without a numeric timestamp are skipped.
func ShapeHeartRate(raw map[string]any) HeartRateSummary {
	date := raw["calendarDate"]
	if date == nil {
		date = ""
	}

	values, _ := raw["heartRateValues"].([]any)
	timeseries := make([]HeartRatePoint, 0, len(values))
	for _, v := range values {
		pair, ok := v.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		ms, ok := number(pair[0])
		if !ok {
			continue
		}
		timeseries = append(timeseries, HeartRatePoint{
			Time: FormatEpochMillis(int64(ms)),
			BPM:  pair[1],
		})
	}

	return HeartRateSummary{
		Date:       date,
		RestingHR:  raw["restingHeartRate"],
		MaxHR:      raw["maxHeartRate"],
		MinHR:      raw["minHeartRate"],
		AvgHR:      raw["averageHeartRate"],
		Timeseries: timeseries,
	}
}
