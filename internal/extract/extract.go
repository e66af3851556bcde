// Package extract pulls structured medical measurements out of free-form
// OCR text. It is a fixed table of seven patterns applied independently;
// no state, no I/O.
package extract

import "regexp"

// Metric identifies one recognized medical measurement category.
type Metric string

const (
	MetricGlucose       Metric = "glucose"
	MetricHbA1c         Metric = "hba1c"
	MetricCholesterol   Metric = "cholesterol"
	MetricBloodPressure Metric = "blood_pressure"
	MetricHeartRate     Metric = "heart_rate"
	MetricWeight        Metric = "weight"
	MetricTemperature   Metric = "temperature"
)

// Rule pairs a metric with the pattern that recognizes it. Every pattern is
// case-insensitive and carries exactly one capturing group yielding the
// reported value. All quantifiers are bounded; adding a pattern with an
// unbounded quantifier risks pathological scan times on adversarial input.
type Rule struct {
	Metric  Metric
	Pattern *regexp.Regexp
}

// rules is evaluated in order. Rules never exclude one another: each is
// searched against the full input regardless of earlier matches.
var rules = []Rule{
	{MetricGlucose, regexp.MustCompile(`(?i)(?:glucose|sugar)\s*(?:fasting)?\s*[:\-]?\s*(\d{2,3})\s*mg/dl`)},
	{MetricHbA1c, regexp.MustCompile(`(?i)(?:hba1c|hemoglobin a1c)\s*[:\-]?\s*(\d\.\d)%?`)},
	{MetricCholesterol, regexp.MustCompile(`(?i)(?:cholesterol|total cholesterol)\s*[:\-]?\s*(\d{2,3})\s*mg/dl`)},
	{MetricBloodPressure, regexp.MustCompile(`(?i)(?:bp|blood pressure)\s*[:\-]?\s*(\d{2,3}/\d{2,3})`)},
	{MetricHeartRate, regexp.MustCompile(`(?i)(?:heart rate|pulse)\s*[:\-]?\s*(\d{2,3})\s*bpm`)},
	{MetricWeight, regexp.MustCompile(`(?i)weight\s*[:\-]?\s*(\d{2,3}\.?\d?)\s*(?:kg|pounds|lbs)`)},
	{MetricTemperature, regexp.MustCompile(`(?i)(?:temperature|temp)\s*[:\-]?\s*(\d{2,3}\.?\d?)\s*(?:f|c|°f|°c)`)},
}

// Values scans text for each known metric and returns the first captured
// value per metric, verbatim. Metrics with no match are absent from the
// result; a text with no recognizable measurements yields an empty map.
// Captured values are not parsed or range-checked; a "999" heart rate is
// reported as-is.
func Values(text string) map[Metric]string {
	values := make(map[Metric]string)
	for _, r := range rules {
		if m := r.Pattern.FindStringSubmatch(text); m != nil {
			values[r.Metric] = m[1]
		}
	}
	return values
}

// Confidence is the heuristic score the report pipeline attaches to a set of
// extracted values: 0.5 base plus 0.15 per matched metric, capped at 0.95.
func Confidence(values map[Metric]string) float64 {
	score := 0.5 + 0.15*float64(len(values))
	if score > 0.95 {
		return 0.95
	}
	return score
}
