package alarm

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Trend direction labels. A least-squares slope over sample index beyond
// +-0.1 counts as a real trend; anything inside that band is noise.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"

	trendSlopeBand = 0.1
)

// Summary holds the statistics for one tag over one time window.
type Summary struct {
	Count          int            `json:"count"`
	MinValue       float64        `json:"min_value"`
	MaxValue       float64        `json:"max_value"`
	MeanValue      float64        `json:"mean_value"`
	StdValue       float64        `json:"std_value"`
	TimeSpanHours  float64        `json:"time_span_hours"`
	TrendSlope     float64        `json:"trend_slope"`
	TrendDirection string         `json:"trend_direction"`
	AlarmStates    map[string]int `json:"alarm_states"`
	Transitions    []Transition   `json:"alarm_transitions"`
}

// Summarize computes the summary statistics for a time-ordered slice of
// records. Returns nil for an empty slice. The standard deviation is the
// population deviation; the trend slope is a degree-1 least-squares fit of
// value against sample index, not wall time.
func Summarize(records []Record) *Summary {
	if len(records) == 0 {
		return nil
	}

	min := records[0].Value
	max := records[0].Value
	sum := 0.0
	for _, r := range records {
		if r.Value < min {
			min = r.Value
		}
		if r.Value > max {
			max = r.Value
		}
		sum += r.Value
	}
	n := float64(len(records))
	mean := sum / n

	variance := 0.0
	for _, r := range records {
		d := r.Value - mean
		variance += d * d
	}
	variance /= n

	s := &Summary{
		Count:         len(records),
		MinValue:      min,
		MaxValue:      max,
		MeanValue:     mean,
		StdValue:      math.Sqrt(variance),
		TimeSpanHours: records[len(records)-1].Timestamp.Sub(records[0].Timestamp).Hours(),
		AlarmStates:   map[string]int{},
		Transitions:   findTransitions(records),
	}

	s.TrendSlope = trendSlope(records)
	switch {
	case s.TrendSlope > trendSlopeBand:
		s.TrendDirection = TrendIncreasing
	case s.TrendSlope < -trendSlopeBand:
		s.TrendDirection = TrendDecreasing
	default:
		s.TrendDirection = TrendStable
	}

	for _, r := range records {
		s.AlarmStates[r.State]++
	}

	return s
}

// trendSlope fits value = slope*index + intercept by least squares and
// returns the slope. A single sample has no trend.
func trendSlope(records []Record) float64 {
	n := float64(len(records))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, r := range records {
		x := float64(i)
		sumX += x
		sumY += r.Value
		sumXY += x * r.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// findTransitions scans consecutive samples for state changes. Fewer than
// two samples cannot transition.
func findTransitions(records []Record) []Transition {
	if len(records) < 2 {
		return []Transition{}
	}

	transitions := []Transition{}
	prev := records[0].State
	for _, r := range records[1:] {
		if r.State != prev {
			transitions = append(transitions, Transition{
				Timestamp: r.Timestamp,
				FromState: prev,
				ToState:   r.State,
				Value:     r.Value,
			})
		}
		prev = r.State
	}
	return transitions
}

// CriticalTransitions counts transitions into an alarm state (any state
// containing "High").
func (s *Summary) CriticalTransitions() int {
	count := 0
	for _, t := range s.Transitions {
		if strings.Contains(t.ToState, "High") {
			count++
		}
	}
	return count
}

// FormatSummary renders the summary as operator-readable bullet text.
func FormatSummary(s *Summary, tag string) string {
	if s == nil {
		return fmt.Sprintf("No data available for %s.", tag)
	}

	parts := []string{
		fmt.Sprintf("Process tag %s analysis:", tag),
		fmt.Sprintf("• Data points: %d over %.1f hours", s.Count, s.TimeSpanHours),
		fmt.Sprintf("• Value range: %.2f to %.2f (mean: %.2f)", s.MinValue, s.MaxValue, s.MeanValue),
		fmt.Sprintf("• Trend: %s (slope: %.3f)", s.TrendDirection, s.TrendSlope),
	}

	if len(s.AlarmStates) > 0 {
		states := make([]string, 0, len(s.AlarmStates))
		for state := range s.AlarmStates {
			states = append(states, state)
		}
		// Most frequent first, name as tiebreak, so output is stable.
		sort.Slice(states, func(i, j int) bool {
			if s.AlarmStates[states[i]] != s.AlarmStates[states[j]] {
				return s.AlarmStates[states[i]] > s.AlarmStates[states[j]]
			}
			return states[i] < states[j]
		})
		counts := make([]string, 0, len(states))
		for _, state := range states {
			counts = append(counts, fmt.Sprintf("%s: %d", state, s.AlarmStates[state]))
		}
		parts = append(parts, fmt.Sprintf("• Alarm states: %s", strings.Join(counts, ", ")))
	}

	if len(s.Transitions) > 0 {
		parts = append(parts, fmt.Sprintf("• Alarm transitions: %d state changes detected", len(s.Transitions)))
		if critical := s.CriticalTransitions(); critical > 0 {
			parts = append(parts, fmt.Sprintf("• Critical: %d transitions to alarm states", critical))
		}
	}

	return strings.Join(parts, "\n")
}

// GuidanceQuery builds the document query for a tag from what the data
// shows: the worst alarm state picks the response procedure, the trend
// picks the troubleshooting angle.
func GuidanceQuery(tag string, s *Summary) string {
	parts := []string{tag}

	if s != nil {
		if s.AlarmStates["HighHigh"] > 0 {
			parts = append(parts, "high high alarm response procedure")
		} else if s.AlarmStates["High"] > 0 {
			parts = append(parts, "high alarm response procedure")
		}

		switch s.TrendDirection {
		case TrendIncreasing:
			parts = append(parts, "rising trend troubleshooting")
		case TrendDecreasing:
			parts = append(parts, "falling trend troubleshooting")
		}
	}

	return strings.Join(parts, " ")
}
