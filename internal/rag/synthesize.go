package rag

import (
	"fmt"
	"strings"

	"github.com/procopilot/procopilot/internal/index"
)

// FormatContext concatenates the trimmed text of each result with a blank
// line between them. Results with empty text are skipped; an empty string
// means nothing survived.
func FormatContext(results []index.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Literal markers the extractor keys on. Behavior depends on these exact
// strings; the manuals are written to match them.
const (
	markerNormalRange    = "Normal Operating Range:"
	markerHighAlarm      = "High Alarm Setpoint:"
	markerCalibration    = "calibration procedure:"
	markerPreventiveMant = "preventive maintenance:"
)

// procedureWords mark sentences that look like procedure steps.
var procedureWords = []string{"1.", "2.", "3.", "check", "verify", "reduce"}

// Synthesize extracts an answer from retrieved context by keyword dispatch
// over the query. Rules are applied in order and the first match wins.
// There is no generation: every answer is a substring of the context,
// possibly wrapped in a fixed template.
func Synthesize(query, context string) string {
	if strings.TrimSpace(context) == "" {
		return noInfoMessage
	}

	// Drop literal source-annotation lines, joining the rest with spaces.
	var b strings.Builder
	for _, line := range strings.Split(context, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "[Source") {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	cleanContext := b.String()

	queryLower := strings.ToLower(query)

	// Temperature range questions: extract between the range markers.
	if strings.Contains(queryLower, "temperature") && strings.Contains(queryLower, "range") {
		if idx := strings.Index(cleanContext, markerNormalRange); idx >= 0 {
			rest := cleanContext[idx+len(markerNormalRange):]
			tempInfo := strings.TrimSpace(splitBefore(rest, markerHighAlarm))
			return fmt.Sprintf("The normal operating temperature range is %s.", tempInfo)
		}
	}

	// Alarm/procedure questions: collect step-like sentences.
	if strings.Contains(queryLower, "alarm") || strings.Contains(queryLower, "procedure") {
		var procedures []string
		for _, sentence := range strings.Split(cleanContext, ".") {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) > 10 && len(sentence) < 200 && containsAny(strings.ToLower(sentence), procedureWords) {
				procedures = append(procedures, sentence)
			}
		}
		if len(procedures) > 0 {
			if len(procedures) > 3 {
				procedures = procedures[:3]
			}
			return strings.Join(procedures, ". ") + "."
		}
	}

	// Calibration questions: extract between the maintenance markers.
	// Matching is case-insensitive, so the extract comes from the
	// lowercased context.
	if strings.Contains(queryLower, "calibration") || strings.Contains(queryLower, "calibrate") {
		contextLower := strings.ToLower(cleanContext)
		if idx := strings.Index(contextLower, markerCalibration); idx >= 0 {
			rest := contextLower[idx+len(markerCalibration):]
			calInfo := strings.TrimSpace(splitBefore(rest, markerPreventiveMant))
			return fmt.Sprintf("Calibration procedure: %s.", calInfo)
		}
	}

	// Default: the first two substantial sentences.
	var sentences []string
	for _, s := range strings.Split(cleanContext, ".") {
		s = strings.TrimSpace(s)
		if len(s) > 20 {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) > 0 {
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		answer := strings.Join(sentences, ". ")
		if !strings.HasSuffix(answer, ".") {
			answer += "."
		}
		return answer
	}

	if len(cleanContext) > 300 {
		return cleanContext[:300] + "..."
	}
	return cleanContext
}

// splitBefore returns s up to the first occurrence of marker, or all of s
// if the marker is absent.
func splitBefore(s, marker string) string {
	if idx := strings.Index(s, marker); idx >= 0 {
		return s[:idx]
	}
	return s
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
