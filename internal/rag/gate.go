package rag

import (
	"strings"

	"github.com/procopilot/procopilot/internal/index"
)

// Gate thresholds. Raw negated L2 distances and pre-normalized similarities
// are not comparable, so the gate branches on sign to pick the right
// interpretation, and each branch carries its own threshold.
const (
	// baseThreshold applies when the top score is a negated distance and
	// gets converted to a similarity in (0,1].
	baseThreshold = 0.5

	// offDomainThreshold replaces either threshold when the query shares no
	// token with the domain vocabulary. A nearest neighbor can score well
	// on an off-topic question; the lexical check catches that drift.
	offDomainThreshold = 0.8
)

// domainKeywords is the fixed industrial vocabulary used for the lexical
// relevance check.
var domainKeywords = map[string]struct{}{
	"temperature": {}, "pressure": {}, "alarm": {}, "control": {},
	"valve": {}, "sensor": {}, "calibration": {}, "maintenance": {},
	"safety": {}, "procedure": {}, "process": {}, "emergency": {},
	"shutdown": {}, "troubleshooting": {}, "psi": {}, "celsius": {},
	"degrees": {}, "flow": {}, "pump": {}, "system": {}, "operating": {},
	"calibrate": {}, "high": {}, "low": {}, "normal": {}, "range": {},
	"setpoint": {}, "instrumentation": {},
}

// Confident decides whether retrieval results are strong enough to answer.
// Only the top-ranked result is considered. configuredThreshold applies to
// scores that arrive already normalized (non-negative); negated distances
// are converted via 1/(1+|score|) and compared against baseThreshold.
func Confident(results []index.SearchResult, query string, configuredThreshold float64) bool {
	if len(results) == 0 {
		return false
	}

	top := results[0].Score

	var similarity, threshold float64
	if top < 0 {
		similarity = 1.0 / (1.0 + absFloat(top))
		threshold = baseThreshold
	} else {
		similarity = top
		threshold = configuredThreshold
	}

	if !hasDomainContext(query) {
		threshold = offDomainThreshold
	}

	return similarity >= threshold
}

// hasDomainContext reports whether any query token is a domain keyword.
func hasDomainContext(query string) bool {
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if _, ok := domainKeywords[word]; ok {
			return true
		}
	}
	return false
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
