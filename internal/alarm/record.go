// Package alarm analyzes process alarm history: time-series statistics,
// state-transition detection, and data-driven guidance queries against the
// document index.
package alarm

import "time"

// Record is a single alarm history sample. Tags identify process sensors
// (temperature, pressure, flow); states are alarm conditions such as OK,
// High, and HighHigh.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Tag       string    `json:"tag"`
	Value     float64   `json:"value"`
	State     string    `json:"alarm_state"`
}

// Transition is a change of alarm state between consecutive samples of a
// tag.
type Transition struct {
	Timestamp time.Time `json:"timestamp"`
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Value     float64   `json:"value"`
}
