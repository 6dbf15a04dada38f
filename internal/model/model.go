package model

import "time"

// Cycle is one recorded date-range event. Dates are plain YYYY-MM-DD strings;
// lexicographic order on them is chronological order, and the dateutil package
// converts to instants where day arithmetic is needed.
type Cycle struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	DurationDays int    `json:"durationDays"`
	// SpacingDays is the day count from the chronologically previous cycle's
	// start to this cycle's start. 0 means "no previous cycle known".
	SpacingDays int `json:"spacingDays"`
}

// DailyLog is a free-text symptom/mood note for a single day, keyed by date.
type DailyLog struct {
	Date     string `json:"date"`
	Symptoms string `json:"symptoms,omitempty"`
	Mood     string `json:"mood,omitempty"`
}

// Reminder is a scheduled message. Derived marks the single auto-maintained
// entry that tracks the predicted next cycle; it is replaced on every ledger
// mutation and never persisted.
type Reminder struct {
	When    time.Time `json:"when"`
	Message string    `json:"message"`
	Derived bool      `json:"derived,omitempty"`
}

type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionDelete ActionKind = "delete"
)

// HistoryAction is an inverse-action record for undo/redo. Record is a value
// copy taken at mutation time, so later ledger edits cannot corrupt it.
type HistoryAction struct {
	Kind   ActionKind `json:"kind"`
	Record Cycle      `json:"record"`
}
