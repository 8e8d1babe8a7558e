package domain

import "time"

// FocusSession is the immutable log record of one completed countdown.
type FocusSession struct {
	ID              string
	UserID          string
	MissionID       *string // nil for breaks and unassigned focus intervals
	Mode            TimerMode
	DurationMinutes int
	IsCompleted     bool
	CreatedAt       time.Time
}

// ModeSummary aggregates logged sessions for a single mode.
type ModeSummary struct {
	Mode         TimerMode
	SessionCount int
	TotalMinutes int
}
