package domain

import "errors"

var (
	// ErrEmptyTitle is returned when a mission or note title is blank.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrInvalidSettings is returned when a timer duration is out of range.
	ErrInvalidSettings = errors.New("invalid timer settings")

	ErrUnknownMode = errors.New("unknown timer mode")
)
