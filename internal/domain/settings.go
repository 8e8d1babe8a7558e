package domain

import (
	"fmt"
	"time"
)

// MaxDurationMin caps a single interval at four hours.
const MaxDurationMin = 240

// TimerSettings holds the per-mode durations in whole minutes.
type TimerSettings struct {
	Focus      int `yaml:"focus" json:"focus"`
	ShortBreak int `yaml:"shortBreak" json:"shortBreak"`
	LongBreak  int `yaml:"longBreak" json:"longBreak"`
}

// DefaultTimerSettings returns the classic 25/5/15 split.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{Focus: 25, ShortBreak: 5, LongBreak: 15}
}

// Minutes returns the configured duration for a mode.
func (s TimerSettings) Minutes(mode TimerMode) int {
	switch mode {
	case ModeShort:
		return s.ShortBreak
	case ModeLong:
		return s.LongBreak
	default:
		return s.Focus
	}
}

// Seconds returns the configured duration for a mode in seconds.
func (s TimerSettings) Seconds(mode TimerMode) int {
	return s.Minutes(mode) * 60
}

// Duration returns the configured duration for a mode.
func (s TimerSettings) Duration(mode TimerMode) time.Duration {
	return time.Duration(s.Minutes(mode)) * time.Minute
}

// Validate checks every duration is within 1..MaxDurationMin.
func (s TimerSettings) Validate() error {
	for _, mode := range TimerModes {
		m := s.Minutes(mode)
		if m < 1 || m > MaxDurationMin {
			return fmt.Errorf("%w: %s must be between 1 and %d minutes, got %d",
				ErrInvalidSettings, mode, MaxDurationMin, m)
		}
	}
	return nil
}

// WithDefaults fills zero values from DefaultTimerSettings.
func (s TimerSettings) WithDefaults() TimerSettings {
	d := DefaultTimerSettings()
	if s.Focus == 0 {
		s.Focus = d.Focus
	}
	if s.ShortBreak == 0 {
		s.ShortBreak = d.ShortBreak
	}
	if s.LongBreak == 0 {
		s.LongBreak = d.LongBreak
	}
	return s
}
