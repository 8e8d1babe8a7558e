package cli

import (
	"github.com/spf13/pflag"

	"github.com/vocuz/vocuz/internal/domain"
)

// modeValue is a pflag.Value accepting the timer mode names and aliases.
type modeValue struct {
	mode domain.TimerMode
}

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string { return string(v.mode) }

func (v *modeValue) Set(s string) error {
	m, err := domain.ParseTimerMode(s)
	if err != nil {
		return err
	}
	v.mode = m
	return nil
}

func (v *modeValue) Type() string { return "mode" }

// Mode returns the parsed mode, or fallback when the flag was not set.
func (v *modeValue) Mode(fallback domain.TimerMode) domain.TimerMode {
	if v.mode == "" {
		return fallback
	}
	return v.mode
}
