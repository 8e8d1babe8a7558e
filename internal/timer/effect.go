package timer

import (
	"time"

	"github.com/vocuz/vocuz/internal/domain"
)

// AutoStartDelay separates an automatic mode switch from the start that
// follows it.
const AutoStartDelay = 50 * time.Millisecond

// TickInterval is the fixed ticker period. Drift is not corrected.
const TickInterval = time.Second

// Effect is an instruction produced by Apply for something outside the pure
// state: timers, sounds, store writes, user prompts.
type Effect interface{ isEffect() }

// StartTicker asks the host to deliver Tick{Epoch} every TickInterval.
type StartTicker struct {
	Epoch uint64
}

// StopTicker asks the host to release the running ticker.
type StopTicker struct{}

// ScheduleStart asks the host to deliver DelayedStart{Epoch} after Delay.
type ScheduleStart struct {
	Epoch uint64
	Delay time.Duration
}

// PlaySignal is the completion chime. Failure to play is not an error.
type PlaySignal struct {
	Mode domain.TimerMode
}

// LogSession records one completed countdown.
type LogSession struct {
	UserID    string
	MissionID string // empty for breaks and unassigned focus
	Mode      domain.TimerMode
	Minutes   int
}

// CompleteMission marks a mission done in the store.
type CompleteMission struct {
	UserID    string
	MissionID string
}

// LoadMissions asks for a fresh pending list.
type LoadMissions struct{}

// RequestConfirm asks the user a yes/no question. On yes the host sends
// ToggleRun{Confirmed: true}; on no it does nothing.
type RequestConfirm struct {
	Prompt string
}

// Notify is a user-facing status message.
type Notify struct {
	Message string
}

func (StartTicker) isEffect()     {}
func (StopTicker) isEffect()      {}
func (ScheduleStart) isEffect()   {}
func (PlaySignal) isEffect()      {}
func (LogSession) isEffect()      {}
func (CompleteMission) isEffect() {}
func (LoadMissions) isEffect()    {}
func (RequestConfirm) isEffect()  {}
func (Notify) isEffect()          {}
