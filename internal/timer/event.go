package timer

import "github.com/vocuz/vocuz/internal/domain"

// Event is an input to Apply.
type Event interface{ isEvent() }

// SwitchMode loads a fresh countdown for Mode. AutoStart schedules a start
// after AutoStartDelay.
type SwitchMode struct {
	Mode      domain.TimerMode
	AutoStart bool
}

// ToggleRun starts or pauses. Confirmed answers an earlier RequestConfirm.
type ToggleRun struct {
	Confirmed bool
}

// Reset stops and restores the current mode's full duration.
type Reset struct{}

// Tick is one elapsed second of the ticker started for Epoch.
type Tick struct {
	Epoch uint64
}

// DelayedStart fires AutoStartDelay after an auto-starting SwitchMode.
type DelayedStart struct {
	Epoch uint64
}

// SelectMission picks the mission the next focus interval works on. An empty
// ID clears the selection.
type SelectMission struct {
	ID string
}

// MissionsLoaded carries a fresh pending list from the mission store, oldest
// first.
type MissionsLoaded struct {
	Missions []PendingMission
}

type SettingsChanged struct {
	Settings domain.TimerSettings
}

// UserChanged reports a sign-in or sign-out. An empty UserID means signed out.
type UserChanged struct {
	UserID string
}

func (SwitchMode) isEvent()      {}
func (ToggleRun) isEvent()       {}
func (Reset) isEvent()           {}
func (Tick) isEvent()            {}
func (DelayedStart) isEvent()    {}
func (SelectMission) isEvent()   {}
func (MissionsLoaded) isEvent()  {}
func (SettingsChanged) isEvent() {}
func (UserChanged) isEvent()     {}

// PendingFromMissions converts store missions into the timer's local form,
// skipping completed ones.
func PendingFromMissions(missions []*domain.Mission) []PendingMission {
	out := make([]PendingMission, 0, len(missions))
	for _, m := range missions {
		if m.IsCompleted {
			continue
		}
		out = append(out, PendingMission{ID: m.ID, Title: m.Title})
	}
	return out
}
