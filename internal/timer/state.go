// Package timer implements the Pomodoro session state machine. Apply is a
// pure transition function; Controller executes the effects it returns and
// Runner drives it from a plain tick loop.
package timer

import (
	"fmt"
	"slices"

	"github.com/vocuz/vocuz/internal/domain"
)

// PendingMission is the timer's local copy of an open mission.
type PendingMission struct {
	ID    string
	Title string
}

// State is the complete timer state. Values are never shared: Apply returns
// a fresh State and copies slices it changes.
type State struct {
	Mode     domain.TimerMode
	TimeLeft int // seconds
	// Total is the full length in seconds of the loaded countdown.
	Total      int
	Running    bool
	SelectedID string

	Pending  []PendingMission
	Settings domain.TimerSettings
	UserID   string

	// Epoch identifies the current ticker. Ticks and delayed starts from an
	// older epoch are dropped.
	Epoch uint64

	// done holds missions completed locally whose remote update may not be
	// visible yet; reloads filter them out.
	done []string
}

// NewState returns a stopped focus countdown with no missions loaded.
func NewState(settings domain.TimerSettings, userID string) State {
	secs := settings.Seconds(domain.ModeFocus)
	return State{
		Mode:     domain.ModeFocus,
		TimeLeft: secs,
		Total:    secs,
		Settings: settings,
		UserID:   userID,
	}
}

// Authenticated reports whether session writes are possible.
func (s State) Authenticated() bool { return s.UserID != "" }

// Clock renders TimeLeft as MM:SS.
func (s State) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.TimeLeft/60, s.TimeLeft%60)
}

// Progress is the elapsed fraction of the current countdown in [0, 1].
func (s State) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Total-s.TimeLeft) / float64(s.Total)
}

// Selected returns the selected pending mission, if any.
func (s State) Selected() (PendingMission, bool) {
	i := s.pendingIndex(s.SelectedID)
	if i < 0 {
		return PendingMission{}, false
	}
	return s.Pending[i], true
}

func (s State) pendingIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.Pending, func(m PendingMission) bool { return m.ID == id })
}

// needsConfirm is the start guard: starting focus with open missions but
// none selected must be confirmed first.
func (s State) needsConfirm() bool {
	return s.Mode == domain.ModeFocus && s.SelectedID == "" && len(s.Pending) > 0
}
