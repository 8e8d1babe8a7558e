package timer

import (
	"slices"

	"github.com/vocuz/vocuz/internal/domain"
)

const (
	msgSelectFirst   = "Please select a mission first to stay focused! Start anyway?"
	msgFocusDone     = "Focus session done! Mission completed. Take a short break."
	msgAllDone       = "All missions completed! Enjoy a long break."
	msgFocusNoTask   = "Focus session done! Take a short break."
	msgBreakOver     = "Break over! Back to work."
	msgBreakOverIdle = "Break over. No more missions."
	msgLongDone      = "Long break finished. You are refreshed!"
)

// Apply returns the state after ev and the effects to execute, in order.
// It never performs I/O and never mutates s.
func Apply(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SwitchMode:
		return switchMode(s, ev.Mode, ev.AutoStart)
	case ToggleRun:
		return toggleRun(s, ev.Confirmed)
	case Reset:
		return reset(s)
	case Tick:
		return tick(s, ev.Epoch)
	case DelayedStart:
		if ev.Epoch != s.Epoch || s.Running {
			return s, nil
		}
		return start(s)
	case SelectMission:
		return selectMission(s, ev.ID), nil
	case MissionsLoaded:
		return missionsLoaded(s, ev.Missions), nil
	case SettingsChanged:
		return settingsChanged(s, ev.Settings), nil
	case UserChanged:
		return userChanged(s, ev.UserID)
	}
	return s, nil
}

// stop halts the countdown and retires the current ticker.
func stop(s State) (State, []Effect) {
	s.Running = false
	s.Epoch++
	return s, []Effect{StopTicker{}}
}

func start(s State) (State, []Effect) {
	if s.TimeLeft == 0 {
		s.TimeLeft = s.Settings.Seconds(s.Mode)
		s.Total = s.TimeLeft
	}
	s.Running = true
	s.Epoch++
	return s, []Effect{StartTicker{Epoch: s.Epoch}}
}

func load(s State, mode domain.TimerMode) State {
	s.Mode = mode
	s.TimeLeft = s.Settings.Seconds(mode)
	s.Total = s.TimeLeft
	return s
}

func switchMode(s State, mode domain.TimerMode, autoStart bool) (State, []Effect) {
	s, effects := stop(s)
	s = load(s, mode)
	if autoStart {
		effects = append(effects, ScheduleStart{Epoch: s.Epoch, Delay: AutoStartDelay})
	}
	return s, effects
}

func toggleRun(s State, confirmed bool) (State, []Effect) {
	if s.Running {
		return stop(s)
	}
	if s.needsConfirm() && !confirmed {
		return s, []Effect{RequestConfirm{Prompt: msgSelectFirst}}
	}
	return start(s)
}

func reset(s State) (State, []Effect) {
	s, effects := stop(s)
	return load(s, s.Mode), effects
}

func tick(s State, epoch uint64) (State, []Effect) {
	if !s.Running || epoch != s.Epoch {
		return s, nil
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if s.TimeLeft > 0 {
		return s, nil
	}
	return complete(s)
}

// complete runs exactly once per countdown: it stops the ticker, so later
// ticks carry a stale epoch.
func complete(s State) (State, []Effect) {
	finished := s.Mode
	s, effects := stop(s)
	effects = append(effects, PlaySignal{Mode: finished})

	if s.Authenticated() {
		log := LogSession{UserID: s.UserID, Mode: finished, Minutes: s.Total / 60}
		if finished == domain.ModeFocus {
			log.MissionID = s.SelectedID
		}
		if log.Minutes < 1 {
			log.Minutes = 1
		}
		effects = append(effects, log)
	}

	var next []Effect
	switch finished {
	case domain.ModeFocus:
		if s.SelectedID == "" {
			s, next = switchMode(s, domain.ModeShort, true)
			effects = append(effects, Notify{Message: msgFocusNoTask})
			break
		}
		effects = append(effects, CompleteMission{UserID: s.UserID, MissionID: s.SelectedID})
		s = dropPending(s, s.SelectedID)
		s.SelectedID = ""
		if len(s.Pending) > 0 {
			s, next = switchMode(s, domain.ModeShort, true)
			effects = append(effects, Notify{Message: msgFocusDone})
		} else {
			s, next = switchMode(s, domain.ModeLong, true)
			effects = append(effects, Notify{Message: msgAllDone})
		}

	case domain.ModeShort:
		if len(s.Pending) == 0 {
			effects = append(effects, Notify{Message: msgBreakOverIdle})
			break
		}
		if s.SelectedID == "" {
			s.SelectedID = s.Pending[0].ID
		}
		s, next = switchMode(s, domain.ModeFocus, true)
		effects = append(effects, Notify{Message: msgBreakOver})

	case domain.ModeLong:
		s = load(s, domain.ModeFocus)
		effects = append(effects, Notify{Message: msgLongDone})
	}
	return s, append(effects, next...)
}

func dropPending(s State, id string) State {
	s.Pending = slices.DeleteFunc(slices.Clone(s.Pending), func(m PendingMission) bool { return m.ID == id })
	s.done = append(slices.Clone(s.done), id)
	return s
}

func selectMission(s State, id string) State {
	if s.Running {
		return s
	}
	if id != "" && s.pendingIndex(id) < 0 {
		return s
	}
	s.SelectedID = id
	return s
}

// missionsLoaded replaces the local list, hiding missions completed here that
// the store still reports as open. The selection survives when the mission is
// still pending; otherwise the first pending mission is selected.
func missionsLoaded(s State, loaded []PendingMission) State {
	var stillOpen []string
	pending := make([]PendingMission, 0, len(loaded))
	for _, m := range loaded {
		if slices.Contains(s.done, m.ID) {
			stillOpen = append(stillOpen, m.ID)
			continue
		}
		pending = append(pending, m)
	}
	s.Pending = pending
	s.done = stillOpen

	if s.pendingIndex(s.SelectedID) >= 0 {
		return s
	}
	if s.Running {
		// A running focus interval keeps its mission even if it vanished
		// remotely, and never gains one the user did not pick.
		if s.Mode != domain.ModeFocus {
			s.SelectedID = ""
		}
		return s
	}
	s.SelectedID = ""
	if len(s.Pending) > 0 {
		s.SelectedID = s.Pending[0].ID
	}
	return s
}

// settingsChanged never touches a running countdown.
func settingsChanged(s State, settings domain.TimerSettings) State {
	s.Settings = settings
	if !s.Running {
		s = load(s, s.Mode)
	}
	return s
}

func userChanged(s State, userID string) (State, []Effect) {
	if userID == s.UserID {
		return s, nil
	}
	s.UserID = userID
	if userID == "" {
		s.Pending = nil
		s.SelectedID = ""
		s.done = nil
		return s, nil
	}
	return s, []Effect{LoadMissions{}}
}
