package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/settings"
	"github.com/vocuz/vocuz/internal/teatest"
	"github.com/vocuz/vocuz/internal/timer"
)

// timerDriver bundles the synchronous driver with the controller behind the
// model so tests can inspect timer state directly.
type timerDriver struct {
	*teatest.Driver
	ctrl  *timer.Controller
	saved chan tea.Msg
}

func newTimerDriver(t *testing.T, app *App) *timerDriver {
	t.Helper()
	var userID string
	if creds, err := app.signedIn(); err == nil && creds != nil {
		userID = creds.UserID
	}
	ctrl := timer.NewController(timer.NewState(app.Settings.Timer(), userID), app.Missions, app.Sessions)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = ctrl.Close(ctx)
	})
	saved := make(chan tea.Msg, 16)
	t.Cleanup(forwardSettings(app.Settings, func(msg tea.Msg) { saved <- msg }))

	d := teatest.New(t, newTimerModel(app, ctrl), teatest.WithSize(100, 40))
	return &timerDriver{Driver: d, ctrl: ctrl, saved: saved}
}

// press sends keys and then hands over any preference changes they saved,
// the way the running program's subscription would.
func (d *timerDriver) press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Press(k)
		d.flush()
	}
}

func (d *timerDriver) flush() {
	for len(d.saved) > 0 {
		d.Send(<-d.saved)
	}
}

func (d *timerDriver) state() timer.State { return d.ctrl.State() }

// tickN delivers n ticks for the current countdown.
func (d *timerDriver) tickN(n int) {
	for range n {
		d.Send(tickMsg{epoch: d.state().Epoch})
	}
}

func seedMissions(t *testing.T, app *App, titles ...string) []*domain.Mission {
	t.Helper()
	out := make([]*domain.Mission, 0, len(titles))
	for _, title := range titles {
		m, err := app.Missions.Create(userCtx(t, app), title)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func TestTimerTUI_SignedOutHint(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	view := stripANSI(d.View())
	assert.Contains(t, view, "Not signed in")
	assert.Contains(t, view, "25:00")
	assert.Empty(t, d.state().Pending)
}

func TestTimerTUI_LoadsPendingAndSelectsFirst(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	ms := seedMissions(t, a, "Write report", "Read paper")

	d := newTimerDriver(t, a)

	s := d.state()
	require.Len(t, s.Pending, 2)
	assert.Equal(t, ms[0].ID, s.SelectedID)
	view := stripANSI(d.View())
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "Read paper")
}

func TestTimerTUI_ToggleStartsTicker(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.Press("space")
	s := d.state()
	require.True(t, s.Running)
	assert.Equal(t, 1, d.Pending, "tick scheduled")

	d.tickN(3)
	assert.Equal(t, 25*60-3, d.state().TimeLeft)
	assert.Contains(t, stripANSI(d.View()), "24:57")

	d.Press("s")
	assert.False(t, d.state().Running)

	// A tick from the paused countdown is ignored.
	d.Send(tickMsg{epoch: s.Epoch})
	assert.Equal(t, 25*60-3, d.state().TimeLeft)
}

func TestTimerTUI_ResetAndModeKeys(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.Press("space")
	d.tickN(10)
	d.Press("r")
	assert.False(t, d.state().Running)
	assert.Equal(t, 25*60, d.state().TimeLeft)

	d.Press("2")
	assert.Equal(t, domain.ModeShort, d.state().Mode)
	assert.Equal(t, 5*60, d.state().TimeLeft)

	d.Press("3")
	assert.Equal(t, domain.ModeLong, d.state().Mode)
	assert.Contains(t, stripANSI(d.View()), "[Long Break]")

	d.Press("1")
	assert.Equal(t, domain.ModeFocus, d.state().Mode)
}

func TestTimerTUI_StartWithoutSelectionAsks(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	seedMissions(t, a, "Write report")
	d := newTimerDriver(t, a)

	d.Press("x")
	require.Empty(t, d.state().SelectedID)

	d.Press("space")
	assert.False(t, d.state().Running)
	assert.Contains(t, stripANSI(d.View()), "Start anyway? [y/N]")

	d.Press("n")
	assert.False(t, d.state().Running)
	assert.NotContains(t, stripANSI(d.View()), "[y/N]")

	d.Press("space", "y")
	assert.True(t, d.state().Running)
}

func TestTimerTUI_CursorSelectsMission(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	ms := seedMissions(t, a, "First", "Second", "Third")
	d := newTimerDriver(t, a)

	d.Press("down", "down", "enter")
	assert.Equal(t, ms[2].ID, d.state().SelectedID)

	d.Press("up", "enter")
	assert.Equal(t, ms[1].ID, d.state().SelectedID)

	// The cursor stops at the ends of the list.
	d.Press("up", "up", "up", "enter")
	assert.Equal(t, ms[0].ID, d.state().SelectedID)
}

func TestTimerTUI_FocusCompletionCompletesMission(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	require.NoError(t, a.Settings.UpdateTimer(domain.TimerSettings{Focus: 1, ShortBreak: 1, LongBreak: 2}))
	ms := seedMissions(t, a, "Only one", "Another")
	d := newTimerDriver(t, a)

	d.Press("space")
	d.tickN(60)

	s := d.state()
	assert.Equal(t, domain.ModeShort, s.Mode)
	assert.False(t, s.Running, "short break waits for the delayed start")
	require.Len(t, s.Pending, 1)
	assert.Equal(t, ms[1].ID, s.Pending[0].ID)
	assert.Contains(t, stripANSI(d.View()), "Focus session done! Mission completed.")

	d.Send(startMsg{epoch: s.Epoch})
	assert.True(t, d.state().Running)

	require.Eventually(t, func() bool {
		got, err := a.Missions.GetByID(userCtx(t, a), ms[0].ID)
		return err == nil && got.IsCompleted
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		sessions, err := a.Sessions.ListByMission(userCtx(t, a), ms[0].ID)
		return err == nil && len(sessions) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTimerTUI_StaleDelayedStartIgnored(t *testing.T) {
	a := testApp(t)
	require.NoError(t, a.Settings.UpdateTimer(domain.TimerSettings{Focus: 1, ShortBreak: 5, LongBreak: 15}))
	d := newTimerDriver(t, a)

	d.Press("space")
	d.tickN(60)
	stale := d.state().Epoch
	require.Equal(t, domain.ModeShort, d.state().Mode)

	// Switching away before the auto-start fires cancels it.
	d.Press("3")
	d.Send(startMsg{epoch: stale})
	assert.False(t, d.state().Running)
	assert.Equal(t, domain.ModeLong, d.state().Mode)
}

func TestTimerTUI_AdjustDuration(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.press("+")
	assert.Equal(t, 30, a.Settings.Timer().Focus)
	assert.Equal(t, 30*60, d.state().TimeLeft)

	d.press("2", "-", "-")
	assert.Equal(t, 1, a.Settings.Timer().ShortBreak)
	assert.Equal(t, 60, d.state().TimeLeft)
}

func TestTimerTUI_AdjustKeepsRunningCountdown(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.Press("space")
	d.tickN(5)
	d.press("+")
	assert.Equal(t, 30, d.state().Settings.Focus)
	assert.Equal(t, 25*60-5, d.state().TimeLeft)
}

func TestTimerTUI_CycleTheme(t *testing.T) {
	t.Cleanup(func() { formatter.ApplyTheme(domain.DefaultTheme) })
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.press("t")
	assert.Equal(t, domain.ThemeLight, a.Settings.Get().Theme)
	assert.Equal(t, domain.ThemeLight, formatter.ActiveTheme())

	d.press("t", "t", "t")
	assert.Equal(t, domain.ThemeDark, a.Settings.Get().Theme)
}

func TestTimerTUI_Quit(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)

	d.Press("q")
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestTimerTUI_RepeatedAdjustSavesEveryStep(t *testing.T) {
	a := testApp(t)
	ctrl := timer.NewController(timer.NewState(a.Settings.Timer(), ""), a.Missions, a.Sessions)
	m := newTimerModel(a, ctrl)

	// Both presses land before either save has run.
	cmds := []tea.Cmd{m.adjust(domain.ModeFocus, adjustStep), m.adjust(domain.ModeFocus, adjustStep)}
	var wg sync.WaitGroup
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Nil(t, cmd())
		}()
	}
	wg.Wait()

	assert.Equal(t, 35, a.Settings.Timer().Focus)
}

func TestTimerTUI_SignInElsewhereLoadsMissions(t *testing.T) {
	a := testApp(t)
	d := newTimerDriver(t, a)
	watch := newOutsideSync(a, nil)
	toModel := func(ev timer.Event) { d.Send(eventMsg{ev: ev}) }

	watch.check(toModel)
	assert.False(t, d.state().Authenticated())

	signUp(t, a)
	seedMissions(t, a, "Write report", "Read paper")
	watch.check(toModel)

	s := d.state()
	require.True(t, s.Authenticated())
	require.Len(t, s.Pending, 2)
	assert.NotContains(t, stripANSI(d.View()), "Not signed in")
	assert.Contains(t, stripANSI(d.View()), "Write report")

	_, err := executeCmd(t, a, "logout")
	require.NoError(t, err)
	watch.check(toModel)
	assert.False(t, d.state().Authenticated())
	assert.Empty(t, d.state().Pending)
	assert.Contains(t, stripANSI(d.View()), "Not signed in")
}

func TestTimerTUI_SettingsSavedElsewhere(t *testing.T) {
	t.Cleanup(func() { formatter.ApplyTheme(domain.DefaultTheme) })
	a := testApp(t)
	d := newTimerDriver(t, a)

	other, err := settings.NewHolder(settings.NewFileStore(a.Config.PreferencesPath()))
	require.NoError(t, err)
	require.NoError(t, other.Update(settings.Preferences{
		Timer: domain.TimerSettings{Focus: 40, ShortBreak: 5, LongBreak: 15},
		Theme: domain.ThemeMint,
	}))

	newOutsideSync(a, nil).check(func(timer.Event) {})
	d.flush()

	assert.Equal(t, 40*60, d.state().TimeLeft)
	assert.Equal(t, domain.ThemeMint, formatter.ActiveTheme())
}

func TestOutsideSync_HandsNewTokenToBackend(t *testing.T) {
	a := testApp(t)
	var tokens []string
	a.UseToken = func(token string) { tokens = append(tokens, token) }
	watch := newOutsideSync(a, nil)

	signUp(t, a)
	var events []timer.Event
	watch.check(func(ev timer.Event) { events = append(events, ev) })

	creds, err := a.signedIn()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, []string{creds.Token}, tokens)
	assert.Equal(t, []timer.Event{timer.UserChanged{UserID: creds.UserID}}, events)

	// Nothing changed since the last look.
	watch.check(func(ev timer.Event) { events = append(events, ev) })
	assert.Len(t, events, 1)
	assert.Len(t, tokens, 1)
}

func TestOrderedSender_KeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan tea.Msg, 100)
	send := orderedSender(ctx, func(msg tea.Msg) { got <- msg })
	for i := range 100 {
		send(i)
	}
	for i := range 100 {
		select {
		case msg := <-got:
			require.Equal(t, i, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("message %d not delivered", i)
		}
	}
}
