package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/settings"
	"github.com/vocuz/vocuz/internal/timer"
)

// adjustStep is how many minutes +/- add to or take from the current mode.
const adjustStep = 5

var themeCycle = []domain.Theme{domain.ThemeDark, domain.ThemeLight, domain.ThemeMint, domain.ThemeBrown}

// ── messages ────────────────────────────────────────────────────────────────

type tickMsg struct{ epoch uint64 }

type startMsg struct{ epoch uint64 }

// eventMsg carries a timer event produced off the event loop.
type eventMsg struct{ ev timer.Event }

// prefsMsg carries saved preferences, or the error that kept them from being
// saved.
type prefsMsg struct {
	prefs settings.Preferences
	err   error
}

// ── keys ────────────────────────────────────────────────────────────────────

type timerKeyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Focus   key.Binding
	Short   key.Binding
	Long    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Clear   key.Binding
	Theme   key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Quit    key.Binding
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Focus:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus")),
		Short:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short")),
		Long:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick mission")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unpick")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Longer:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "±5 min")),
		Shorter: key.NewBinding(key.WithKeys("-")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Focus, k.Short, k.Long, k.Select, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Focus, k.Short, k.Long},
		{k.Up, k.Down, k.Select, k.Clear},
		{k.Theme, k.Longer, k.Quit},
	}
}

// ── model ───────────────────────────────────────────────────────────────────

// timerModel is the interactive timer. All Dispatch calls happen in Update,
// so the controller only ever sees the bubbletea event loop.
type timerModel struct {
	app  *App
	ctrl *timer.Controller

	keys timerKeyMap
	help help.Model
	bar  progress.Model

	cursor   int
	confirm  string // pending yes/no prompt
	notice   string
	quitting bool
}

func newTimerModel(app *App, ctrl *timer.Controller) timerModel {
	return timerModel{
		app:  app,
		ctrl: ctrl,
		keys: newTimerKeyMap(),
		help: help.New(),
		bar:  newProgressBar(ctrl.State().Mode),
	}
}

func newProgressBar(mode domain.TimerMode) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(formatter.ModeColor(mode))),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
}

func (m timerModel) Init() tea.Cmd {
	if !m.ctrl.State().Authenticated() {
		return nil
	}
	return m.fetchPending()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.epoch != m.ctrl.State().Epoch {
			return m, nil
		}
		cmd := m.dispatch(timer.Tick{Epoch: msg.epoch})
		// Re-arm while the same countdown keeps running.
		if s := m.ctrl.State(); s.Running && s.Epoch == msg.epoch {
			cmd = tea.Batch(cmd, tick(msg.epoch))
		}
		return m, cmd

	case startMsg:
		return m, m.dispatch(timer.DelayedStart{Epoch: msg.epoch})

	case eventMsg:
		return m, m.dispatch(msg.ev)

	case prefsMsg:
		if msg.err != nil {
			m.notice = "saving settings failed: " + msg.err.Error()
			return m, nil
		}
		formatter.ApplyTheme(msg.prefs.Theme)
		return m, m.dispatch(timer.SettingsChanged{Settings: msg.prefs.Timer})

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm != "" {
		m.confirm = ""
		if s := msg.String(); s == "y" || s == "Y" {
			return m, m.dispatch(timer.ToggleRun{Confirmed: true})
		}
		return m, nil
	}

	s := m.ctrl.State()
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.dispatch(timer.ToggleRun{})
	case key.Matches(msg, m.keys.Reset):
		return m, m.dispatch(timer.Reset{})
	case key.Matches(msg, m.keys.Focus):
		return m, m.dispatch(timer.SwitchMode{Mode: domain.ModeFocus})
	case key.Matches(msg, m.keys.Short):
		return m, m.dispatch(timer.SwitchMode{Mode: domain.ModeShort})
	case key.Matches(msg, m.keys.Long):
		return m, m.dispatch(timer.SwitchMode{Mode: domain.ModeLong})
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(s.Pending)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(s.Pending) {
			return m, m.dispatch(timer.SelectMission{ID: s.Pending[m.cursor].ID})
		}
	case key.Matches(msg, m.keys.Clear):
		return m, m.dispatch(timer.SelectMission{})
	case key.Matches(msg, m.keys.Theme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.Longer):
		return m, m.adjust(s.Mode, adjustStep)
	case key.Matches(msg, m.keys.Shorter):
		return m, m.adjust(s.Mode, -adjustStep)
	}
	return m, nil
}

// dispatch hands ev to the controller and turns the host effects into
// commands.
func (m *timerModel) dispatch(ev timer.Event) tea.Cmd {
	var cmds []tea.Cmd
	prevSelected := m.ctrl.State().SelectedID
	for _, eff := range m.ctrl.Dispatch(ev) {
		switch eff := eff.(type) {
		case timer.StartTicker:
			cmds = append(cmds, tick(eff.Epoch))
		case timer.StopTicker:
			// Ticks carry their epoch; stale ones are dropped on arrival.
		case timer.ScheduleStart:
			epoch := eff.Epoch
			cmds = append(cmds, tea.Tick(eff.Delay, func(time.Time) tea.Msg { return startMsg{epoch: epoch} }))
		case timer.LoadMissions:
			cmds = append(cmds, m.fetchPending())
		case timer.RequestConfirm:
			m.confirm = eff.Prompt
		case timer.Notify:
			m.notice = eff.Message
		}
	}

	s := m.ctrl.State()
	if m.cursor >= len(s.Pending) {
		m.cursor = max(len(s.Pending)-1, 0)
	}
	if s.SelectedID != prevSelected {
		if i := slices.IndexFunc(s.Pending, func(p timer.PendingMission) bool { return p.ID == s.SelectedID }); i >= 0 {
			m.cursor = i
		}
	}
	if m.bar.FullColor != string(formatter.ModeColor(s.Mode)) {
		m.bar = newProgressBar(s.Mode)
	}
	return tea.Batch(cmds...)
}

func tick(epoch uint64) tea.Cmd {
	return tea.Tick(timer.TickInterval, func(time.Time) tea.Msg { return tickMsg{epoch: epoch} })
}

func (m timerModel) fetchPending() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ev := ctrl.FetchPending()
		if ev == nil {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// forwardSettings delivers every saved preference change to the model
// through send. Saved values arrive as prefsMsg, never from the save command.
func forwardSettings(holder *settings.Holder, send func(tea.Msg)) (unsubscribe func()) {
	if holder == nil {
		return func() {}
	}
	return holder.OnChange(func(p settings.Preferences) { send(prefsMsg{prefs: p}) })
}

func (m timerModel) cycleTheme() tea.Cmd {
	return m.savePrefs(func(p *settings.Preferences) {
		cur := slices.Index(themeCycle, p.Theme)
		p.Theme = themeCycle[(cur+1)%len(themeCycle)]
	})
}

// adjust changes the duration of mode by delta minutes, within the allowed
// range. The new value is computed from the saved one when the save runs, so
// quick repeated presses all count.
func (m timerModel) adjust(mode domain.TimerMode, delta int) tea.Cmd {
	return m.savePrefs(func(p *settings.Preferences) {
		minutes := min(max(p.Timer.Minutes(mode)+delta, 1), domain.MaxDurationMin)
		switch mode {
		case domain.ModeShort:
			p.Timer.ShortBreak = minutes
		case domain.ModeLong:
			p.Timer.LongBreak = minutes
		default:
			p.Timer.Focus = minutes
		}
	})
}

// savePrefs runs edit against the holder off the event loop. Saved values
// come back through forwardSettings; only a failure is returned here.
func (m timerModel) savePrefs(edit func(p *settings.Preferences)) tea.Cmd {
	holder := m.app.Settings
	if holder == nil {
		return nil
	}
	return func() tea.Msg {
		if err := holder.Modify(edit); err != nil {
			return prefsMsg{err: err}
		}
		return nil
	}
}

// ── view ────────────────────────────────────────────────────────────────────

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.ctrl.State()
	var b strings.Builder

	b.WriteString(formatter.Header("VOCUZ") + "  " + modeTabs(s.Mode) + "\n\n")

	clock := lipgloss.NewStyle().Bold(true).Foreground(formatter.ModeColor(s.Mode)).Render(s.Clock())
	status := formatter.Dim("paused")
	if s.Running {
		status = formatter.StyleGreen.Render("running")
	}
	fmt.Fprintf(&b, "  %s  %s\n", clock, status)
	fmt.Fprintf(&b, "  %s\n\n", m.bar.ViewAs(s.Progress()))

	if !s.Authenticated() {
		b.WriteString("  " + formatter.StyleYellow.Render("Not signed in: sessions are not saved. Run `vocuz login`.") + "\n\n")
	} else {
		b.WriteString(m.viewMissions(s))
	}

	if m.confirm != "" {
		b.WriteString("  " + formatter.StyleYellow.Render(m.confirm+" [y/N]") + "\n")
	} else if m.notice != "" {
		b.WriteString("  " + m.notice + "\n")
	}

	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m timerModel) viewMissions(s timer.State) string {
	var b strings.Builder
	b.WriteString("  " + formatter.Bold("Missions") + "\n")
	if len(s.Pending) == 0 {
		b.WriteString("  " + formatter.Dim("Nothing pending. Add one with `vocuz mission add`.") + "\n\n")
		return b.String()
	}
	for i, p := range s.Pending {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		title := formatter.Truncate(p.Title, 50)
		if p.ID == s.SelectedID {
			title = formatter.StyleGreen.Render("● " + title)
		} else {
			title = formatter.Dim("○ ") + title
		}
		fmt.Fprintf(&b, "  %s%s\n", cursor, title)
	}
	b.WriteString("\n")
	return b.String()
}

func modeTabs(active domain.TimerMode) string {
	tabs := make([]string, 0, len(domain.TimerModes))
	for _, mode := range domain.TimerModes {
		label := mode.Label()
		if mode == active {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(formatter.ModeColor(mode)).Render("["+label+"]"))
		} else {
			tabs = append(tabs, formatter.Dim(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}
