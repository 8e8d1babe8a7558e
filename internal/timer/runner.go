package timer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vocuz/vocuz/internal/domain"
)

// Ticker is the subset of *time.Ticker the runner uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker { return stdTicker{t: time.NewTicker(d)} }

// Runner drives a Controller from line commands on a plain terminal or pipe.
// It owns the single ticker and is the only goroutine calling Dispatch.
type Runner struct {
	ctrl      *Controller
	out       io.Writer
	newTicker func(time.Duration) Ticker
	after     func(time.Duration) <-chan time.Time
	onStep    func(State)
	external  chan Event
	stopped   chan struct{}
}

type RunnerOption func(*Runner)

// WithTicker replaces the ticker factory. Tests drive ticks by hand.
func WithTicker(f func(time.Duration) Ticker) RunnerOption {
	return func(r *Runner) { r.newTicker = f }
}

// WithAfter replaces time.After for delayed starts.
func WithAfter(f func(time.Duration) <-chan time.Time) RunnerOption {
	return func(r *Runner) { r.after = f }
}

// WithStepHook is called with the new state after every handled event.
func WithStepHook(f func(State)) RunnerOption {
	return func(r *Runner) { r.onStep = f }
}

func NewRunner(ctrl *Controller, out io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		ctrl:      ctrl,
		out:       out,
		newTicker: NewStdTicker,
		after:     time.After,
		onStep:    func(State) {},
		external:  make(chan Event, 16),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send injects an event from another goroutine, such as a settings change
// or a sign-in made by another command. Events sent after Run returned are
// dropped.
func (r *Runner) Send(ev Event) {
	select {
	case r.external <- ev:
	case <-r.stopped:
	}
}

// Command is a parsed input line.
type Command struct {
	Event Event
	Quit  bool
	Help  bool
}

// ParseCommand maps an input line to an event. Mission numbers are 1-based
// positions in the pending list; 0 clears the selection.
func ParseCommand(line string, s State) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Event: ToggleRun{}}, nil
	}
	switch fields[0] {
	case "s", "start", "p", "pause", "space":
		return Command{Event: ToggleRun{}}, nil
	case "r", "reset":
		return Command{Event: Reset{}}, nil
	case "q", "quit", "exit":
		return Command{Quit: true}, nil
	case "h", "help", "?":
		return Command{Help: true}, nil
	case "m", "mission":
		if len(fields) < 2 {
			return Command{}, fmt.Errorf("usage: m <number>")
		}
		n, err := strconv.Atoi(fields[1])
		if err == nil && n == 0 {
			return Command{Event: SelectMission{}}, nil
		}
		if err != nil || n < 1 || n > len(s.Pending) {
			return Command{}, fmt.Errorf("no mission #%s", fields[1])
		}
		return Command{Event: SelectMission{ID: s.Pending[n-1].ID}}, nil
	}
	mode, err := domain.ParseTimerMode(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q (type h for help)", fields[0])
	}
	return Command{Event: SwitchMode{Mode: mode}}, nil
}

const runnerHelp = `enter/s  start or pause     r  reset
focus | short | long  switch mode   m N  select mission N (0 clears)
q  quit`

// Run processes lines until lines is closed, a quit command arrives or ctx
// is done. The ticker is always released on return. Run may be called once.
func (r *Runner) Run(ctx context.Context, lines <-chan string) error {
	defer close(r.stopped)
	var (
		ticker      Ticker
		tickC       <-chan time.Time
		tickEpoch   uint64
		startC      <-chan time.Time
		startEpoch  uint64
		awaitingYes bool
	)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	fetched := make(chan Event, 4)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	handle := func(effects []Effect) {
		for _, eff := range effects {
			switch eff := eff.(type) {
			case StartTicker:
				if ticker != nil {
					ticker.Stop()
				}
				ticker = r.newTicker(TickInterval)
				tickC, tickEpoch = ticker.C(), eff.Epoch
			case StopTicker:
				if ticker != nil {
					ticker.Stop()
					ticker, tickC = nil, nil
				}
			case ScheduleStart:
				startC, startEpoch = r.after(eff.Delay), eff.Epoch
			case LoadMissions:
				r.fetch(ctx, fetched)
			case RequestConfirm:
				awaitingYes = true
				fmt.Fprintf(r.out, "%s [y/N] ", eff.Prompt)
			case Notify:
				fmt.Fprintf(r.out, "\n%s\n", eff.Message)
			}
		}
	}
	dispatch := func(ev Event) {
		handle(r.ctrl.Dispatch(ev))
		s := r.ctrl.State()
		r.render(s)
		r.onStep(s)
	}

	if r.ctrl.State().Authenticated() {
		r.fetch(ctx, fetched)
	}
	r.render(r.ctrl.State())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tickC:
			dispatch(Tick{Epoch: tickEpoch})
		case <-startC:
			startC = nil
			dispatch(DelayedStart{Epoch: startEpoch})
		case ev := <-fetched:
			dispatch(ev)
		case ev := <-r.external:
			dispatch(ev)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if awaitingYes {
				awaitingYes = false
				if answer := strings.ToLower(strings.TrimSpace(line)); answer == "y" || answer == "yes" {
					dispatch(ToggleRun{Confirmed: true})
				}
				continue
			}
			cmd, err := ParseCommand(line, r.ctrl.State())
			switch {
			case err != nil:
				fmt.Fprintln(r.out, err)
			case cmd.Quit:
				return nil
			case cmd.Help:
				fmt.Fprintln(r.out, runnerHelp)
			default:
				dispatch(cmd.Event)
			}
		}
	}
}

func (r *Runner) fetch(ctx context.Context, into chan<- Event) {
	go func() {
		ev := r.ctrl.FetchPending()
		if ev == nil {
			return
		}
		select {
		case into <- ev:
		case <-ctx.Done():
		}
	}()
}

func (r *Runner) render(s State) {
	status := "paused"
	if s.Running {
		status = "running"
	}
	line := fmt.Sprintf("[%s] %s %s", s.Mode.Label(), s.Clock(), status)
	if m, ok := s.Selected(); ok && s.Mode == domain.ModeFocus {
		line += " · " + m.Title
	}
	fmt.Fprintf(r.out, "\r%s", line)
}
