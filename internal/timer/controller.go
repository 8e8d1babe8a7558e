package timer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/service"
)

// MissionStore is the part of the mission service the timer needs.
type MissionStore interface {
	ListPending(ctx context.Context) ([]*domain.Mission, error)
	SetCompleted(ctx context.Context, id string, done bool) error
}

// SessionLogger appends completed countdowns to the session log.
type SessionLogger interface {
	Log(ctx context.Context, s *domain.FocusSession) error
}

// Signaler plays the completion chime.
type Signaler interface {
	Signal(mode domain.TimerMode) error
}

// SignalFunc adapts a plain function to Signaler.
type SignalFunc func(mode domain.TimerMode) error

func (f SignalFunc) Signal(mode domain.TimerMode) error { return f(mode) }

// Controller owns the timer State for one host event loop. Dispatch must be
// called from that loop only. Store writes run on their own goroutines and
// never touch the state; their outcome is only logged.
type Controller struct {
	mu    sync.Mutex
	state State

	missions MissionStore
	sessions SessionLogger
	signal   Signaler
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

type ControllerOption func(*Controller)

func WithSignaler(s Signaler) ControllerOption {
	return func(c *Controller) { c.signal = s }
}

func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

func NewController(initial State, missions MissionStore, sessions SessionLogger, opts ...ControllerOption) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		state:    initial,
		missions: missions,
		sessions: sessions,
		signal:   SignalFunc(func(domain.TimerMode) error { return nil }),
		logger:   slog.New(slog.DiscardHandler),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies ev, starts the store writes and the chime it calls for,
// and returns the effects the host must carry out (tickers, delayed starts,
// mission reloads, prompts, notifications). After Close every event is
// dropped.
func (c *Controller) Dispatch(ev Event) []Effect {
	if c.closed.Load() {
		return nil
	}

	c.mu.Lock()
	next, effects := Apply(c.state, ev)
	c.state = next
	c.mu.Unlock()

	var host []Effect
	for _, eff := range effects {
		switch eff := eff.(type) {
		case PlaySignal:
			if err := c.signal.Signal(eff.Mode); err != nil {
				c.logger.Debug("completion signal failed", "mode", eff.Mode, "error", err)
			}
		case LogSession:
			c.goWrite("log focus session", eff.UserID, func(ctx context.Context) error {
				fs := &domain.FocusSession{
					Mode:            eff.Mode,
					DurationMinutes: eff.Minutes,
					IsCompleted:     true,
				}
				if eff.MissionID != "" {
					id := eff.MissionID
					fs.MissionID = &id
				}
				return c.sessions.Log(ctx, fs)
			})
		case CompleteMission:
			c.goWrite("complete mission", eff.UserID, func(ctx context.Context) error {
				return c.missions.SetCompleted(ctx, eff.MissionID, true)
			})
		case Notify:
			c.logger.Info("timer", "message", eff.Message)
			host = append(host, eff)
		default:
			host = append(host, eff)
		}
	}
	return host
}

// goWrite runs a fire-and-forget store write.
func (c *Controller) goWrite(what, userID string, fn func(ctx context.Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx := service.WithUserID(c.ctx, userID)
		if err := fn(ctx); err != nil {
			c.logger.Warn(what+" failed", "user_id", userID, "error", err)
		}
	}()
}

// FetchPending loads the pending missions for the current user. It blocks;
// hosts run it off their event loop and Dispatch the result. It returns nil
// when the fetch failed or nobody is signed in.
func (c *Controller) FetchPending() Event {
	userID := c.State().UserID
	if userID == "" {
		return nil
	}
	ctx := service.WithUserID(c.ctx, userID)
	missions, err := c.missions.ListPending(ctx)
	if err != nil {
		c.logger.Warn("loading pending missions failed", "user_id", userID, "error", err)
		return nil
	}
	return MissionsLoaded{Missions: PendingFromMissions(missions)}
}

// Close stops accepting events and waits for in-flight writes until ctx is
// done. Writes still running when ctx expires are cancelled.
func (c *Controller) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	defer c.cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
