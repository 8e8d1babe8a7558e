package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/service"
)

type fakeStore struct {
	mu        sync.Mutex
	pending   []*domain.Mission
	completed []string
	logged    []*domain.FocusSession
	users     []string
	failWrite error
	block     chan struct{}
}

func (f *fakeStore) ListPending(ctx context.Context) ([]*domain.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, _ := service.UserIDFromContext(ctx)
	f.users = append(f.users, uid)
	return f.pending, nil
}

func (f *fakeStore) SetCompleted(ctx context.Context, id string, done bool) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeStore) Log(ctx context.Context, s *domain.FocusSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	uid, _ := service.UserIDFromContext(ctx)
	s.UserID = uid
	f.logged = append(f.logged, s)
	return nil
}

func (f *fakeStore) snapshot() (completed []string, logged []*domain.FocusSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.completed...), append([]*domain.FocusSession(nil), f.logged...)
}

func newTestController(t *testing.T, store *fakeStore, settings domain.TimerSettings, opts ...ControllerOption) *Controller {
	t.Helper()
	c := NewController(NewState(settings, "u1"), store, store, opts...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})
	return c
}

func drive(c *Controller) []Effect {
	var all []Effect
	for {
		s := c.State()
		if !s.Running {
			return all
		}
		all = append(all, c.Dispatch(Tick{Epoch: s.Epoch})...)
	}
}

func TestController_FetchPendingAndComplete(t *testing.T) {
	store := &fakeStore{pending: []*domain.Mission{
		{ID: "m1", Title: "First"},
		{ID: "m2", Title: "Second"},
	}}
	chimes := 0
	c := newTestController(t, store, domain.TimerSettings{Focus: 1, ShortBreak: 1, LongBreak: 1},
		WithSignaler(SignalFunc(func(domain.TimerMode) error { chimes++; return nil })))

	ev := c.FetchPending()
	require.NotNil(t, ev)
	c.Dispatch(ev)
	assert.Equal(t, "m1", c.State().SelectedID)

	host := c.Dispatch(ToggleRun{})
	assert.Equal(t, []Effect{StartTicker{Epoch: c.State().Epoch}}, host)

	host = drive(c)
	for _, eff := range host {
		switch eff.(type) {
		case LogSession, CompleteMission, PlaySignal:
			t.Fatalf("controller leaked %T to the host", eff)
		}
	}
	assert.NotEmpty(t, effectsOf[ScheduleStart](host))
	assert.Equal(t, 1, chimes)

	require.NoError(t, c.Close(context.Background()))
	completed, logged := store.snapshot()
	assert.Equal(t, []string{"m1"}, completed)
	require.Len(t, logged, 1)
	assert.Equal(t, "u1", logged[0].UserID)
	require.NotNil(t, logged[0].MissionID)
	assert.Equal(t, "m1", *logged[0].MissionID)
	assert.Equal(t, 1, logged[0].DurationMinutes)
	assert.Equal(t, []string{"u1"}, store.users)
}

func TestController_WriteFailureKeepsLocalState(t *testing.T) {
	store := &fakeStore{
		pending:   []*domain.Mission{{ID: "m1", Title: "Only"}},
		failWrite: errors.New("backend down"),
	}
	c := newTestController(t, store, domain.TimerSettings{Focus: 1, ShortBreak: 1, LongBreak: 1})
	c.Dispatch(c.FetchPending())
	c.Dispatch(ToggleRun{})

	drive(c)
	require.NoError(t, c.Close(context.Background()))

	s := c.State()
	assert.Equal(t, domain.ModeLong, s.Mode)
	assert.Empty(t, s.Pending)
	completed, logged := store.snapshot()
	assert.Empty(t, completed)
	assert.Empty(t, logged)
}

func TestController_CloseWaitsForWritesAndDropsLateEvents(t *testing.T) {
	store := &fakeStore{
		pending: []*domain.Mission{{ID: "m1", Title: "Only"}},
		block:   make(chan struct{}),
	}
	c := newTestController(t, store, domain.TimerSettings{Focus: 1, ShortBreak: 1, LongBreak: 1})
	c.Dispatch(c.FetchPending())
	c.Dispatch(ToggleRun{})
	drive(c)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Close(ctx), context.DeadlineExceeded)
	close(store.block)

	before := c.State()
	assert.Nil(t, c.Dispatch(SwitchMode{Mode: domain.ModeShort}))
	assert.Equal(t, before, c.State())
}

func TestController_SignedOutFetchIsNil(t *testing.T) {
	store := &fakeStore{pending: []*domain.Mission{{ID: "m1"}}}
	c := NewController(NewState(classic, ""), store, store)

	assert.Nil(t, c.FetchPending())
	assert.Equal(t, []Effect{LoadMissions{}}, c.Dispatch(UserChanged{UserID: "u9"}))
	require.NotNil(t, c.FetchPending())
	assert.Equal(t, []string{"u9"}, store.users)
}

func TestPendingFromMissions(t *testing.T) {
	got := PendingFromMissions([]*domain.Mission{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", IsCompleted: true},
		{ID: "c", Title: "C"},
	})
	assert.Equal(t, []PendingMission{{ID: "a", Title: "A"}, {ID: "c", Title: "C"}}, got)
}
