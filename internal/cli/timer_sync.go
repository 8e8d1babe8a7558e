package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/timer"
)

// syncInterval is how often a running timer looks for sign-ins and
// preferences saved by other vocuz commands.
const syncInterval = 2 * time.Second

// outsideSync keeps a running timer in step with the rest of the CLI. A
// `vocuz login` or `logout` elsewhere becomes a UserChanged event, and a
// preferences file saved by `vocuz settings` is reloaded into the holder,
// whose listeners take it from there.
type outsideSync struct {
	app    *App
	userID string
	token  string
}

func newOutsideSync(app *App, creds *auth.Credentials) *outsideSync {
	s := &outsideSync{app: app}
	if creds != nil {
		s.userID, s.token = creds.UserID, creds.Token
	}
	return s
}

// run checks every interval until ctx is done.
func (s *outsideSync) run(ctx context.Context, every time.Duration, send func(timer.Event)) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.check(send)
		}
	}
}

func (s *outsideSync) check(send func(timer.Event)) {
	log := s.app.logger()
	if s.app.Settings != nil {
		if _, err := s.app.Settings.Reload(); err != nil {
			log.Warn("reloading preferences failed", "error", err)
		}
	}

	creds, err := s.app.signedIn()
	if err != nil {
		// Probably caught mid-write; the next check sees the whole file.
		log.Debug("reading credentials failed", "error", err)
		return
	}
	var userID, token string
	if creds != nil {
		userID, token = creds.UserID, creds.Token
	}
	if token != s.token && s.app.UseToken != nil {
		s.app.UseToken(token)
	}
	s.token = token
	if userID != s.userID {
		s.userID = userID
		log.Info("timer user changed", "user_id", userID)
		send(timer.UserChanged{UserID: userID})
	}
}

// orderedSender returns a send func that queues messages and hands them to
// deliver one at a time, in order, until ctx is done. program.Send blocks
// until the event loop takes the message, so it must not run inside the
// commands or listeners that produce messages.
func orderedSender(ctx context.Context, deliver func(tea.Msg)) func(tea.Msg) {
	queue := make(chan tea.Msg, 64)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-queue:
				deliver(msg)
			}
		}
	}()
	return func(msg tea.Msg) {
		select {
		case queue <- msg:
		case <-ctx.Done():
		}
	}
}
