package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/settings"
	"github.com/vocuz/vocuz/internal/timer"
)

// closeTimeout bounds how long quitting waits for session writes in flight.
const closeTimeout = 5 * time.Second

type timerOptions struct {
	mode    modeValue
	mission string
	plain   bool
}

func newTimerCmd(app *App) *cobra.Command {
	var opts timerOptions

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the Pomodoro timer",
		Long: `Run the Pomodoro timer. On a terminal this opens the interactive timer;
with --plain or when stdin is not a terminal it reads line commands instead
(enter to start or pause, r to reset, focus/short/long, m N, q).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app, opts)
		},
	}

	cmd.Flags().Var(&opts.mode, "mode", "Start in this mode (focus, short, long)")
	cmd.Flags().StringVar(&opts.mission, "mission", "", "Select a pending mission by number or id")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Line-based output instead of the interactive view")
	return cmd
}

func runTimer(cmd *cobra.Command, app *App, opts timerOptions) error {
	durations := domain.DefaultTimerSettings()
	if app.Settings != nil {
		durations = app.Settings.Timer()
	}

	creds, err := app.signedIn()
	if err != nil {
		return err
	}
	var userID string
	if creds != nil {
		userID = creds.UserID
	}

	ctrlOpts := []timer.ControllerOption{timer.WithLogger(app.logger())}
	if app.Signaler != nil {
		ctrlOpts = append(ctrlOpts, timer.WithSignaler(app.Signaler))
	}
	ctrl := timer.NewController(timer.NewState(durations, userID), app.Missions, app.Sessions, ctrlOpts...)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := ctrl.Close(ctx); err != nil {
			app.logger().Warn("timer writes still pending at exit", "error", err)
		}
	}()

	if opts.mission != "" {
		if userID == "" {
			return fmt.Errorf("--mission needs a signed-in user: vocuz login")
		}
		ctx, err := app.userContext(cmd.Context())
		if err != nil {
			return err
		}
		id, err := resolvePendingMissionID(ctx, app, opts.mission)
		if err != nil {
			return err
		}
		if ev := ctrl.FetchPending(); ev != nil {
			ctrl.Dispatch(ev)
		}
		ctrl.Dispatch(timer.SelectMission{ID: id})
	}
	if mode := opts.mode.Mode(domain.ModeFocus); mode != domain.ModeFocus {
		ctrl.Dispatch(timer.SwitchMode{Mode: mode})
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watch := newOutsideSync(app, creds)

	if opts.plain || !app.interactive() {
		return runPlainTimer(ctx, app, ctrl, watch, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	p := tea.NewProgram(newTimerModel(app, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	send := orderedSender(ctx, p.Send)
	unsubscribe := forwardSettings(app.Settings, send)
	defer unsubscribe()
	go watch.run(ctx, syncInterval, func(ev timer.Event) { send(eventMsg{ev: ev}) })

	_, err = p.Run()
	return err
}

// runPlainTimer feeds stdin lines to a Runner until input ends or a quit
// command arrives. Settings and sign-ins made elsewhere reach it through
// Runner.Send.
func runPlainTimer(ctx context.Context, app *App, ctrl *timer.Controller, watch *outsideSync, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	r := timer.NewRunner(ctrl, out)
	if app.Settings != nil {
		unsubscribe := app.Settings.OnChange(func(p settings.Preferences) {
			r.Send(timer.SettingsChanged{Settings: p.Timer})
		})
		defer unsubscribe()
	}
	go watch.run(ctx, syncInterval, r.Send)

	err := r.Run(ctx, lines)
	fmt.Fprintln(out)
	return err
}
