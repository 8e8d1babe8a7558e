package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "history"},
		Short:   "Review logged focus sessions",
	}
	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionStatsCmd(app),
		newSessionLogCmd(app),
	)
	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var (
		days       int
		missionRef string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}

			var sessions []*domain.FocusSession
			if missionRef != "" {
				id, rErr := resolveMissionID(ctx, app, missionRef)
				if rErr != nil {
					return rErr
				}
				sessions, err = app.Sessions.ListByMission(ctx, id)
			} else {
				sessions, err = app.Sessions.ListRecent(ctx, days)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, missionTitles(ctx, app)))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show")
	cmd.Flags().StringVar(&missionRef, "mission", "", "Only sessions spent on this mission")
	return cmd
}

// missionTitles maps mission ids to titles for display. Lookup failures
// only cost the titles.
func missionTitles(ctx context.Context, app *App) map[string]string {
	titles := map[string]string{}
	missions, err := app.Missions.List(ctx)
	if err != nil {
		return titles
	}
	for _, m := range missions {
		titles[m.ID] = m.Title
	}
	return titles
}

func newSessionStatsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize time spent per mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := app.Sessions.Stats(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(stats))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Window size in days")
	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var (
		mode       = modeValue{mode: domain.ModeFocus}
		minutes    int
		missionRef string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an interval done away from the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			s := &domain.FocusSession{
				Mode:            mode.mode,
				DurationMinutes: minutes,
				IsCompleted:     true,
			}
			if missionRef != "" {
				if mode.mode != domain.ModeFocus {
					return fmt.Errorf("only focus sessions can be attached to a mission")
				}
				id, err := resolveMissionID(ctx, app, missionRef)
				if err != nil {
					return err
				}
				s.MissionID = &id
			}
			if err := app.Sessions.Log(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s of %s\n", formatter.FormatMinutes(minutes), s.Mode.Label())
			return nil
		},
	}

	cmd.Flags().Var(&mode, "mode", "focus, short or long")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Interval length in minutes")
	cmd.Flags().StringVar(&missionRef, "mission", "", "Mission the focus interval was spent on")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}
