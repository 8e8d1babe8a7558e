package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/cli/formatter"
)

func newMissionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mission",
		Aliases: []string{"missions", "m"},
		Short:   "Manage the mission list",
		Long: `Manage the mission list.

Missions are referenced by their number in "vocuz mission list" or by id prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMissions(cmd, app)
		},
	}

	cmd.AddCommand(
		newMissionListCmd(app),
		newMissionAddCmd(app),
		newMissionDoneCmd(app, "done", "Mark a mission completed", true),
		newMissionDoneCmd(app, "undo", "Mark a mission pending again", false),
		newMissionToggleCmd(app),
		newMissionRenameCmd(app),
		newMissionRemoveCmd(app),
	)
	return cmd
}

func listMissions(cmd *cobra.Command, app *App) error {
	ctx, err := app.userContext(cmd.Context())
	if err != nil {
		return err
	}
	missions, err := app.Missions.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMissionList(missions))
	return nil
}

func newMissionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List missions, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMissions(cmd, app)
		},
	}
}

func newMissionAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a mission",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			m, err := app.Missions.Create(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added mission %s %s\n", formatter.Bold(m.Title), formatter.TruncID(m.ID))
			return nil
		},
	}
}

func newMissionDoneCmd(app *App, use, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " REF",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMissionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Missions.SetCompleted(ctx, id, done); err != nil {
				return err
			}
			state := "pending"
			if done {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Mission %s marked %s\n", formatter.MissionCheck(done), formatter.TruncID(id), state)
			return nil
		},
	}
}

func newMissionToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle REF",
		Short: "Flip a mission between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMissionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Missions.Toggle(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.MissionCheck(m.IsCompleted), m.Title)
			return nil
		},
	}
}

func newMissionRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename REF TITLE...",
		Short: "Change a mission's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMissionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := app.Missions.Rename(ctx, id, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed mission %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newMissionRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a mission",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveMissionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Missions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := confirm(fmt.Sprintf("Delete mission %q?", m.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Missions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted mission %s\n", m.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
