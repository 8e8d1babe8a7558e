package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "brain"},
		Short:   "Capture notes in your second brain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listNotes(cmd, app)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List notes, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listNotes(cmd, app)
			},
		},
		newNoteAddCmd(app),
		newNoteShowCmd(app),
		newNoteEditCmd(app),
		newNoteRemoveCmd(app),
	)
	return cmd
}

func listNotes(cmd *cobra.Command, app *App) error {
	ctx, err := app.userContext(cmd.Context())
	if err != nil {
		return err
	}
	notes, err := app.Notes.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNoteList(notes))
	return nil
}

func newNoteAddCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Capture a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			n := &domain.Note{Title: strings.Join(args, " "), Description: body}
			if err := app.Notes.Save(ctx, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note %s %s\n", formatter.Bold(n.Title), formatter.TruncID(n.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&body, "body", "b", "", "Note text")
	return cmd
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Print a note in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.Notes.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNote(n))
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "edit REF",
		Short: "Change a note's title or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("body") {
				return fmt.Errorf("nothing to change: pass --title and/or --body")
			}
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.Notes.Get(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				n.Title = title
			}
			if cmd.Flags().Changed("body") {
				n.Description = body
			}
			if err := app.Notes.Save(ctx, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", formatter.Bold(n.Title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "New text")
	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Notes.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
