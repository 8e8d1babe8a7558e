package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
)

func newSettingsCmd(app *App) *cobra.Command {
	var focus, short, long int
	var edit bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the timer durations",
		Example: `  vocuz settings
  vocuz settings --focus 50 --short 10
  vocuz settings --edit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := app.Settings.Get()
			next := prefs.Timer
			f := cmd.Flags()
			changed := f.Changed("focus") || f.Changed("short") || f.Changed("long")
			if f.Changed("focus") {
				next.Focus = focus
			}
			if f.Changed("short") {
				next.ShortBreak = short
			}
			if f.Changed("long") {
				next.LongBreak = long
			}
			if edit {
				if !app.interactive() {
					return fmt.Errorf("--edit needs an interactive terminal")
				}
				if err := askTimerSettings(&next); err != nil {
					return err
				}
				changed = true
			}

			if changed {
				if err := app.Settings.UpdateTimer(next); err != nil {
					return err
				}
				prefs = app.Settings.Get()
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerSettings(prefs.Timer, prefs.Theme))
			return nil
		},
	}

	cmd.Flags().IntVar(&focus, "focus", 0, "Focus length in minutes")
	cmd.Flags().IntVar(&short, "short", 0, "Short break length in minutes")
	cmd.Flags().IntVar(&long, "long", 0, "Long break length in minutes")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit durations in a form")
	return cmd
}

func newThemeCmd(app *App) *cobra.Command {
	ids := make([]string, 0, len(domain.ValidThemes))
	for t := range domain.ValidThemes {
		ids = append(ids, string(t))
	}

	return &cobra.Command{
		Use:       "theme [NAME]",
		Short:     "List themes or switch to one",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: ids,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatThemes(app.Settings.Get().Theme))
				return nil
			}
			theme, err := domain.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := app.Settings.UpdateTheme(theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", formatter.Bold(domain.ValidThemes[theme]))
			return nil
		},
	}
}
