package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/cli/formatter"
)

func newSignUpCmd(app *App) *cobra.Command {
	var in auth.SignUpInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				if err := askSignUp(&in); err != nil {
					return err
				}
			} else if in.Email == "" || in.Password == "" {
				return fmt.Errorf("--email and --password are required when not on a terminal")
			}

			stop := spin(cmd, app, "Creating account")
			sess, err := app.Auth.SignUp(cmd.Context(), in)
			stop()
			if err != nil {
				return err
			}
			if err := app.remember(sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are signed in.\n", formatter.Bold(sess.User.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&in.FullName, "name", "", "Full name")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"signin"},
		Short:   "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				if err := askLogin(&email, &password); err != nil {
					return err
				}
			} else if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required when not on a terminal")
			}

			stop := spin(cmd, app, "Signing in")
			sess, err := app.Auth.SignIn(cmd.Context(), email, password)
			stop()
			if err != nil {
				return err
			}
			if err := app.remember(sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", formatter.Bold(sess.User.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Aliases: []string{"signout"},
		Short:   "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := app.signedIn()
			if err != nil {
				return err
			}
			if creds == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return app.forget()
			}
			// The local copy goes even when the server is unreachable.
			if err := app.Auth.SignOut(cmd.Context(), creds.Token); err != nil {
				app.logger().Warn("revoking token failed", "error", err)
			}
			if err := app.forget(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", creds.Email)
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := app.signedIn()
			if err != nil {
				return err
			}
			if creds == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			u, err := app.Auth.Authenticate(cmd.Context(), creds.Token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", formatter.Bold(u.DisplayName()), u.Email, formatter.Dim("("+creds.Backend+")"))
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your account and the last week of focus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.userContext(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

// spin shows a spinner on terminals while a backend call runs.
func spin(cmd *cobra.Command, app *App, msg string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), msg)
}
