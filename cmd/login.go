package cmd

import (
	"fmt"

	notesrender "github.com/bnema/notevault-cli/internal/adapters/render/notes"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(cmd, password, passwordStdin, "Password: ")
			if err != nil {
				return err
			}

			var session domain.Session
			err = busy(cmd, app, "Signing in...", func(cmd *cobra.Command) error {
				var signInErr error
				session, signInErr = app.auth.SignIn(cmd.Context(), email, secret)
				return signInErr
			})
			if err != nil {
				return err
			}

			return printLine(cmd, fmt.Sprintf("Logged in as %s", session.User.DisplayName()))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wasAuthenticated := app.session.Authenticated()
			if err := app.auth.SignOut(cmd.Context()); err != nil {
				return err
			}
			if !wasAuthenticated {
				return printLine(cmd, "Not logged in.")
			}
			return printLine(cmd, "Logged out.")
		},
	}
}

func newRegisterCmd(app *app) *cobra.Command {
	var registration domain.Registration
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(cmd, registration.Password, passwordStdin, "Choose a password: ")
			if err != nil {
				return err
			}
			registration.Password = secret

			var message string
			err = busy(cmd, app, "Registering...", func(cmd *cobra.Command) error {
				var registerErr error
				message, registerErr = app.auth.Register(cmd.Context(), registration)
				return registerErr
			})
			if err != nil {
				return err
			}

			return printLine(cmd, message)
		},
	}

	cmd.Flags().StringVar(&registration.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&registration.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&registration.Password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSession(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeSession(cmd *cobra.Command, app *app, asJSON bool) error {
	session := app.session.Current()
	if asJSON {
		if !session.Authenticated() {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"authenticated": false})
		}
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"authenticated": true,
			"user":          userToJSON(session.User),
		})
	}

	return printLine(cmd, notesrender.RenderSession(session))
}
