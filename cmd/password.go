package cmd

import "github.com/spf13/cobra"

func newPasswordCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover or reset the account password",
	}

	cmd.AddCommand(newPasswordForgotCmd(app), newPasswordSendLinkCmd(app), newPasswordResetCmd(app))

	return cmd
}

func newPasswordForgotCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Email a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMessageOp(cmd, app, "Requesting reset link...", func(cmd *cobra.Command) (string, error) {
				return app.auth.ForgotPassword(cmd.Context(), email)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newPasswordSendLinkCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send-link",
		Short: "Email a reset link to the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMessageOp(cmd, app, "Requesting reset link...", func(cmd *cobra.Command) (string, error) {
				return app.auth.SendResetLink(cmd.Context())
			})
		},
	}
}

func newPasswordResetCmd(app *app) *cobra.Command {
	var password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password using the token from the reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd, password, passwordStdin, "New password: ")
			if err != nil {
				return err
			}

			return runMessageOp(cmd, app, "Resetting password...", func(cmd *cobra.Command) (string, error) {
				return app.auth.ResetPassword(cmd.Context(), args[0], secret)
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the new password from stdin")

	return cmd
}

func runMessageOp(cmd *cobra.Command, app *app, label string, op func(cmd *cobra.Command) (string, error)) error {
	var message string
	err := busy(cmd, app, label, func(cmd *cobra.Command) error {
		var opErr error
		message, opErr = op(cmd)
		return opErr
	})
	if err != nil {
		return err
	}

	return printLine(cmd, message)
}
