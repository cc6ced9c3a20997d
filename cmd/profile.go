package cmd

import (
	"fmt"

	"github.com/bnema/notevault-cli/internal/application"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in user's profile",
	}

	cmd.AddCommand(newProfileShowCmd(app), newProfileUpdateCmd(app))

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile stored with the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd.Context(), app); err != nil {
				return err
			}
			return writeSession(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newProfileUpdateCmd(app *app) *cobra.Command {
	var name string
	var email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the display name and/or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd.Context(), app); err != nil {
				return err
			}

			current := app.session.Current().User
			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("email") {
				email = current.Email
			}

			var user domain.User
			err := busy(cmd, app, "Updating profile...", func(cmd *cobra.Command) error {
				var updateErr error
				user, updateErr = app.auth.UpdateProfile(cmd.Context(), name, email)
				return updateErr
			})
			if err != nil {
				return err
			}

			return printLine(cmd, fmt.Sprintf("%s: %s <%s>", application.MsgProfileUpdated, user.DisplayName(), user.Email))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.MarkFlagsOneRequired("name", "email")

	return cmd
}
