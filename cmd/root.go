package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/notevault-cli/internal/logging"
	"github.com/spf13/cobra"
)

const annotationSkipSession = "notevault/skip-session"

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var plain bool

	rootCmd := &cobra.Command{
		Use:           "nv",
		Short:         "notevault CLI (nv): sign in and manage your notes",
		Long:          "nv signs you in to a notevault server, keeps the session between runs, and lets you list, create, edit and delete your notes from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and session changes to stderr")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Disable the progress spinner")

	app, err := wireApp(errWriter{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level := app.settings.LogLevel
		if verbose {
			level = "debug"
		}
		if err := logging.SetLevel(level); err != nil {
			return err
		}
		app.spinner = !plain && isTerminal(cmd.ErrOrStderr())

		if skipsSession(cmd) {
			return nil
		}
		app.session.Restore(cmd.Context())
		return nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newWhoamiCmd(app),
		newPasswordCmd(app),
		newProfileCmd(app),
		newNotesCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}

func skipsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipSession] == "true" {
			return true
		}
	}
	return false
}
