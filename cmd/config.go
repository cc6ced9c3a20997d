package cmd

import (
	"fmt"

	notesrender "github.com/bnema/notevault-cli/internal/adapters/render/notes"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Show or change CLI settings",
		Annotations: map[string]string{annotationSkipSession: "true"},
	}

	cmd.AddCommand(newConfigShowCmd(app), newConfigSetCmd(app))

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print effective settings (config file plus NOTEVAULT_* overrides)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := app.settings.Values()
			if asJSON {
				out := make(map[string]string, len(values))
				for _, v := range values {
					out[v.Key] = v.Value
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			return printLine(cmd, notesrender.RenderSettings(values, app.settingsPath))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newConfigSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.settingsSvc.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			return printLine(cmd, fmt.Sprintf("%s = %s", args[0], args[1]))
		},
	}
}
