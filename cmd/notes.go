package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	notesrender "github.com/bnema/notevault-cli/internal/adapters/render/notes"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "List, create, edit and delete notes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root := cmd.Root(); root.PersistentPreRunE != nil {
				if err := root.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			return requireSession(cmd.Context(), app)
		},
	}

	cmd.AddCommand(
		newNotesListCmd(app),
		newNotesCreateCmd(app),
		newNotesUpdateCmd(app),
		newNotesDeleteCmd(app),
	)

	return cmd
}

func newNotesListCmd(app *app) *cobra.Command {
	var asJSON bool
	var full bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Fetch and display your notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			load := func(cmd *cobra.Command) error {
				_, err := app.notes.List(cmd.Context())
				return err
			}
			if asJSON {
				if err := load(cmd); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), notesToJSON(app.notes.Notes()))
			}

			if err := busy(cmd, app, "Loading notes...", load); err != nil {
				return err
			}
			return writeNotes(cmd, app, full)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&full, "full", false, "Show whole note bodies")

	return cmd
}

func writeNotes(cmd *cobra.Command, app *app, full bool) error {
	rendered, err := app.notesRenderer(app.notes.Snapshot(), notesrender.RenderOptions{
		Now:  app.now(),
		Full: full,
	})
	if err != nil {
		return fmt.Errorf("render notes: %w", err)
	}

	return printLine(cmd, rendered)
}

func newNotesCreateCmd(app *app) *cobra.Command {
	var title string
	var content string
	var contentFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := resolveContent(cmd, content, contentFile)
			if err != nil {
				return err
			}

			var message string
			err = busy(cmd, app, "Saving note...", func(cmd *cobra.Command) error {
				var createErr error
				message, createErr = app.notes.Create(cmd.Context(), title, body)
				return createErr
			})

			return reportWrite(cmd, message, err)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read content from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}

func newNotesUpdateCmd(app *app) *cobra.Command {
	var title string
	var content string
	var contentFile string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a note's title and/or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.NoteID(strings.TrimSpace(args[0]))
			titleSet := cmd.Flags().Changed("title")
			contentSet := cmd.Flags().Changed("content") || cmd.Flags().Changed("content-file")
			if !titleSet && !contentSet {
				return errors.New("nothing to update: pass --title, --content or --content-file")
			}

			body, err := resolveContent(cmd, content, contentFile)
			if err != nil {
				return err
			}

			var message string
			err = busy(cmd, app, "Saving note...", func(cmd *cobra.Command) error {
				if !titleSet || !contentSet {
					current, findErr := currentNote(cmd, app, id)
					if findErr != nil {
						return findErr
					}
					if !titleSet {
						title = current.Title
					}
					if !contentSet {
						body = current.Content
					}
				}

				var updateErr error
				message, updateErr = app.notes.Update(cmd.Context(), id, title, body)
				return updateErr
			})

			return reportWrite(cmd, message, err)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title (kept when omitted)")
	cmd.Flags().StringVar(&content, "content", "", "New content (kept when omitted)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read new content from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}

func newNotesDeleteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			err := busy(cmd, app, "Deleting note...", func(cmd *cobra.Command) error {
				var deleteErr error
				message, deleteErr = app.notes.Delete(cmd.Context(), domain.NoteID(strings.TrimSpace(args[0])))
				return deleteErr
			})

			return reportWrite(cmd, message, err)
		},
	}

	return cmd
}

// currentNote fills in fields the user did not pass to update.
func currentNote(cmd *cobra.Command, app *app, id domain.NoteID) (domain.Note, error) {
	notes, err := app.notes.List(cmd.Context())
	if err != nil {
		return domain.Note{}, err
	}

	note, ok := domain.FindNote(notes, id)
	if !ok {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, domain.ErrNoteNotFound)
	}

	return note, nil
}

func resolveContent(cmd *cobra.Command, content, contentFile string) (string, error) {
	if contentFile == "" {
		return content, nil
	}

	var data []byte
	var err error
	if contentFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(contentFile)
	}
	if err != nil {
		return "", fmt.Errorf("read note content: %w", err)
	}

	return string(data), nil
}
