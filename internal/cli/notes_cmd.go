package cli

import (
	"fmt"
	"io"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage per-task notes files",
	}

	cmd.AddCommand(
		newNotesShowCmd(app),
		newNotesWriteCmd(app),
		newNotesPathCmd(app),
	)

	return cmd
}

func parseNotesType(s string) (domain.NotesType, error) {
	if !domain.ValidNotesTypes[s] {
		return "", fmt.Errorf("invalid notes type %q (general|meeting|status)", s)
	}
	return domain.NotesType(s), nil
}

func newNotesShowCmd(app *App) *cobra.Command {
	var notesType string

	cmd := &cobra.Command{
		Use:   "show REF",
		Short: "Print a task's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			nt, err := parseNotesType(notesType)
			if err != nil {
				return err
			}
			content, err := app.Notes.Read(task, nt)
			if err != nil {
				return err
			}
			if content == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s notes for %s.\n", nt, task.DisplayName())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&notesType, "type", "general", "Notes type (general|meeting|status)")

	return cmd
}

func newNotesWriteCmd(app *App) *cobra.Command {
	var notesType, message string

	cmd := &cobra.Command{
		Use:   "write REF",
		Short: "Write a task's notes from --message or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			nt, err := parseNotesType(notesType)
			if err != nil {
				return err
			}
			content := message
			if content == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading notes from stdin: %w", err)
				}
				content = string(data)
			}
			if err := app.Notes.Write(task, nt, content, app.now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s notes for %s\n", nt, task.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&notesType, "type", "general", "Notes type (general|meeting|status)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Notes content (omit to read stdin)")

	return cmd
}

func newNotesPathCmd(app *App) *cobra.Command {
	var notesType string

	cmd := &cobra.Command{
		Use:   "path REF",
		Short: "Print the notes file path, e.g. to open it in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			nt, err := parseNotesType(notesType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Notes.Path(task, nt))
			return nil
		},
	}

	cmd.Flags().StringVar(&notesType, "type", "general", "Notes type (general|meeting|status)")

	return cmd
}
