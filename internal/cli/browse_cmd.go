package cli

import (
	"fmt"

	"github.com/atorrance/taskwell/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the task forest interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("browse needs an interactive terminal")
			}
			return tui.Run(app.Planner, app.now)
		},
	}
}
