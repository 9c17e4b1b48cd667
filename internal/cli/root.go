package cli

import (
	"time"

	"github.com/atorrance/taskwell/internal/dataflow"
	"github.com/atorrance/taskwell/internal/planner"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/atorrance/taskwell/internal/store"
	"github.com/atorrance/taskwell/internal/timesheet"
	"github.com/spf13/cobra"
)

// App holds the loaded models and services used by CLI commands.
type App struct {
	Planner  *planner.Planner
	Ledger   *timesheet.Ledger
	Notes    *store.NotesStore
	Flow     *dataflow.Service
	Profiles *dataflow.ProfileService
	Runs     repository.RunRepo
	Now      func() time.Time

	// IsInteractive reports whether stdin is a terminal; the browser
	// refuses to start without one.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "taskwell" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskwell",
		Short:         "Task planner, weekly time ledger, and spreadsheet data flows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newTimeCmd(app),
		newNotesCmd(app),
		newFlowCmd(app),
		newProfileCmd(app),
		newBrowseCmd(app),
	)

	return root
}
