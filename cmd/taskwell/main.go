package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atorrance/taskwell/internal/cli"
	"github.com/atorrance/taskwell/internal/dataflow"
	"github.com/atorrance/taskwell/internal/db"
	"github.com/atorrance/taskwell/internal/observe"
	"github.com/atorrance/taskwell/internal/planner"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/atorrance/taskwell/internal/store"
	"github.com/atorrance/taskwell/internal/timesheet"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Data directory: env var or default ~/.taskwell
	home := os.Getenv("TASKWELL_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".taskwell")
	}

	dbPath := os.Getenv("TASKWELL_DB")
	if dbPath == "" {
		dbPath = filepath.Join(home, "taskwell.db")
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	var observer observe.UseCaseObserver = observe.NoopUseCaseObserver{}
	if os.Getenv("TASKWELL_VERBOSE") != "" {
		observer = observe.NewLogUseCaseObserver(os.Stderr)
	}

	// Load the file-backed models.
	taskPlanner, err := planner.Load(
		store.NewForestStore(filepath.Join(home, "tasks.json")),
		planner.WithObserver(observer),
	)
	if err != nil {
		return err
	}
	ledger, err := timesheet.Load(
		store.NewEntryStore(filepath.Join(home, "time.json")),
		timesheet.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	// Open the profile/history database.
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	profileRepo := repository.NewSQLiteProfileRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Planner:  taskPlanner,
		Ledger:   ledger,
		Notes:    store.NewNotesStore(filepath.Join(home, "notes")),
		Flow:     dataflow.NewService(profileRepo, runRepo, uow, dataflow.WithObserver(observer)),
		Profiles: dataflow.NewProfileService(profileRepo),
		Runs:     runRepo,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
