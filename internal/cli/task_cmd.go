package cli

import (
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task forest",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskProjectCmd(app),
		newTaskSubCmd(app),
		newTaskTreeCmd(app),
		newTaskListCmd(app),
		newTaskRenameCmd(app),
		newTaskRemoveCmd(app),
		newTaskPriorityCmd(app),
		newTaskDueCmd(app),
		newTaskBringForwardCmd(app),
		newTaskExpandCmd(app),
		newTaskCollapseCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var under string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if under != "" {
				if _, err := resolveTask(app, under); err != nil {
					return err
				}
			} else {
				app.Planner.Select(nil)
			}
			item := app.Planner.NewTask(args[0])
			item.IsInEditMode = false
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d.%d %q\n", item.ID1, item.ID2, item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&under, "under", "", "Parent task reference (ID1 or ID1.ID2)")

	return cmd
}

func newTaskProjectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "project NAME",
		Short: "Create a new top-level project task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := app.Planner.NewProject(args[0])
			item.IsInEditMode = false
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d.%d %q\n", item.ID1, item.ID2, item.Name)
			return nil
		},
	}
}

func newTaskSubCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sub PARENT NAME",
		Short: "Create a subtask under an existing task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveTask(app, args[0]); err != nil {
				return err
			}
			item, err := app.Planner.NewSubtask(args[1])
			if err != nil {
				return err
			}
			item.IsInEditMode = false
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created subtask %d.%d %q under %s\n", item.ID1, item.ID2, item.Name, args[0])
			return nil
		},
	}
}

func newTaskTreeCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the task forest",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := app.Planner.Forest().Roots
			if len(roots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet.")
				return nil
			}
			items := formatter.FlattenForest(roots, all, app.now())
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTree(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show collapsed subtrees too")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var bfOnly, highOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks as a flat table",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			var rows [][]string
			app.Planner.Forest().Walk(func(t *domain.TaskItem) {
				if bfOnly && !t.IsBroughtForward(now) {
					return
				}
				if highOnly && t.Priority != domain.PriorityHigh {
					return
				}
				due := formatter.Dim("-")
				if t.DueDate != nil {
					due = formatter.DueDateStyled(*t.DueDate, now)
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d.%d", t.ID1, t.ID2),
					t.DisplayName(),
					formatter.PriorityPill(t.Priority),
					due,
				})
			})
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching tasks.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "Name", "Priority", "Due"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&bfOnly, "bf", false, "Only tasks whose bring-forward date has arrived")
	cmd.Flags().BoolVar(&highOnly, "high", false, "Only high priority tasks")

	return cmd
}

func newTaskRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename REF NAME",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveTask(app, args[0]); err != nil {
				return err
			}
			if err := app.Planner.Rename(args[1]); err != nil {
				return err
			}
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a task and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveTask(app, args[0]); err != nil {
				return err
			}
			if err := app.Planner.Delete(); err != nil {
				return err
			}
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newTaskPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority REF LEVEL",
		Short: "Set a task's priority (low|medium|high)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			p, err := domain.ParsePriority(args[1])
			if err != nil {
				return err
			}
			hadDue := task.DueDate != nil
			task.SetPriority(p, app.now())
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], p)
			if !hadDue && task.DueDate != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Due date stamped to today (%s)\n", task.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newTaskDueCmd(app *App) *cobra.Command {
	return newTaskDateCmd(app, "due", "Set or clear a task's due date",
		func(t *domain.TaskItem, d *time.Time) { t.DueDate = d })
}

func newTaskBringForwardCmd(app *App) *cobra.Command {
	return newTaskDateCmd(app, "bf", "Set or clear a task's bring-forward date",
		func(t *domain.TaskItem, d *time.Time) { t.BringForwardDate = d })
}

func newTaskDateCmd(app *App, use, short string, set func(*domain.TaskItem, *time.Time)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " REF [DATE]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				set(task, nil)
				if err := app.Planner.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s date on %s\n", use, args[0])
				return nil
			}
			d, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[1], err)
			}
			set(task, &d)
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s date on %s to %s\n", use, args[0], args[1])
			return nil
		},
	}
}

func newTaskExpandCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "expand [REF]",
		Short: "Expand a task, or every task with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				changed := app.Planner.ExpandAll()
				if err := app.Planner.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Expanded %d tasks\n", changed)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("task reference required (or --all)")
			}
			if _, err := resolveTask(app, args[0]); err != nil {
				return err
			}
			if err := app.Planner.Expand(); err != nil {
				return err
			}
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expanded %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Expand every task")

	return cmd
}

func newTaskCollapseCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "collapse [REF]",
		Short: "Collapse a task, or every task with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				changed := app.Planner.CollapseAll()
				if err := app.Planner.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Collapsed %d tasks\n", changed)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("task reference required (or --all)")
			}
			if _, err := resolveTask(app, args[0]); err != nil {
				return err
			}
			if err := app.Planner.Collapse(); err != nil {
				return err
			}
			if err := app.Planner.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collapsed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Collapse every task")

	return cmd
}
