package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/timesheet"
	"github.com/spf13/cobra"
)

func newTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Manage the weekly time ledger",
	}

	cmd.AddCommand(
		newTimeLogCmd(app),
		newTimeWeekCmd(app),
		newTimeDayCmd(app),
		newTimeExportCmd(app),
	)

	return cmd
}

// moveSelection applies the --date flag to the ledger. Weekend dates are
// refused by the ledger; surface that instead of silently staying put.
func moveSelection(app *App, date string) error {
	if date == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	if !app.Ledger.SetSelectedDate(d) {
		return fmt.Errorf("%s falls on a weekend; the ledger only books weekdays", date)
	}
	return nil
}

func newTimeLogCmd(app *App) *cobra.Command {
	var date, desc string

	cmd := &cobra.Command{
		Use:   "log REF HOURS",
		Short: "Book hours against a project (ID1.ID2) or generic timecode (ID1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := moveSelection(app, date); err != nil {
				return err
			}
			id1, id2, err := parseEntryRef(args[0])
			if err != nil {
				return err
			}
			var hours float64
			if _, err := fmt.Sscanf(args[1], "%g", &hours); err != nil {
				return fmt.Errorf("invalid hours %q", args[1])
			}
			entry, err := app.Ledger.AddEntry(id1, id2, hours, desc)
			if err != nil {
				return err
			}
			if err := app.Ledger.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s on %s against %s\n",
				formatter.FormatHours(entry.Hours()),
				entry.Date().Format("2006-01-02"),
				entry.ProjectReference())
			if entry.Hours() != hours {
				fmt.Fprintf(cmd.OutOrStdout(), "Hours adjusted from %g to the quarter-hour grid\n", hours)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Booking date (YYYY-MM-DD, default: selected day)")
	cmd.Flags().StringVar(&desc, "desc", "", "Entry description")

	return cmd
}

func newTimeWeekCmd(app *App) *cobra.Command {
	var date string
	var prev, next int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the selected week's bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := moveSelection(app, date); err != nil {
				return err
			}
			for i := 0; i < prev; i++ {
				app.Ledger.PreviousWeek()
			}
			for i := 0; i < next; i++ {
				app.Ledger.NextWeek()
			}
			entries := app.Ledger.CurrentWeekEntries()
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No bookings in the week of %s.\n",
					app.Ledger.WeekStartDate().Format("Jan 2, 2006"))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderWeek(
				app.Ledger.WeekDates(), entries, app.Ledger.SelectedDate()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (YYYY-MM-DD)")
	cmd.Flags().IntVar(&prev, "prev", 0, "Go back N weeks")
	cmd.Flags().IntVar(&next, "next", 0, "Go forward N weeks")

	return cmd
}

func newTimeDayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's bookings and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := moveSelection(app, date); err != nil {
				return err
			}
			selected := app.Ledger.SelectedDate()
			var rows [][]string
			for _, e := range app.Ledger.CurrentWeekEntries() {
				if !e.Date().Equal(selected) {
					continue
				}
				rows = append(rows, []string{
					e.ProjectReference(),
					formatter.FormatHours(e.Hours()),
					e.Description,
				})
			}
			content := "No bookings."
			if len(rows) > 0 {
				content = formatter.RenderTable([]string{"Booking", "Hours", "Description"}, rows) +
					fmt.Sprintf("\nDay total: %s", formatter.Bold(formatter.FormatHours(app.Ledger.DayTotal(selected))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(selected.Format("Monday, Jan 2 2006"), content))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default: selected day)")

	return cmd
}

func newTimeExportCmd(app *App) *cobra.Command {
	var date string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the selected week's payroll block to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := moveSelection(app, date); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stdout {
				text, err := app.Ledger.BuildWeeklyExport()
				if errors.Is(err, timesheet.ErrNothingToExport) {
					fmt.Fprintln(out, err.Error())
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			text, err := app.Ledger.ExportWeeklyTimesheet()
			if errors.Is(err, timesheet.ErrNothingToExport) {
				fmt.Fprintln(out, err.Error())
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Copied %d payroll lines to the clipboard.\n", countLines(text))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the block instead of copying it")

	return cmd
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
