package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/dataflow"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newFlowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Run spreadsheet cell-mapping data flows",
	}

	cmd.AddCommand(
		newFlowRunCmd(app),
		newFlowFieldsCmd(app),
		newFlowWizardCmd(app),
		newFlowHistoryCmd(app),
	)

	return cmd
}

// formatValue is a pflag.Value that validates the export format as it is
// parsed, so bad formats fail before any processing starts.
type formatValue struct {
	format *domain.ExportFormat
}

func (v formatValue) String() string {
	if v.format == nil {
		return ""
	}
	return string(*v.format)
}

func (v formatValue) Set(s string) error {
	f, err := domain.ParseExportFormat(s)
	if err != nil {
		return err
	}
	*v.format = f
	return nil
}

func (v formatValue) Type() string { return "format" }

// addRunFlags registers the flags shared by "flow run" and "flow preview".
func addRunFlags(fs *pflag.FlagSet, req *dataflow.RunRequest) {
	fs.StringVar(&req.ProfileName, "profile", "", "Export profile to apply")
	fs.Var(formatValue{format: &req.Format}, "format", "Flat export format (csv|tsv|json|xml|txt)")
	fs.StringSliceVar(&req.Fields, "fields", nil, "Subset of mapped fields to export")
	fs.StringVarP(&req.OutputPath, "output", "o", "", "Write the flat export to this file")
	fs.BoolVar(&req.Force, "force", false, "Overwrite an existing output file")
}

func newFlowRunCmd(app *App) *cobra.Command {
	var req dataflow.RunRequest
	var listFields bool

	cmd := &cobra.Command{
		Use:   "run CONFIG",
		Short: "Execute a mapping config and optionally render the flat export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ConfigPath = args[0]
			if listFields {
				names, err := app.Flow.ListFields(req.ConfigPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
				return nil
			}
			outcome, err := app.Flow.Run(context.Background(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d fields.\n", len(outcome.Result.Fields))
			if req.Preview && outcome.Export != "" {
				fmt.Fprintln(out, formatter.Header("preview"))
				fmt.Fprint(out, outcome.Export)
				return nil
			}
			if outcome.OutputPath != "" {
				fmt.Fprintf(out, "Export written to %s\n", outcome.OutputPath)
			}
			return nil
		},
	}

	addRunFlags(cmd.Flags(), &req)
	cmd.Flags().BoolVar(&req.Preview, "preview", false, "Render the export without writing or recording the run")
	cmd.Flags().BoolVar(&listFields, "list-fields", false, "List the config's field names and exit")

	return cmd
}

func newFlowFieldsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields CONFIG",
		Short: "List the field names a mapping config defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := app.Flow.ListFields(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}
}

func newFlowHistoryCmd(app *App) *cobra.Command {
	var limit int
	var profileName string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent flow runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var runs []*domain.FlowRun
			if profileName != "" {
				p, err := app.Profiles.Get(ctx, profileName)
				if err != nil {
					return err
				}
				runs, err = app.Runs.ListByProfile(ctx, p.ID)
				if err != nil {
					return err
				}
			} else {
				var err error
				runs, err = app.Runs.ListRecent(ctx, limit)
				if err != nil {
					return err
				}
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			now := app.now().Local()
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				status := formatter.StyleGreen.Render("ok")
				if !r.Succeeded {
					status = formatter.StyleRed.Render("failed")
				}
				started := r.StartedAt.Local()
				rows = append(rows, []string{
					fmt.Sprintf("%s %s", formatter.HumanDate(started, now), started.Format("15:04")),
					r.ConfigPath,
					r.Format,
					fmt.Sprintf("%d", r.FieldCount),
					status,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"Started", "Config", "Format", "Fields", "Status"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&profileName, "profile", "", "Only show runs recorded against this profile")

	return cmd
}
