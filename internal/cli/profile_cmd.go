package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage export profiles",
	}

	cmd.AddCommand(
		newProfileAddCmd(app),
		newProfileListCmd(app),
		newProfileRemoveCmd(app),
	)

	return cmd
}

func newProfileAddCmd(app *App) *cobra.Command {
	var format domain.ExportFormat = domain.FormatCSV
	var fields []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an export profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Create(context.Background(), args[0], format, fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q (%s)\n", p.Name, p.Format)
			return nil
		},
	}

	cmd.Flags().Var(formatValue{format: &format}, "format", "Flat export format (csv|tsv|json|xml|txt)")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields the profile selects (empty: all)")

	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List export profiles, most used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(context.Background())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles yet.")
				return nil
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				fields := formatter.Dim("all")
				if len(p.Fields) > 0 {
					fields = strings.Join(p.Fields, ", ")
				}
				lastUsed := formatter.Dim("never")
				if p.LastUsed != nil {
					lastUsed = p.LastUsed.Local().Format("2006-01-02")
				}
				rows = append(rows, []string{
					p.Name,
					formatter.StylePurple.Render(string(p.Format)),
					fields,
					fmt.Sprintf("%d", p.UseCount),
					lastUsed,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"Name", "Format", "Fields", "Uses", "Last Used"}, rows))
			return nil
		},
	}
}

func newProfileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an export profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Profiles.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %q\n", args[0])
			return nil
		},
	}
}
