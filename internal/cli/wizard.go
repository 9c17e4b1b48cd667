package cli

import (
	"fmt"
	"strings"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/dataflow"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// taskwellHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func taskwellHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateCell(s string) error {
	if s == "" {
		return nil
	}
	_, err := dataflow.ParseCellAddress(s)
	return err
}

func validateRequiredCell(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cell address is required")
	}
	return validateCell(s)
}

// wizardWorkbookForm collects the source and destination workbook step.
func wizardWorkbookForm(cfg *dataflow.MappingConfig) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source workbook").
				Placeholder("data/input.csv").
				Value(&cfg.SourceFilePath).
				Validate(validateRequired("source workbook")),
			huh.NewInput().
				Title("Source sheet (blank when the path is a file)").
				Value(&cfg.SourceSheet),
			huh.NewInput().
				Title("Destination workbook").
				Placeholder("data/output.csv").
				Value(&cfg.DestinationFilePath).
				Validate(validateRequired("destination workbook")),
			huh.NewInput().
				Title("Destination sheet (blank when the path is a file)").
				Value(&cfg.DestinationSheet),
		),
	).WithTheme(taskwellHuhTheme()).WithShowHelp(false)
}

// wizardMappingForm collects one field mapping. The caller loops until the
// user leaves the field name empty.
func wizardMappingForm(m *dataflow.FieldMapping, first bool) *huh.Form {
	nameTitle := "Field name (Enter when done)"
	nameValidate := validateCellIfNamed(m)
	if first {
		nameTitle = "Field name"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(nameTitle).
				Placeholder("company").
				Value(&m.FieldName),
			huh.NewInput().
				Title("Source cell").
				Placeholder("B4").
				Value(&m.SourceCell).
				Validate(nameValidate),
			huh.NewInput().
				Title("Destination cell").
				Placeholder("C2").
				Value(&m.DestinationCell).
				Validate(nameValidate),
			huh.NewConfirm().
				Title("Include in flat export?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.UseInT2020),
		),
	).WithTheme(taskwellHuhTheme()).WithShowHelp(false)
}

// validateCellIfNamed requires a valid cell only when the mapping has a
// name; an unnamed mapping is the loop's exit signal.
func validateCellIfNamed(m *dataflow.FieldMapping) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(m.FieldName) == "" {
			return nil
		}
		return validateRequiredCell(s)
	}
}

// runMappingWizard walks through the workbook step and the repeating
// mapping step, returning a validated config.
func runMappingWizard() (*dataflow.MappingConfig, error) {
	cfg := &dataflow.MappingConfig{}

	if err := wizardWorkbookForm(cfg).Run(); err != nil {
		return nil, err
	}

	for {
		var m dataflow.FieldMapping
		if err := wizardMappingForm(&m, len(cfg.Mappings) == 0).Run(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(m.FieldName) == "" {
			break
		}
		cfg.Mappings = append(cfg.Mappings, m)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFlowWizardCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Interactively build a mapping config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runMappingWizard()
			if err != nil {
				return err
			}
			if err := cfg.Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d field mappings to %s\n", len(cfg.Mappings), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "mapping.json", "Config file to write")

	return cmd
}
