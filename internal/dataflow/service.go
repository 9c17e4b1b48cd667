package dataflow

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atorrance/taskwell/internal/db"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/observe"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/google/uuid"
)

// RunRequest describes one invocation of the data-flow processor.
type RunRequest struct {
	ConfigPath  string
	ProfileName string
	// Format and Fields override the profile when set.
	Format     domain.ExportFormat
	Fields     []string
	OutputPath string
	Preview    bool
	Force      bool
}

// RunOutcome reports what a run did.
type RunOutcome struct {
	Result     *Result
	Profile    *domain.ExportProfile
	Export     string
	OutputPath string
}

// Service orchestrates processing runs: mapping execution, profile-driven
// flat export, and run history. Each completed run and its profile usage
// bump are committed in one transaction.
type Service struct {
	profiles repository.ProfileRepo
	runs     repository.RunRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer observe.UseCaseObserver
}

// ServiceOption configures a Service during construction.
type ServiceOption func(*Service)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithObserver wires use-case telemetry. A nil observer falls back to the
// noop.
func WithObserver(o observe.UseCaseObserver) ServiceOption {
	return func(s *Service) { s.observer = observe.OrNoop(o) }
}

func NewService(profiles repository.ProfileRepo, runs repository.RunRepo, uow db.UnitOfWork, opts ...ServiceOption) *Service {
	s := &Service{
		profiles: profiles,
		runs:     runs,
		uow:      uow,
		now:      time.Now,
		observer: observe.NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListFields returns the field names a config maps, for --list-fields.
func (s *Service) ListFields(configPath string) ([]string, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.FieldNames(), nil
}

// Run executes the mapping and, when a profile or format is involved,
// renders the flat export. Previews skip the output write and the run
// record; real runs are logged and count against the profile.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunOutcome, error) {
	startedAt := s.now().UTC()

	cfg, err := LoadConfig(req.ConfigPath)
	if err != nil {
		return nil, err
	}

	var profile *domain.ExportProfile
	if req.ProfileName != "" {
		profile, err = s.profiles.GetByName(ctx, req.ProfileName)
		if err != nil {
			return nil, fmt.Errorf("export profile %q: %w", req.ProfileName, err)
		}
	}

	result, err := Process(cfg)
	if err != nil {
		s.recordRun(ctx, req, profile, startedAt, 0, err)
		return nil, err
	}

	outcome := &RunOutcome{Result: result, Profile: profile}

	format := req.Format
	if format == "" && profile != nil {
		format = profile.Format
	}

	if format != "" {
		selected := selectFields(result, req.Fields, profile)
		if len(selected) == 0 {
			return nil, fmt.Errorf("no mapped fields match the requested selection")
		}
		text, err := RenderExport(selected, format)
		if err != nil {
			return nil, err
		}
		outcome.Export = text

		if !req.Preview && req.OutputPath != "" {
			if err := writeOutput(req.OutputPath, text, req.Force); err != nil {
				return nil, err
			}
			outcome.OutputPath = req.OutputPath
		}
	}

	if !req.Preview {
		if err := s.recordRun(ctx, req, profile, startedAt, len(result.Fields), nil); err != nil {
			return nil, err
		}
	}

	s.observer.ObserveUseCase(observe.UseCaseEvent{
		Name:     "flow_run",
		Duration: s.now().UTC().Sub(startedAt),
		Success:  true,
		Fields: map[string]any{
			"fields":  len(result.Fields),
			"preview": req.Preview,
		},
	})
	return outcome, nil
}

// recordRun inserts the run row and bumps the profile usage counter in a
// single transaction, so history and counters cannot drift apart.
func (s *Service) recordRun(ctx context.Context, req RunRequest, profile *domain.ExportProfile, startedAt time.Time, fieldCount int, runErr error) error {
	run := &domain.FlowRun{
		ID:         uuid.New().String(),
		ConfigPath: req.ConfigPath,
		OutputPath: req.OutputPath,
		Format:     string(req.Format),
		FieldCount: fieldCount,
		Succeeded:  runErr == nil,
		StartedAt:  startedAt,
		FinishedAt: s.now().UTC(),
	}
	if runErr != nil {
		run.Message = runErr.Error()
	}
	if profile != nil {
		run.ProfileID = &profile.ID
		if run.Format == "" {
			run.Format = string(profile.Format)
		}
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteRunRepo(tx).Create(ctx, run); err != nil {
			return err
		}
		if profile != nil && runErr == nil {
			return repository.NewSQLiteProfileRepo(tx).RecordUse(ctx, profile.ID, s.now().UTC())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// selectFields resolves the exported subset: explicit request fields win,
// then the profile's selection, then everything.
func selectFields(result *Result, requested []string, profile *domain.ExportProfile) []FieldValue {
	if len(requested) > 0 {
		return result.SelectFields(requested)
	}
	if profile == nil {
		return result.Fields
	}
	var out []FieldValue
	for _, f := range result.Fields {
		if profile.SelectsField(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

func writeOutput(path, text string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing export output: %w", err)
	}
	return nil
}
