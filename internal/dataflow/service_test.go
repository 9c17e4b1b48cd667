package dataflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atorrance/taskwell/internal/dataflow"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/atorrance/taskwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	source := filepath.Join(dir, "source.csv")
	require.NoError(t, os.WriteFile(source, []byte("Acme Corp,2025\nignored,12000\n"), 0644))

	cfg := &dataflow.MappingConfig{
		SourceFilePath:      source,
		DestinationFilePath: filepath.Join(dir, "dest.csv"),
		Mappings: []dataflow.FieldMapping{
			{FieldName: "company", SourceCell: "A1", DestinationCell: "A1", UseInT2020: true},
			{FieldName: "budget", SourceCell: "B2", DestinationCell: "B1"},
		},
	}
	configPath := filepath.Join(dir, "mapping.json")
	require.NoError(t, cfg.Save(configPath))
	return configPath
}

func newRunService(t *testing.T) (*dataflow.Service, repository.ProfileRepo, repository.RunRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	runs := repository.NewSQLiteRunRepo(database)
	svc := dataflow.NewService(profiles, runs, testutil.NewTestUoW(database),
		dataflow.WithClock(func() time.Time { return testutil.FixtureNow }))
	return svc, profiles, runs
}

func TestServiceRun_RecordsHistoryAndBumpsProfile(t *testing.T) {
	ctx := context.Background()
	configPath := writeRunFixtures(t)
	svc, profiles, runs := newRunService(t)

	profile := testutil.NewTestProfile("weekly", testutil.WithFormat(domain.FormatTSV))
	require.NoError(t, profiles.Create(ctx, profile))

	outcome, err := svc.Run(ctx, dataflow.RunRequest{
		ConfigPath:  configPath,
		ProfileName: "weekly",
	})
	require.NoError(t, err)
	assert.Equal(t, "company\tbudget\nAcme Corp\t12000\n", outcome.Export)

	history, err := runs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Succeeded)
	assert.Equal(t, 2, history[0].FieldCount)
	require.NotNil(t, history[0].ProfileID)
	assert.Equal(t, profile.ID, *history[0].ProfileID)

	updated, err := profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UseCount)
	require.NotNil(t, updated.LastUsed)
}

func TestServiceRun_PreviewSkipsHistory(t *testing.T) {
	ctx := context.Background()
	configPath := writeRunFixtures(t)
	svc, _, runs := newRunService(t)

	outcome, err := svc.Run(ctx, dataflow.RunRequest{
		ConfigPath: configPath,
		Format:     domain.FormatTXT,
		Preview:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "company: Acme Corp\nbudget: 12000\n", outcome.Export)

	history, err := runs.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestServiceRun_FieldSelectionAndOutput(t *testing.T) {
	ctx := context.Background()
	configPath := writeRunFixtures(t)
	svc, _, _ := newRunService(t)

	outputPath := filepath.Join(t.TempDir(), "out.csv")
	outcome, err := svc.Run(ctx, dataflow.RunRequest{
		ConfigPath: configPath,
		Format:     domain.FormatCSV,
		Fields:     []string{"budget"},
		OutputPath: outputPath,
	})
	require.NoError(t, err)
	assert.Equal(t, outputPath, outcome.OutputPath)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "budget\n12000\n", string(written))

	// Second run into the same file must demand --force.
	_, err = svc.Run(ctx, dataflow.RunRequest{
		ConfigPath: configPath,
		Format:     domain.FormatCSV,
		OutputPath: outputPath,
	})
	assert.ErrorContains(t, err, "already exists")

	_, err = svc.Run(ctx, dataflow.RunRequest{
		ConfigPath: configPath,
		Format:     domain.FormatCSV,
		OutputPath: outputPath,
		Force:      true,
	})
	require.NoError(t, err)
}

func TestServiceRun_ProfileSelectsFields(t *testing.T) {
	ctx := context.Background()
	configPath := writeRunFixtures(t)
	svc, profiles, _ := newRunService(t)

	profile := testutil.NewTestProfile("budget-only",
		testutil.WithFormat(domain.FormatCSV),
		testutil.WithFields("budget"))
	require.NoError(t, profiles.Create(ctx, profile))

	outcome, err := svc.Run(ctx, dataflow.RunRequest{
		ConfigPath:  configPath,
		ProfileName: "budget-only",
	})
	require.NoError(t, err)
	assert.Equal(t, "budget\n12000\n", outcome.Export, "the profile's field list narrows the export")

	// Explicit request fields beat the profile's selection.
	outcome, err = svc.Run(ctx, dataflow.RunRequest{
		ConfigPath:  configPath,
		ProfileName: "budget-only",
		Fields:      []string{"company"},
	})
	require.NoError(t, err)
	assert.Equal(t, "company\nAcme Corp\n", outcome.Export)
}

func TestServiceRun_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	configPath := writeRunFixtures(t)
	svc, _, _ := newRunService(t)

	_, err := svc.Run(ctx, dataflow.RunRequest{ConfigPath: configPath, ProfileName: "nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestServiceListFields(t *testing.T) {
	configPath := writeRunFixtures(t)
	svc, _, _ := newRunService(t)

	names, err := svc.ListFields(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"company", "budget"}, names)
}

func TestProfileService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	svc := dataflow.NewProfileService(repo,
		dataflow.WithProfileClock(func() time.Time { return testutil.FixtureNow }))

	p, err := svc.Create(ctx, "monthly", domain.FormatJSON, []string{"company"})
	require.NoError(t, err)
	assert.Equal(t, testutil.FixtureNow, p.CreatedAt)

	_, err = svc.Create(ctx, "monthly", domain.FormatCSV, nil)
	assert.ErrorContains(t, err, "already exists")

	_, err = svc.Create(ctx, "", domain.FormatCSV, nil)
	assert.ErrorContains(t, err, "required")

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.Delete(ctx, "monthly"))
	_, err = svc.Get(ctx, "monthly")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
