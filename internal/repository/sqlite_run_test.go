package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/atorrance/taskwell/internal/db"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/atorrance/taskwell/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(profileID *string, startedAt time.Time) *domain.FlowRun {
	return &domain.FlowRun{
		ID:         uuid.New().String(),
		ProfileID:  profileID,
		ConfigPath: "mapping.json",
		OutputPath: "out.csv",
		Format:     "csv",
		FieldCount: 3,
		Succeeded:  true,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(time.Second),
	}
}

func TestRunRepo_CreateAndListRecent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRunRepo(database)
	ctx := context.Background()

	base := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newRun(nil, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt), "newest first")
	assert.True(t, runs[0].Succeeded)
	assert.Equal(t, "mapping.json", runs[0].ConfigPath)
}

func TestRunRepo_ListByProfile(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	runs := repository.NewSQLiteRunRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("weekly")
	require.NoError(t, profiles.Create(ctx, p))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, runs.Create(ctx, newRun(&p.ID, now)))
	require.NoError(t, runs.Create(ctx, newRun(nil, now)))

	got, err := runs.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].ProfileID)
	assert.Equal(t, p.ID, *got[0].ProfileID)
}

func TestRunRepo_TransactionalUseAndRun(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("weekly")
	require.NoError(t, profiles.Create(ctx, p))

	// Run insertion and usage bump commit together.
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteRunRepo(tx).Create(ctx, newRun(&p.ID, time.Now().UTC())); err != nil {
			return err
		}
		return repository.NewSQLiteProfileRepo(tx).RecordUse(ctx, p.ID, time.Now().UTC())
	})
	require.NoError(t, err)

	got, err := profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UseCount)

	// A failing callback rolls both back.
	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProfileRepo(tx).RecordUse(ctx, p.ID, time.Now().UTC()); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	got, err = profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UseCount, "rolled-back bump must not stick")
}
