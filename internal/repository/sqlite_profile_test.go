package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/atorrance/taskwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("payroll",
		testutil.WithFormat(domain.FormatTSV),
		testutil.WithFields("employee", "hours"),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "payroll", got.Name)
	assert.Equal(t, domain.FormatTSV, got.Format)
	assert.Equal(t, []string{"employee", "hours"}, got.Fields)
	assert.Equal(t, 0, got.UseCount)
	assert.Nil(t, got.LastUsed)

	byName, err := repo.GetByName(ctx, "PAYROLL")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID, "name lookup is case-insensitive")
}

func TestProfileRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)

	_, err := repo.GetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRepo_DuplicateNameRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProfile("weekly")))
	err := repo.Create(ctx, testutil.NewTestProfile("weekly"))
	require.Error(t, err)
}

func TestProfileRepo_RecordUse(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("weekly")
	require.NoError(t, repo.Create(ctx, p))

	at := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordUse(ctx, p.ID, at))
	require.NoError(t, repo.RecordUse(ctx, p.ID, at.Add(time.Hour)))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UseCount)
	require.NotNil(t, got.LastUsed)
	assert.Equal(t, at.Add(time.Hour), got.LastUsed.UTC())

	err = repo.RecordUse(ctx, "missing-id", at)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRepo_ListOrdersByUsage(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	rare := testutil.NewTestProfile("rare")
	frequent := testutil.NewTestProfile("frequent")
	require.NoError(t, repo.Create(ctx, rare))
	require.NoError(t, repo.Create(ctx, frequent))
	require.NoError(t, repo.RecordUse(ctx, frequent.ID, time.Now()))

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "frequent", profiles[0].Name)
}

func TestProfileRepo_UpdateAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProfile("draft")
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "final"
	p.Format = domain.FormatJSON
	p.Fields = []string{"total"}
	p.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Name)
	assert.Equal(t, domain.FormatJSON, got.Format)
	assert.Equal(t, []string{"total"}, got.Fields)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
