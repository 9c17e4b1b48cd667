package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/db"
	"github.com/atorrance/taskwell/internal/domain"
)

// SQLiteRunRepo implements RunRepo over SQLite.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(dbtx db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: dbtx}
}

const runColumns = `id, profile_id, config_path, output_path, format, field_count, succeeded, message, started_at, finished_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.FlowRun) error {
	query := `INSERT INTO flow_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		nullableStringToValue(run.ProfileID),
		run.ConfigPath,
		run.OutputPath,
		run.Format,
		run.FieldCount,
		boolToInt(run.Succeeded),
		run.Message,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.FlowRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM flow_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return collectRuns(rows)
}

func (r *SQLiteRunRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.FlowRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM flow_runs WHERE profile_id = ? ORDER BY started_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing runs by profile: %w", err)
	}
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]*domain.FlowRun, error) {
	defer rows.Close()
	var runs []*domain.FlowRun
	for rows.Next() {
		var (
			run        domain.FlowRun
			profileID  sql.NullString
			succeeded  int
			startedAt  string
			finishedAt string
		)
		if err := rows.Scan(&run.ID, &profileID, &run.ConfigPath, &run.OutputPath,
			&run.Format, &run.FieldCount, &succeeded, &run.Message, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if profileID.Valid {
			run.ProfileID = &profileID.String
		}
		run.Succeeded = intToBool(succeeded)
		var err error
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parsing run started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing run finished_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
