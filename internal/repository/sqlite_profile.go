package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/db"
	"github.com/atorrance/taskwell/internal/domain"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// SQLiteProfileRepo implements ProfileRepo over SQLite. It accepts any
// DBTX, so the same repository type serves both direct and transactional
// access.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(dbtx db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: dbtx}
}

const profileColumns = `id, name, format, fields, use_count, last_used, created_at, updated_at`

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.ExportProfile) error {
	query := `INSERT INTO export_profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Format),
		joinFields(p.Fields),
		p.UseCount,
		nullableTimeToString(p.LastUsed, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByID(ctx context.Context, id string) (*domain.ExportProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM export_profiles WHERE id = ?`, id)
	return r.scanProfile(row)
}

func (r *SQLiteProfileRepo) GetByName(ctx context.Context, name string) (*domain.ExportProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM export_profiles WHERE name = ? COLLATE NOCASE`, name)
	return r.scanProfile(row)
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.ExportProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM export_profiles ORDER BY use_count DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.ExportProfile
	for rows.Next() {
		p, err := scanProfileRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.ExportProfile) error {
	query := `UPDATE export_profiles SET name = ?, format = ?, fields = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		string(p.Format),
		joinFields(p.Fields),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) RecordUse(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE export_profiles SET use_count = use_count + 1, last_used = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		at.UTC().Format(time.RFC3339),
		at.UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("recording profile use: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording profile use: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM export_profiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) scanProfile(row *sql.Row) (*domain.ExportProfile, error) {
	p, err := scanProfileRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	return p, err
}

func scanProfileRow(scan func(...any) error) (*domain.ExportProfile, error) {
	var (
		p         domain.ExportProfile
		format    string
		fields    string
		lastUsed  sql.NullString
		createdAt string
		updatedAt string
	)
	if err := scan(&p.ID, &p.Name, &format, &fields, &p.UseCount, &lastUsed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Format = domain.ExportFormat(format)
	p.Fields = splitFields(fields)
	p.LastUsed = parseNullableTime(lastUsed, time.RFC3339)
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing profile created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing profile updated_at: %w", err)
	}
	return &p, nil
}
