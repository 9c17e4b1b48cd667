package repository

import (
	"context"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
)

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.ExportProfile) error
	GetByID(ctx context.Context, id string) (*domain.ExportProfile, error)
	GetByName(ctx context.Context, name string) (*domain.ExportProfile, error)
	List(ctx context.Context) ([]*domain.ExportProfile, error)
	Update(ctx context.Context, p *domain.ExportProfile) error
	RecordUse(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.FlowRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.FlowRun, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.FlowRun, error)
}
