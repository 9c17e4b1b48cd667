package dataflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/repository"
	"github.com/google/uuid"
)

// ProfileService manages export profiles.
type ProfileService struct {
	profiles repository.ProfileRepo
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepo, opts ...ProfileOption) *ProfileService {
	s := &ProfileService{profiles: profiles, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileOption configures a ProfileService during construction.
type ProfileOption func(*ProfileService)

// WithProfileClock replaces the wall clock, mainly for tests.
func WithProfileClock(now func() time.Time) ProfileOption {
	return func(s *ProfileService) { s.now = now }
}

// Create saves a new named profile. Names are unique (case-insensitive).
func (s *ProfileService) Create(ctx context.Context, name string, format domain.ExportFormat, fields []string) (*domain.ExportProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if _, err := s.profiles.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("profile %q already exists", name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	p := &domain.ExportProfile{
		ID:        uuid.New().String(),
		Name:      name,
		Format:    format,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get resolves a profile by name.
func (s *ProfileService) Get(ctx context.Context, name string) (*domain.ExportProfile, error) {
	return s.profiles.GetByName(ctx, name)
}

// List returns all profiles, most used first.
func (s *ProfileService) List(ctx context.Context) ([]*domain.ExportProfile, error) {
	return s.profiles.List(ctx)
}

// Delete removes a profile by name.
func (s *ProfileService) Delete(ctx context.Context, name string) error {
	p, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.profiles.Delete(ctx, p.ID)
}
