package testutil

import (
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/google/uuid"
)

// FixtureNow is the fixed clock used by fixtures: a Wednesday.
var FixtureNow = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

// TaskOption mutates a fixture task.
type TaskOption func(*domain.TaskItem)

func WithIDs(id1, id2 int) TaskOption {
	return func(t *domain.TaskItem) {
		t.ID1 = id1
		t.ID2 = id2
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.TaskItem) {
		t.Priority = p
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.TaskItem) {
		t.DueDate = &d
	}
}

func WithBringForward(d time.Time) TaskOption {
	return func(t *domain.TaskItem) {
		t.BringForwardDate = &d
	}
}

func WithChildren(children ...*domain.TaskItem) TaskOption {
	return func(t *domain.TaskItem) {
		t.Children = append(t.Children, children...)
		t.IsExpanded = true
	}
}

// NewTestTask builds a task with sensible defaults for tests.
func NewTestTask(name string, opts ...TaskOption) *domain.TaskItem {
	t := &domain.TaskItem{
		ID1:          1,
		ID2:          1,
		Name:         name,
		Priority:     domain.PriorityMedium,
		AssignedDate: domain.DateOnly(FixtureNow),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ProfileOption mutates a fixture export profile.
type ProfileOption func(*domain.ExportProfile)

func WithFormat(f domain.ExportFormat) ProfileOption {
	return func(p *domain.ExportProfile) {
		p.Format = f
	}
}

func WithFields(fields ...string) ProfileOption {
	return func(p *domain.ExportProfile) {
		p.Fields = fields
	}
}

// NewTestProfile builds an export profile with sensible defaults.
func NewTestProfile(name string, opts ...ProfileOption) *domain.ExportProfile {
	p := &domain.ExportProfile{
		ID:        uuid.New().String(),
		Name:      name,
		Format:    domain.FormatCSV,
		CreatedAt: FixtureNow,
		UpdatedAt: FixtureNow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestEntry builds a weekday time entry, failing loudly on misuse.
func NewTestEntry(id1 int, id2 *int, date time.Time, hours float64) *domain.TimeEntry {
	e, err := domain.NewTimeEntry(id1, id2, date, hours, "")
	if err != nil {
		panic(err)
	}
	return e
}
