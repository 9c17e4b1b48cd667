// Package store persists taskwell's data files: the task forest and the
// time ledger as JSON documents, and per-task notes as plain text files
// with backup-before-overwrite. Saves are always full overwrites via a
// temp-file rename.
package store

import (
	"fmt"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/forest"
)

const dateLayout = "2006-01-02"

// taskRecord is the on-disk shape of one forest node. Edit mode is
// transient view state and is deliberately not persisted.
type taskRecord struct {
	ID1              int          `json:"id1"`
	ID2              int          `json:"id2"`
	Name             string       `json:"name"`
	Priority         string       `json:"priority"`
	AssignedDate     string       `json:"assignedDate"`
	DueDate          *string      `json:"dueDate,omitempty"`
	BringForwardDate *string      `json:"bringForwardDate,omitempty"`
	IsExpanded       bool         `json:"isExpanded"`
	Children         []taskRecord `json:"children"`
}

// entryRecord is the on-disk shape of one time entry.
type entryRecord struct {
	ID1         int     `json:"id1"`
	ID2         *int    `json:"id2,omitempty"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}

func taskToRecord(t *domain.TaskItem) taskRecord {
	rec := taskRecord{
		ID1:          t.ID1,
		ID2:          t.ID2,
		Name:         t.Name,
		Priority:     string(t.Priority),
		AssignedDate: t.AssignedDate.Format(dateLayout),
		DueDate:      formatOptionalDate(t.DueDate),
		BringForwardDate: formatOptionalDate(t.BringForwardDate),
		IsExpanded:   t.IsExpanded,
		Children:     make([]taskRecord, 0, len(t.Children)),
	}
	for _, c := range t.Children {
		rec.Children = append(rec.Children, taskToRecord(c))
	}
	return rec
}

func recordToTask(rec taskRecord) (*domain.TaskItem, error) {
	assigned, err := time.Parse(dateLayout, rec.AssignedDate)
	if err != nil {
		return nil, fmt.Errorf("task %d.%d: invalid assigned date %q: %w", rec.ID1, rec.ID2, rec.AssignedDate, err)
	}
	priority := domain.Priority(rec.Priority)
	if rec.Priority == "" {
		priority = domain.PriorityMedium
	} else if !domain.ValidPriorities[rec.Priority] {
		return nil, fmt.Errorf("task %d.%d: invalid priority %q", rec.ID1, rec.ID2, rec.Priority)
	}

	t := &domain.TaskItem{
		ID1:          rec.ID1,
		ID2:          rec.ID2,
		Name:         rec.Name,
		Priority:     priority,
		AssignedDate: assigned,
		IsExpanded:   rec.IsExpanded,
	}
	if t.DueDate, err = parseOptionalDate(rec.DueDate); err != nil {
		return nil, fmt.Errorf("task %d.%d: invalid due date: %w", rec.ID1, rec.ID2, err)
	}
	if t.BringForwardDate, err = parseOptionalDate(rec.BringForwardDate); err != nil {
		return nil, fmt.Errorf("task %d.%d: invalid bring-forward date: %w", rec.ID1, rec.ID2, err)
	}
	for _, childRec := range rec.Children {
		child, err := recordToTask(childRec)
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, child)
	}
	return t, nil
}

func forestToRecords(f *forest.Forest) []taskRecord {
	records := make([]taskRecord, 0, len(f.Roots))
	for _, root := range f.Roots {
		records = append(records, taskToRecord(root))
	}
	return records
}

func recordsToForest(records []taskRecord) (*forest.Forest, error) {
	f := forest.New()
	for _, rec := range records {
		root, err := recordToTask(rec)
		if err != nil {
			return nil, err
		}
		f.AddRoot(root)
	}
	return f, nil
}

func entryToRecord(e *domain.TimeEntry) entryRecord {
	return entryRecord{
		ID1:         e.ID1,
		ID2:         e.ID2,
		Date:        e.Date().Format(dateLayout),
		Hours:       e.Hours(),
		Description: e.Description,
	}
}

func recordToEntry(rec entryRecord) (*domain.TimeEntry, error) {
	date, err := time.Parse(dateLayout, rec.Date)
	if err != nil {
		return nil, fmt.Errorf("time entry for %s: invalid date %q: %w", rec.Date, rec.Date, err)
	}
	return domain.NewTimeEntry(rec.ID1, rec.ID2, date, rec.Hours, rec.Description)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
