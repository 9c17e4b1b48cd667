package domain

import (
	"fmt"
	"time"
)

// TaskItem is a node in the task forest. ID1 identifies the project/task
// group, ID2 the sub-item within it; the pair is treated as a composite key
// but uniqueness is never enforced. Children are exclusively owned by their
// parent and carry no back-reference to it.
type TaskItem struct {
	ID1      int
	ID2      int
	Name     string
	Priority Priority

	AssignedDate     time.Time
	DueDate          *time.Time
	BringForwardDate *time.Time

	IsExpanded   bool
	IsInEditMode bool

	Children []*TaskItem
}

func (t *TaskItem) DisplayName() string {
	if t.Name == "" {
		return fmt.Sprintf("Task %d.%d", t.ID1, t.ID2)
	}
	return t.Name
}

func (t *TaskItem) ChildNodes() []Displayable {
	out := make([]Displayable, len(t.Children))
	for i, c := range t.Children {
		out[i] = c
	}
	return out
}

func (t *TaskItem) Expanded() bool { return t.IsExpanded }

func (t *TaskItem) InEditMode() bool { return t.IsInEditMode }

// SetPriority changes the priority. Raising a task to high priority when it
// has no due date stamps the due date with today; an existing due date is
// left alone.
func (t *TaskItem) SetPriority(p Priority, now time.Time) {
	t.Priority = p
	if p == PriorityHigh && t.DueDate == nil {
		today := DateOnly(now)
		t.DueDate = &today
	}
}

// IsHighPriorityToday reports whether the task is high priority and due today.
func (t *TaskItem) IsHighPriorityToday(now time.Time) bool {
	if t.Priority != PriorityHigh || t.DueDate == nil {
		return false
	}
	return SameDay(*t.DueDate, now)
}

// IsBroughtForward reports whether the task's bring-forward date has arrived.
func (t *TaskItem) IsBroughtForward(now time.Time) bool {
	if t.BringForwardDate == nil {
		return false
	}
	return !DateOnly(*t.BringForwardDate).After(DateOnly(now))
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
