// Package planner owns the in-memory task forest, the single-item
// selection, and every mutation the task views expose. It is deliberately
// single-threaded: callers mutate it from one goroutine only.
package planner

import (
	"errors"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/forest"
	"github.com/atorrance/taskwell/internal/observe"
)

// ErrNoSelection guards operations that need a selected task.
var ErrNoSelection = errors.New("no task selected")

// ForestStore is the persistence port the planner saves through.
type ForestStore interface {
	Load() (*forest.Forest, error)
	Save(*forest.Forest) error
}

type Planner struct {
	forest    *forest.Forest
	selection *domain.TaskItem
	store     ForestStore
	now       func() time.Time
	observer  observe.UseCaseObserver
}

// Option configures a Planner during construction.
type Option func(*Planner)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithObserver wires use-case telemetry. A nil observer falls back to the
// noop.
func WithObserver(o observe.UseCaseObserver) Option {
	return func(p *Planner) { p.observer = observe.OrNoop(o) }
}

// New creates a planner over an already-loaded forest.
func New(f *forest.Forest, store ForestStore, opts ...Option) *Planner {
	p := &Planner{
		forest:   f,
		store:    store,
		now:      time.Now,
		observer: observe.NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load builds a planner by reading the forest from the store.
func Load(store ForestStore, opts ...Option) (*Planner, error) {
	f, err := store.Load()
	if err != nil {
		return nil, err
	}
	return New(f, store, opts...), nil
}

func (p *Planner) Forest() *forest.Forest { return p.forest }

// Selection returns the currently selected task, or nil.
func (p *Planner) Selection() *domain.TaskItem { return p.selection }

// Select points the selection at item. Selecting nil clears it.
func (p *Planner) Select(item *domain.TaskItem) { p.selection = item }

// NewTask creates a task with the next available ID1 and attaches it under
// the current selection, forcing the parent open; without a selection it
// becomes a new root. The new task starts in edit mode and is selected.
func (p *Planner) NewTask(name string) *domain.TaskItem {
	start := p.now()
	item := p.buildItem(name, 7)
	if p.selection != nil {
		// Fresh node, cannot form a cycle.
		_ = p.forest.Attach(p.selection, item)
		p.selection.IsExpanded = true
	} else {
		p.forest.AddRoot(item)
	}
	p.selection = item
	p.observe("new_task", start, nil, map[string]any{"id1": item.ID1})
	return item
}

// NewProject creates a task at the root regardless of selection, with a
// longer default due date.
func (p *Planner) NewProject(name string) *domain.TaskItem {
	start := p.now()
	item := p.buildItem(name, 30)
	p.forest.AddRoot(item)
	p.selection = item
	p.observe("new_project", start, nil, map[string]any{"id1": item.ID1})
	return item
}

// NewSubtask creates a task under the current selection. Unlike NewTask it
// never falls back to the root: without a selection it fails.
func (p *Planner) NewSubtask(name string) (*domain.TaskItem, error) {
	if p.selection == nil {
		return nil, ErrNoSelection
	}
	start := p.now()
	item := p.buildItem(name, 7)
	_ = p.forest.Attach(p.selection, item)
	p.selection.IsExpanded = true
	p.selection = item
	p.observe("new_subtask", start, nil, map[string]any{"id1": item.ID1})
	return item, nil
}

func (p *Planner) buildItem(name string, dueInDays int) *domain.TaskItem {
	today := domain.DateOnly(p.now())
	due := today.AddDate(0, 0, dueInDays)
	bf := today.AddDate(0, 0, 1)
	return &domain.TaskItem{
		ID1:              p.forest.NextID1(),
		ID2:              1,
		Name:             name,
		Priority:         domain.PriorityMedium,
		AssignedDate:     today,
		DueDate:          &due,
		BringForwardDate: &bf,
		IsInEditMode:     true,
	}
}

// ToggleEdit flips the edit-mode flag on the selected task.
func (p *Planner) ToggleEdit() error {
	if p.selection == nil {
		return ErrNoSelection
	}
	p.selection.IsInEditMode = !p.selection.IsInEditMode
	return nil
}

// Rename sets the selected task's name and leaves edit mode.
func (p *Planner) Rename(name string) error {
	if p.selection == nil {
		return ErrNoSelection
	}
	p.selection.Name = name
	p.selection.IsInEditMode = false
	return nil
}

// Delete removes the selected task (and its subtree) from whichever
// collection holds it, then clears the selection. A selection that is no
// longer in the forest is silently ignored; the structure guarantees this
// should not happen in normal use.
func (p *Planner) Delete() error {
	if p.selection == nil {
		return ErrNoSelection
	}
	start := p.now()
	removed := p.forest.Remove(p.selection)
	p.selection = nil
	p.observe("delete_task", start, nil, map[string]any{"removed": removed})
	return nil
}

// Expand opens the selected task.
func (p *Planner) Expand() error {
	return p.setExpanded(true)
}

// Collapse closes the selected task.
func (p *Planner) Collapse() error {
	return p.setExpanded(false)
}

func (p *Planner) setExpanded(expanded bool) error {
	if p.selection == nil {
		return ErrNoSelection
	}
	p.selection.IsExpanded = expanded
	return nil
}

// ExpandAll opens every node with children and returns the change count.
func (p *Planner) ExpandAll() int {
	start := p.now()
	changed := p.forest.ExpandAll()
	p.observe("expand_all", start, nil, map[string]any{"changed": changed})
	return changed
}

// CollapseAll closes every node with children and returns the change count.
func (p *Planner) CollapseAll() int {
	start := p.now()
	changed := p.forest.CollapseAll()
	p.observe("collapse_all", start, nil, map[string]any{"changed": changed})
	return changed
}

// Save persists the entire forest through the store, a full overwrite.
func (p *Planner) Save() error {
	start := p.now()
	err := p.store.Save(p.forest)
	p.observe("save_forest", start, err, map[string]any{"nodes": p.forest.Count()})
	return err
}

func (p *Planner) observe(name string, start time.Time, err error, fields map[string]any) {
	p.observer.ObserveUseCase(observe.UseCaseEvent{
		Name:     name,
		Duration: p.now().Sub(start),
		Success:  err == nil,
		Err:      err,
		Fields:   fields,
	})
}
