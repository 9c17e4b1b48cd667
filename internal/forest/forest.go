// Package forest holds the in-memory task tree: an ordered list of root
// tasks, each exclusively owning its children. Nodes carry no parent
// pointers; parent lookup is a top-down search, which is fine at the small
// single-user scale this tool targets.
package forest

import (
	"fmt"

	"github.com/atorrance/taskwell/internal/domain"
)

type Forest struct {
	Roots []*domain.TaskItem
}

func New(roots ...*domain.TaskItem) *Forest {
	return &Forest{Roots: roots}
}

// NextID1 returns one more than the largest ID1 anywhere in the forest,
// descendants included. An empty forest starts at 1.
func (f *Forest) NextID1() int {
	max := 0
	f.Walk(func(t *domain.TaskItem) {
		if t.ID1 > max {
			max = t.ID1
		}
	})
	return max + 1
}

// Walk visits every node depth-first in display order.
func (f *Forest) Walk(fn func(*domain.TaskItem)) {
	var visit func(items []*domain.TaskItem)
	visit = func(items []*domain.TaskItem) {
		for _, t := range items {
			fn(t)
			visit(t.Children)
		}
	}
	visit(f.Roots)
}

// Contains reports whether target is anywhere in the forest.
func (f *Forest) Contains(target *domain.TaskItem) bool {
	found := false
	f.Walk(func(t *domain.TaskItem) {
		if t == target {
			found = true
		}
	})
	return found
}

// FindByID returns the first node matching (id1, id2), or nil.
func (f *Forest) FindByID(id1, id2 int) *domain.TaskItem {
	var found *domain.TaskItem
	f.Walk(func(t *domain.TaskItem) {
		if found == nil && t.ID1 == id1 && t.ID2 == id2 {
			found = t
		}
	})
	return found
}

// Remove searches depth-first for target and removes it from whichever
// collection holds it, subtree included. A missing target is a no-op; the
// return value reports whether anything was removed.
func (f *Forest) Remove(target *domain.TaskItem) bool {
	if removed, rest := removeFrom(f.Roots, target); removed {
		f.Roots = rest
		return true
	}
	var done bool
	f.Walk(func(t *domain.TaskItem) {
		if done {
			return
		}
		if removed, rest := removeFrom(t.Children, target); removed {
			t.Children = rest
			done = true
		}
	})
	return done
}

func removeFrom(items []*domain.TaskItem, target *domain.TaskItem) (bool, []*domain.TaskItem) {
	for i, t := range items {
		if t == target {
			return true, append(items[:i:i], items[i+1:]...)
		}
	}
	return false, items
}

// AddRoot appends item to the end of the root list.
func (f *Forest) AddRoot(item *domain.TaskItem) {
	f.Roots = append(f.Roots, item)
}

// Attach appends child as the last child of parent. It refuses attachments
// that would create a cycle: the child being the parent itself, or the child
// being an ancestor of the parent.
func (f *Forest) Attach(parent, child *domain.TaskItem) error {
	if parent == child {
		return fmt.Errorf("cannot attach a task to itself")
	}
	if isAncestor(child, parent) {
		return fmt.Errorf("cannot attach %q under its own descendant %q", child.DisplayName(), parent.DisplayName())
	}
	parent.Children = append(parent.Children, child)
	return nil
}

// isAncestor reports whether node appears in candidate's subtree.
func isAncestor(candidate, node *domain.TaskItem) bool {
	for _, c := range candidate.Children {
		if c == node || isAncestor(c, node) {
			return true
		}
	}
	return false
}

// ExpandAll expands every node that has children and returns how many
// nodes actually changed state.
func (f *Forest) ExpandAll() int {
	return f.setExpanded(true)
}

// CollapseAll collapses every node that has children and returns how many
// nodes actually changed state.
func (f *Forest) CollapseAll() int {
	return f.setExpanded(false)
}

func (f *Forest) setExpanded(expanded bool) int {
	changed := 0
	f.Walk(func(t *domain.TaskItem) {
		if len(t.Children) == 0 {
			return
		}
		if t.IsExpanded != expanded {
			t.IsExpanded = expanded
			changed++
		}
	})
	return changed
}

// Count returns the total number of nodes in the forest.
func (f *Forest) Count() int {
	n := 0
	f.Walk(func(*domain.TaskItem) { n++ })
	return n
}
