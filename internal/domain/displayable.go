package domain

import "fmt"

// Displayable is the capability shared by every node that can appear in a
// displayed tree: a label, an ordered child list, and the two pieces of
// transient view state the planner tracks per node.
type Displayable interface {
	DisplayName() string
	ChildNodes() []Displayable
	Expanded() bool
	InEditMode() bool
}

// ProjectDataItem is a read-only leaf shown alongside tasks, carrying a
// single labeled value (for example a project attribute pulled from a
// spreadsheet). It never has children and is never editable in place.
type ProjectDataItem struct {
	Label string
	Value string
}

func (p *ProjectDataItem) DisplayName() string {
	if p.Value == "" {
		return p.Label
	}
	return fmt.Sprintf("%s: %s", p.Label, p.Value)
}

func (p *ProjectDataItem) ChildNodes() []Displayable { return nil }

func (p *ProjectDataItem) Expanded() bool { return false }

func (p *ProjectDataItem) InEditMode() bool { return false }
