// Package tui is the interactive forest browser: cursor navigation over
// the visible tree, expand/collapse, inline renames, and task creation
// without leaving the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atorrance/taskwell/internal/cli/formatter"
	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/planner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// visibleNode pairs a task with its rendered depth.
type visibleNode struct {
	task  *domain.TaskItem
	level int
	last  bool
}

// Model is the bubbletea model for the forest browser.
type Model struct {
	planner *planner.Planner
	now     func() time.Time

	nodes  []visibleNode
	cursor int

	editing bool
	input   textinput.Model

	status string
	err    error
}

// New builds a browser over an already-loaded planner.
func New(p *planner.Planner, now func() time.Time) *Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Prompt = formatter.StyleHeader.Render("› ")

	m := &Model{
		planner: p,
		now:     now,
		input:   input,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(p *planner.Planner, now func() time.Time) error {
	_, err := tea.NewProgram(New(p, now), tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds the visible node list after any structural change.
func (m *Model) refresh() {
	m.nodes = m.nodes[:0]
	var walk func(items []*domain.TaskItem, level int)
	walk = func(items []*domain.TaskItem, level int) {
		for i, t := range items {
			m.nodes = append(m.nodes, visibleNode{task: t, level: level, last: i == len(items)-1})
			if t.IsExpanded {
				walk(t.Children, level+1)
			}
		}
	}
	walk(m.planner.Forest().Roots, 0)

	// Keep following the selected task when it is still visible, otherwise
	// clamp the cursor and select whatever it lands on.
	if sel := m.planner.Selection(); sel != nil {
		for i, n := range m.nodes {
			if n.task == sel {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.nodes) > 0 {
		m.planner.Select(m.nodes[m.cursor].task)
	} else {
		m.planner.Select(nil)
	}
}

func (m *Model) current() *domain.TaskItem {
	if m.cursor >= len(m.nodes) {
		return nil
	}
	return m.nodes[m.cursor].task
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.updateEditing(keyMsg)
	}
	return m.updateBrowsing(keyMsg)
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		if task := m.current(); task != nil {
			task.IsInEditMode = false
		}
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		if err := m.planner.Rename(m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "renamed"
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "q":
		if err := m.planner.Save(); err != nil {
			m.err = err
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.planner.Select(m.nodes[m.cursor].task)
		}

	case "down", "j":
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
			m.planner.Select(m.nodes[m.cursor].task)
		}

	case "enter", " ":
		if task := m.current(); task != nil && len(task.Children) > 0 {
			task.IsExpanded = !task.IsExpanded
			m.refresh()
		}

	case "e":
		if task := m.current(); task != nil {
			m.startEditing(task)
		}

	case "n":
		m.planner.Select(nil)
		m.startEditing(m.planner.NewTask(""))
		m.refresh()

	case "s":
		if m.current() != nil {
			item, err := m.planner.NewSubtask("")
			if err != nil {
				m.err = err
				return m, nil
			}
			m.startEditing(item)
			m.refresh()
		}

	case "d":
		if m.current() != nil {
			if err := m.planner.Delete(); err != nil {
				m.err = err
				return m, nil
			}
			m.status = "deleted"
			m.refresh()
		}

	case "E":
		m.planner.ExpandAll()
		m.refresh()

	case "C":
		m.planner.CollapseAll()
		m.refresh()

	case "w":
		if err := m.planner.Save(); err != nil {
			m.err = err
		} else {
			m.status = "saved"
		}
	}

	return m, nil
}

func (m *Model) startEditing(task *domain.TaskItem) {
	m.planner.Select(task)
	task.IsInEditMode = true
	m.editing = true
	m.input.SetValue(task.Name)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("tasks") + "\n\n")

	if len(m.nodes) == 0 {
		b.WriteString("  " + formatter.Dim("No tasks. Press n to create one.") + "\n")
	}

	now := m.now()
	for i, n := range m.nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		indent := strings.Repeat("  ", n.level)

		marker := "  "
		if len(n.task.Children) > 0 {
			if n.task.IsExpanded {
				marker = formatter.Dim("▾ ")
			} else {
				marker = formatter.Dim("▸ ")
			}
		}

		if m.editing && n.task == m.current() {
			b.WriteString(fmt.Sprintf("  %s%s%s\n", indent, marker, m.input.View()))
			continue
		}

		name := n.task.DisplayName()
		style := formatter.StyleFg
		if i == m.cursor {
			style = formatter.StyleBold
		}
		if n.task.Priority == domain.PriorityHigh {
			name = formatter.StyleRed.Render("▲ ") + style.Render(name)
		} else {
			name = style.Render(name)
		}

		badge := ""
		if n.task.DueDate != nil {
			badge = "  " + formatter.DueDateStyled(*n.task.DueDate, now)
		}
		if n.task.IsBroughtForward(now) {
			badge += "  " + formatter.StyleBlue.Render("[bf]")
		}

		b.WriteString(fmt.Sprintf("%s%s%s%s %s%s\n",
			cursor, indent, marker,
			formatter.Dim(fmt.Sprintf("%d.%d", n.task.ID1, n.task.ID2)),
			name, badge))
	}

	b.WriteString("\n  ")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status))
	} else if m.editing {
		b.WriteString(formatter.Dim("enter confirm · esc cancel"))
	} else {
		b.WriteString(formatter.Dim("j/k move · enter toggle · n new · s subtask · e edit · d delete · w save · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}
