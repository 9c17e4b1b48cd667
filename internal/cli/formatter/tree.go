package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title    string
	ID       string // "100.1" style identifier; "" means don't display
	Level    int
	IsLast   bool
	Priority domain.Priority
	Badge    string
	Dimmed   bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FlattenForest walks the roots depth-first and produces TreeItems for
// display. Collapsed subtrees are skipped unless showAll is set. High
// priority items due today are flagged, and badges carry the due date.
func FlattenForest(roots []*domain.TaskItem, showAll bool, now time.Time) []TreeItem {
	var items []TreeItem
	var walk func(task *domain.TaskItem, level int, isLast bool)
	walk = func(task *domain.TaskItem, level int, isLast bool) {
		item := TreeItem{
			Title:    task.Name,
			ID:       fmt.Sprintf("%d.%d", task.ID1, task.ID2),
			Level:    level,
			IsLast:   isLast,
			Priority: task.Priority,
		}
		if task.DueDate != nil {
			item.Badge = "due " + RelativeDateFrom(*task.DueDate, now)
		}
		if task.IsBroughtForward(now) {
			item.Dimmed = false
			if item.Badge != "" {
				item.Badge += ", "
			}
			item.Badge += "bf"
		}
		items = append(items, item)

		if !task.IsExpanded && !showAll {
			return
		}
		for i, child := range task.Children {
			walk(child, level+1, i == len(task.Children)-1)
		}
	}
	for i, root := range roots {
		walk(root, 0, i == len(roots)-1)
	}
	return items
}

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. High-priority items get a red ▲
// prefix and badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.ID != "" {
			title = StyleDim.Render(item.ID+" ") + title
		}
		statusPrefix := ""

		switch item.Priority {
		case domain.PriorityHigh:
			statusPrefix = StyleRed.Render("▲ ")
		case domain.PriorityLow:
			title = Dim(title)
		}
		if item.Dimmed {
			title = Dim(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Badge != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Badge))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
