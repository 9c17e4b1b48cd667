package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
)

// RenderWeek renders the Monday-to-Friday grid for one week of entries.
// Rows are grouped by booking target, the selected day's column header is
// highlighted, and the last row carries per-day totals.
func RenderWeek(weekDates [5]time.Time, entries []*domain.TimeEntry, selected time.Time) string {
	headers := make([]string, 0, 7)
	headers = append(headers, "Project")
	selectedIdx := -1
	for i, d := range weekDates {
		label := d.Format("Mon 02")
		if domain.SameDay(d, selected) {
			selectedIdx = i
			label = StyleYellowBold.Render(label)
		}
		headers = append(headers, label)
	}
	headers = append(headers, "Total")

	type groupKey struct {
		id1 int
		id2 int // -1 for generic
	}
	groups := make(map[groupKey]*[5]float64)
	refs := make(map[groupKey]string)
	for _, e := range entries {
		key := groupKey{id1: e.ID1, id2: -1}
		if e.ID2 != nil {
			key.id2 = *e.ID2
		}
		idx := domain.WeekdayIndex(e.Date())
		if idx < 0 {
			continue
		}
		if groups[key] == nil {
			groups[key] = &[5]float64{}
			refs[key] = e.ProjectReference()
		}
		groups[key][idx] += e.Hours()
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id1 != keys[j].id1 {
			return keys[i].id1 < keys[j].id1
		}
		return keys[i].id2 < keys[j].id2
	})

	var dayTotals [5]float64
	rows := make([][]string, 0, len(keys)+1)
	for _, k := range keys {
		hours := groups[k]
		row := make([]string, 0, 7)
		row = append(row, refs[k])
		rowTotal := 0.0
		for i, h := range hours {
			dayTotals[i] += h
			rowTotal += h
			cell := FormatHours(h)
			if h == 0 {
				cell = Dim("·")
			} else if i == selectedIdx {
				cell = StyleYellow.Render(cell)
			}
			row = append(row, cell)
		}
		row = append(row, Bold(FormatHours(rowTotal)))
		rows = append(rows, row)
	}

	totalRow := make([]string, 0, 7)
	totalRow = append(totalRow, Dim("Total"))
	weekTotal := 0.0
	for _, h := range dayTotals {
		weekTotal += h
		totalRow = append(totalRow, Dim(FormatHours(h)))
	}
	totalRow = append(totalRow, Bold(FormatHours(weekTotal)))
	rows = append(rows, totalRow)

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Week of %s", weekDates[0].Format("Jan 2, 2006"))))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
