package timesheet

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atorrance/taskwell/internal/domain"
)

// ErrNothingToExport signals an empty export: either no entries exist for
// the week or none of them reference a project. Callers should treat it as
// informational rather than a failure.
var ErrNothingToExport = errors.New("no project entries to export for this week")

// Clipboard is where the export lands. The production implementation is
// the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type groupKey struct {
	id1 int
	id2 int
}

// BuildWeeklyExport renders the selected week's project bookings in the
// fixed payroll import format: one tab-separated line per (ID1, ID2) group
// with three empty filler fields between the identifier token and the
// Monday..Friday hour columns. Generic timecodes (nil ID2) are excluded,
// as are groups whose weekday sums are all zero.
func (l *Ledger) BuildWeeklyExport() (string, error) {
	entries := l.CurrentWeekEntries()
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}

	sums := make(map[groupKey][5]float64)
	for _, e := range entries {
		if e.ID2 == nil {
			continue
		}
		idx := domain.WeekdayIndex(e.Date())
		if idx < 0 {
			continue
		}
		key := groupKey{id1: e.ID1, id2: *e.ID2}
		days := sums[key]
		days[idx] += e.Hours()
		sums[key] = days
	}

	keys := make([]groupKey, 0, len(sums))
	for key, days := range sums {
		if allZero(days) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return "", ErrNothingToExport
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id1 != keys[j].id1 {
			return keys[i].id1 < keys[j].id1
		}
		return keys[i].id2 < keys[j].id2
	})

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		days := sums[key]
		lines = append(lines, fmt.Sprintf("%d\t%s\t\t\t\t%s\t%s\t%s\t%s\t%s",
			key.id1,
			FormatID2Token(key.id2),
			formatHours(days[0]),
			formatHours(days[1]),
			formatHours(days[2]),
			formatHours(days[3]),
			formatHours(days[4]),
		))
	}
	return strings.Join(lines, "\n"), nil
}

// ExportWeeklyTimesheet builds the payroll block and places it on the
// clipboard. The returned text is what was copied.
func (l *Ledger) ExportWeeklyTimesheet() (string, error) {
	start := l.now()
	text, err := l.BuildWeeklyExport()
	if err != nil {
		return "", err
	}
	if err := l.clip.WriteAll(text); err != nil {
		l.observe("export_week", start, err, nil)
		return "", fmt.Errorf("copying timesheet to clipboard: %w", err)
	}
	l.observe("export_week", start, nil, map[string]any{"lines": strings.Count(text, "\n") + 1})
	return text, nil
}

// FormatID2Token renders ID2 as the 12-character payroll token: a literal
// V, the number zero-padded to 10 digits (no padding once it is already 10
// digits or longer), and a literal S.
func FormatID2Token(id2 int) string {
	return fmt.Sprintf("V%010dS", id2)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func allZero(days [5]float64) bool {
	for _, d := range days {
		if d != 0 {
			return false
		}
	}
	return true
}
