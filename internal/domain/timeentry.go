package domain

import (
	"fmt"
	"math"
	"time"
)

// TimeEntry is one dated booking of hours against either a project
// (ID2 set) or a generic timecode (ID2 nil). Date and hours are guarded:
// weekend dates are silently refused and hours snap to the payroll grid.
type TimeEntry struct {
	ID1         int
	ID2         *int
	Description string

	date  time.Time
	hours float64
}

// NewTimeEntry builds an entry. Unlike SetDate, construction with a weekend
// date is an error: there is no previous value to fall back to.
func NewTimeEntry(id1 int, id2 *int, date time.Time, hours float64, description string) (*TimeEntry, error) {
	if IsWeekend(date) {
		return nil, fmt.Errorf("time entry date %s falls on a weekend", date.Format("2006-01-02"))
	}
	e := &TimeEntry{ID1: id1, ID2: id2, Description: description, date: DateOnly(date)}
	e.SetHours(hours)
	return e, nil
}

func (e *TimeEntry) Date() time.Time { return e.date }

// SetDate moves the entry to d. Weekend dates are refused: the previous
// value is kept and the call reports false. This keep-old-value policy is
// deliberate; callers that want to tell the user must check the result.
func (e *TimeEntry) SetDate(d time.Time) bool {
	if IsWeekend(d) {
		return false
	}
	e.date = DateOnly(d)
	return true
}

func (e *TimeEntry) Hours() float64 { return e.hours }

// SetHours stores h rounded to the nearest quarter hour (ties away from
// zero) and clamped to [0, 24].
func (e *TimeEntry) SetHours(h float64) {
	h = math.Round(h*4) / 4
	if h < 0 {
		h = 0
	}
	if h > 24 {
		h = 24
	}
	e.hours = h
}

// WeekStart returns the Monday of the entry's week.
func (e *TimeEntry) WeekStart() time.Time {
	return WeekStart(e.date)
}

// IsGeneric reports whether the entry books against a generic timecode
// rather than a specific project.
func (e *TimeEntry) IsGeneric() bool { return e.ID2 == nil }

// ProjectReference renders the booking target as a human-readable token.
func (e *TimeEntry) ProjectReference() string {
	if e.ID2 == nil {
		return fmt.Sprintf("Generic-%d", e.ID1)
	}
	return fmt.Sprintf("Project-%d.%d", e.ID1, *e.ID2)
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekStart returns the Monday on or before d, truncated to the date.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return DateOnly(d.AddDate(0, 0, -offset))
}

// WeekDates returns the Monday..Friday dates of the week containing d.
func WeekDates(d time.Time) [5]time.Time {
	start := WeekStart(d)
	var days [5]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekdayIndex returns 0..4 for Monday..Friday and -1 for weekend dates.
func WeekdayIndex(d time.Time) int {
	if IsWeekend(d) {
		return -1
	}
	return (int(d.Weekday()) + 6) % 7
}
