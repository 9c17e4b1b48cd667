// Package timesheet keeps the flat weekly time ledger: dated entries, a
// selected date that is always a weekday, day/week totals, and the payroll
// export of the current week.
package timesheet

import (
	"sort"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/observe"
)

// EntryStore is the persistence port the ledger saves through.
type EntryStore interface {
	Load() ([]*domain.TimeEntry, error)
	Save([]*domain.TimeEntry) error
}

type Ledger struct {
	entries  []*domain.TimeEntry
	selected time.Time
	store    EntryStore
	clip     Clipboard
	now      func() time.Time
	observer observe.UseCaseObserver
}

// Option configures a Ledger during construction.
type Option func(*Ledger)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithClipboard replaces the system clipboard, mainly for tests.
func WithClipboard(c Clipboard) Option {
	return func(l *Ledger) { l.clip = c }
}

// WithObserver wires use-case telemetry. A nil observer falls back to the
// noop.
func WithObserver(o observe.UseCaseObserver) Option {
	return func(l *Ledger) { l.observer = observe.OrNoop(o) }
}

// New creates a ledger over already-loaded entries, selecting today
// (pulled back to Friday on weekends).
func New(entries []*domain.TimeEntry, store EntryStore, opts ...Option) *Ledger {
	l := &Ledger{
		entries:  entries,
		store:    store,
		clip:     SystemClipboard{},
		now:      time.Now,
		observer: observe.NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.selected = clampToWeekday(domain.DateOnly(l.now()))
	return l
}

// Load builds a ledger by reading entries from the store.
func Load(store EntryStore, opts ...Option) (*Ledger, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	return New(entries, store, opts...), nil
}

func (l *Ledger) Entries() []*domain.TimeEntry { return l.entries }

// SelectedDate is always a weekday.
func (l *Ledger) SelectedDate() time.Time { return l.selected }

// SetSelectedDate moves the selection. Weekend dates are refused and the
// previous selection kept; the result reports acceptance.
func (l *Ledger) SetSelectedDate(d time.Time) bool {
	if domain.IsWeekend(d) {
		return false
	}
	l.selected = domain.DateOnly(d)
	return true
}

// PreviousWeek moves the selection back seven days.
func (l *Ledger) PreviousWeek() { l.selected = l.selected.AddDate(0, 0, -7) }

// NextWeek moves the selection forward seven days.
func (l *Ledger) NextWeek() { l.selected = l.selected.AddDate(0, 0, 7) }

// PreviousDay steps back one weekday, jumping the weekend from Monday.
func (l *Ledger) PreviousDay() {
	if l.selected.Weekday() == time.Monday {
		l.selected = l.selected.AddDate(0, 0, -3)
		return
	}
	l.selected = l.selected.AddDate(0, 0, -1)
}

// NextDay steps forward one weekday, jumping the weekend from Friday.
func (l *Ledger) NextDay() {
	if l.selected.Weekday() == time.Friday {
		l.selected = l.selected.AddDate(0, 0, 3)
		return
	}
	l.selected = l.selected.AddDate(0, 0, 1)
}

// Today returns the selection to the current date, weekend-clamped.
func (l *Ledger) Today() {
	l.selected = clampToWeekday(domain.DateOnly(l.now()))
}

// CurrentWeek returns the selection to the Monday of the real current
// week, wherever navigation has wandered.
func (l *Ledger) CurrentWeek() {
	l.selected = domain.WeekStart(domain.DateOnly(l.now()))
}

// WeekStartDate is the Monday of the selected week.
func (l *Ledger) WeekStartDate() time.Time { return domain.WeekStart(l.selected) }

// WeekDates lists Monday through Friday of the selected week.
func (l *Ledger) WeekDates() [5]time.Time { return domain.WeekDates(l.selected) }

// CurrentWeekEntries returns the selected week's entries sorted by date,
// then ID1, then ID2 (generic timecodes before project bookings).
func (l *Ledger) CurrentWeekEntries() []*domain.TimeEntry {
	weekStart := l.WeekStartDate()
	var out []*domain.TimeEntry
	for _, e := range l.entries {
		if e.WeekStart().Equal(weekStart) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date().Equal(b.Date()) {
			return a.Date().Before(b.Date())
		}
		if a.ID1 != b.ID1 {
			return a.ID1 < b.ID1
		}
		return lessID2(a.ID2, b.ID2)
	})
	return out
}

func lessID2(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

// DayTotal sums the hours booked on the given date.
func (l *Ledger) DayTotal(d time.Time) float64 {
	total := 0.0
	for _, e := range l.entries {
		if domain.SameDay(e.Date(), d) {
			total += e.Hours()
		}
	}
	return total
}

// WeekTotal sums the hours booked in the selected week.
func (l *Ledger) WeekTotal() float64 {
	total := 0.0
	for _, e := range l.CurrentWeekEntries() {
		total += e.Hours()
	}
	return total
}

// AddEntry books hours on the selected date and returns the new entry.
func (l *Ledger) AddEntry(id1 int, id2 *int, hours float64, description string) (*domain.TimeEntry, error) {
	start := l.now()
	entry, err := domain.NewTimeEntry(id1, id2, l.selected, hours, description)
	if err != nil {
		return nil, err
	}
	l.entries = append(l.entries, entry)
	l.observe("add_entry", start, nil, map[string]any{"ref": entry.ProjectReference(), "hours": entry.Hours()})
	return entry, nil
}

// RemoveEntry drops the entry from the ledger; absent entries are ignored.
func (l *Ledger) RemoveEntry(entry *domain.TimeEntry) bool {
	for i, e := range l.entries {
		if e == entry {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Save persists all entries through the store, a full overwrite.
func (l *Ledger) Save() error {
	start := l.now()
	err := l.store.Save(l.entries)
	l.observe("save_entries", start, err, map[string]any{"entries": len(l.entries)})
	return err
}

func (l *Ledger) observe(name string, start time.Time, err error, fields map[string]any) {
	l.observer.ObserveUseCase(observe.UseCaseEvent{
		Name:     name,
		Duration: l.now().Sub(start),
		Success:  err == nil,
		Err:      err,
		Fields:   fields,
	})
}

// clampToWeekday pulls Saturday and Sunday back to the preceding Friday.
func clampToWeekday(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	default:
		return d
	}
}
