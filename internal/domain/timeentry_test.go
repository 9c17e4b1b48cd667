package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)
)

func TestNewTimeEntry_WeekendRejected(t *testing.T) {
	_, err := NewTimeEntry(100, nil, saturday, 1, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekend")
}

func TestSetDate_WeekendKeepsOldValue(t *testing.T) {
	entry, err := NewTimeEntry(100, nil, monday, 1, "")
	require.NoError(t, err)

	assert.False(t, entry.SetDate(saturday))
	assert.Equal(t, monday, entry.Date(), "rejected set must keep the old value")

	assert.False(t, entry.SetDate(sunday))
	assert.Equal(t, monday, entry.Date())

	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, entry.SetDate(tuesday))
	assert.Equal(t, tuesday, entry.Date())
}

func TestSetHours_RoundingAndClamping(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.3, 0.25},
		{1.1, 1.0},
		{25, 24},
		{-1, 0},
		{0.375, 0.5}, // ties round away from zero
		{7.5, 7.5},
	}
	entry, err := NewTimeEntry(1, nil, monday, 0, "")
	require.NoError(t, err)
	for _, tc := range cases {
		entry.SetHours(tc.in)
		assert.Equal(t, tc.want, entry.Hours(), "input %v", tc.in)
	}
}

func TestWeekStart(t *testing.T) {
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		assert.Equal(t, monday, WeekStart(d), "day %s", d.Weekday())
	}
	assert.Equal(t, monday, WeekStart(sunday), "Sunday belongs to the week started the previous Monday")
}

func TestWeekDates(t *testing.T) {
	days := WeekDates(monday.AddDate(0, 0, 3))
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 4), days[4])
	for _, d := range days {
		assert.False(t, IsWeekend(d))
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(monday))
	assert.Equal(t, 4, WeekdayIndex(monday.AddDate(0, 0, 4)))
	assert.Equal(t, -1, WeekdayIndex(saturday))
	assert.Equal(t, -1, WeekdayIndex(sunday))
}

func TestProjectReference(t *testing.T) {
	generic, err := NewTimeEntry(200, nil, monday, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Generic-200", generic.ProjectReference())
	assert.True(t, generic.IsGeneric())

	id2 := 5
	project, err := NewTimeEntry(100, &id2, monday, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Project-100.5", project.ProjectReference())
	assert.False(t, project.IsGeneric())
}
