package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC) // a Wednesday

func TestSetPriority_HighStampsDueDate(t *testing.T) {
	task := &TaskItem{ID1: 1, ID2: 1, Priority: PriorityMedium}
	task.SetPriority(PriorityHigh, testNow)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, DateOnly(testNow), *task.DueDate)
}

func TestSetPriority_HighKeepsExistingDueDate(t *testing.T) {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	task := &TaskItem{Priority: PriorityLow, DueDate: &due}
	task.SetPriority(PriorityHigh, testNow)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate, "existing due date must not be overwritten")
}

func TestSetPriority_NonHighLeavesDueDateUnset(t *testing.T) {
	task := &TaskItem{}
	task.SetPriority(PriorityMedium, testNow)
	assert.Nil(t, task.DueDate)
}

func TestIsHighPriorityToday(t *testing.T) {
	today := DateOnly(testNow)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		name     string
		priority Priority
		due      *time.Time
		want     bool
	}{
		{"high due today", PriorityHigh, &today, true},
		{"high due tomorrow", PriorityHigh, &tomorrow, false},
		{"high no due date", PriorityHigh, nil, false},
		{"medium due today", PriorityMedium, &today, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := &TaskItem{Priority: tc.priority, DueDate: tc.due}
			assert.Equal(t, tc.want, task.IsHighPriorityToday(testNow))
		})
	}
}

func TestIsBroughtForward(t *testing.T) {
	yesterday := DateOnly(testNow).AddDate(0, 0, -1)
	tomorrow := DateOnly(testNow).AddDate(0, 0, 1)

	task := &TaskItem{BringForwardDate: &yesterday}
	assert.True(t, task.IsBroughtForward(testNow))

	task.BringForwardDate = &tomorrow
	assert.False(t, task.IsBroughtForward(testNow))

	task.BringForwardDate = nil
	assert.False(t, task.IsBroughtForward(testNow))
}

func TestDisplayName(t *testing.T) {
	task := &TaskItem{ID1: 4, ID2: 1}
	assert.Equal(t, "Task 4.1", task.DisplayName())

	task.Name = "Write report"
	assert.Equal(t, "Write report", task.DisplayName())
}

func TestProjectDataItem_Displayable(t *testing.T) {
	item := &ProjectDataItem{Label: "Budget", Value: "12000"}
	assert.Equal(t, "Budget: 12000", item.DisplayName())
	assert.False(t, item.InEditMode(), "data items are never editable")
	assert.False(t, item.Expanded())
	assert.Empty(t, item.ChildNodes())
}

func TestChildNodes_PreservesOrder(t *testing.T) {
	parent := &TaskItem{Name: "parent", Children: []*TaskItem{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	}}
	nodes := parent.ChildNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].DisplayName())
	assert.Equal(t, "c", nodes[2].DisplayName())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urgent")
}
