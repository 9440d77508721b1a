package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todoapp/internal/core/domain"
)

func TestNextDeadline_Units(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rec  domain.Recurrence
		want time.Time
	}{
		{"one day", domain.Recurrence{Interval: 1, Unit: domain.RecurrenceUnitDay}, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"three days", domain.Recurrence{Interval: 3, Unit: domain.RecurrenceUnitDay}, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"one week", domain.Recurrence{Interval: 1, Unit: domain.RecurrenceUnitWeek}, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"two weeks", domain.Recurrence{Interval: 2, Unit: domain.RecurrenceUnitWeek}, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"one month", domain.Recurrence{Interval: 1, Unit: domain.RecurrenceUnitMonth}, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextDeadline(&base, tc.rec, testNow)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNextDeadline_MonthUsesCalendarRollover(t *testing.T) {
	// Jan 31 + 1 month lands past the end of February, not on a fixed
	// 30-day offset.
	base := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	got := nextDeadline(&base, domain.Recurrence{Interval: 1, Unit: domain.RecurrenceUnitMonth}, testNow)
	require.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestNextDeadline_NilDeadlineUsesNow(t *testing.T) {
	got := nextDeadline(nil, domain.Recurrence{Interval: 1, Unit: domain.RecurrenceUnitDay}, testNow)
	require.Equal(t, testNow.AddDate(0, 0, 1), got)
}

func TestBuildNextOccurrence_DisabledIsNoop(t *testing.T) {
	task := domain.Task{Title: "once", Recurrence: &domain.Recurrence{Enabled: false, Interval: 1, Unit: domain.RecurrenceUnitDay}}
	_, ok := buildNextOccurrence(task, testNow)
	require.False(t, ok)

	task.Recurrence = nil
	_, ok = buildNextOccurrence(task, testNow)
	require.False(t, ok)
}

func TestBuildNextOccurrence_ResetsCompletionState(t *testing.T) {
	deadline := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	completedAt := deadline.Add(time.Hour)
	task := domain.Task{
		ID:          "original",
		Title:       "water plants",
		Description: "all of them",
		Status:      domain.TaskStatusDone,
		Completed:   true,
		CompletedAt: &completedAt,
		Deadline:    &deadline,
		Important:   true,
		Tags:        []string{"home"},
		Order:       7,
		Subtasks:    []domain.Subtask{{Title: "fill can", Completed: true}},
		Recurrence:  &domain.Recurrence{Enabled: true, Interval: 1, Unit: domain.RecurrenceUnitWeek},
		Reminder: &domain.Reminder{
			Enabled: true, MinutesBefore: 15,
			Channels:       []domain.ReminderChannel{domain.ReminderChannelPush},
			LastNotifiedAt: &completedAt,
		},
		OwnerID:    "alice",
		SharedWith: []string{"bob"},
	}

	spawn, ok := buildNextOccurrence(task, testNow)
	require.True(t, ok)
	require.NotEqual(t, task.ID, spawn.ID)
	require.Equal(t, "water plants", spawn.Title)
	require.Equal(t, "all of them", spawn.Description)
	require.Equal(t, domain.TaskStatusTodo, spawn.Status)
	require.False(t, spawn.Completed)
	require.Nil(t, spawn.CompletedAt)
	require.Equal(t, deadline.AddDate(0, 0, 7), *spawn.Deadline)
	require.Equal(t, []string{"home"}, spawn.Tags)
	require.Equal(t, 7.0, spawn.Order)
	require.Equal(t, []domain.Subtask{{Title: "fill can", Completed: false}}, spawn.Subtasks)
	require.Equal(t, "alice", spawn.OwnerID)
	require.Equal(t, []string{"bob"}, spawn.SharedWith)
	require.NotNil(t, spawn.Reminder)
	require.Nil(t, spawn.Reminder.LastNotifiedAt)
	require.Equal(t, 15, spawn.Reminder.MinutesBefore)
}

func TestBuildNextOccurrence_UntilBoundEndsSeries(t *testing.T) {
	deadline := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		Title:      "ending",
		Deadline:   &deadline,
		Recurrence: &domain.Recurrence{Enabled: true, Interval: 1, Unit: domain.RecurrenceUnitWeek, Until: &until},
	}

	_, ok := buildNextOccurrence(task, testNow)
	require.False(t, ok)

	// Exactly on the bound still spawns.
	onBound := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	task.Recurrence.Until = &onBound
	spawn, ok := buildNextOccurrence(task, testNow)
	require.True(t, ok)
	require.Equal(t, onBound, *spawn.Deadline)
}
