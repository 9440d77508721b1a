package service

import (
	"time"

	"github.com/google/uuid"

	"todoapp/internal/core/domain"
)

// nextDeadline advances the deadline by the recurrence step. Month steps
// use calendar arithmetic, not fixed 30-day blocks.
func nextDeadline(deadline *time.Time, rec domain.Recurrence, now time.Time) time.Time {
	base := now
	if deadline != nil {
		base = *deadline
	}

	interval := rec.Interval
	if interval < 1 {
		interval = 1
	}

	switch rec.Unit {
	case domain.RecurrenceUnitWeek:
		return base.AddDate(0, 0, 7*interval)
	case domain.RecurrenceUnitMonth:
		return base.AddDate(0, interval, 0)
	default:
		return base.AddDate(0, 0, interval)
	}
}

// buildNextOccurrence clones a completed recurring task into its next
// occurrence with completion state reset. Returns false when the task does
// not recur or the series has run past its until bound.
func buildNextOccurrence(task domain.Task, now time.Time) (domain.Task, bool) {
	if task.Recurrence == nil || !task.Recurrence.Enabled {
		return domain.Task{}, false
	}

	next := nextDeadline(task.Deadline, *task.Recurrence, now)
	if task.Recurrence.Until != nil && next.After(*task.Recurrence.Until) {
		return domain.Task{}, false
	}

	subtasks := make([]domain.Subtask, len(task.Subtasks))
	for i, st := range task.Subtasks {
		subtasks[i] = domain.Subtask{Title: st.Title}
	}

	recurrence := *task.Recurrence
	spawn := domain.Task{
		ID:           uuid.NewString(),
		Title:        task.Title,
		Description:  task.Description,
		Status:       domain.TaskStatusTodo,
		Deadline:     &next,
		Tags:         append([]string(nil), task.Tags...),
		Order:        task.Order,
		Subtasks:     subtasks,
		Dependencies: append([]string(nil), task.Dependencies...),
		Recurrence:   &recurrence,
		ProjectID:    task.ProjectID,
		OwnerID:      task.OwnerID,
		SharedWith:   append([]string(nil), task.SharedWith...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if task.Reminder != nil {
		reminder := *task.Reminder
		reminder.LastNotifiedAt = nil
		reminder.Channels = append([]domain.ReminderChannel(nil), task.Reminder.Channels...)
		spawn.Reminder = &reminder
	}

	return spawn, true
}
