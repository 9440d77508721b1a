package mapper

import (
	"time"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		Completed:    task.Completed,
		Important:    task.Important,
		Tags:         emptyList(task.Tags),
		Order:        task.Order,
		Dependencies: emptyList(task.Dependencies),
		ProjectID:    task.ProjectID,
		OwnerID:      task.OwnerID,
		SharedWith:   emptyList(task.SharedWith),
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}

	item.CompletedAt = formatTimePointer(task.CompletedAt)
	item.Deadline = formatTimePointer(task.Deadline)

	item.Subtasks = make([]dto.SubtaskPayload, 0, len(task.Subtasks))
	for _, st := range task.Subtasks {
		item.Subtasks = append(item.Subtasks, dto.SubtaskPayload{
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	if task.Recurrence != nil {
		item.Recurrence = &dto.RecurrencePayload{
			Enabled:  task.Recurrence.Enabled,
			Interval: task.Recurrence.Interval,
			Unit:     string(task.Recurrence.Unit),
			Until:    formatTimePointer(task.Recurrence.Until),
		}
	}

	if task.Reminder != nil {
		channels := make([]string, 0, len(task.Reminder.Channels))
		for _, channel := range task.Reminder.Channels {
			channels = append(channels, string(channel))
		}
		item.Reminder = &dto.ReminderPayload{
			Enabled:        task.Reminder.Enabled,
			MinutesBefore:  task.Reminder.MinutesBefore,
			Channels:       channels,
			Email:          task.Reminder.Email,
			LastNotifiedAt: formatTimePointer(task.Reminder.LastNotifiedAt),
		}
	}

	return item
}

func ToTaskStatsItem(stats domain.TaskStats) dto.TaskStatsItem {
	return dto.TaskStatsItem{
		Total:               stats.Total,
		Completed:           stats.Completed,
		Active:              stats.Active,
		Important:           stats.Important,
		WithDeadline:        stats.WithDeadline,
		Todo:                stats.Todo,
		InProgress:          stats.InProgress,
		Done:                stats.Done,
		CompletedPercentage: stats.CompletedPercentage,
	}
}

func formatTimePointer(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(time.RFC3339)
	return &formatted
}

func emptyList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
