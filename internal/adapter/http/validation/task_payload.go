package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a decoded create request plus its raw field
// map into a domain input. The raw map lets us tell an absent field from
// an explicit null.
func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "completed") && req.Completed == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	deadline, err := parseTimePointer(req.Deadline)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	recurrence, err := buildRecurrence(req.Recurrence)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	reminder, err := buildReminder(req.Reminder)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:        title,
		Status:       status,
		Completed:    req.Completed,
		Deadline:     deadline,
		Tags:         req.Tags,
		Order:        req.Order,
		Subtasks:     buildSubtasks(req.Subtasks),
		Dependencies: req.Dependencies,
		Recurrence:   recurrence,
		Reminder:     reminder,
		ProjectID:    req.ProjectID,
		SharedWith:   req.SharedWith,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Important != nil {
		input.Important = *req.Important
	}
	return input, nil
}

// BuildUpdateTaskInput maps patch fields with the absent / null / value
// distinction: absent leaves the field unchanged, null clears it where the
// field is clearable, a value replaces it.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if len(raw) == 0 {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	// Title, status, completed and order are not clearable: explicit null
	// is a malformed patch.
	if hasJSONField(raw, "title") {
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = req.Title
	}
	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		status, err := parseStatus(req.Status)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Status = status
	}
	if hasJSONField(raw, "completed") {
		if req.Completed == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Completed = req.Completed
	}
	if hasJSONField(raw, "order") {
		if req.Order == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Order = req.Order
	}
	if hasJSONField(raw, "important") {
		if req.Important == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Important = req.Important
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = req.Description
	}

	if hasJSONField(raw, "deadline") {
		input.DeadlineSet = true
		if !isJSONNull(raw["deadline"]) {
			deadline, err := parseTimePointer(req.Deadline)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.Deadline = deadline
		}
	}

	if hasJSONField(raw, "tags") {
		input.TagsSet = true
		input.Tags = req.Tags
	}
	if hasJSONField(raw, "subtasks") {
		input.SubtasksSet = true
		input.Subtasks = buildSubtasks(req.Subtasks)
	}
	if hasJSONField(raw, "dependencies") {
		input.DependenciesSet = true
		input.Dependencies = req.Dependencies
	}
	if hasJSONField(raw, "shared_with") {
		input.SharedWithSet = true
		input.SharedWith = req.SharedWith
	}

	if hasJSONField(raw, "recurrence") {
		input.RecurrenceSet = true
		if !isJSONNull(raw["recurrence"]) {
			recurrence, err := buildRecurrence(req.Recurrence)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.Recurrence = recurrence
		}
	}

	if hasJSONField(raw, "reminder") {
		input.ReminderSet = true
		if !isJSONNull(raw["reminder"]) {
			reminder, err := buildReminder(req.Reminder)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.Reminder = reminder
		}
	}

	if hasJSONField(raw, "project_id") {
		input.ProjectIDSet = true
		input.ProjectID = req.ProjectID
	}

	return input, nil
}

func BuildReorderItems(req dto.ReorderTasksRequest) ([]domain.ReorderItem, error) {
	if len(req.Items) == 0 {
		return nil, ErrInvalidTaskPayload
	}

	items := make([]domain.ReorderItem, 0, len(req.Items))
	for _, payload := range req.Items {
		if strings.TrimSpace(payload.ID) == "" {
			return nil, ErrInvalidTaskPayload
		}
		status, err := parseStatus(payload.Status)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.ReorderItem{
			ID:     payload.ID,
			Order:  payload.Order,
			Status: status,
		})
	}
	return items, nil
}

func parseStatus(value *string) (*domain.TaskStatus, error) {
	if value == nil {
		return nil, nil
	}
	status := domain.TaskStatus(*value)
	if !status.Valid() {
		return nil, ErrInvalidTaskPayload
	}
	return &status, nil
}

func parseTimePointer(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return &parsed, nil
}

func buildSubtasks(payloads []dto.SubtaskPayload) []domain.Subtask {
	subtasks := make([]domain.Subtask, 0, len(payloads))
	for _, payload := range payloads {
		subtasks = append(subtasks, domain.Subtask{
			Title:     payload.Title,
			Completed: payload.Completed,
		})
	}
	return subtasks
}

func buildRecurrence(payload *dto.RecurrencePayload) (*domain.Recurrence, error) {
	if payload == nil {
		return nil, nil
	}

	unit := domain.RecurrenceUnit(payload.Unit)
	if !unit.Valid() || payload.Interval < 1 {
		return nil, ErrInvalidTaskPayload
	}

	until, err := parseTimePointer(payload.Until)
	if err != nil {
		return nil, err
	}

	return &domain.Recurrence{
		Enabled:  payload.Enabled,
		Interval: payload.Interval,
		Unit:     unit,
		Until:    until,
	}, nil
}

func buildReminder(payload *dto.ReminderPayload) (*domain.Reminder, error) {
	if payload == nil {
		return nil, nil
	}

	if payload.MinutesBefore < 1 {
		return nil, ErrInvalidTaskPayload
	}

	channels := make([]domain.ReminderChannel, 0, len(payload.Channels))
	for _, raw := range payload.Channels {
		channel := domain.ReminderChannel(raw)
		if !channel.Valid() {
			return nil, ErrInvalidTaskPayload
		}
		channels = append(channels, channel)
	}

	// lastNotifiedAt is server-owned; client values are discarded.
	return &domain.Reminder{
		Enabled:       payload.Enabled,
		MinutesBefore: payload.MinutesBefore,
		Channels:      channels,
		Email:         payload.Email,
	}, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
