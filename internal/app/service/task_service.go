package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"todoapp/internal/app/access"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

// TaskService is the todo lifecycle engine: it validates and applies every
// mutation, enforces the dependency gate and the status/completed
// invariant, and spawns recurring occurrences on completing transitions.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	now      func() time.Time
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, now: time.Now}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) Create(ctx context.Context, input domain.CreateTaskInput, ownerID string) (domain.Task, error) {
	if err := access.RequireMember(ownerID); err != nil {
		return domain.Task{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, domain.NewValidationError("title", "required")
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.Task{}, domain.NewValidationError("title", "too long")
	}
	if utf8.RuneCountInString(input.Description) > domain.MaxDescriptionLength {
		return domain.Task{}, domain.NewValidationError("description", "too long")
	}
	if input.Status != nil && !input.Status.Valid() {
		return domain.Task{}, domain.NewValidationError("status", "unknown status")
	}
	if err := validateRecurrence(input.Recurrence); err != nil {
		return domain.Task{}, err
	}
	if err := validateReminder(input.Reminder); err != nil {
		return domain.Task{}, err
	}

	tags, err := domain.NormalizeTags(input.Tags)
	if err != nil {
		return domain.Task{}, err
	}

	id := uuid.NewString()
	deps := domain.NormalizeDependencies(input.Dependencies, id)
	status, completed := resolveState(domain.TaskStatusTodo, false, input.Status, input.Completed)

	if len(deps) > 0 {
		total, done, err := s.tasks.CountByIDs(ctx, ownerID, deps)
		if err != nil {
			return domain.Task{}, err
		}
		if total != len(deps) {
			return domain.Task{}, domain.ErrDependencyNotFound
		}
		if completed && done != len(deps) {
			return domain.Task{}, domain.ErrDependencyNotSatisfied
		}
	}

	if input.ProjectID != nil {
		if _, err := s.projects.GetVisible(ctx, *input.ProjectID, ownerID); err != nil {
			return domain.Task{}, err
		}
	}

	now := s.now()
	task := domain.Task{
		ID:           id,
		Title:        title,
		Description:  input.Description,
		Status:       status,
		Completed:    completed,
		Deadline:     input.Deadline,
		Important:    input.Important,
		Tags:         tags,
		Subtasks:     domain.NormalizeSubtasks(input.Subtasks),
		Dependencies: deps,
		Recurrence:   input.Recurrence,
		Reminder:     input.Reminder,
		ProjectID:    input.ProjectID,
		OwnerID:      ownerID,
		SharedWith:   domain.NormalizeMembers(input.SharedWith),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Order != nil {
		task.Order = *input.Order
	}
	if completed {
		task.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}

	// Creating a task already completed never spawns a recurrence; only
	// transitions into completion do.
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id, memberID string) (domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Task{}, err
	}
	return s.tasks.GetVisible(ctx, id, memberID)
}

func (s *TaskService) List(ctx context.Context, memberID string, filters domain.TaskFilters) ([]domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return nil, err
	}
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	return s.tasks.FindVisible(ctx, memberID, filters)
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.UpdateTaskInput, memberID string) (domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Task{}, err
	}

	task, err := s.tasks.GetVisible(ctx, id, memberID)
	if err != nil {
		return domain.Task{}, err
	}
	wasCompleted := task.Completed

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Task{}, domain.NewValidationError("title", "cannot be blank")
		}
		if utf8.RuneCountInString(title) > domain.MaxTitleLength {
			return domain.Task{}, domain.NewValidationError("title", "too long")
		}
		task.Title = title
	}

	if patch.DescriptionSet {
		if patch.Description == nil {
			task.Description = ""
		} else {
			if utf8.RuneCountInString(*patch.Description) > domain.MaxDescriptionLength {
				return domain.Task{}, domain.NewValidationError("description", "too long")
			}
			task.Description = *patch.Description
		}
	}

	if patch.DeadlineSet {
		task.Deadline = patch.Deadline
	}
	if patch.Important != nil {
		task.Important = *patch.Important
	}
	if patch.Order != nil {
		task.Order = *patch.Order
	}

	if patch.TagsSet {
		tags, err := domain.NormalizeTags(patch.Tags)
		if err != nil {
			return domain.Task{}, err
		}
		task.Tags = tags
	}

	if patch.SubtasksSet {
		task.Subtasks = domain.NormalizeSubtasks(patch.Subtasks)
	}

	if patch.DependenciesSet {
		deps := domain.NormalizeDependencies(patch.Dependencies, task.ID)
		if len(deps) > 0 {
			total, _, err := s.tasks.CountByIDs(ctx, memberID, deps)
			if err != nil {
				return domain.Task{}, err
			}
			if total != len(deps) {
				return domain.Task{}, domain.ErrDependencyNotFound
			}
		}
		task.Dependencies = deps
	}

	if patch.RecurrenceSet {
		if err := validateRecurrence(patch.Recurrence); err != nil {
			return domain.Task{}, err
		}
		task.Recurrence = patch.Recurrence
	}

	if patch.ReminderSet {
		if err := validateReminder(patch.Reminder); err != nil {
			return domain.Task{}, err
		}
		task.Reminder = patch.Reminder
	}

	if patch.ProjectIDSet {
		if patch.ProjectID == nil {
			task.ProjectID = nil
		} else {
			if _, err := s.projects.GetVisible(ctx, *patch.ProjectID, memberID); err != nil {
				return domain.Task{}, err
			}
			task.ProjectID = patch.ProjectID
		}
	}

	// Sharing changes are the owner's alone; a sharedWith patch from a
	// shared member is dropped without error so the rest of the patch
	// still applies.
	if patch.SharedWithSet && access.IsOwner(task.OwnerID, memberID) {
		task.SharedWith = domain.NormalizeMembers(patch.SharedWith)
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Task{}, domain.NewValidationError("status", "unknown status")
	}
	task.Status, task.Completed = resolveState(task.Status, task.Completed, patch.Status, patch.Completed)

	now := s.now()
	if task.Completed && !wasCompleted {
		if err := s.requireDependenciesCompleted(ctx, memberID, task.Dependencies); err != nil {
			return domain.Task{}, err
		}
		task.CompletedAt = &now
	} else if !task.Completed {
		task.CompletedAt = nil
	}
	task.UpdatedAt = now

	if err := s.tasks.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}

	if task.Completed && !wasCompleted {
		if err := s.spawnNext(ctx, task); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func (s *TaskService) ToggleCompleted(ctx context.Context, id, memberID string) (domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Task{}, err
	}

	task, err := s.tasks.GetVisible(ctx, id, memberID)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	if task.Completed {
		task.Completed = false
		task.Status = domain.TaskStatusTodo
		task.CompletedAt = nil
	} else {
		if err := s.requireDependenciesCompleted(ctx, memberID, task.Dependencies); err != nil {
			return domain.Task{}, err
		}
		task.Completed = true
		task.Status = domain.TaskStatusDone
		task.CompletedAt = &now
	}
	task.UpdatedAt = now

	if err := s.tasks.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}

	if task.Completed {
		if err := s.spawnNext(ctx, task); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func (s *TaskService) ToggleImportant(ctx context.Context, id, memberID string) (domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Task{}, err
	}

	task, err := s.tasks.GetVisible(ctx, id, memberID)
	if err != nil {
		return domain.Task{}, err
	}

	task.Important = !task.Important
	task.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, memberID string) error {
	if err := access.RequireMember(memberID); err != nil {
		return err
	}

	task, err := s.tasks.GetVisible(ctx, id, memberID)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(task.OwnerID, memberID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task.ID)
}

// Reorder applies a bulk drag-drop update. Tasks outside the member's
// visible set are skipped; a dependency-gate failure aborts the whole
// batch before anything is written.
func (s *TaskService) Reorder(ctx context.Context, items []domain.ReorderItem, memberID string) ([]domain.Task, error) {
	if err := access.RequireMember(memberID); err != nil {
		return nil, err
	}

	now := s.now()
	updated := make([]domain.Task, 0, len(items))
	var spawnFrom []domain.Task

	for _, item := range items {
		task, err := s.tasks.GetVisible(ctx, item.ID, memberID)
		if errors.Is(err, domain.ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if item.Order != nil {
			task.Order = *item.Order
		}

		if item.Status != nil {
			status := *item.Status
			if !status.Valid() {
				return nil, domain.NewValidationError("status", "unknown status")
			}
			if status == domain.TaskStatusDone {
				if err := s.requireDependenciesCompleted(ctx, memberID, task.Dependencies); err != nil {
					return nil, err
				}
			}

			wasCompleted := task.Completed
			task.Status = status
			task.Completed = status == domain.TaskStatusDone
			if task.Completed && !wasCompleted {
				task.CompletedAt = &now
				if task.Recurrence != nil && task.Recurrence.Enabled {
					spawnFrom = append(spawnFrom, task)
				}
			} else if !task.Completed {
				task.CompletedAt = nil
			}
		}

		task.UpdatedAt = now
		updated = append(updated, task)
	}

	if len(updated) > 0 {
		if err := s.tasks.BulkUpdate(ctx, updated); err != nil {
			return nil, err
		}
	}

	for _, task := range spawnFrom {
		if err := s.spawnNext(ctx, task); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// ClearCompleted removes the owner's own completed tasks. Completed tasks
// merely shared with the member are left alone.
func (s *TaskService) ClearCompleted(ctx context.Context, ownerID string) (int64, error) {
	if err := access.RequireMember(ownerID); err != nil {
		return 0, err
	}
	return s.tasks.DeleteCompletedByOwner(ctx, ownerID)
}

func (s *TaskService) Stats(ctx context.Context, memberID string) (domain.TaskStats, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.TaskStats{}, err
	}

	stats, err := s.tasks.Stats(ctx, memberID)
	if err != nil {
		return domain.TaskStats{}, err
	}

	stats.Active = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletedPercentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats, nil
}

// resolveState keeps status and completed mutually consistent. A supplied
// status derives completed; a supplied completed is authoritative for
// completion and demotes done to todo without touching in_progress.
func resolveState(curStatus domain.TaskStatus, curCompleted bool, status *domain.TaskStatus, completed *bool) (domain.TaskStatus, bool) {
	nextStatus, nextCompleted := curStatus, curCompleted
	if status != nil {
		nextStatus = *status
		nextCompleted = nextStatus == domain.TaskStatusDone
	}
	if completed != nil {
		nextCompleted = *completed
		if nextCompleted {
			nextStatus = domain.TaskStatusDone
		} else if nextStatus == domain.TaskStatusDone {
			nextStatus = domain.TaskStatusTodo
		}
	}
	return nextStatus, nextCompleted
}

// requireDependenciesCompleted gates a completing transition: every
// dependency must be completed and inside the acting member's visible set.
// A dependency the member cannot see counts as not completed.
func (s *TaskService) requireDependenciesCompleted(ctx context.Context, memberID string, deps []string) error {
	if len(deps) == 0 {
		return nil
	}
	_, done, err := s.tasks.CountByIDs(ctx, memberID, deps)
	if err != nil {
		return err
	}
	if done != len(deps) {
		return domain.ErrDependencyNotSatisfied
	}
	return nil
}

func (s *TaskService) spawnNext(ctx context.Context, task domain.Task) error {
	spawn, ok := buildNextOccurrence(task, s.now())
	if !ok {
		return nil
	}
	return s.tasks.Create(ctx, spawn)
}

func validateRecurrence(rec *domain.Recurrence) error {
	if rec == nil {
		return nil
	}
	if rec.Interval < 1 {
		return domain.NewValidationError("recurrence.interval", "must be at least 1")
	}
	if !rec.Unit.Valid() {
		return domain.NewValidationError("recurrence.unit", "unknown unit")
	}
	return nil
}

func validateReminder(rem *domain.Reminder) error {
	if rem == nil {
		return nil
	}
	if rem.MinutesBefore < 1 {
		return domain.NewValidationError("reminder.minutesBefore", "must be at least 1")
	}
	for _, channel := range rem.Channels {
		if !channel.Valid() {
			return domain.NewValidationError("reminder.channels", "unknown channel")
		}
	}
	return nil
}
