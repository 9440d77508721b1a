package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"todoapp/internal/app/access"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

// fakeTaskRepo is an in-memory TaskRepository mirroring the visibility
// semantics of the SQL adapter.
type fakeTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task

	bulkCalls int
}

var _ ports.TaskRepository = (*fakeTaskRepo)(nil)

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetVisible(_ context.Context, id, memberID string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok || !access.CanView(task.OwnerID, task.SharedWith, memberID) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) FindVisible(_ context.Context, memberID string, filters domain.TaskFilters) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []domain.Task
	for _, task := range r.tasks {
		if !access.CanView(task.OwnerID, task.SharedWith, memberID) {
			continue
		}
		if filters.Status != nil && task.Status != *filters.Status {
			continue
		}
		if filters.Completed != nil && task.Completed != *filters.Completed {
			continue
		}
		if filters.Important != nil && task.Important != *filters.Important {
			continue
		}
		if filters.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *filters.ProjectID) {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) BulkUpdate(_ context.Context, tasks []domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkCalls++
	for _, task := range tasks {
		r.tasks[task.ID] = task
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteCompletedByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, task := range r.tasks {
		if task.OwnerID == ownerID && task.Completed {
			delete(r.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeTaskRepo) CountByIDs(_ context.Context, memberID string, ids []string) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total, completed int
	for _, id := range ids {
		task, ok := r.tasks[id]
		if !ok || !access.CanView(task.OwnerID, task.SharedWith, memberID) {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}
	return total, completed, nil
}

func (r *fakeTaskRepo) Stats(_ context.Context, memberID string) (domain.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var stats domain.TaskStats
	for _, task := range r.tasks {
		if !access.CanView(task.OwnerID, task.SharedWith, memberID) {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
		}
		if task.Important {
			stats.Important++
		}
		if task.Deadline != nil {
			stats.WithDeadline++
		}
		switch task.Status {
		case domain.TaskStatusTodo:
			stats.Todo++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusDone:
			stats.Done++
		}
	}
	return stats, nil
}

func (r *fakeTaskRepo) FindReminderCandidates(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tasks []domain.Task
	for _, task := range r.tasks {
		if task.Reminder != nil && task.Reminder.Enabled && task.Deadline != nil && !task.Completed {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) StampReminder(_ context.Context, id string, notifiedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.Reminder == nil {
		return nil
	}
	reminder := *task.Reminder
	reminder.LastNotifiedAt = &notifiedAt
	task.Reminder = &reminder
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) get(id string) (domain.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	return task, ok
}

func (r *fakeTaskRepo) all() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

type fakeProjectRepo struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

var _ ports.ProjectRepository = (*fakeProjectRepo)(nil)

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]domain.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) GetVisible(_ context.Context, id, memberID string) (domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok || !access.CanView(project.OwnerID, project.SharedWith, memberID) {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return project, nil
}

func (r *fakeProjectRepo) ListVisible(_ context.Context, memberID string) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var projects []domain.Project
	for _, project := range r.projects {
		if access.CanView(project.OwnerID, project.SharedWith, memberID) {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.Before(projects[j].CreatedAt) })
	return projects, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}
