package ports

import (
	"context"
	"time"

	"todoapp/internal/core/domain"
)

// TaskRepository is the storage contract for tasks. Every read is scoped to
// a member's visible set (owner or shared collaborator); GetVisible returns
// domain.ErrTaskNotFound for records outside that set.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetVisible(ctx context.Context, id, memberID string) (domain.Task, error)
	FindVisible(ctx context.Context, memberID string, filters domain.TaskFilters) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	BulkUpdate(ctx context.Context, tasks []domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteCompletedByOwner(ctx context.Context, ownerID string) (int64, error)
	// CountByIDs reports how many of ids exist inside memberID's visible
	// set and how many of those are completed.
	CountByIDs(ctx context.Context, memberID string, ids []string) (total int, completed int, err error)
	Stats(ctx context.Context, memberID string) (domain.TaskStats, error)
	FindReminderCandidates(ctx context.Context) ([]domain.Task, error)
	StampReminder(ctx context.Context, id string, notifiedAt time.Time) error
}

type TaskService interface {
	Create(ctx context.Context, input domain.CreateTaskInput, ownerID string) (domain.Task, error)
	Get(ctx context.Context, id, memberID string) (domain.Task, error)
	List(ctx context.Context, memberID string, filters domain.TaskFilters) ([]domain.Task, error)
	Update(ctx context.Context, id string, patch domain.UpdateTaskInput, memberID string) (domain.Task, error)
	ToggleCompleted(ctx context.Context, id, memberID string) (domain.Task, error)
	ToggleImportant(ctx context.Context, id, memberID string) (domain.Task, error)
	Delete(ctx context.Context, id, memberID string) error
	Reorder(ctx context.Context, items []domain.ReorderItem, memberID string) ([]domain.Task, error)
	ClearCompleted(ctx context.Context, ownerID string) (int64, error)
	Stats(ctx context.Context, memberID string) (domain.TaskStats, error)
}
