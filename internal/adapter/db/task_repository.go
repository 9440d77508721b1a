package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

// visibleWhere scopes a query to one member's visible set; tasks and
// projects share the owner_id/shared_with columns. The member id binds
// twice: once for ownership, once for the shared_with lookup.
const visibleWhere = `(owner_id = ? OR JSON_CONTAINS(shared_with, JSON_QUOTE(?)))`

const taskColumns = `id, title, description, status, completed, completed_at, deadline, important,
tags, sort_order, subtasks, dependencies, recurrence, reminder, project_id, owner_id, shared_with,
created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :title, :description, :status, :completed, :completed_at, :deadline, :important,
:tags, :sort_order, :subtasks, :dependencies, :recurrence, :reminder, :project_id, :owner_id, :shared_with,
:created_at, :updated_at);
`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  status = :status,
  completed = :completed,
  completed_at = :completed_at,
  deadline = :deadline,
  important = :important,
  tags = :tags,
  sort_order = :sort_order,
  subtasks = :subtasks,
  dependencies = :dependencies,
  recurrence = :recurrence,
  reminder = :reminder,
  project_id = :project_id,
  shared_with = :shared_with,
  updated_at = :updated_at
WHERE id = :id;
`

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Status       string         `db:"status"`
	Completed    bool           `db:"completed"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
	Deadline     sql.NullTime   `db:"deadline"`
	Important    bool           `db:"important"`
	Tags         []byte         `db:"tags"`
	SortOrder    float64        `db:"sort_order"`
	Subtasks     []byte         `db:"subtasks"`
	Dependencies []byte         `db:"dependencies"`
	Recurrence   []byte         `db:"recurrence"`
	Reminder     []byte         `db:"reminder"`
	ProjectID    sql.NullString `db:"project_id"`
	OwnerID      string         `db:"owner_id"`
	SharedWith   []byte         `db:"shared_with"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, insertTaskQuery, row)
	return err
}

func (r *TaskRepository) GetVisible(ctx context.Context, id, memberID string) (domain.Task, error) {
	var row taskRow
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND ` + visibleWhere
	err := r.db.GetContext(ctx, &row, query, id, memberID, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRowToDomain(row)
}

func (r *TaskRepository) FindVisible(ctx context.Context, memberID string, filters domain.TaskFilters) ([]domain.Task, error) {
	conditions := []string{visibleWhere}
	args := []interface{}{memberID, memberID}

	if filters.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filters.Status))
	}
	if filters.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, *filters.Completed)
	}
	if filters.Important != nil {
		conditions = append(conditions, "important = ?")
		args = append(args, *filters.Important)
	}
	if filters.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filters.ProjectID)
	}
	if filters.Tag != "" {
		conditions = append(conditions, "JSON_CONTAINS(tags, JSON_QUOTE(?))")
		args = append(args, filters.Tag)
	}
	if filters.Search != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY sort_order, created_at",
		taskColumns,
		strings.Join(conditions, " AND "),
	)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomain(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, updateTaskQuery, row)
	return err
}

// BulkUpdate writes a reorder batch inside one transaction so a storage
// failure cannot leave the batch half applied.
func (r *TaskRepository) BulkUpdate(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, task := range tasks {
		row, err := mapDomainTaskToRow(task)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, updateTaskQuery, row); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	return err
}

func (r *TaskRepository) DeleteCompletedByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE owner_id = ? AND completed = 1", ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TaskRepository) CountByIDs(ctx context.Context, memberID string, ids []string) (int, int, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	query, args, err := sqlx.In(
		`SELECT COUNT(*), CAST(COALESCE(SUM(completed), 0) AS SIGNED)
FROM tasks WHERE id IN (?) AND `+visibleWhere,
		ids, memberID, memberID,
	)
	if err != nil {
		return 0, 0, err
	}

	var total, completed int
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&total, &completed); err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

type taskStatsRow struct {
	Total        int `db:"total"`
	Completed    int `db:"completed"`
	Important    int `db:"important"`
	WithDeadline int `db:"with_deadline"`
	Todo         int `db:"todo"`
	InProgress   int `db:"in_progress"`
	Done         int `db:"done"`
}

func (r *TaskRepository) Stats(ctx context.Context, memberID string) (domain.TaskStats, error) {
	query := `
SELECT
  COUNT(*) AS total,
  CAST(COALESCE(SUM(completed), 0) AS SIGNED) AS completed,
  CAST(COALESCE(SUM(important), 0) AS SIGNED) AS important,
  CAST(COALESCE(SUM(deadline IS NOT NULL), 0) AS SIGNED) AS with_deadline,
  CAST(COALESCE(SUM(status = 'todo'), 0) AS SIGNED) AS todo,
  CAST(COALESCE(SUM(status = 'in_progress'), 0) AS SIGNED) AS in_progress,
  CAST(COALESCE(SUM(status = 'done'), 0) AS SIGNED) AS done
FROM tasks WHERE ` + visibleWhere

	var row taskStatsRow
	if err := r.db.GetContext(ctx, &row, query, memberID, memberID); err != nil {
		return domain.TaskStats{}, err
	}

	return domain.TaskStats{
		Total:        row.Total,
		Completed:    row.Completed,
		Important:    row.Important,
		WithDeadline: row.WithDeadline,
		Todo:         row.Todo,
		InProgress:   row.InProgress,
		Done:         row.Done,
	}, nil
}

func (r *TaskRepository) FindReminderCandidates(ctx context.Context) ([]domain.Task, error) {
	// JSON booleans only compare equal to another JSON boolean, so the
	// SQL literal TRUE (integer 1) would never match here.
	query := `SELECT ` + taskColumns + ` FROM tasks
WHERE completed = 0
  AND deadline IS NOT NULL
  AND reminder IS NOT NULL
  AND JSON_EXTRACT(reminder, '$.enabled') = CAST('true' AS JSON)`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomain(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) StampReminder(ctx context.Context, id string, notifiedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder = JSON_SET(reminder, '$.lastNotifiedAt', ?) WHERE id = ?`,
		notifiedAt.UTC().Format(time.RFC3339), id,
	)
	return err
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	tags, err := json.Marshal(emptyIfNil(task.Tags))
	if err != nil {
		return taskRow{}, err
	}
	subtasks, err := json.Marshal(emptySubtasksIfNil(task.Subtasks))
	if err != nil {
		return taskRow{}, err
	}
	deps, err := json.Marshal(emptyIfNil(task.Dependencies))
	if err != nil {
		return taskRow{}, err
	}
	shared, err := json.Marshal(emptyIfNil(task.SharedWith))
	if err != nil {
		return taskRow{}, err
	}

	row := taskRow{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		Completed:    task.Completed,
		Important:    task.Important,
		Tags:         tags,
		SortOrder:    task.Order,
		Subtasks:     subtasks,
		Dependencies: deps,
		OwnerID:      task.OwnerID,
		SharedWith:   shared,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	if task.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}
	if task.Deadline != nil {
		row.Deadline = sql.NullTime{Time: *task.Deadline, Valid: true}
	}
	if task.ProjectID != nil {
		row.ProjectID = sql.NullString{String: *task.ProjectID, Valid: true}
	}
	if task.Recurrence != nil {
		value, err := json.Marshal(task.Recurrence)
		if err != nil {
			return taskRow{}, err
		}
		row.Recurrence = value
	}
	if task.Reminder != nil {
		value, err := json.Marshal(task.Reminder)
		if err != nil {
			return taskRow{}, err
		}
		row.Reminder = value
	}

	return row, nil
}

func mapTaskRowToDomain(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Completed:   row.Completed,
		Important:   row.Important,
		Order:       row.SortOrder,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}
	if row.Deadline.Valid {
		value := row.Deadline.Time
		task.Deadline = &value
	}
	if row.ProjectID.Valid {
		value := row.ProjectID.String
		task.ProjectID = &value
	}

	if err := json.Unmarshal(row.Tags, &task.Tags); err != nil {
		return domain.Task{}, err
	}
	if err := json.Unmarshal(row.Subtasks, &task.Subtasks); err != nil {
		return domain.Task{}, err
	}
	if err := json.Unmarshal(row.Dependencies, &task.Dependencies); err != nil {
		return domain.Task{}, err
	}
	if err := json.Unmarshal(row.SharedWith, &task.SharedWith); err != nil {
		return domain.Task{}, err
	}
	if len(row.Recurrence) > 0 {
		task.Recurrence = &domain.Recurrence{}
		if err := json.Unmarshal(row.Recurrence, task.Recurrence); err != nil {
			return domain.Task{}, err
		}
	}
	if len(row.Reminder) > 0 {
		task.Reminder = &domain.Reminder{}
		if err := json.Unmarshal(row.Reminder, task.Reminder); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptySubtasksIfNil(values []domain.Subtask) []domain.Subtask {
	if values == nil {
		return []domain.Subtask{}
	}
	return values
}
