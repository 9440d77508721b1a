package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

const projectColumns = `id, name, description, color, owner_id, shared_with, created_at, updated_at`

const insertProjectQuery = `
INSERT INTO projects (` + projectColumns + `)
VALUES (:id, :name, :description, :color, :owner_id, :shared_with, :created_at, :updated_at);
`

const updateProjectQuery = `
UPDATE projects SET
  name = :name,
  description = :description,
  color = :color,
  shared_with = :shared_with,
  updated_at = :updated_at
WHERE id = :id;
`

type ProjectRepository struct {
	db *sqlx.DB
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Color       string    `db:"color"`
	OwnerID     string    `db:"owner_id"`
	SharedWith  []byte    `db:"shared_with"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) error {
	row, err := mapDomainProjectToRow(project)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, insertProjectQuery, row)
	return err
}

func (r *ProjectRepository) GetVisible(ctx context.Context, id, memberID string) (domain.Project, error) {
	var row projectRow
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND ` + visibleWhere
	err := r.db.GetContext(ctx, &row, query, id, memberID, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	if err != nil {
		return domain.Project{}, err
	}
	return mapProjectRowToDomain(row)
}

func (r *ProjectRepository) ListVisible(ctx context.Context, memberID string) ([]domain.Project, error) {
	var rows []projectRow
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + visibleWhere + ` ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, memberID, memberID); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		project, err := mapProjectRowToDomain(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	row, err := mapDomainProjectToRow(project)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, updateProjectQuery, row)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func mapDomainProjectToRow(project domain.Project) (projectRow, error) {
	shared, err := json.Marshal(emptyIfNil(project.SharedWith))
	if err != nil {
		return projectRow{}, err
	}
	return projectRow{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		OwnerID:     project.OwnerID,
		SharedWith:  shared,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}, nil
}

func mapProjectRowToDomain(row projectRow) (domain.Project, error) {
	project := domain.Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Color:       row.Color,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal(row.SharedWith, &project.SharedWith); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}
