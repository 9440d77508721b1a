package ports

import (
	"context"

	"todoapp/internal/core/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) error
	GetVisible(ctx context.Context, id, memberID string) (domain.Project, error)
	ListVisible(ctx context.Context, memberID string) ([]domain.Project, error)
	Update(ctx context.Context, project domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, input domain.CreateProjectInput, ownerID string) (domain.Project, error)
	Get(ctx context.Context, id, memberID string) (domain.Project, error)
	List(ctx context.Context, memberID string) ([]domain.Project, error)
	Update(ctx context.Context, id string, patch domain.UpdateProjectInput, memberID string) (domain.Project, error)
	Delete(ctx context.Context, id, memberID string) error
}
