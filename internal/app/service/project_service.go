package service

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"todoapp/internal/app/access"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ProjectService manages project groups under the same ownership model as
// tasks: shared members may read and rename, only the owner deletes or
// changes sharing.
type ProjectService struct {
	projects ports.ProjectRepository
	now      func() time.Time
}

func NewProjectService(projects ports.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects, now: time.Now}
}

var _ ports.ProjectService = (*ProjectService)(nil)

func (s *ProjectService) Create(ctx context.Context, input domain.CreateProjectInput, ownerID string) (domain.Project, error) {
	if err := access.RequireMember(ownerID); err != nil {
		return domain.Project{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Project{}, domain.NewValidationError("name", "required")
	}
	if utf8.RuneCountInString(name) > domain.MaxProjectNameLength {
		return domain.Project{}, domain.NewValidationError("name", "too long")
	}
	if input.Color != "" && !hexColorPattern.MatchString(input.Color) {
		return domain.Project{}, domain.NewValidationError("color", "must be a hex color")
	}

	now := s.now()
	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		Color:       input.Color,
		OwnerID:     ownerID,
		SharedWith:  domain.NormalizeMembers(input.SharedWith),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id, memberID string) (domain.Project, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Project{}, err
	}
	return s.projects.GetVisible(ctx, id, memberID)
}

func (s *ProjectService) List(ctx context.Context, memberID string) ([]domain.Project, error) {
	if err := access.RequireMember(memberID); err != nil {
		return nil, err
	}
	return s.projects.ListVisible(ctx, memberID)
}

func (s *ProjectService) Update(ctx context.Context, id string, patch domain.UpdateProjectInput, memberID string) (domain.Project, error) {
	if err := access.RequireMember(memberID); err != nil {
		return domain.Project{}, err
	}

	project, err := s.projects.GetVisible(ctx, id, memberID)
	if err != nil {
		return domain.Project{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Project{}, domain.NewValidationError("name", "cannot be blank")
		}
		if utf8.RuneCountInString(name) > domain.MaxProjectNameLength {
			return domain.Project{}, domain.NewValidationError("name", "too long")
		}
		project.Name = name
	}

	if patch.DescriptionSet {
		if patch.Description == nil {
			project.Description = ""
		} else {
			project.Description = *patch.Description
		}
	}

	if patch.ColorSet {
		if patch.Color == nil {
			project.Color = ""
		} else {
			if *patch.Color != "" && !hexColorPattern.MatchString(*patch.Color) {
				return domain.Project{}, domain.NewValidationError("color", "must be a hex color")
			}
			project.Color = *patch.Color
		}
	}

	// Same policy as tasks: sharing changes from non-owners are dropped.
	if patch.SharedWithSet && access.IsOwner(project.OwnerID, memberID) {
		project.SharedWith = domain.NormalizeMembers(patch.SharedWith)
	}

	project.UpdatedAt = s.now()

	if err := s.projects.Update(ctx, project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, memberID string) error {
	if err := access.RequireMember(memberID); err != nil {
		return err
	}

	project, err := s.projects.GetVisible(ctx, id, memberID)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(project.OwnerID, memberID); err != nil {
		return err
	}
	return s.projects.Delete(ctx, project.ID)
}
