package mapper

import (
	"time"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/core/domain"
)

func ToProjectItems(projects []domain.Project) []dto.ProjectItem {
	items := make([]dto.ProjectItem, 0, len(projects))
	for _, project := range projects {
		items = append(items, ToProjectItem(project))
	}
	return items
}

func ToProjectItem(project domain.Project) dto.ProjectItem {
	return dto.ProjectItem{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		OwnerID:     project.OwnerID,
		SharedWith:  emptyList(project.SharedWith),
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
}
