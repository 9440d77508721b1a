package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/core/domain"
)

var ErrInvalidProjectPayload = errors.New("invalid project payload")

func BuildCreateProjectInput(req dto.CreateProjectRequest) (domain.CreateProjectInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateProjectInput{}, ErrInvalidProjectPayload
	}

	input := domain.CreateProjectInput{
		Name:       name,
		SharedWith: req.SharedWith,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Color != nil {
		input.Color = *req.Color
	}
	return input, nil
}

func BuildUpdateProjectInput(req dto.UpdateProjectRequest, raw map[string]json.RawMessage) (domain.UpdateProjectInput, error) {
	if len(raw) == 0 {
		return domain.UpdateProjectInput{}, ErrInvalidProjectPayload
	}

	var input domain.UpdateProjectInput

	if hasJSONField(raw, "name") {
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			return domain.UpdateProjectInput{}, ErrInvalidProjectPayload
		}
		input.Name = req.Name
	}
	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = req.Description
	}
	if hasJSONField(raw, "color") {
		input.ColorSet = true
		input.Color = req.Color
	}
	if hasJSONField(raw, "shared_with") {
		input.SharedWithSet = true
		input.SharedWith = req.SharedWith
	}

	return input, nil
}
