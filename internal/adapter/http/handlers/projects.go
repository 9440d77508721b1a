package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/adapter/http/mapper"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/internal/adapter/http/validation"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
	"todoapp/pkg/apierrors"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeProjectError(c, err, apierrors.MsgFailListProjects)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItems(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), projectID, middleware.GetPrincipal(c))
	if err != nil {
		writeProjectError(c, err, apierrors.MsgFailListProjects)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if _, err := decodeJSONBody(c, &req); err != nil {
		writeInvalidProjectPayload(c)
		return
	}

	input, err := validation.BuildCreateProjectInput(req)
	if err != nil {
		writeInvalidProjectPayload(c)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), input, middleware.GetPrincipal(c))
	if err != nil {
		writeProjectError(c, err, apierrors.MsgFailCreateProject)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	raw, err := decodeJSONBody(c, &req)
	if err != nil {
		writeInvalidProjectPayload(c)
		return
	}

	patch, err := validation.BuildUpdateProjectInput(req, raw)
	if err != nil {
		writeInvalidProjectPayload(c)
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), projectID, patch, middleware.GetPrincipal(c))
	if err != nil {
		writeProjectError(c, err, apierrors.MsgFailUpdateProject)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID, middleware.GetPrincipal(c)); err != nil {
		writeProjectError(c, err, apierrors.MsgFailDeleteProject)
		return
	}

	c.Status(http.StatusNoContent)
}

func projectIDParam(c *gin.Context) (string, bool) {
	projectID := c.Param("id")
	if _, err := uuid.Parse(projectID); err != nil {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidProjectID, lang),
		)
		return "", false
	}
	return projectID, true
}

func writeInvalidProjectPayload(c *gin.Context) {
	lang := middleware.GetLang(c)
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidProjectPayload, lang),
	)
}

func writeProjectError(c *gin.Context, err error, failMsg string) {
	lang := middleware.GetLang(c)

	switch {
	case domain.IsValidation(err):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidProjectPayload, lang),
		)
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgProjectNotFound, lang),
		)
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
	default:
		zap.L().Error("project operation failed", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsg, lang),
		)
	}
}
