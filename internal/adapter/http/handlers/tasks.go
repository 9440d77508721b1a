package handlers

import (
	"encoding/json"
	"errors"
	"io"
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

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filters, err := parseTaskFilters(c)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), middleware.GetPrincipal(c), filters)
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), taskID, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, err := decodeJSONBody(c, &req)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := decodeJSONBody(c, &req)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	patch, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, patch, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ToggleCompleted(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleCompleted(c.Request.Context(), taskID, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ToggleImportant(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleImportant(c.Request.Context(), taskID, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), taskID, middleware.GetPrincipal(c)); err != nil {
		writeTaskError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	var req dto.ReorderTasksRequest
	if _, err := decodeJSONBody(c, &req); err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	items, err := validation.BuildReorderItems(req)
	if err != nil {
		writeInvalidTaskPayload(c)
		return
	}

	tasks, err := h.taskService.Reorder(c.Request.Context(), items, middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailReorderTasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) ClearCompleted(c *gin.Context) {
	deleted, err := h.taskService.ClearCompleted(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailClearCompleted)
		return
	}

	c.JSON(http.StatusOK, dto.ClearCompletedResponse{Deleted: deleted})
}

func (h *TaskHandler) TaskStats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		writeTaskError(c, err, apierrors.MsgFailTaskStats)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStatsItem(stats))
}

func parseTaskFilters(c *gin.Context) (domain.TaskFilters, error) {
	var filters domain.TaskFilters

	if value := c.Query("status"); value != "" {
		status := domain.TaskStatus(value)
		if !status.Valid() {
			return domain.TaskFilters{}, validation.ErrInvalidTaskPayload
		}
		filters.Status = &status
	}
	if value := c.Query("completed"); value != "" {
		completed := value == "true"
		filters.Completed = &completed
	}
	if value := c.Query("important"); value != "" {
		important := value == "true"
		filters.Important = &important
	}
	if value := c.Query("project_id"); value != "" {
		projectID := value
		filters.ProjectID = &projectID
	}
	filters.Tag = c.Query("tag")
	filters.Search = c.Query("search")

	return filters, nil
}

// taskIDParam validates the :id path segment and writes the 400 itself so
// handlers can simply return.
func taskIDParam(c *gin.Context) (string, bool) {
	taskID := c.Param("id")
	if _, err := uuid.Parse(taskID); err != nil {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return "", false
	}
	return taskID, true
}

// decodeJSONBody decodes the request body twice: into the typed request
// and into a raw field map so validation can tell absent from null.
func decodeJSONBody(c *gin.Context, dst interface{}) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}
	return raw, nil
}

func writeInvalidTaskPayload(c *gin.Context) {
	lang := middleware.GetLang(c)
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// writeTaskError maps engine failures onto the API error envelope:
// NotFound 404, validation 400, Forbidden 403, unsatisfied dependency 409.
func writeTaskError(c *gin.Context, err error, failMsg string) {
	lang := middleware.GetLang(c)

	switch {
	case domain.IsValidation(err):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
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
	case errors.Is(err, domain.ErrDependencyNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgDependencyNotFound, lang),
		)
	case errors.Is(err, domain.ErrDependencyNotSatisfied):
		c.JSON(
			http.StatusConflict,
			apierrors.CreateError(http.StatusConflict, apierrors.MsgDependencyNotSatisfied, lang),
		)
	default:
		zap.L().Error("task operation failed", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsg, lang),
		)
	}
}
