package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gotrack/internal/auth"
	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// AssignRequest represents a task assignment request.
type AssignRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	EstimatedMinutes int    `json:"estimated_minutes" validate:"required,min=1"`
	AssignedTo       string `json:"assigned_to" validate:"required"`
}

// UpdateStatusRequest represents a task status transition request.
type UpdateStatusRequest struct {
	TaskID    string `json:"task_id" validate:"required"`
	NewStatus string `json:"new_status" validate:"required,oneof=in_progress completed"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Status string      `json:"status"`
	Task   *model.Task `json:"task"`
}

// TaskListResponse wraps the caller's task list.
type TaskListResponse struct {
	Status string       `json:"status"`
	Count  int          `json:"count"`
	Tasks  []model.Task `json:"tasks"`
}

// Assign godoc
// @Summary Assign a task to a user
// @Tags task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssignRequest true "Task data"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /task/assign [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	task, err := h.taskService.Assign(c.Request().Context(), identity.ID, service.AssignInput{
		Title:            req.Title,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
		AssignedTo:       req.AssignedTo,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TaskResponse{Status: "success", Task: task})
}

// MyTasks godoc
// @Summary List tasks assigned to the caller
// @Tags task
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /task/my-tasks [get]
func (h *TaskHandler) MyTasks(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	tasks, err := h.taskService.ListMine(c.Request().Context(), identity.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TaskListResponse{
		Status: "success",
		Count:  len(tasks),
		Tasks:  tasks,
	})
}

// UpdateStatus godoc
// @Summary Update the status of one of the caller's tasks
// @Tags task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStatusRequest true "Status transition"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /task/update-status [post]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), identity.ID, req.TaskID, model.TaskStatus(req.NewStatus))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TaskResponse{Status: "success", Task: task})
}
