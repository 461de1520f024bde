package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	poller      *services.TaskPoller
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, poller *services.TaskPoller, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		poller:      poller,
		logger:      logger,
	}
}

// CompletionDecision is a manager's answer to a completion request
type CompletionDecision struct {
	Approve bool `json:"approve"`
}

// CreateTask godoc
// @Summary Create a new task
// @Description Employees may only assign tasks to themselves
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), viewer, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), viewer, pathID(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Changed fields"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), viewer, pathID(c, "id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus godoc
// @Summary Change task status and work done
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.TaskProgressRequest true "Status"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.TaskProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateProgress(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// RequestExtension godoc
// @Summary Ask for a new deadline
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.ExtensionRequestInput true "Proposed deadline"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/extension-request [post]
func (h *TaskHandler) RequestExtension(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.ExtensionRequestInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.RequestExtension(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// RespondExtension godoc
// @Summary Approve or reject an extension request
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.ExtensionResponse true "Decision"
// @Success 200 {object} entities.Task
// @Failure 409 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/extension-status [put]
func (h *TaskHandler) RespondExtension(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.ExtensionResponse
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.RespondExtension(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// RequestCompletion godoc
// @Summary Ask a manager to sign off the task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/completion-request [post]
func (h *TaskHandler) RequestCompletion(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.RequestCompletion(c.Request().Context(), viewer, pathID(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// ApproveCompletion godoc
// @Summary Settle a completion request
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body CompletionDecision true "Decision"
// @Success 200 {object} entities.Task
// @Failure 409 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/completion-approval [post]
func (h *TaskHandler) ApproveCompletion(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req CompletionDecision
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.ApproveCompletion(c.Request().Context(), viewer, pathID(c, "id"), req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// AddComment godoc
// @Summary Comment on a task
// @Description On failure the response carries the comment text back
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.AddCommentRequest true "Comment"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ports.CommentFailureResponse
// @Failure 409 {object} ports.CommentFailureResponse
// @Failure 502 {object} ports.CommentFailureResponse
// @Security BearerAuth
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	draft := services.NewDraft(req.Content)
	task, err := h.taskService.AddComment(c.Request().Context(), viewer, pathID(c, "id"), draft)
	if err != nil {
		h.logger.WithError(err).Warnw("Task comment failed", "task_id", c.Param("id"), "user_id", viewer.ID.String())
		return commentFailure(c, err, draft)
	}
	return c.JSON(http.StatusCreated, task)
}

// WatchTask godoc
// @Summary Stream fresh copies of a task
// @Description Server-sent events; one "task" event per refresh until the client disconnects
// @Tags tasks
// @Produce text/event-stream
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/watch [get]
func (h *TaskHandler) WatchTask(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	task, err := h.taskService.GetTask(ctx, viewer, pathID(c, "id"))
	if err != nil {
		return err
	}

	watch, err := h.poller.Watch(ctx, viewer, task.ID)
	if err != nil {
		return err
	}
	defer watch.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for update := range watch.Updates() {
		data, err := json.Marshal(update)
		if err != nil {
			h.logger.WithError(err).Error("Failed to encode task update")
			continue
		}
		if _, err := fmt.Fprintf(res, "event: task\ndata: %s\n\n", data); err != nil {
			return nil
		}
		res.Flush()
	}
	return nil
}
