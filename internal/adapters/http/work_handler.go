package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// WorkHandler handles independent work entries
type WorkHandler struct {
	workService *services.WorkService
	logger      *logger.Logger
}

// NewWorkHandler creates a new independent work handler
func NewWorkHandler(workService *services.WorkService, logger *logger.Logger) *WorkHandler {
	return &WorkHandler{
		workService: workService,
		logger:      logger,
	}
}

// CreateWork godoc
// @Summary Log independent work
// @Description The entry is recorded for the signed-in viewer
// @Tags work
// @Accept json
// @Produce json
// @Param request body ports.CreateWorkRequest true "Work entry"
// @Success 201 {object} entities.IndependentWork
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /work [post]
func (h *WorkHandler) CreateWork(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.CreateWorkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	work, err := h.workService.CreateWork(c.Request().Context(), viewer, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, work)
}

// ListEmployeeWork godoc
// @Summary An employee's work entries
// @Description Employees may only list their own entries
// @Tags work
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {array} entities.IndependentWork
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /work/employee/{id} [get]
func (h *WorkHandler) ListEmployeeWork(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	works, err := h.workService.ListEmployeeWork(c.Request().Context(), viewer, pathID(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, works)
}

// GetWork godoc
// @Summary Get a work entry
// @Tags work
// @Produce json
// @Param id path string true "Work entry ID"
// @Success 200 {object} entities.IndependentWork
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /work/{id} [get]
func (h *WorkHandler) GetWork(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	work, err := h.workService.GetWork(c.Request().Context(), viewer, pathID(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, work)
}

// UpdateWork godoc
// @Summary Update a work entry
// @Tags work
// @Accept json
// @Produce json
// @Param id path string true "Work entry ID"
// @Param request body ports.UpdateWorkRequest true "Changed fields"
// @Success 200 {object} entities.IndependentWork
// @Security BearerAuth
// @Router /work/{id} [put]
func (h *WorkHandler) UpdateWork(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.UpdateWorkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	work, err := h.workService.UpdateWork(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, work)
}

// DeleteWork godoc
// @Summary Delete a work entry
// @Tags work
// @Param id path string true "Work entry ID"
// @Success 204
// @Security BearerAuth
// @Router /work/{id} [delete]
func (h *WorkHandler) DeleteWork(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	if err := h.workService.DeleteWork(c.Request().Context(), viewer, pathID(c, "id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddComment godoc
// @Summary Comment on a work entry
// @Tags work
// @Accept json
// @Produce json
// @Param id path string true "Work entry ID"
// @Param request body ports.AddCommentRequest true "Comment"
// @Success 201 {object} entities.IndependentWork
// @Failure 400 {object} ports.CommentFailureResponse
// @Security BearerAuth
// @Router /work/{id}/comments [post]
func (h *WorkHandler) AddComment(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	draft := services.NewDraft(req.Content)
	work, err := h.workService.AddComment(c.Request().Context(), viewer, pathID(c, "id"), draft)
	if err != nil {
		h.logger.WithError(err).Warnw("Work comment failed", "work_id", c.Param("id"), "user_id", viewer.ID.String())
		return commentFailure(c, err, draft)
	}
	return c.JSON(http.StatusCreated, work)
}
