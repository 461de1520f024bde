package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ProgressRequest sets a project's progress percentage
type ProgressRequest struct {
	Progress int `json:"progress"`
}

// CreateProject godoc
// @Summary Create a new project
// @Description Create a new project with the provided details
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project data"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), viewer, req)
	if err != nil {
		h.logger.WithError(err).Errorw("Create project failed", "user_id", viewer.ID.String())
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get project by ID
// @Description Get project information by project ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), viewer, pathID(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Changed fields"
// @Success 200 {object} entities.Project
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), viewer, pathID(c, "id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProgress godoc
// @Summary Set project progress
// @Description 100 marks the project completed
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ProgressRequest true "Progress"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/progress [put]
func (h *ProjectHandler) UpdateProgress(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.UpdateProgress(c.Request().Context(), viewer, pathID(c, "id"), req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), viewer, pathID(c, "id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddComment godoc
// @Summary Comment on a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.AddCommentRequest true "Comment"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ports.CommentFailureResponse
// @Failure 502 {object} ports.CommentFailureResponse
// @Security BearerAuth
// @Router /projects/{id}/comments [post]
func (h *ProjectHandler) AddComment(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var req ports.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	draft := services.NewDraft(req.Content)
	project, err := h.projectService.AddComment(c.Request().Context(), viewer, pathID(c, "id"), draft)
	if err != nil {
		h.logger.WithError(err).Warnw("Project comment failed", "project_id", c.Param("id"), "user_id", viewer.ID.String())
		return commentFailure(c, err, draft)
	}
	return c.JSON(http.StatusCreated, project)
}
