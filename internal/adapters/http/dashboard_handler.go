package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/dashboard"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

// DashboardHandler serves the filtered tables and counters of the dashboard
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// ProjectListResponse is the project table of a dashboard view
type ProjectListResponse struct {
	Projects []entities.Project `json:"projects"`
	Warnings []string           `json:"warnings,omitempty"`
}

// ListTasks godoc
// @Summary Filtered task table
// @Description Tasks visible to the viewer after status, priority, source and search filters
// @Tags dashboard
// @Produce json
// @Param status query string false "all, completed, pending or overdue"
// @Param priority query string false "Urgent, Less Urgent, Free Time, Custom or all"
// @Param source query string false "all, director or self (employees only)"
// @Param q query string false "Search text"
// @Success 200 {object} services.Snapshot
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/tasks [get]
func (h *DashboardHandler) ListTasks(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var sel dashboard.TaskSelection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filter")
	}

	return c.JSON(http.StatusOK, h.dashboardService.FilteredTasks(c.Request().Context(), viewer, sel))
}

// ListProjects godoc
// @Summary Filtered project table
// @Tags dashboard
// @Produce json
// @Param status query string false "Active, Completed, On Hold or all"
// @Param q query string false "Search text"
// @Success 200 {object} ProjectListResponse
// @Security BearerAuth
// @Router /dashboard/projects [get]
func (h *DashboardHandler) ListProjects(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}

	var sel dashboard.ProjectSelection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filter")
	}

	projects, err := h.dashboardService.FilteredProjects(c.Request().Context(), viewer, sel)
	resp := ProjectListResponse{Projects: projects}
	if err != nil {
		resp.Warnings = []string{err.Error()}
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats godoc
// @Summary Dashboard counters
// @Description Counters scoped to the viewer's role; employees also get a status breakdown
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.StatsView
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	viewer, err := currentViewer(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dashboardService.Stats(c.Request().Context(), viewer))
}

// ListEmployees godoc
// @Summary Employee directory
// @Tags employees
// @Produce json
// @Success 200 {array} entities.User
// @Failure 502 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *DashboardHandler) ListEmployees(c echo.Context) error {
	if _, err := currentViewer(c); err != nil {
		return err
	}

	users, err := h.dashboardService.Employees(c.Request().Context())
	if err != nil {
		h.logger.WithError(err).Error("List employees failed")
		return err
	}
	return c.JSON(http.StatusOK, users)
}
