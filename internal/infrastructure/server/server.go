package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskmaster/dashboard/docs"
	"github.com/taskmaster/dashboard/internal/adapters/gateway"
	httpHandlers "github.com/taskmaster/dashboard/internal/adapters/http"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	store    *store.Store
	registry *prometheus.Registry
}

type handlers struct {
	dashboard *httpHandlers.DashboardHandler
	task      *httpHandlers.TaskHandler
	project   *httpHandlers.ProjectHandler
	work      *httpHandlers.WorkHandler
	sessions  *services.SessionService
}

// New creates a new server instance. cache backs the client-side store;
// the caller owns it and closes it after Shutdown.
func New(cfg *config.Config, cache ports.Cache, appLogger *logger.Logger) (*Server, error) {
	if err := cfg.ValidateForServer(); err != nil {
		return nil, err
	}

	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug && !cfg.App.IsProduction()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	registry := prometheus.NewRegistry()
	var reg prometheus.Registerer
	if cfg.Metrics.Enabled {
		reg = registry
	}

	// Initialize gateway and store
	client, err := gateway.New(cfg.Gateway, appLogger, gateway.NewMetrics(reg))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}
	st := store.New(cache, cfg.Cache.TTL, appLogger)

	// Initialize services
	validate := services.NewValidator()
	dashboardService := services.NewDashboardService(client, st, appLogger)
	reconciler := services.NewReconciler(client, st, appLogger)
	taskService := services.NewTaskService(client, dashboardService, reconciler, st, validate, appLogger)
	projectService := services.NewProjectService(client, dashboardService, reconciler, st, validate, appLogger)
	workService := services.NewWorkService(client, reconciler, st, validate, appLogger)
	poller := services.NewTaskPoller(dashboardService, cfg.Poller.Interval, appLogger)

	// Initialize handlers
	h := handlers{
		dashboard: httpHandlers.NewDashboardHandler(dashboardService, appLogger),
		task:      httpHandlers.NewTaskHandler(taskService, poller, appLogger),
		project:   httpHandlers.NewProjectHandler(projectService, appLogger),
		work:      httpHandlers.NewWorkHandler(workService, appLogger),
		sessions:  services.NewSessionService(cfg.Session, appLogger),
	}

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		store:    st,
		registry: registry,
	}

	// Setup metrics first so its middleware sees every request
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(h)

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	managers := s.requireRole(entities.UserRoleDirector, entities.UserRoleProjectHead)

	// API v1 routes, all behind a session
	v1 := s.echo.Group("/api/v1", s.sessionMiddleware(h.sessions))

	dash := v1.Group("/dashboard")
	dash.GET("/tasks", h.dashboard.ListTasks)
	dash.GET("/projects", h.dashboard.ListProjects)
	dash.GET("/stats", h.dashboard.Stats)

	v1.GET("/employees", h.dashboard.ListEmployees)

	tasks := v1.Group("/tasks")
	tasks.POST("", h.task.CreateTask)
	tasks.GET("/:id", h.task.GetTask)
	tasks.PUT("/:id", h.task.UpdateTask)
	tasks.DELETE("/:id", h.task.DeleteTask)
	tasks.PUT("/:id/status", h.task.UpdateStatus)
	tasks.POST("/:id/extension-request", h.task.RequestExtension)
	tasks.PUT("/:id/extension-status", h.task.RespondExtension, managers)
	tasks.POST("/:id/completion-request", h.task.RequestCompletion)
	tasks.POST("/:id/completion-approval", h.task.ApproveCompletion, managers)
	tasks.POST("/:id/comments", h.task.AddComment)
	tasks.GET("/:id/watch", h.task.WatchTask)

	projects := v1.Group("/projects")
	projects.POST("", h.project.CreateProject, managers)
	projects.GET("/:id", h.project.GetProject)
	projects.PUT("/:id", h.project.UpdateProject)
	projects.PUT("/:id/progress", h.project.UpdateProgress)
	projects.DELETE("/:id", h.project.DeleteProject, managers)
	projects.POST("/:id/comments", h.project.AddComment)

	work := v1.Group("/work")
	work.POST("", h.work.CreateWork)
	work.GET("/employee/:id", h.work.ListEmployeeWork)
	work.GET("/:id", h.work.GetWork)
	work.PUT("/:id", h.work.UpdateWork)
	work.DELETE("/:id", h.work.DeleteWork)
	work.POST("/:id/comments", h.work.AddComment)
}

// setupMetrics configures Prometheus metrics. The gateway client registers
// its own collectors on the same registry.
func (s *Server) setupMetrics() {
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	s.registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = httpHandlers.StatusFor(err)
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": s.config.App.Version,
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		s.logger.WithError(err).Warn("Readiness check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "cache_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, body := httpHandlers.StatusFor(err)

		if code >= http.StatusInternalServerError {
			logger.WithError(err).
				WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
				Errorw("Request failed", "path", c.Request().URL.Path, "status", code)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, body)
			}
			if err != nil {
				logger.WithError(err).Error("Error sending response")
			}
		}
	}
}
