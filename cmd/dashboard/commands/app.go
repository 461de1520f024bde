package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/internal/adapters/cache"
	"github.com/taskmaster/dashboard/internal/adapters/gateway"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// app is the service graph a one-shot CLI command runs against
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	cache  ports.Cache
	viewer entities.Viewer

	dashboard *services.DashboardService
	tasks     *services.TaskService
	poller    *services.TaskPoller
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close cache")
	}
	_ = a.logger.Sync()
}

// newApp loads configuration, resolves the viewer and wires the services.
// The returned context carries the viewer's gateway token.
func newApp(cmd *cobra.Command) (context.Context, *app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	viewer, err := resolveViewer(cmd, cfg.Viewer)
	if err != nil {
		return nil, nil, err
	}

	// keep the terminal for command output
	loggerCfg := cfg.Logger
	if loggerCfg.Output == "stdout" {
		loggerCfg.Output = "stderr"
	}
	appLogger, err := logger.New(loggerCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Viewer.Token != "" {
		ctx = gateway.WithToken(ctx, cfg.Viewer.Token)
	}

	c, err := cache.New(ctx, cfg, appLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	client, err := gateway.New(cfg.Gateway, appLogger, nil)
	if err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	st := store.New(c, cfg.Cache.TTL, appLogger)
	dashboardService := services.NewDashboardService(client, st, appLogger)
	reconciler := services.NewReconciler(client, st, appLogger)

	return ctx, &app{
		cfg:       cfg,
		logger:    appLogger,
		cache:     c,
		viewer:    viewer,
		dashboard: dashboardService,
		tasks:     services.NewTaskService(client, dashboardService, reconciler, st, services.NewValidator(), appLogger),
		poller:    services.NewTaskPoller(dashboardService, cfg.Poller.Interval, appLogger),
	}, nil
}
