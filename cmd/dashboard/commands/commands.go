package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/internal/adapters/cache"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/dashboard"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/infrastructure/server"
)

// Version is set at build time
var Version = "dev"

// AddViewerFlags registers the identity and output flags shared by every
// subcommand.
func AddViewerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("viewer-id", "", "Id of the user to act as (default from VIEWER_ID)")
	flags.String("viewer-name", "", "Display name of the user to act as (default from VIEWER_NAME)")
	flags.String("role", "", "Director, Project Head or Employee (default from VIEWER_ROLE)")
	flags.StringP("output", "o", "table", "Output format: table or yaml")
	flags.Bool("no-color", false, "Disable coloured output")
}

// resolveViewer prefers flags over configuration.
func resolveViewer(cmd *cobra.Command, cfg config.ViewerConfig) (entities.Viewer, error) {
	id, _ := cmd.Flags().GetString("viewer-id")
	name, _ := cmd.Flags().GetString("viewer-name")
	role, _ := cmd.Flags().GetString("role")

	if id == "" {
		id = cfg.ID
	}
	if name == "" {
		name = cfg.Name
	}
	if role == "" {
		role = cfg.Role
	}

	if id == "" {
		return entities.Viewer{}, errors.New("viewer id is required (--viewer-id or VIEWER_ID)")
	}
	parsed, ok := entities.ParseUserRole(role)
	if !ok {
		return entities.Viewer{}, fmt.Errorf("unknown role %q", role)
	}
	if name == "" {
		name = id
	}

	return entities.Viewer{ID: entities.ID(id), Name: name, Role: parsed}, nil
}

func newRenderer(cmd *cobra.Command) (*renderer, error) {
	format, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return newRendererFor(cmd.OutOrStdout(), format, noColor)
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long:  "Start the dashboard backend with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := cache.New(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer c.Close()

	srv, err := server.New(cfg, c, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting dashboard server",
		"address", cfg.Server.GetAddr(),
		"environment", cfg.App.Environment,
		"gateway", cfg.Gateway.BaseURL,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.GetAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	appLogger.Info("Server exited")
	return nil
}

// NewTasksCommand creates the tasks command
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the viewer's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			ctx, a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var sel dashboard.TaskSelection
			status, _ := cmd.Flags().GetString("status")
			priority, _ := cmd.Flags().GetString("priority")
			source, _ := cmd.Flags().GetString("source")
			sel.Status = dashboard.StatusFilter(status)
			sel.Priority = entities.Priority(priority)
			sel.Source = dashboard.SourceFilter(source)
			sel.Search, _ = cmd.Flags().GetString("search")

			snap := a.dashboard.FilteredTasks(ctx, a.viewer, sel)
			out.warnings(cmd.ErrOrStderr(), snap.Warnings)
			return out.tasks(snap.Tasks, time.Now())
		},
	}

	cmd.Flags().String("status", "all", "all, completed, pending or overdue")
	cmd.Flags().String("priority", "all", "Urgent, Less Urgent, Free Time, Custom or all")
	cmd.Flags().String("source", "all", "all, director or self (employees only)")
	cmd.Flags().StringP("search", "q", "", "Search title, description, project and creator")
	return cmd
}

// NewProjectsCommand creates the projects command
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects visible to the viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			ctx, a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var sel dashboard.ProjectSelection
			status, _ := cmd.Flags().GetString("status")
			sel.Status = entities.ProjectStatus(status)
			sel.Search, _ = cmd.Flags().GetString("search")

			projects, err := a.dashboard.FilteredProjects(ctx, a.viewer, sel)
			if err != nil {
				out.warnings(cmd.ErrOrStderr(), []string{err.Error()})
			}
			return out.projects(projects)
		},
	}

	cmd.Flags().String("status", "all", "Active, Completed, On Hold or all")
	cmd.Flags().StringP("search", "q", "", "Search name and description")
	return cmd
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the viewer's dashboard counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			ctx, a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return out.stats(a.dashboard.Stats(ctx, a.viewer))
		},
	}
}

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <task-id>",
		Short: "Print a task every time it is refreshed, until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			ctx, a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			task, err := a.tasks.GetTask(ctx, a.viewer, entities.ID(args[0]))
			if err != nil {
				return err
			}

			watch, err := a.poller.Watch(ctx, a.viewer, task.ID)
			if err != nil {
				return err
			}
			defer watch.Close()

			for update := range watch.Updates() {
				if err := out.taskUpdate(update, time.Now()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewCommentCommand creates the comment command
func NewCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <task-id> <text>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			ctx, a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			draft := services.NewDraft(args[1])
			task, err := a.tasks.AddComment(ctx, a.viewer, entities.ID(args[0]), draft)
			if err != nil {
				if text := draft.Text(); text != "" {
					return fmt.Errorf("%w (comment not saved: %q)", err, text)
				}
				return err
			}
			return out.comments(task.Comments)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dashboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "TaskMaster Dashboard %s\n", Version)
		},
	}
}
