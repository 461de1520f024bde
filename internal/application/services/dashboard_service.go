package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/dashboard"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Snapshot is everything one dashboard view needs
type Snapshot struct {
	Tasks     []entities.Task    `json:"tasks"`
	Projects  []entities.Project `json:"projects"`
	Employees []entities.User    `json:"employees"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// StatsView bundles the viewer's counters. Breakdown is set for employees only.
type StatsView struct {
	Stats     dashboard.Stats              `json:"stats"`
	Breakdown *dashboard.EmployeeBreakdown `json:"breakdown,omitempty"`
}

// DashboardService loads gateway data through the store and derives the
// filtered lists and stats of a view.
type DashboardService struct {
	gateway ports.Gateway
	store   *store.Store
	logger  *logger.Logger
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(gateway ports.Gateway, st *store.Store, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		gateway: gateway,
		store:   st,
		logger:  logger.WithComponent("dashboard_service"),
		now:     time.Now,
	}
}

// FetchTasks always asks the gateway for the viewer's task list and
// refreshes the cache with it. Employees get their own list; managers get
// everything.
func (s *DashboardService) FetchTasks(ctx context.Context, viewer entities.Viewer) ([]entities.Task, error) {
	var (
		tasks []entities.Task
		err   error
	)
	if viewer.IsEmployee() {
		tasks, err = s.gateway.ListUserTasks(ctx, viewer.ID, viewer.Role)
	} else {
		tasks, err = s.gateway.ListTasks(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	if err := s.store.PutTasks(ctx, store.TaskScope(viewer), tasks); err != nil {
		s.logger.WithError(err).Warn("Failed to cache tasks")
	}
	return tasks, nil
}

// Tasks returns the cached task list for the viewer, fetching it on a miss.
func (s *DashboardService) Tasks(ctx context.Context, viewer entities.Viewer) ([]entities.Task, error) {
	tasks, err := s.store.Tasks(ctx, store.TaskScope(viewer))
	if err == nil {
		return tasks, nil
	}
	if !store.IsMiss(err) {
		s.logger.WithError(err).Warn("Task cache read failed")
	}
	return s.FetchTasks(ctx, viewer)
}

func (s *DashboardService) Projects(ctx context.Context) ([]entities.Project, error) {
	projects, err := s.store.Projects(ctx)
	if err == nil {
		return projects, nil
	}
	if !store.IsMiss(err) {
		s.logger.WithError(err).Warn("Project cache read failed")
	}

	projects, err = s.gateway.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	if err := s.store.PutProjects(ctx, projects); err != nil {
		s.logger.WithError(err).Warn("Failed to cache projects")
	}
	return projects, nil
}

func (s *DashboardService) Employees(ctx context.Context) ([]entities.User, error) {
	users, err := s.store.Employees(ctx)
	if err == nil {
		return users, nil
	}

	users, err = s.gateway.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch employees: %w", err)
	}
	if err := s.store.PutEmployees(ctx, users); err != nil {
		s.logger.WithError(err).Warn("Failed to cache employees")
	}
	return users, nil
}

// Load fetches tasks, projects and employees in parallel. A failed
// collection is logged and left empty so the view still renders.
func (s *DashboardService) Load(ctx context.Context, viewer entities.Viewer) *Snapshot {
	snap := &Snapshot{
		Tasks:     []entities.Task{},
		Projects:  []entities.Project{},
		Employees: []entities.User{},
	}

	var taskErr, projectErr, employeeErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		var tasks []entities.Task
		if tasks, taskErr = s.Tasks(ctx, viewer); taskErr == nil {
			snap.Tasks = tasks
		}
	})
	wg.Go(func() {
		var projects []entities.Project
		if projects, projectErr = s.Projects(ctx); projectErr == nil {
			snap.Projects = projects
		}
	})
	wg.Go(func() {
		var users []entities.User
		if users, employeeErr = s.Employees(ctx); employeeErr == nil {
			snap.Employees = users
		}
	})
	wg.Wait()

	for _, err := range []error{taskErr, projectErr, employeeErr} {
		if err != nil {
			s.logger.WithError(err).WithUserID(viewer.ID.String()).Warn("Dashboard load failed, showing empty collection")
			snap.Warnings = append(snap.Warnings, err.Error())
		}
	}
	return snap
}

// FilteredTasks runs the task filter pipeline over the viewer's list.
func (s *DashboardService) FilteredTasks(ctx context.Context, viewer entities.Viewer, sel dashboard.TaskSelection) *Snapshot {
	snap := s.Load(ctx, viewer)
	snap.Tasks = dashboard.FilterTasks(snap.Tasks, viewer, snap.Employees, sel, s.now())
	return snap
}

// FilteredProjects runs the project filter over the project list.
func (s *DashboardService) FilteredProjects(ctx context.Context, viewer entities.Viewer, sel dashboard.ProjectSelection) ([]entities.Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Project load failed, showing empty list")
		return []entities.Project{}, err
	}
	return dashboard.FilterProjects(projects, viewer, sel), nil
}

// Stats recomputes the counters from the current snapshot.
func (s *DashboardService) Stats(ctx context.Context, viewer entities.Viewer) *StatsView {
	snap := s.Load(ctx, viewer)
	now := s.now()

	view := &StatsView{Stats: dashboard.ComputeStats(snap.Tasks, snap.Projects, viewer, now)}
	if viewer.IsEmployee() {
		breakdown := dashboard.ComputeEmployeeBreakdown(snap.Tasks, viewer)
		view.Breakdown = &breakdown
	}
	return view
}

// FindTask returns the viewer's copy of a task, reloading the list when
// the cache does not hold it.
func (s *DashboardService) FindTask(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.Task, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}
	if task, err := s.store.Task(ctx, id); err == nil {
		return task, nil
	}

	tasks, err := s.FetchTasks(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if task := findTask(tasks, id); task != nil {
		return task, nil
	}
	return nil, entities.ErrTaskNotFound
}

// FindProject returns a project from the cache or the gateway.
func (s *DashboardService) FindProject(ctx context.Context, id entities.ID) (*entities.Project, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}
	if project, err := s.store.Project(ctx, id); err == nil {
		return project, nil
	}

	project, err := s.gateway.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutProject(ctx, project); err != nil {
		s.logger.WithError(err).Warn("Failed to cache project")
	}
	return project, nil
}

// findTask looks up a task by its canonical id.
func findTask(tasks []entities.Task, id entities.ID) *entities.Task {
	for i := range tasks {
		if tasks[i].ID.Matches(id) {
			task := tasks[i]
			return &task
		}
	}
	return nil
}
