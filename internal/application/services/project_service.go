package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// ProjectService handles project-related operations
type ProjectService struct {
	gateway    ports.ProjectGateway
	dashboard  *DashboardService
	reconciler *Reconciler
	store      *store.Store
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(gateway ports.ProjectGateway, dashboard *DashboardService, reconciler *Reconciler, st *store.Store, validate *validator.Validate, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		gateway:    gateway,
		dashboard:  dashboard,
		reconciler: reconciler,
		store:      st,
		validate:   validate,
		logger:     logger.WithComponent("project_service"),
	}
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, viewer entities.Viewer, req ports.CreateProjectRequest) (*entities.Project, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}
	if !viewer.CanManageProjects() {
		return nil, entities.ErrForbidden
	}

	project := &entities.Project{
		Name:                 req.Name,
		Description:          req.Description,
		AssignedEmployeeID:   req.AssignedEmployeeID,
		AssignedEmployeeName: req.AssignedEmployeeName,
		Status:               entities.ProjectStatusActive,
		Progress:             req.Progress,
		Comments:             []entities.Comment{},
	}
	if req.Status != "" {
		project.Status = entities.ProjectStatus(req.Status)
	}
	project.StartDate, _ = entities.ParseDate(req.StartDate)
	project.Status = project.EffectiveStatus()

	created, err := s.gateway.CreateProject(ctx, project)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.afterMutation(ctx, created)
	s.logger.LogUserAction(viewer.ID.String(), "project_created", map[string]interface{}{
		"project_id": created.ID.String(),
		"name":       created.Name,
	})
	return created, nil
}

// GetProject returns a project the viewer may see
func (s *ProjectService) GetProject(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.ProjectPermissions(project).View {
		return nil, entities.ErrForbidden
	}
	return project, nil
}

// UpdateProject applies the set fields of req. Changing only status or
// progress needs the status permission; anything else needs edit.
func (s *ProjectService) UpdateProject(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.UpdateProjectRequest) (*entities.Project, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := viewer.ProjectPermissions(project)
	statusOnly := req.Name == nil && req.Description == nil && req.AssignedEmployeeID == nil &&
		req.AssignedEmployeeName == nil && req.StartDate == nil
	if !perms.Edit && !(statusOnly && perms.ChangeStatus) {
		return nil, entities.ErrForbidden
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.AssignedEmployeeID != nil {
		project.AssignedEmployeeID = *req.AssignedEmployeeID
	}
	if req.AssignedEmployeeName != nil {
		project.AssignedEmployeeName = *req.AssignedEmployeeName
	}
	if req.StartDate != nil {
		project.StartDate, _ = entities.ParseDate(*req.StartDate)
	}
	if req.Status != nil {
		project.Status = entities.ProjectStatus(*req.Status)
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	project.Status = project.EffectiveStatus()

	return s.save(ctx, viewer, project, "project_updated")
}

// UpdateProgress sets the progress percentage; 100 completes the project.
func (s *ProjectService) UpdateProgress(ctx context.Context, viewer entities.Viewer, id entities.ID, progress int) (*entities.Project, error) {
	if progress < 0 || progress > 100 {
		return nil, entities.ErrInvalidProgress
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.ProjectPermissions(project).ChangeStatus {
		return nil, entities.ErrForbidden
	}

	project.Progress = progress
	project.Status = project.EffectiveStatus()
	return s.save(ctx, viewer, project, "project_progress_changed")
}

// DeleteProject removes a project
func (s *ProjectService) DeleteProject(ctx context.Context, viewer entities.Viewer, id entities.ID) error {
	project, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.ProjectPermissions(project).Delete {
		return entities.ErrForbidden
	}

	if err := s.gateway.DeleteProject(ctx, project.ID); err != nil {
		s.logger.WithError(err).Errorw("Failed to delete project", "project_id", project.ID.String())
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if err := s.store.DeleteProject(ctx, project.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to drop deleted project from cache")
	}
	s.reload(ctx)

	s.logger.LogUserAction(viewer.ID.String(), "project_deleted", map[string]interface{}{"project_id": project.ID.String()})
	return nil
}

// AddComment submits the draft through the reconciler
func (s *ProjectService) AddComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.ProjectPermissions(project).Comment {
		return nil, entities.ErrForbidden
	}
	return s.reconciler.AddProjectComment(ctx, viewer, project.ID, draft)
}

func (s *ProjectService) load(ctx context.Context, id entities.ID) (*entities.Project, error) {
	if id == "" {
		s.logger.Warn("Project operation without project id, aborting")
		return nil, entities.ErrMissingID
	}
	return s.dashboard.FindProject(ctx, id)
}

func (s *ProjectService) save(ctx context.Context, viewer entities.Viewer, project *entities.Project, action string) (*entities.Project, error) {
	updated, err := s.gateway.UpdateProject(ctx, project.ID, project)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to update project", "project_id", project.ID.String())
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.afterMutation(ctx, updated)
	s.logger.LogUserAction(viewer.ID.String(), action, map[string]interface{}{"project_id": project.ID.String()})
	return updated, nil
}

func (s *ProjectService) afterMutation(ctx context.Context, project *entities.Project) {
	if project != nil && project.ID != "" {
		if err := s.store.PutProject(ctx, project); err != nil {
			s.logger.WithError(err).Warn("Failed to cache project")
		}
	}
	if err := s.store.InvalidateProjects(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate project list")
	}
	s.reload(ctx)
}

func (s *ProjectService) reload(ctx context.Context) {
	if _, err := s.dashboard.Projects(ctx); err != nil {
		s.logger.WithError(err).Warn("Project reload after mutation failed")
	}
}
