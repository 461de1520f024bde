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

// WorkService handles independent work log entries
type WorkService struct {
	gateway    ports.WorkGateway
	reconciler *Reconciler
	store      *store.Store
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewWorkService creates a new independent work service
func NewWorkService(gateway ports.WorkGateway, reconciler *Reconciler, st *store.Store, validate *validator.Validate, logger *logger.Logger) *WorkService {
	return &WorkService{
		gateway:    gateway,
		reconciler: reconciler,
		store:      st,
		validate:   validate,
		logger:     logger.WithComponent("work_service"),
	}
}

// CreateWork logs a new entry for the viewer
func (s *WorkService) CreateWork(ctx context.Context, viewer entities.Viewer, req ports.CreateWorkRequest) (*entities.IndependentWork, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}
	if viewer.ID == "" {
		return nil, entities.ErrMissingID
	}

	work := &entities.IndependentWork{
		EmployeeID:   viewer.ID,
		EmployeeName: viewer.Name,
		Description:  req.Description,
		Category:     entities.WorkCategory(req.Category),
		TimeSpent:    req.TimeSpent,
		Attachments:  req.Attachments,
		Comments:     []entities.Comment{},
	}
	work.Date, _ = entities.ParseDate(req.Date)

	created, err := s.gateway.CreateWork(ctx, work)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create independent work entry")
		return nil, fmt.Errorf("failed to create independent work entry: %w", err)
	}

	s.afterMutation(ctx, viewer, created)
	s.logger.LogUserAction(viewer.ID.String(), "work_logged", map[string]interface{}{"work_id": created.ID.String()})
	return created, nil
}

// ListEmployeeWork returns an employee's entries. Employees may only list
// their own.
func (s *WorkService) ListEmployeeWork(ctx context.Context, viewer entities.Viewer, employeeID entities.ID) ([]entities.IndependentWork, error) {
	if employeeID == "" {
		s.logger.Warn("Work list without employee id, aborting")
		return nil, entities.ErrMissingID
	}
	if viewer.IsEmployee() && !employeeID.Matches(viewer.ID) {
		return nil, entities.ErrForbidden
	}

	if works, err := s.store.EmployeeWork(ctx, employeeID); err == nil {
		return works, nil
	}
	return s.fetch(ctx, employeeID)
}

func (s *WorkService) fetch(ctx context.Context, employeeID entities.ID) ([]entities.IndependentWork, error) {
	works, err := s.gateway.ListEmployeeWork(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("fetch independent work: %w", err)
	}
	if err := s.store.PutEmployeeWork(ctx, employeeID, works); err != nil {
		s.logger.WithError(err).Warn("Failed to cache independent work")
	}
	return works, nil
}

// GetWork returns one entry the viewer may see
func (s *WorkService) GetWork(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.IndependentWork, error) {
	work, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.WorkPermissions(work).View {
		return nil, entities.ErrForbidden
	}
	return work, nil
}

func (s *WorkService) UpdateWork(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.UpdateWorkRequest) (*entities.IndependentWork, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	work, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.WorkPermissions(work).Edit {
		return nil, entities.ErrForbidden
	}

	if req.Date != nil {
		work.Date, _ = entities.ParseDate(*req.Date)
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.Category != nil {
		work.Category = entities.WorkCategory(*req.Category)
	}
	if req.TimeSpent != nil {
		work.TimeSpent = *req.TimeSpent
	}
	if req.Attachments != nil {
		work.Attachments = req.Attachments
	}

	updated, err := s.gateway.UpdateWork(ctx, work.ID, work)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to update independent work entry", "work_id", work.ID.String())
		return nil, fmt.Errorf("failed to update independent work entry: %w", err)
	}

	s.afterMutation(ctx, viewer, updated)
	s.logger.LogUserAction(viewer.ID.String(), "work_updated", map[string]interface{}{"work_id": work.ID.String()})
	return updated, nil
}

func (s *WorkService) DeleteWork(ctx context.Context, viewer entities.Viewer, id entities.ID) error {
	work, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.WorkPermissions(work).Delete {
		return entities.ErrForbidden
	}

	if err := s.gateway.DeleteWork(ctx, work.ID); err != nil {
		s.logger.WithError(err).Errorw("Failed to delete independent work entry", "work_id", work.ID.String())
		return fmt.Errorf("failed to delete independent work entry: %w", err)
	}
	if err := s.store.DeleteWork(ctx, work.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to drop deleted work entry from cache")
	}
	if _, err := s.fetch(ctx, work.EmployeeID); err != nil {
		s.logger.WithError(err).Warn("Work reload after delete failed")
	}

	s.logger.LogUserAction(viewer.ID.String(), "work_deleted", map[string]interface{}{"work_id": work.ID.String()})
	return nil
}

// AddComment submits the draft through the reconciler
func (s *WorkService) AddComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.IndependentWork, error) {
	work, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.WorkPermissions(work).Comment {
		return nil, entities.ErrForbidden
	}
	return s.reconciler.AddWorkComment(ctx, viewer, work.ID, draft)
}

func (s *WorkService) load(ctx context.Context, id entities.ID) (*entities.IndependentWork, error) {
	if id == "" {
		s.logger.Warn("Work operation without entry id, aborting")
		return nil, entities.ErrMissingID
	}
	if work, err := s.store.Work(ctx, id); err == nil {
		return work, nil
	}

	work, err := s.gateway.GetWork(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutWork(ctx, work); err != nil {
		s.logger.WithError(err).Warn("Failed to cache work entry")
	}
	return work, nil
}

func (s *WorkService) afterMutation(ctx context.Context, viewer entities.Viewer, work *entities.IndependentWork) {
	if work != nil && work.ID != "" {
		if err := s.store.PutWork(ctx, work); err != nil {
			s.logger.WithError(err).Warn("Failed to cache work entry")
		}
	}
	if err := s.store.InvalidateWork(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate work lists")
	}

	employeeID := viewer.ID
	if work != nil && work.EmployeeID != "" {
		employeeID = work.EmployeeID
	}
	if _, err := s.fetch(ctx, employeeID); err != nil {
		s.logger.WithError(err).Warn("Work reload after mutation failed")
	}
}
