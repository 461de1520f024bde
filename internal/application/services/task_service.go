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

// TaskService handles task-related operations
type TaskService struct {
	gateway    ports.TaskGateway
	dashboard  *DashboardService
	reconciler *Reconciler
	store      *store.Store
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(gateway ports.TaskGateway, dashboard *DashboardService, reconciler *Reconciler, st *store.Store, validate *validator.Validate, logger *logger.Logger) *TaskService {
	return &TaskService{
		gateway:    gateway,
		dashboard:  dashboard,
		reconciler: reconciler,
		store:      st,
		validate:   validate,
		logger:     logger.WithComponent("task_service"),
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, viewer entities.Viewer, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}
	if !viewer.CanCreateTask(req.AssigneeIDs) {
		return nil, entities.ErrForbidden
	}

	task := &entities.Task{
		Title:                   req.Title,
		Description:             req.Description,
		Priority:                req.Priority,
		Status:                  entities.TaskStatusPending,
		CreatedBy:               viewer.ID,
		CreatedByName:           viewer.Name,
		ProjectID:               req.ProjectID,
		ProjectName:             req.ProjectName,
		WorkDone:                req.WorkDone,
		NeedsDirectorInput:      req.NeedsDirectorInput,
		Comments:                []entities.Comment{},
		CompletionRequestStatus: entities.CompletionRequestNone,
		IsEmployeeCreated:       viewer.IsEmployee(),
	}
	if req.Status != "" {
		task.Status = entities.TaskStatus(req.Status)
	}
	task.SetAssignees(req.AssigneeIDs, req.AssigneeNames)

	// dates were checked by the isodate tag
	task.DueDate, _ = entities.ParseDate(req.DueDate)
	task.StartDate, _ = entities.ParseDate(req.StartDate)
	task.ReminderDate, _ = entities.ParseDate(req.ReminderDate)

	created, err := s.gateway.CreateTask(ctx, task)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create task")
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.afterMutation(ctx, viewer, created)
	s.logger.LogUserAction(viewer.ID.String(), "task_created", map[string]interface{}{
		"task_id": created.ID.String(),
		"title":   created.Title,
	})

	return created, nil
}

// GetTask returns one task if the viewer may see it
func (s *TaskService) GetTask(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.Task, error) {
	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).View {
		return nil, entities.ErrForbidden
	}
	return task, nil
}

// UpdateTask applies the set fields of req
func (s *TaskService) UpdateTask(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).Edit {
		return nil, entities.ErrForbidden
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if len(req.AssigneeIDs) > 0 {
		if !viewer.CanCreateTask(req.AssigneeIDs) {
			return nil, entities.ErrForbidden
		}
		task.SetAssignees(req.AssigneeIDs, req.AssigneeNames)
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.ProjectName != nil {
		task.ProjectName = *req.ProjectName
	}
	if req.DueDate != nil {
		task.DueDate, _ = entities.ParseDate(*req.DueDate)
	}
	if req.StartDate != nil {
		task.StartDate, _ = entities.ParseDate(*req.StartDate)
	}
	if req.ReminderDate != nil {
		task.ReminderDate, _ = entities.ParseDate(*req.ReminderDate)
	}
	if req.NeedsDirectorInput != nil {
		task.NeedsDirectorInput = *req.NeedsDirectorInput
	}

	return s.save(ctx, viewer, task, "task_updated")
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, viewer entities.Viewer, id entities.ID) error {
	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return err
	}
	if !viewer.TaskPermissions(task).Delete {
		return entities.ErrForbidden
	}

	if err := s.gateway.DeleteTask(ctx, task.ID); err != nil {
		s.logger.WithError(err).Errorw("Failed to delete task", "task_id", task.ID.String())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to drop deleted task from cache")
	}
	s.reload(ctx, viewer)

	s.logger.LogUserAction(viewer.ID.String(), "task_deleted", map[string]interface{}{"task_id": task.ID.String()})
	return nil
}

// UpdateProgress changes status and work done. Completing a task sets
// work done to 100 unless a value is given.
func (s *TaskService) UpdateProgress(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.TaskProgressRequest) (*entities.Task, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).ChangeStatus {
		return nil, entities.ErrForbidden
	}

	task.Status = entities.TaskStatus(req.Status)
	switch {
	case req.WorkDone != nil:
		task.WorkDone = *req.WorkDone
	case task.Status == entities.TaskStatusCompleted:
		task.WorkDone = 100
	}

	return s.save(ctx, viewer, task, "task_status_changed")
}

// RequestExtension asks for a new deadline
func (s *TaskService) RequestExtension(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.ExtensionRequestInput) (*entities.Task, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).RequestExtension {
		return nil, entities.ErrForbidden
	}

	deadline, _ := entities.ParseDate(req.ProposedDeadline)
	task.ExtensionRequest = &entities.ExtensionRequest{
		ProposedDeadline: deadline,
		Reason:           req.Reason,
		Status:           entities.ExtensionStatusPending,
	}

	return s.save(ctx, viewer, task, "extension_requested")
}

// RespondExtension approves or rejects a pending extension request
func (s *TaskService) RespondExtension(ctx context.Context, viewer entities.Viewer, id entities.ID, req ports.ExtensionResponse) (*entities.Task, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).RespondExtension {
		return nil, entities.ErrForbidden
	}
	if !task.HasPendingExtension() {
		return nil, entities.ErrNoExtensionAsked
	}

	updated, err := s.gateway.UpdateExtensionStatus(ctx, task.ID, req)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to update extension status", "task_id", task.ID.String())
		return nil, fmt.Errorf("failed to update extension status: %w", err)
	}

	s.afterMutation(ctx, viewer, updated)
	s.logger.LogUserAction(viewer.ID.String(), "extension_"+string(req.Status), map[string]interface{}{"task_id": task.ID.String()})
	return updated, nil
}

// RequestCompletion flags the task for manager sign-off
func (s *TaskService) RequestCompletion(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.Task, error) {
	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).RequestCompletion {
		return nil, entities.ErrForbidden
	}

	task.CompletionRequestStatus = entities.CompletionRequestPending
	return s.save(ctx, viewer, task, "completion_requested")
}

// ApproveCompletion settles a pending completion request. Approval
// completes the task; rejection only clears the request.
func (s *TaskService) ApproveCompletion(ctx context.Context, viewer entities.Viewer, id entities.ID, approve bool) (*entities.Task, error) {
	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).ApproveCompletion {
		return nil, entities.ErrForbidden
	}
	if task.CompletionRequestStatus != entities.CompletionRequestPending {
		return nil, entities.ErrNoCompletionAsked
	}

	task.CompletionRequestStatus = entities.CompletionRequestNone
	action := "completion_rejected"
	if approve {
		task.Status = entities.TaskStatusCompleted
		task.WorkDone = 100
		action = "completion_approved"
	}

	return s.save(ctx, viewer, task, action)
}

// AddComment submits the draft through the reconciler
func (s *TaskService) AddComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.Task, error) {
	if id == "" {
		s.logger.Warn("Task comment without task id, aborting")
		return nil, entities.ErrMissingID
	}

	task, err := s.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.TaskPermissions(task).Comment {
		return nil, entities.ErrForbidden
	}

	return s.reconciler.AddTaskComment(ctx, viewer, task.ID, draft)
}

// load guards the id and finds the task the viewer's list holds
func (s *TaskService) load(ctx context.Context, viewer entities.Viewer, id entities.ID) (*entities.Task, error) {
	if id == "" {
		s.logger.Warn("Task operation without task id, aborting")
		return nil, entities.ErrMissingID
	}
	return s.dashboard.FindTask(ctx, viewer, id)
}

func (s *TaskService) save(ctx context.Context, viewer entities.Viewer, task *entities.Task, action string) (*entities.Task, error) {
	updated, err := s.gateway.UpdateTask(ctx, task.ID, task)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to update task", "task_id", task.ID.String())
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.afterMutation(ctx, viewer, updated)
	s.logger.LogUserAction(viewer.ID.String(), action, map[string]interface{}{"task_id": task.ID.String()})
	return updated, nil
}

// afterMutation stores the gateway's copy, drops every cached list and
// reloads the viewer's list
func (s *TaskService) afterMutation(ctx context.Context, viewer entities.Viewer, task *entities.Task) {
	if task != nil && task.ID != "" {
		if err := s.store.PutTask(ctx, task); err != nil {
			s.logger.WithError(err).Warn("Failed to cache task")
		}
	}
	if err := s.store.InvalidateTasks(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate task lists")
	}
	s.reload(ctx, viewer)
}

func (s *TaskService) reload(ctx context.Context, viewer entities.Viewer) {
	if _, err := s.dashboard.FetchTasks(ctx, viewer); err != nil {
		s.logger.WithError(err).Warn("Task reload after mutation failed")
	}
}
