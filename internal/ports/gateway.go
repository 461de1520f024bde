package ports

import (
	"context"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// Gateway is the remote REST API that owns every task, project, employee
// and independent work entry. It is the sole source of truth.
type Gateway interface {
	TaskGateway
	ProjectGateway
	EmployeeGateway
	WorkGateway
}

// TaskGateway defines the task endpoints
type TaskGateway interface {
	ListTasks(ctx context.Context) ([]entities.Task, error)
	ListUserTasks(ctx context.Context, userID entities.ID, role entities.UserRole) ([]entities.Task, error)
	CreateTask(ctx context.Context, task *entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, id entities.ID, task *entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, id entities.ID) error
	UpdateExtensionStatus(ctx context.Context, id entities.ID, req ExtensionResponse) (*entities.Task, error)
	AddTaskComment(ctx context.Context, id entities.ID, comment CommentInput) (*entities.Task, error)
}

// ProjectGateway defines the project endpoints
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]entities.Project, error)
	GetProject(ctx context.Context, id entities.ID) (*entities.Project, error)
	CreateProject(ctx context.Context, project *entities.Project) (*entities.Project, error)
	UpdateProject(ctx context.Context, id entities.ID, project *entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, id entities.ID) error
	AddProjectComment(ctx context.Context, id entities.ID, comment CommentInput) (*entities.Project, error)
}

// EmployeeGateway defines the employee directory endpoint
type EmployeeGateway interface {
	ListEmployees(ctx context.Context) ([]entities.User, error)
}

// WorkGateway defines the independent work endpoints
type WorkGateway interface {
	CreateWork(ctx context.Context, work *entities.IndependentWork) (*entities.IndependentWork, error)
	ListEmployeeWork(ctx context.Context, employeeID entities.ID) ([]entities.IndependentWork, error)
	GetWork(ctx context.Context, id entities.ID) (*entities.IndependentWork, error)
	UpdateWork(ctx context.Context, id entities.ID, work *entities.IndependentWork) (*entities.IndependentWork, error)
	DeleteWork(ctx context.Context, id entities.ID) error
	AddWorkComment(ctx context.Context, id entities.ID, comment CommentInput) (*entities.IndependentWork, error)
}

// CommentInput is the body of every add-comment call
type CommentInput struct {
	UserID    entities.ID       `json:"userId"`
	UserName  string            `json:"userName"`
	UserRole  entities.UserRole `json:"userRole"`
	Content   string            `json:"content"`
	IsVisible bool              `json:"isVisible"`
}

// ExtensionResponse is a manager's decision on an extension request
type ExtensionResponse struct {
	Status          entities.ExtensionStatus `json:"status" validate:"required,oneof=Approved Rejected"`
	ResponseComment string                   `json:"responseComment" validate:"omitempty,max=1000"`
}
