package ports

import (
	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// Request/Response Types

// Task related types
type CreateTaskRequest struct {
	Title              string            `json:"title" validate:"required,max=200"`
	Description        string            `json:"description" validate:"omitempty,max=5000"`
	Priority           entities.Priority `json:"priority" validate:"required,max=50"`
	Status             string            `json:"status" validate:"omitempty,taskstatus"`
	AssigneeIDs        []entities.ID     `json:"assignees" validate:"required,min=1,dive,required"`
	AssigneeNames      []string          `json:"assigneeNames"`
	ProjectID          entities.ID       `json:"projectId"`
	ProjectName        string            `json:"projectName"`
	DueDate            string            `json:"dueDate" validate:"required,isodate"`
	StartDate          string            `json:"startDate" validate:"omitempty,isodate"`
	ReminderDate       string            `json:"reminderDate" validate:"omitempty,isodate"`
	WorkDone           int               `json:"workDone" validate:"workdone"`
	NeedsDirectorInput bool              `json:"needsDirectorInput"`
}

type UpdateTaskRequest struct {
	Title              *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description        *string            `json:"description" validate:"omitempty,max=5000"`
	Priority           *entities.Priority `json:"priority" validate:"omitempty,min=1,max=50"`
	AssigneeIDs        []entities.ID      `json:"assignees" validate:"omitempty,min=1,dive,required"`
	AssigneeNames      []string           `json:"assigneeNames"`
	ProjectID          *entities.ID       `json:"projectId"`
	ProjectName        *string            `json:"projectName"`
	DueDate            *string            `json:"dueDate" validate:"omitempty,isodate"`
	StartDate          *string            `json:"startDate" validate:"omitempty,isodate"`
	ReminderDate       *string            `json:"reminderDate" validate:"omitempty,isodate"`
	NeedsDirectorInput *bool              `json:"needsDirectorInput"`
}

type TaskProgressRequest struct {
	Status   string `json:"status" validate:"required,taskstatus"`
	WorkDone *int   `json:"workDone" validate:"omitempty,workdone"`
}

type ExtensionRequestInput struct {
	ProposedDeadline string `json:"proposedDeadline" validate:"required,isodate"`
	Reason           string `json:"reason" validate:"required,max=1000"`
}

// Project related types
type CreateProjectRequest struct {
	Name                 string      `json:"name" validate:"required,max=200"`
	Description          string      `json:"description" validate:"omitempty,max=5000"`
	AssignedEmployeeID   entities.ID `json:"assignedEmployeeId" validate:"required"`
	AssignedEmployeeName string      `json:"assignedEmployeeName"`
	Status               string      `json:"status" validate:"omitempty,projectstatus"`
	StartDate            string      `json:"startDate" validate:"omitempty,isodate"`
	Progress             int         `json:"progress" validate:"min=0,max=100"`
}

type UpdateProjectRequest struct {
	Name                 *string      `json:"name" validate:"omitempty,min=1,max=200"`
	Description          *string      `json:"description" validate:"omitempty,max=5000"`
	AssignedEmployeeID   *entities.ID `json:"assignedEmployeeId"`
	AssignedEmployeeName *string      `json:"assignedEmployeeName"`
	Status               *string      `json:"status" validate:"omitempty,projectstatus"`
	StartDate            *string      `json:"startDate" validate:"omitempty,isodate"`
	Progress             *int         `json:"progress" validate:"omitempty,min=0,max=100"`
}

// Independent work related types
type CreateWorkRequest struct {
	Date        string                `json:"date" validate:"required,isodate"`
	Description string                `json:"workDescription" validate:"required,max=5000"`
	Category    string                `json:"category" validate:"required,workcategory"`
	TimeSpent   float64               `json:"timeSpent" validate:"required,gt=0,lte=24"`
	Attachments []entities.Attachment `json:"attachments" validate:"omitempty,max=10"`
}

type UpdateWorkRequest struct {
	Date        *string               `json:"date" validate:"omitempty,isodate"`
	Description *string               `json:"workDescription" validate:"omitempty,min=1,max=5000"`
	Category    *string               `json:"category" validate:"omitempty,workcategory"`
	TimeSpent   *float64              `json:"timeSpent" validate:"omitempty,gt=0,lte=24"`
	Attachments []entities.Attachment `json:"attachments" validate:"omitempty,max=10"`
}

// Comment related types
type AddCommentRequest struct {
	Content string `json:"content"`
}

// Response types for common structures
type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CommentFailureResponse carries the comment text back to the caller so
// it can be put back into the input field.
type CommentFailureResponse struct {
	Message string `json:"message"`
	Draft   string `json:"draft"`
}
