package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrWorkNotFound      = errors.New("independent work entry not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrMissingID         = errors.New("entity id is required")
	ErrEmptyComment      = errors.New("comment text is empty")
	ErrCommentInFlight   = errors.New("a comment for this entity is already being submitted")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrInvalidWorkDone   = errors.New("work done must be between 0 and 100 in steps of 10")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrNoExtensionAsked  = errors.New("task has no pending extension request")
	ErrNoCompletionAsked = errors.New("task has no pending completion request")
)

// Enums and types
type UserRole string

const (
	UserRoleDirector    UserRole = "Director"
	UserRoleProjectHead UserRole = "Project Head"
	UserRoleEmployee    UserRole = "Employee"
)

type Priority string

const (
	PriorityUrgent     Priority = "Urgent"
	PriorityLessUrgent Priority = "Less Urgent"
	PriorityFreeTime   Priority = "Free Time"
	// PriorityCustom is never stored; it selects every priority outside the three named ones.
	PriorityCustom Priority = "Custom"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

type ExtensionStatus string

const (
	ExtensionStatusPending  ExtensionStatus = "Pending"
	ExtensionStatusApproved ExtensionStatus = "Approved"
	ExtensionStatusRejected ExtensionStatus = "Rejected"
)

type CompletionRequestStatus string

const (
	CompletionRequestPending CompletionRequestStatus = "Pending"
	CompletionRequestNone    CompletionRequestStatus = "None"
)

type WorkCategory string

const (
	WorkCategoryDesign WorkCategory = "Design"
	WorkCategorySite   WorkCategory = "Site"
	WorkCategoryOffice WorkCategory = "Office"
	WorkCategoryOther  WorkCategory = "Other"
)

// User is a person who can sign in to the dashboard
type User struct {
	ID    ID       `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Comment is attached to a task, project or independent work entry
type Comment struct {
	ID         ID       `json:"id"`
	AuthorID   ID       `json:"userId"`
	AuthorName string   `json:"userName"`
	AuthorRole UserRole `json:"userRole"`
	Content    string   `json:"content"`
	Timestamp  string   `json:"timestamp"`
	IsVisible  bool     `json:"isVisible"`
}

// ExtensionRequest is an assignee's request to move a task deadline
type ExtensionRequest struct {
	ProposedDeadline Date            `json:"proposedDeadline"`
	Reason           string          `json:"reason"`
	Status           ExtensionStatus `json:"status"`
	ResponseComment  string          `json:"responseComment,omitempty"`
}

// Task represents a task in the system
type Task struct {
	ID                      ID                      `json:"id"`
	Title                   string                  `json:"title"`
	Description             string                  `json:"description"`
	Priority                Priority                `json:"priority"`
	Status                  TaskStatus              `json:"status"`
	AssignedTo              ID                      `json:"assignedTo"`
	AssignedToName          string                  `json:"assignedToName"`
	AssigneeIDs             []ID                    `json:"assignees"`
	AssigneeNames           []string                `json:"assigneeNames"`
	CreatedBy               ID                      `json:"createdBy"`
	CreatedByName           string                  `json:"createdByName"`
	ProjectID               ID                      `json:"projectId,omitempty"`
	ProjectName             string                  `json:"projectName,omitempty"`
	DueDate                 Date                    `json:"dueDate"`
	StartDate               Date                    `json:"startDate"`
	ReminderDate            Date                    `json:"reminderDate"`
	WorkDone                int                     `json:"workDone"`
	NeedsDirectorInput      bool                    `json:"needsDirectorInput"`
	ExtensionRequest        *ExtensionRequest       `json:"extensionRequest,omitempty"`
	Comments                []Comment               `json:"comments"`
	CompletionRequestStatus CompletionRequestStatus `json:"completionRequestStatus,omitempty"`
	IsEmployeeCreated       bool                    `json:"isEmployeeCreated"`
}

// Project represents a project in the system
type Project struct {
	ID                   ID            `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	AssignedEmployeeID   ID            `json:"assignedEmployeeId"`
	AssignedEmployeeName string        `json:"assignedEmployeeName"`
	Status               ProjectStatus `json:"status"`
	StartDate            Date          `json:"startDate"`
	Progress             int           `json:"progress"`
	Comments             []Comment     `json:"comments"`
}

// Attachment is a file uploaded with an independent work entry. The payload
// stays base64 encoded; encoding happens outside this service.
type Attachment struct {
	ID         ID     `json:"id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	Data       string `json:"data"`
	UploadedAt string `json:"uploadedAt"`
}

// IndependentWork is a free-form work log entry by an employee
type IndependentWork struct {
	ID           ID           `json:"id"`
	EmployeeID   ID           `json:"employeeId"`
	EmployeeName string       `json:"employeeName"`
	Date         Date         `json:"date"`
	Description  string       `json:"workDescription"`
	Category     WorkCategory `json:"category"`
	TimeSpent    float64      `json:"timeSpent"`
	Attachments  []Attachment `json:"attachments"`
	Comments     []Comment    `json:"comments"`
}

// Business logic methods for Task

// NormalizeAssignment keeps the list and singular assignment fields in
// step. The singular fields always mirror the first list element; records
// written before the list existed get a one-element list.
func (t *Task) NormalizeAssignment() {
	if len(t.AssigneeIDs) == 0 {
		if t.AssignedTo != "" {
			t.AssigneeIDs = []ID{t.AssignedTo}
			t.AssigneeNames = []string{t.AssignedToName}
		}
		return
	}

	t.AssignedTo = t.AssigneeIDs[0]
	if len(t.AssigneeNames) > 0 {
		t.AssignedToName = t.AssigneeNames[0]
	}
}

// SetAssignees replaces the assignment with the given ids and names.
func (t *Task) SetAssignees(ids []ID, names []string) {
	t.AssigneeIDs = append([]ID(nil), ids...)
	t.AssigneeNames = append([]string(nil), names...)
	t.AssignedTo = ""
	t.AssignedToName = ""
	t.NormalizeAssignment()
}

// IsAssignedTo reports whether userID is one of the task assignees.
func (t *Task) IsAssignedTo(userID ID) bool {
	if userID == "" {
		return false
	}
	if t.AssignedTo.Matches(userID) {
		return true
	}
	for _, id := range t.AssigneeIDs {
		if id.Matches(userID) {
			return true
		}
	}
	return false
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsOverdue reports whether the task is open with a due date before now.
// A task without a due date is never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(now)
}

func (t *Task) HasPendingExtension() bool {
	return t.ExtensionRequest != nil && t.ExtensionRequest.Status == ExtensionStatusPending
}

// Business logic methods for Project

// EffectiveStatus treats a fully progressed project as completed.
func (p *Project) EffectiveStatus() ProjectStatus {
	if p.Progress >= 100 {
		return ProjectStatusCompleted
	}
	return p.Status
}

func (p *Project) IsActive() bool {
	return p.EffectiveStatus() == ProjectStatusActive
}

// Utility methods

// IsNamed reports whether p is one of Urgent, Less Urgent or Free Time.
func (p Priority) IsNamed() bool {
	switch p {
	case PriorityUrgent, PriorityLessUrgent, PriorityFreeTime:
		return true
	default:
		return false
	}
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleDirector, UserRoleProjectHead, UserRoleEmployee:
		return true
	default:
		return false
	}
}

// ParseUserRole accepts the role names with any casing and either a space,
// dash or underscore in "Project Head".
func ParseUserRole(s string) (UserRole, bool) {
	normalized := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s)))
	switch normalized {
	case "director":
		return UserRoleDirector, true
	case "project head":
		return UserRoleProjectHead, true
	case "employee":
		return UserRoleEmployee, true
	default:
		return "", false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

// ValidWorkDone reports whether v is a percentage in steps of 10.
func ValidWorkDone(v int) bool {
	return v >= 0 && v <= 100 && v%10 == 0
}
