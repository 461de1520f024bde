package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// The gateway sends ids under "id" or under the persistence key "_id".
// Every wire type embeds wireID and is converted to its entity right after
// decoding, so nothing past this package ever looks at "_id".

type wireID struct {
	ID    entities.ID `json:"id"`
	AltID entities.ID `json:"_id"`
}

func (w wireID) canonical() entities.ID {
	if w.ID != "" {
		return w.ID
	}
	return w.AltID
}

// wireDate decodes leniently. A value that is not a parseable date string
// decodes as unset and keeps its raw form for the decode warning.
type wireDate struct {
	entities.Date
	raw string
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	*d = wireDate{}
	if err := d.Date.UnmarshalJSON(data); err != nil {
		d.raw = string(bytes.TrimSpace(data))
	}
	return nil
}

// dateReporter lists the dates a decoded payload had to drop.
type dateReporter interface {
	badDates() []string
}

func appendBadDate(out []string, id entities.ID, field string, d wireDate) []string {
	if d.raw == "" {
		return out
	}
	return append(out, fmt.Sprintf("%s %s=%s", id, field, d.raw))
}

type wireComment struct {
	wireID
	UserID    entities.ID       `json:"userId"`
	UserName  string            `json:"userName"`
	UserRole  entities.UserRole `json:"userRole"`
	Content   string            `json:"content"`
	Timestamp string            `json:"timestamp"`
	IsVisible *bool             `json:"isVisible"`
}

func (w wireComment) toEntity() entities.Comment {
	visible := true
	if w.IsVisible != nil {
		visible = *w.IsVisible
	}
	return entities.Comment{
		ID:         w.canonical(),
		AuthorID:   w.UserID,
		AuthorName: w.UserName,
		AuthorRole: w.UserRole,
		Content:    w.Content,
		Timestamp:  w.Timestamp,
		IsVisible:  visible,
	}
}

func toComments(in []wireComment) []entities.Comment {
	out := make([]entities.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, c.toEntity())
	}
	return out
}

type wireExtension struct {
	ProposedDeadline wireDate                 `json:"proposedDeadline"`
	Reason           string                   `json:"reason"`
	Status           entities.ExtensionStatus `json:"status"`
	ResponseComment  string                   `json:"responseComment"`
}

type wireTask struct {
	wireID
	Title                   string                           `json:"title"`
	Description             string                           `json:"description"`
	Priority                entities.Priority                `json:"priority"`
	Status                  entities.TaskStatus              `json:"status"`
	AssignedTo              entities.ID                      `json:"assignedTo"`
	AssignedToName          string                           `json:"assignedToName"`
	AssigneeIDs             []entities.ID                    `json:"assignees"`
	AssigneeNames           []string                         `json:"assigneeNames"`
	CreatedBy               entities.ID                      `json:"createdBy"`
	CreatedByName           string                           `json:"createdByName"`
	ProjectID               entities.ID                      `json:"projectId"`
	ProjectName             string                           `json:"projectName"`
	DueDate                 wireDate                         `json:"dueDate"`
	StartDate               wireDate                         `json:"startDate"`
	ReminderDate            wireDate                         `json:"reminderDate"`
	WorkDone                int                              `json:"workDone"`
	NeedsDirectorInput      bool                             `json:"needsDirectorInput"`
	ExtensionRequest        *wireExtension                   `json:"extensionRequest"`
	Comments                []wireComment                    `json:"comments"`
	CompletionRequestStatus entities.CompletionRequestStatus `json:"completionRequestStatus"`
	IsEmployeeCreated       bool                             `json:"isEmployeeCreated"`
}

func (w wireTask) toEntity() entities.Task {
	t := entities.Task{
		ID:                      w.canonical(),
		Title:                   w.Title,
		Description:             w.Description,
		Priority:                w.Priority,
		Status:                  w.Status,
		AssignedTo:              w.AssignedTo,
		AssignedToName:          w.AssignedToName,
		AssigneeIDs:             w.AssigneeIDs,
		AssigneeNames:           w.AssigneeNames,
		CreatedBy:               w.CreatedBy,
		CreatedByName:           w.CreatedByName,
		ProjectID:               w.ProjectID,
		ProjectName:             w.ProjectName,
		DueDate:                 w.DueDate.Date,
		StartDate:               w.StartDate.Date,
		ReminderDate:            w.ReminderDate.Date,
		WorkDone:                w.WorkDone,
		NeedsDirectorInput:      w.NeedsDirectorInput,
		Comments:                toComments(w.Comments),
		CompletionRequestStatus: w.CompletionRequestStatus,
		IsEmployeeCreated:       w.IsEmployeeCreated,
	}
	if w.ExtensionRequest != nil {
		t.ExtensionRequest = &entities.ExtensionRequest{
			ProposedDeadline: w.ExtensionRequest.ProposedDeadline.Date,
			Reason:           w.ExtensionRequest.Reason,
			Status:           w.ExtensionRequest.Status,
			ResponseComment:  w.ExtensionRequest.ResponseComment,
		}
	}
	t.NormalizeAssignment()
	return t
}

func (w wireTask) badDates() []string {
	id := w.canonical()
	bad := appendBadDate(nil, id, "dueDate", w.DueDate)
	bad = appendBadDate(bad, id, "startDate", w.StartDate)
	bad = appendBadDate(bad, id, "reminderDate", w.ReminderDate)
	if w.ExtensionRequest != nil {
		bad = appendBadDate(bad, id, "extensionRequest.proposedDeadline", w.ExtensionRequest.ProposedDeadline)
	}
	return bad
}

type wireProject struct {
	wireID
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	AssignedEmployeeID   entities.ID            `json:"assignedEmployeeId"`
	AssignedEmployeeName string                 `json:"assignedEmployeeName"`
	Status               entities.ProjectStatus `json:"status"`
	StartDate            wireDate               `json:"startDate"`
	Progress             int                    `json:"progress"`
	Comments             []wireComment          `json:"comments"`
}

func (w wireProject) toEntity() entities.Project {
	return entities.Project{
		ID:                   w.canonical(),
		Name:                 w.Name,
		Description:          w.Description,
		AssignedEmployeeID:   w.AssignedEmployeeID,
		AssignedEmployeeName: w.AssignedEmployeeName,
		Status:               w.Status,
		StartDate:            w.StartDate.Date,
		Progress:             w.Progress,
		Comments:             toComments(w.Comments),
	}
}

func (w wireProject) badDates() []string {
	return appendBadDate(nil, w.canonical(), "startDate", w.StartDate)
}

type wireUser struct {
	wireID
	Name  string            `json:"name"`
	Email string            `json:"email"`
	Role  entities.UserRole `json:"role"`
}

func (w wireUser) toEntity() entities.User {
	role := w.Role
	if parsed, ok := entities.ParseUserRole(string(w.Role)); ok {
		role = parsed
	}
	return entities.User{
		ID:    w.canonical(),
		Name:  w.Name,
		Email: w.Email,
		Role:  role,
	}
}

type wireAttachment struct {
	wireID
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	Data       string `json:"data"`
	UploadedAt string `json:"uploadedAt"`
}

type wireWork struct {
	wireID
	EmployeeID   entities.ID           `json:"employeeId"`
	EmployeeName string                `json:"employeeName"`
	Date         wireDate              `json:"date"`
	Description  string                `json:"workDescription"`
	Category     entities.WorkCategory `json:"category"`
	TimeSpent    float64               `json:"timeSpent"`
	Attachments  []wireAttachment      `json:"attachments"`
	Comments     []wireComment         `json:"comments"`
}

func (w wireWork) toEntity() entities.IndependentWork {
	attachments := make([]entities.Attachment, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		attachments = append(attachments, entities.Attachment{
			ID:         a.canonical(),
			Filename:   a.Filename,
			MimeType:   a.MimeType,
			Size:       a.Size,
			Data:       a.Data,
			UploadedAt: a.UploadedAt,
		})
	}
	return entities.IndependentWork{
		ID:           w.canonical(),
		EmployeeID:   w.EmployeeID,
		EmployeeName: w.EmployeeName,
		Date:         w.Date.Date,
		Description:  w.Description,
		Category:     w.Category,
		TimeSpent:    w.TimeSpent,
		Attachments:  attachments,
		Comments:     toComments(w.Comments),
	}
}

func (w wireWork) badDates() []string {
	return appendBadDate(nil, w.canonical(), "date", w.Date)
}

// envelope lets list endpoints answer with a bare array or with an object
// wrapping the array under a known key.
type envelope[T any] struct {
	items []T
}

func (e *envelope[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		e.items = nil
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, &e.items)
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	for _, key := range []string{"data", "items", "tasks", "projects", "employees", "works"} {
		if raw, ok := wrapped[key]; ok {
			return json.Unmarshal(raw, &e.items)
		}
	}
	e.items = nil
	return nil
}

func (e *envelope[T]) badDates() []string {
	var bad []string
	for _, item := range e.items {
		if r, ok := any(item).(dateReporter); ok {
			bad = append(bad, r.badDates()...)
		}
	}
	return bad
}

// single accepts an entity object either bare or wrapped under a known key.
type single[T any] struct {
	item T
}

func (s *single[T]) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	_, hasID := probe["id"]
	_, hasAltID := probe["_id"]
	if !hasID && !hasAltID {
		for _, key := range []string{"data", "task", "project", "work", "item"} {
			if raw, ok := probe[key]; ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '{' {
				return json.Unmarshal(raw, &s.item)
			}
		}
	}
	return json.Unmarshal(data, &s.item)
}

func (s *single[T]) badDates() []string {
	if r, ok := any(s.item).(dateReporter); ok {
		return r.badDates()
	}
	return nil
}
