package dashboard

import (
	"strings"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// StatusFilter selects tasks by lifecycle state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
	StatusOverdue   StatusFilter = "overdue"
)

// SourceFilter selects tasks by who created them. Only employees see it.
type SourceFilter string

const (
	SourceAll      SourceFilter = "all"
	SourceDirector SourceFilter = "director"
	SourceSelf     SourceFilter = "self"
)

// PriorityAll disables the priority filter.
const PriorityAll entities.Priority = "all"

// TaskSelection is the set of filters active in a task table.
type TaskSelection struct {
	Status   StatusFilter      `json:"status" query:"status"`
	Priority entities.Priority `json:"priority" query:"priority"`
	Source   SourceFilter      `json:"source" query:"source"`
	Search   string            `json:"search" query:"q"`
}

// ProjectSelection is the set of filters active in a project table.
type ProjectSelection struct {
	Status entities.ProjectStatus `json:"status" query:"status"`
	Search string                 `json:"search" query:"q"`
}

// TaskPredicate decides whether a task stays in the list.
type TaskPredicate func(t *entities.Task) bool

// TaskPipeline is an ordered chain of predicates. A task is kept only when
// every predicate passes; order of the input is preserved.
type TaskPipeline struct {
	predicates []TaskPredicate
}

// NewTaskPipeline builds the pipeline for a viewer and selection. users is
// the loaded user list used to resolve task creators' roles.
func NewTaskPipeline(viewer entities.Viewer, users []entities.User, sel TaskSelection, now time.Time) *TaskPipeline {
	p := &TaskPipeline{}

	if viewer.IsEmployee() {
		p.predicates = append(p.predicates, func(t *entities.Task) bool {
			return t.IsAssignedTo(viewer.ID)
		})
	}

	if pred := statusPredicate(sel.Status, now); pred != nil {
		p.predicates = append(p.predicates, pred)
	}

	if pred := priorityPredicate(sel.Priority); pred != nil {
		p.predicates = append(p.predicates, pred)
	}

	if viewer.IsEmployee() {
		if pred := sourcePredicate(sel.Source, viewer, users); pred != nil {
			p.predicates = append(p.predicates, pred)
		}
	}

	if pred := searchPredicate(sel.Search); pred != nil {
		p.predicates = append(p.predicates, pred)
	}

	return p
}

// Apply returns the tasks that pass every predicate, in input order.
func (p *TaskPipeline) Apply(tasks []entities.Task) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	for i := range tasks {
		if p.Match(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// Match reports whether a single task passes the pipeline.
func (p *TaskPipeline) Match(t *entities.Task) bool {
	for _, pred := range p.predicates {
		if !pred(t) {
			return false
		}
	}
	return true
}

// FilterTasks is a shorthand for building and applying a pipeline.
func FilterTasks(tasks []entities.Task, viewer entities.Viewer, users []entities.User, sel TaskSelection, now time.Time) []entities.Task {
	return NewTaskPipeline(viewer, users, sel, now).Apply(tasks)
}

func statusPredicate(status StatusFilter, now time.Time) TaskPredicate {
	switch status {
	case StatusCompleted:
		return func(t *entities.Task) bool {
			return t.Status == entities.TaskStatusCompleted
		}
	case StatusPending:
		return func(t *entities.Task) bool {
			return t.Status == entities.TaskStatusPending || t.Status == entities.TaskStatusInProgress
		}
	case StatusOverdue:
		return func(t *entities.Task) bool {
			return t.IsOverdue(now)
		}
	default:
		return nil
	}
}

func priorityPredicate(priority entities.Priority) TaskPredicate {
	switch priority {
	case "", PriorityAll:
		return nil
	case entities.PriorityCustom:
		return func(t *entities.Task) bool {
			return !t.Priority.IsNamed()
		}
	default:
		return func(t *entities.Task) bool {
			return t.Priority == priority
		}
	}
}

func sourcePredicate(source SourceFilter, viewer entities.Viewer, users []entities.User) TaskPredicate {
	switch source {
	case SourceDirector:
		directors := make(map[entities.ID]struct{})
		for _, u := range users {
			if u.Role == entities.UserRoleDirector {
				directors[u.ID] = struct{}{}
			}
		}
		return func(t *entities.Task) bool {
			if t.CreatedBy == "" {
				return false
			}
			_, ok := directors[t.CreatedBy]
			return ok
		}
	case SourceSelf:
		return func(t *entities.Task) bool {
			return t.CreatedBy.Matches(viewer.ID)
		}
	default:
		return nil
	}
}

func searchPredicate(search string) TaskPredicate {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil
	}
	return func(t *entities.Task) bool {
		return containsFold(t.Title, needle) ||
			containsFold(t.Description, needle) ||
			containsFold(t.ProjectName, needle) ||
			containsFold(t.CreatedByName, needle)
	}
}

// FilterProjects applies role scope, status and search to a project list.
func FilterProjects(projects []entities.Project, viewer entities.Viewer, sel ProjectSelection) []entities.Project {
	needle := strings.ToLower(strings.TrimSpace(sel.Search))
	scoped := ScopeProjects(projects, viewer)

	out := make([]entities.Project, 0, len(scoped))
	for i := range scoped {
		p := &scoped[i]
		if sel.Status != "" && string(sel.Status) != string(StatusAll) && p.EffectiveStatus() != sel.Status {
			continue
		}
		if needle != "" && !containsFold(p.Name, needle) && !containsFold(p.Description, needle) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func containsFold(haystack, lowerNeedle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
