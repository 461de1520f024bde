package dashboard

import (
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	PendingTasks    int `json:"pendingTasks"`
	OverdueTasks    int `json:"overdueTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	TotalProjects   int `json:"totalProjects"`
	ActiveProjects  int `json:"activeProjects"`
	// ActiveEmployees stays 0: this view has no employee roster.
	ActiveEmployees int `json:"activeEmployees"`
}

// EmployeeBreakdown counts an employee's own tasks by priority.
type EmployeeBreakdown struct {
	Urgent     int `json:"urgent"`
	LessUrgent int `json:"lessUrgent"`
	FreeTime   int `json:"freeTime"`
	Completed  int `json:"completed"`
}

// ComputeStats recomputes every counter from the full in-memory snapshot.
func ComputeStats(tasks []entities.Task, projects []entities.Project, viewer entities.Viewer, now time.Time) Stats {
	scopedTasks, scopedProjects := statsScope(tasks, projects, viewer)

	var s Stats
	s.TotalTasks = len(scopedTasks)
	for i := range scopedTasks {
		t := &scopedTasks[i]
		switch t.Status {
		case entities.TaskStatusCompleted:
			s.CompletedTasks++
		case entities.TaskStatusPending:
			s.PendingTasks++
		case entities.TaskStatusInProgress:
			s.InProgressTasks++
		}
		if t.IsOverdue(now) {
			s.OverdueTasks++
		}
	}

	s.TotalProjects = len(scopedProjects)
	for i := range scopedProjects {
		if scopedProjects[i].IsActive() {
			s.ActiveProjects++
		}
	}

	return s
}

// ComputeEmployeeBreakdown counts the tasks assigned to the viewer,
// independent of the viewer's role.
func ComputeEmployeeBreakdown(tasks []entities.Task, viewer entities.Viewer) EmployeeBreakdown {
	var b EmployeeBreakdown
	for i := range tasks {
		t := &tasks[i]
		if !t.IsAssignedTo(viewer.ID) {
			continue
		}
		switch t.Priority {
		case entities.PriorityUrgent:
			b.Urgent++
		case entities.PriorityLessUrgent:
			b.LessUrgent++
		case entities.PriorityFreeTime:
			b.FreeTime++
		}
		if t.IsCompleted() {
			b.Completed++
		}
	}
	return b
}
