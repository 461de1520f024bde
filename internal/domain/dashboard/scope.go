// Package dashboard holds the pure list derivations behind the dashboard:
// role scoping, the filter pipelines and the derived counters.
package dashboard

import (
	"github.com/taskmaster/dashboard/internal/domain/entities"
)

// ScopeTasks applies the role scope used by the task lists: employees see
// tasks assigned to them, directors and project heads see everything.
func ScopeTasks(tasks []entities.Task, viewer entities.Viewer) []entities.Task {
	if !viewer.IsEmployee() {
		return tasks
	}
	out := make([]entities.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].IsAssignedTo(viewer.ID) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// ScopeProjects applies the role scope used by the project lists.
func ScopeProjects(projects []entities.Project, viewer entities.Viewer) []entities.Project {
	if !viewer.IsEmployee() {
		return projects
	}
	out := make([]entities.Project, 0, len(projects))
	for i := range projects {
		if projects[i].AssignedEmployeeID.Matches(viewer.ID) {
			out = append(out, projects[i])
		}
	}
	return out
}

// ownedProjects returns the projects a project head is assigned to, and
// the set of their ids.
func ownedProjects(projects []entities.Project, viewer entities.Viewer) ([]entities.Project, map[entities.ID]struct{}) {
	owned := make([]entities.Project, 0, len(projects))
	ids := make(map[entities.ID]struct{})
	for i := range projects {
		if projects[i].AssignedEmployeeID.Matches(viewer.ID) {
			owned = append(owned, projects[i])
			ids[projects[i].ID] = struct{}{}
		}
	}
	return owned, ids
}

// statsScope is the scope the counters are computed over. Project heads
// are limited to the projects they own and the tasks inside them, which
// is narrower than what their task table shows.
func statsScope(tasks []entities.Task, projects []entities.Project, viewer entities.Viewer) ([]entities.Task, []entities.Project) {
	switch viewer.Role {
	case entities.UserRoleDirector:
		return tasks, projects
	case entities.UserRoleEmployee:
		return ScopeTasks(tasks, viewer), ScopeProjects(projects, viewer)
	case entities.UserRoleProjectHead:
		owned, ids := ownedProjects(projects, viewer)
		scoped := make([]entities.Task, 0, len(tasks))
		for i := range tasks {
			if _, ok := ids[tasks[i].ProjectID]; ok && tasks[i].ProjectID != "" {
				scoped = append(scoped, tasks[i])
			}
		}
		return scoped, owned
	default:
		return nil, nil
	}
}
