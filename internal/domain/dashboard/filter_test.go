package dashboard

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

var (
	now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	director    = entities.Viewer{ID: "d1", Name: "Dana", Role: entities.UserRoleDirector}
	projectHead = entities.Viewer{ID: "h1", Name: "Hugo", Role: entities.UserRoleProjectHead}
	employee    = entities.Viewer{ID: "e1", Name: "Eve", Role: entities.UserRoleEmployee}

	users = []entities.User{
		{ID: "d1", Name: "Dana", Role: entities.UserRoleDirector},
		{ID: "h1", Name: "Hugo", Role: entities.UserRoleProjectHead},
		{ID: "e1", Name: "Eve", Role: entities.UserRoleEmployee},
	}
)

func date(t *testing.T, s string) entities.Date {
	t.Helper()
	d, err := entities.ParseDate(s)
	require.NoError(t, err)
	return d
}

func ids(tasks []entities.Task) []entities.ID {
	out := make([]entities.ID, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func sampleTasks(t *testing.T) []entities.Task {
	return []entities.Task{
		{ID: "t1", Title: "Draw plans", Priority: entities.PriorityUrgent, Status: entities.TaskStatusPending, AssigneeIDs: []entities.ID{"e1"}, CreatedBy: "d1", DueDate: date(t, "2020-01-01")},
		{ID: "t2", Title: "Order tiles", Priority: "Budget", Status: entities.TaskStatusInProgress, AssigneeIDs: []entities.ID{"e1"}, CreatedBy: "e1", IsEmployeeCreated: true, DueDate: date(t, "2030-01-01"), ProjectName: "Villa"},
		{ID: "t3", Title: "Sign off", Priority: entities.PriorityLessUrgent, Status: entities.TaskStatusCompleted, AssigneeIDs: []entities.ID{"e1"}, CreatedBy: "h1", DueDate: date(t, "2020-01-01")},
		{ID: "t4", Title: "Survey", Priority: entities.PriorityFreeTime, Status: entities.TaskStatusPending, AssigneeIDs: []entities.ID{"e2"}, CreatedBy: "d1", Description: "north plot"},
	}
}

func TestFilterTasks_OverdueScenario(t *testing.T) {
	tasks := []entities.Task{
		{ID: "a", Status: entities.TaskStatusPending, DueDate: date(t, "2020-01-01")},
		{ID: "b", Status: entities.TaskStatusCompleted, DueDate: date(t, "2020-01-01")},
	}
	got := FilterTasks(tasks, director, users, TaskSelection{Status: StatusOverdue}, now)
	assert.Equal(t, []entities.ID{"a"}, ids(got))
}

func TestFilterTasks_CustomPriority(t *testing.T) {
	got := FilterTasks(sampleTasks(t), director, users, TaskSelection{Priority: entities.PriorityCustom}, now)
	assert.Equal(t, []entities.ID{"t2"}, ids(got))
}

func TestFilterTasks_EmployeeScope(t *testing.T) {
	got := FilterTasks(sampleTasks(t), employee, users, TaskSelection{}, now)
	assert.Equal(t, []entities.ID{"t1", "t2", "t3"}, ids(got))

	// managers see everything in their table
	got = FilterTasks(sampleTasks(t), projectHead, users, TaskSelection{}, now)
	assert.Len(t, got, 4)
}

func TestFilterTasks_Status(t *testing.T) {
	tasks := sampleTasks(t)
	assert.Equal(t, []entities.ID{"t3"}, ids(FilterTasks(tasks, director, users, TaskSelection{Status: StatusCompleted}, now)))
	assert.Equal(t, []entities.ID{"t1", "t2", "t4"}, ids(FilterTasks(tasks, director, users, TaskSelection{Status: StatusPending}, now)))
	assert.Equal(t, []entities.ID{"t1"}, ids(FilterTasks(tasks, director, users, TaskSelection{Status: StatusOverdue}, now)))
}

func TestFilterTasks_Source(t *testing.T) {
	tasks := sampleTasks(t)
	assert.Equal(t, []entities.ID{"t1"}, ids(FilterTasks(tasks, employee, users, TaskSelection{Source: SourceDirector}, now)))
	assert.Equal(t, []entities.ID{"t2"}, ids(FilterTasks(tasks, employee, users, TaskSelection{Source: SourceSelf}, now)))

	// source is ignored for managers
	assert.Len(t, FilterTasks(tasks, director, users, TaskSelection{Source: SourceSelf}, now), 4)
}

func TestFilterTasks_Search(t *testing.T) {
	tasks := sampleTasks(t)
	assert.Equal(t, []entities.ID{"t2"}, ids(FilterTasks(tasks, director, users, TaskSelection{Search: "VILLA"}, now)))
	assert.Equal(t, []entities.ID{"t4"}, ids(FilterTasks(tasks, director, users, TaskSelection{Search: "north"}, now)))
	assert.Empty(t, FilterTasks(tasks, director, users, TaskSelection{Search: "nothing"}, now))
}

func TestFilterTasks_Idempotent(t *testing.T) {
	sel := TaskSelection{Status: StatusPending, Priority: entities.PriorityUrgent, Search: "plans"}
	once := FilterTasks(sampleTasks(t), employee, users, sel, now)
	twice := FilterTasks(once, employee, users, sel, now)
	assert.Empty(t, cmp.Diff(once, twice))
}

func TestFilterTasks_CompletedNeverOverdue(t *testing.T) {
	for _, task := range FilterTasks(sampleTasks(t), director, users, TaskSelection{Status: StatusOverdue}, now) {
		assert.NotEqual(t, entities.TaskStatusCompleted, task.Status)
	}
}

func TestFilterProjects(t *testing.T) {
	projects := []entities.Project{
		{ID: "p1", Name: "Villa", Status: entities.ProjectStatusActive, Progress: 100, AssignedEmployeeID: "e1"},
		{ID: "p2", Name: "Office", Status: entities.ProjectStatusActive, Progress: 40, AssignedEmployeeID: "h1", Description: "fit-out"},
		{ID: "p3", Name: "Garden", Status: entities.ProjectStatusOnHold, AssignedEmployeeID: "e2"},
	}

	completed := FilterProjects(projects, director, ProjectSelection{Status: entities.ProjectStatusCompleted})
	require.Len(t, completed, 1)
	assert.Equal(t, entities.ID("p1"), completed[0].ID)

	active := FilterProjects(projects, director, ProjectSelection{Status: entities.ProjectStatusActive})
	require.Len(t, active, 1)
	assert.Equal(t, entities.ID("p2"), active[0].ID)

	mine := FilterProjects(projects, employee, ProjectSelection{})
	require.Len(t, mine, 1)
	assert.Equal(t, entities.ID("p1"), mine[0].ID)

	found := FilterProjects(projects, director, ProjectSelection{Search: "FIT"})
	require.Len(t, found, 1)
	assert.Equal(t, entities.ID("p2"), found[0].ID)
}
