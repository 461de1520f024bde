package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/dashboard"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func mustDate(t *testing.T, s string) entities.Date {
	t.Helper()
	d, err := entities.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLoad_GatewayFailureDefaultsToEmpty(t *testing.T) {
	env := newTestEnv(&fakeGateway{listErr: errGatewayDown})

	snap := env.dashboard.Load(context.Background(), director)
	assert.NotNil(t, snap.Tasks)
	assert.Empty(t, snap.Tasks)
	assert.NotNil(t, snap.Projects)
	assert.Empty(t, snap.Projects)
	assert.NotNil(t, snap.Employees)
	assert.Len(t, snap.Warnings, 3)
}

func TestLoad_ServesFromCacheAfterFirstFetch(t *testing.T) {
	gw := &fakeGateway{
		tasks:    []entities.Task{{ID: "t1"}},
		projects: []entities.Project{{ID: "p1"}},
	}
	env := newTestEnv(gw)
	ctx := context.Background()

	env.dashboard.Load(ctx, director)
	first := gw.listCalls.Load()
	snap := env.dashboard.Load(ctx, director)

	assert.Equal(t, first, gw.listCalls.Load())
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Projects, 1)
}

func TestFilteredTasks_OverdueForEmployee(t *testing.T) {
	gw := &fakeGateway{tasks: []entities.Task{
		{ID: "t1", Title: "late", Status: entities.TaskStatusPending, AssigneeIDs: []entities.ID{"e1"}, DueDate: mustDate(t, "2020-01-01")},
		{ID: "t2", Title: "done", Status: entities.TaskStatusCompleted, AssigneeIDs: []entities.ID{"e1"}, DueDate: mustDate(t, "2020-01-01")},
		{ID: "t3", Title: "other", Status: entities.TaskStatusPending, AssigneeIDs: []entities.ID{"e2"}, DueDate: mustDate(t, "2020-01-01")},
	}}
	env := newTestEnv(gw)
	env.dashboard.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	snap := env.dashboard.FilteredTasks(context.Background(), employee, dashboard.TaskSelection{Status: dashboard.StatusOverdue})
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, entities.ID("t1"), snap.Tasks[0].ID)
}

func TestStats_EmployeeBreakdown(t *testing.T) {
	gw := &fakeGateway{tasks: []entities.Task{
		{ID: "t1", Priority: entities.PriorityUrgent, Status: entities.TaskStatusPending, AssigneeIDs: []entities.ID{"e1"}},
		{ID: "t2", Priority: entities.PriorityFreeTime, Status: entities.TaskStatusCompleted, AssigneeIDs: []entities.ID{"e1"}},
	}}
	env := newTestEnv(gw)

	view := env.dashboard.Stats(context.Background(), employee)
	assert.Equal(t, 2, view.Stats.TotalTasks)
	assert.Equal(t, 1, view.Stats.CompletedTasks)
	require.NotNil(t, view.Breakdown)
	assert.Equal(t, 1, view.Breakdown.Urgent)
	assert.Equal(t, 1, view.Breakdown.FreeTime)
	assert.Equal(t, 1, view.Breakdown.Completed)

	assert.Nil(t, env.dashboard.Stats(context.Background(), director).Breakdown)
}

func TestProjectService_ProgressCompletes(t *testing.T) {
	gw := &fakeGateway{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusActive, AssignedEmployeeID: "h1"}}}
	env := newTestEnv(gw)
	ctx := context.Background()

	_, err := env.projects.UpdateProgress(ctx, projectHead, "p1", 120)
	assert.ErrorIs(t, err, entities.ErrInvalidProgress)

	updated, err := env.projects.UpdateProgress(ctx, projectHead, "p1", 100)
	require.NoError(t, err)
	assert.Equal(t, entities.ProjectStatusCompleted, updated.Status)

	_, err = env.projects.UpdateProgress(ctx, employee, "p1", 50)
	assert.ErrorIs(t, err, entities.ErrForbidden)
}

func TestProjectService_CreateNeedsManager(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	req := ports.CreateProjectRequest{Name: "Villa", AssignedEmployeeID: "h1"}

	_, err := env.projects.CreateProject(context.Background(), employee, req)
	assert.ErrorIs(t, err, entities.ErrForbidden)

	created, err := env.projects.CreateProject(context.Background(), director, req)
	require.NoError(t, err)
	assert.Equal(t, entities.ProjectStatusActive, created.Status)
}

func TestProjectService_HeadCannotRenameForeignProject(t *testing.T) {
	gw := &fakeGateway{projects: []entities.Project{{ID: "p1", Name: "Villa", AssignedEmployeeID: "h2"}}}
	env := newTestEnv(gw)
	name := "Renamed"

	_, err := env.projects.UpdateProject(context.Background(), projectHead, "p1", ports.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, entities.ErrForbidden)
}

func TestWorkService_EmployeeScope(t *testing.T) {
	gw := &fakeGateway{works: []entities.IndependentWork{{ID: "w1", EmployeeID: "e2"}}}
	env := newTestEnv(gw)
	ctx := context.Background()

	_, err := env.works.ListEmployeeWork(ctx, employee, "e2")
	assert.ErrorIs(t, err, entities.ErrForbidden)

	works, err := env.works.ListEmployeeWork(ctx, director, "e2")
	require.NoError(t, err)
	assert.Len(t, works, 1)

	_, err = env.works.GetWork(ctx, employee, "w1")
	assert.ErrorIs(t, err, entities.ErrForbidden)

	created, err := env.works.CreateWork(ctx, employee, ports.CreateWorkRequest{
		Date:        "2024-03-01",
		Description: "Site survey",
		Category:    "Site",
		TimeSpent:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, employee.ID, created.EmployeeID)

	_, err = env.works.CreateWork(ctx, employee, ports.CreateWorkRequest{Date: "2024-03-01", Description: "x", Category: "Gardening", TimeSpent: 1})
	assert.True(t, IsValidationError(err))
}
