package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

func TestComputeStats_Director(t *testing.T) {
	tasks := append(sampleTasks(t), entities.Task{ID: "t5", Status: "Blocked"})
	projects := []entities.Project{
		{ID: "p1", Status: entities.ProjectStatusActive},
		{ID: "p2", Status: entities.ProjectStatusActive, Progress: 100},
	}

	s := ComputeStats(tasks, projects, director, now)
	assert.Equal(t, 5, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 2, s.PendingTasks)
	assert.Equal(t, 1, s.InProgressTasks)
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 2, s.TotalProjects)
	assert.Equal(t, 1, s.ActiveProjects)
	assert.Zero(t, s.ActiveEmployees)

	// an unknown status keeps the sum below the total
	assert.Less(t, s.CompletedTasks+s.PendingTasks+s.InProgressTasks, s.TotalTasks)
}

func TestComputeStats_Employee(t *testing.T) {
	s := ComputeStats(sampleTasks(t), nil, employee, now)
	assert.Equal(t, 3, s.TotalTasks)
	assert.LessOrEqual(t, s.CompletedTasks+s.PendingTasks+s.InProgressTasks, s.TotalTasks)
}

func TestComputeStats_ProjectHeadOwnedProjects(t *testing.T) {
	tasks := []entities.Task{
		{ID: "t1", ProjectID: "p1", Status: entities.TaskStatusPending},
		{ID: "t2", ProjectID: "p2", Status: entities.TaskStatusPending},
		{ID: "t3", Status: entities.TaskStatusPending},
	}
	projects := []entities.Project{
		{ID: "p1", AssignedEmployeeID: "h1", Status: entities.ProjectStatusActive},
		{ID: "p2", AssignedEmployeeID: "h2", Status: entities.ProjectStatusActive},
	}

	s := ComputeStats(tasks, projects, projectHead, now)
	assert.Equal(t, 1, s.TotalTasks)
	assert.Equal(t, 1, s.TotalProjects)
	assert.Equal(t, 1, s.ActiveProjects)
}

func TestComputeEmployeeBreakdown(t *testing.T) {
	b := ComputeEmployeeBreakdown(sampleTasks(t), employee)
	assert.Equal(t, EmployeeBreakdown{Urgent: 1, LessUrgent: 1, FreeTime: 0, Completed: 1}, b)
}
