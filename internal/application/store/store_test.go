package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/adapters/cache"
	"github.com/taskmaster/dashboard/internal/domain/entities"
)

func newTestStore() *Store {
	return New(cache.NewMemoryCache(), 0, nil)
}

func TestStore_TaskListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	tasks := []entities.Task{{ID: "t2", Title: "b"}, {ID: "t1", Title: "a"}, {Title: "no id"}}
	require.NoError(t, s.PutTasks(ctx, "all", tasks))

	got, err := s.Tasks(ctx, "all")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entities.ID("t2"), got[0].ID)
	assert.Equal(t, entities.ID("t1"), got[1].ID)
}

func TestStore_PutTaskVisibleThroughList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.PutTasks(ctx, "all", []entities.Task{{ID: "t1", Title: "old"}}))

	require.NoError(t, s.PutTask(ctx, &entities.Task{ID: "t1", Title: "new"}))

	got, err := s.Tasks(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, "new", got[0].Title)
}

func TestStore_InvalidateDropsEveryScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.PutTasks(ctx, "all", []entities.Task{{ID: "t1"}}))
	require.NoError(t, s.PutTasks(ctx, "user:u1", []entities.Task{{ID: "t1"}}))

	require.NoError(t, s.InvalidateTasks(ctx))

	_, err := s.Tasks(ctx, "all")
	assert.True(t, IsMiss(err))
	_, err = s.Tasks(ctx, "user:u1")
	assert.True(t, IsMiss(err))

	task, err := s.Task(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, entities.ID("t1"), task.ID)
}

func TestStore_DeleteProject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.PutProjects(ctx, []entities.Project{{ID: "p1"}, {ID: "p2"}}))

	require.NoError(t, s.DeleteProject(ctx, "p1"))

	_, err := s.Project(ctx, "p1")
	assert.True(t, IsMiss(err))
	_, err = s.Projects(ctx)
	assert.True(t, IsMiss(err))
}

func TestStore_PutWithoutID(t *testing.T) {
	s := newTestStore()
	assert.ErrorIs(t, s.PutTask(context.Background(), &entities.Task{}), entities.ErrMissingID)
	assert.ErrorIs(t, s.PutWork(context.Background(), &entities.IndependentWork{}), entities.ErrMissingID)
}

func TestTaskScope(t *testing.T) {
	assert.Equal(t, "all", TaskScope(entities.Viewer{ID: "d1", Role: entities.UserRoleDirector}))
	assert.Equal(t, "all", TaskScope(entities.Viewer{ID: "h1", Role: entities.UserRoleProjectHead}))
	assert.Equal(t, "user:e1", TaskScope(entities.Viewer{ID: "e1", Role: entities.UserRoleEmployee}))
}
