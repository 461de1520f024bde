package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
)

func seedProject(t *testing.T, env *testEnv) *entities.Project {
	t.Helper()
	project := &entities.Project{ID: "p1", Name: "Villa", Status: entities.ProjectStatusActive, Comments: []entities.Comment{}}
	env.gateway.projects = []entities.Project{*project}
	require.NoError(t, env.store.PutProject(context.Background(), project))
	return project
}

func TestReconciler_OptimisticThenServerList(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	seedProject(t, env)
	ctx := context.Background()

	var pending *entities.Project
	env.gateway.onComment = func() {
		var err error
		pending, err = env.store.Project(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, StatePending, env.reconciler.State("project", "p1"))
	}

	draft := NewDraft("hello")
	updated, err := env.reconciler.AddProjectComment(ctx, director, "p1", draft)
	require.NoError(t, err)

	// while in flight the cached project held exactly one local comment
	require.NotNil(t, pending)
	require.Len(t, pending.Comments, 1)
	assert.Equal(t, "hello", pending.Comments[0].Content)
	assert.True(t, strings.HasPrefix(pending.Comments[0].ID.String(), LocalIDPrefix))
	assert.Equal(t, director.ID, pending.Comments[0].AuthorID)
	assert.Equal(t, director.Name, pending.Comments[0].AuthorName)

	// the server list replaced it
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, entities.ID("c1"), updated.Comments[0].ID)
	assert.Equal(t, "Villa", updated.Name)

	cached, err := env.store.Project(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(updated, cached))

	assert.Empty(t, draft.Text())
	assert.Equal(t, StateIdle, env.reconciler.State("project", "p1"))
}

func TestReconciler_RollbackRestoresSnapshotAndDraft(t *testing.T) {
	env := newTestEnv(&fakeGateway{commentErr: errGatewayDown})
	before := seedProject(t, env)
	ctx := context.Background()

	draft := NewDraft("hello")
	env.gateway.onComment = func() {
		assert.Empty(t, draft.Text(), "draft is cleared while the submit is in flight")
	}

	_, err := env.reconciler.AddProjectComment(ctx, director, "p1", draft)
	require.Error(t, err)
	assert.ErrorIs(t, err, errGatewayDown)

	after, err := env.store.Project(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(before, after))
	assert.Equal(t, "hello", draft.Text())
}

func TestReconciler_Guards(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	ctx := context.Background()

	_, err := env.reconciler.AddTaskComment(ctx, employee, "", NewDraft("hi"))
	assert.ErrorIs(t, err, entities.ErrMissingID)

	_, err = env.reconciler.AddTaskComment(ctx, employee, "t1", NewDraft("   "))
	assert.ErrorIs(t, err, entities.ErrEmptyComment)

	assert.Zero(t, env.gateway.mutateCalls.Load())
}

func TestReconciler_OneSubmitPerEntity(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	seedProject(t, env)
	ctx := context.Background()

	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	env.gateway.onComment = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	errs := make(chan error, 1)
	go func() {
		_, err := env.reconciler.AddProjectComment(ctx, director, "p1", NewDraft("first"))
		errs <- err
	}()

	<-entered
	_, err := env.reconciler.AddProjectComment(ctx, director, "p1", NewDraft("second"))
	assert.ErrorIs(t, err, entities.ErrCommentInFlight)

	close(release)
	require.NoError(t, <-errs)
}

func TestReconciler_UncachedEntityStillSubmits(t *testing.T) {
	env := newTestEnv(&fakeGateway{})

	task, err := env.reconciler.AddTaskComment(context.Background(), director, "t9", NewDraft("note"))
	require.NoError(t, err)
	require.Len(t, task.Comments, 1)
	assert.Equal(t, "note", task.Comments[0].Content)
}
