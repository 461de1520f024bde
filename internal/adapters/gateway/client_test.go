package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(config.GatewayConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, nil)
	require.NoError(t, err)
	return client
}

func TestListTasks_NormalizesUnderscoreID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `[
			{"_id":"t1","title":"Draw plans","assignedTo":"u1","assignedToName":"Ann","dueDate":"2020-01-01"},
			{"id":42,"title":"Order tiles","assignees":["u2","u3"],"assigneeNames":["Bob","Cid"]}
		]`)
	})

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, entities.ID("t1"), tasks[0].ID)
	assert.Equal(t, []entities.ID{"u1"}, tasks[0].AssigneeIDs)
	assert.Equal(t, []string{"Ann"}, tasks[0].AssigneeNames)
	assert.Equal(t, 2020, tasks[0].DueDate.Year())

	assert.Equal(t, entities.ID("42"), tasks[1].ID)
	assert.Equal(t, entities.ID("u2"), tasks[1].AssignedTo)
	assert.Equal(t, "Bob", tasks[1].AssignedToName)
}

func TestListTasks_UnparsableDatesAreUnset(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id":"t1","title":"Draw plans","dueDate":"2020-01-01"},
			{"id":"t2","title":"Legacy","reminderDate":"Invalid Date","dueDate":1700000000,
			 "extensionRequest":{"proposedDeadline":"soon","status":"pending"}}
		]`)
	}))
	t.Cleanup(srv.Close)

	client, err := New(config.GatewayConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, nil)
	require.NoError(t, err)

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, 2020, tasks[0].DueDate.Year())

	legacy := tasks[1]
	assert.Equal(t, "Legacy", legacy.Title)
	assert.True(t, legacy.ReminderDate.IsZero())
	assert.True(t, legacy.DueDate.IsZero())
	require.NotNil(t, legacy.ExtensionRequest)
	assert.True(t, legacy.ExtensionRequest.ProposedDeadline.IsZero())
	assert.False(t, legacy.IsOverdue(time.Now()))

	assert.Equal(t, 3, logs.FilterMessage("Ignoring unparsable gateway date").Len())
}

func TestListProjects_WrappedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"projects":[{"_id":"p1","name":"Villa","progress":100,"status":"Active","comments":[{"_id":"c1","content":"ok"}]}]}`)
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, entities.ID("p1"), projects[0].ID)
	assert.Equal(t, entities.ProjectStatusCompleted, projects[0].EffectiveStatus())
	require.Len(t, projects[0].Comments, 1)
	assert.Equal(t, entities.ID("c1"), projects[0].Comments[0].ID)
	assert.True(t, projects[0].Comments[0].IsVisible)
}

func TestListUserTasks_SendsRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/user/u1", r.URL.Path)
		assert.Equal(t, "Project Head", r.URL.Query().Get("role"))
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	tasks, err := client.ListUserTasks(context.Background(), "u1", entities.UserRoleProjectHead)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestAddProjectComment_ReturnsUpdatedEntity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/p1/comments", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var body ports.CommentInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body.Content)
		assert.Equal(t, entities.ID("u1"), body.UserID)

		_, _ = io.WriteString(w, `{"project":{"_id":"p1","comments":[{"_id":"c9","userId":"u1","content":"hello"}]}}`)
	})

	ctx := WithToken(context.Background(), "session-token")
	project, err := client.AddProjectComment(ctx, "p1", ports.CommentInput{UserID: "u1", Content: "hello", IsVisible: true})
	require.NoError(t, err)
	require.Len(t, project.Comments, 1)
	assert.Equal(t, entities.ID("c9"), project.Comments[0].ID)
}

func TestGatewayErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tasks/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Task not found"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "boom")
		}
	})

	err := client.DeleteTask(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTaskNotFound))
	assert.True(t, IsNotFound(err))

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "Task not found", gwErr.Message)

	_, err = client.ListEmployees(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.False(t, errors.Is(err, entities.ErrTaskNotFound))
}

func TestMissingIDNeverCallsGateway(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.UpdateTask(context.Background(), "", &entities.Task{})
	assert.ErrorIs(t, err, entities.ErrMissingID)
	assert.ErrorIs(t, client.DeleteProject(context.Background(), ""), entities.ErrMissingID)
	_, err = client.AddWorkComment(context.Background(), "", ports.CommentInput{})
	assert.ErrorIs(t, err, entities.ErrMissingID)
	assert.Zero(t, calls.Load())
}

func TestListEmployees_ParsesRoles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"u1","name":"Ann","role":"project-head"},{"id":"u2","name":"Bob","role":"Employee"}]`)
	})

	users, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entities.UserRoleProjectHead, users[0].Role)
	assert.Equal(t, entities.UserRoleEmployee, users[1].Role)
}

func TestListEmployeeWork_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/independent-work/employee/u7", r.URL.Path)
		_, _ = io.WriteString(w, `[{"_id":"w1","employeeId":"u7","workDescription":"site visit","category":"Site","timeSpent":2.5,"date":"2024-03-01"}]`)
	})

	works, err := client.ListEmployeeWork(context.Background(), "u7")
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, entities.ID("w1"), works[0].ID)
	assert.Equal(t, entities.WorkCategorySite, works[0].Category)
	assert.InDelta(t, 2.5, works[0].TimeSpent, 0.0001)
}
