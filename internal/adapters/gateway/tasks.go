package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

// ListTasks fetches every task visible to the session
func (c *Client) ListTasks(ctx context.Context) ([]entities.Task, error) {
	var resp envelope[wireTask]
	if err := c.do(ctx, http.MethodGet, "/api/tasks", "/api/tasks", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toTasks(resp.items), nil
}

// ListUserTasks fetches the tasks of one user in the given role
func (c *Client) ListUserTasks(ctx context.Context, userID entities.ID, role entities.UserRole) ([]entities.Task, error) {
	if userID == "" {
		return nil, entities.ErrMissingID
	}

	query := url.Values{}
	if role != "" {
		query.Set("role", string(role))
	}

	var resp envelope[wireTask]
	path := "/api/tasks/user/" + escape(userID)
	if err := c.do(ctx, http.MethodGet, "/api/tasks/user/:id", path, query, nil, &resp); err != nil {
		return nil, err
	}
	return toTasks(resp.items), nil
}

func (c *Client) CreateTask(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	var resp single[wireTask]
	if err := c.do(ctx, http.MethodPost, "/api/tasks", "/api/tasks", nil, task, &resp); err != nil {
		return nil, err
	}
	created := resp.item.toEntity()
	return &created, nil
}

func (c *Client) UpdateTask(ctx context.Context, id entities.ID, task *entities.Task) (*entities.Task, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireTask]
	if err := c.do(ctx, http.MethodPut, "/api/tasks/:id", "/api/tasks/"+escape(id), nil, task, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrTaskNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id entities.ID) error {
	if id == "" {
		return entities.ErrMissingID
	}
	err := c.do(ctx, http.MethodDelete, "/api/tasks/:id", "/api/tasks/"+escape(id), nil, nil, nil)
	return mapNotFound(err, entities.ErrTaskNotFound)
}

// UpdateExtensionStatus records a manager's decision on a pending extension
func (c *Client) UpdateExtensionStatus(ctx context.Context, id entities.ID, req ports.ExtensionResponse) (*entities.Task, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireTask]
	path := "/api/tasks/" + escape(id) + "/extension-status"
	if err := c.do(ctx, http.MethodPut, "/api/tasks/:id/extension-status", path, nil, req, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrTaskNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

// AddTaskComment posts a comment and returns the task as the gateway now has it
func (c *Client) AddTaskComment(ctx context.Context, id entities.ID, comment ports.CommentInput) (*entities.Task, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireTask]
	path := "/api/tasks/" + escape(id) + "/comments"
	if err := c.do(ctx, http.MethodPost, "/api/tasks/:id/comments", path, nil, comment, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrTaskNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

func toTasks(in []wireTask) []entities.Task {
	out := make([]entities.Task, 0, len(in))
	for _, w := range in {
		out = append(out, w.toEntity())
	}
	return out
}
