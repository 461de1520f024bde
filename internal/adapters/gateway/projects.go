package gateway

import (
	"context"
	"net/http"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func (c *Client) ListProjects(ctx context.Context) ([]entities.Project, error) {
	var resp envelope[wireProject]
	if err := c.do(ctx, http.MethodGet, "/api/projects", "/api/projects", nil, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]entities.Project, 0, len(resp.items))
	for _, w := range resp.items {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id entities.ID) (*entities.Project, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireProject]
	if err := c.do(ctx, http.MethodGet, "/api/projects/:id", "/api/projects/"+escape(id), nil, nil, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrProjectNotFound)
	}
	project := resp.item.toEntity()
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	var resp single[wireProject]
	if err := c.do(ctx, http.MethodPost, "/api/projects", "/api/projects", nil, project, &resp); err != nil {
		return nil, err
	}
	created := resp.item.toEntity()
	return &created, nil
}

func (c *Client) UpdateProject(ctx context.Context, id entities.ID, project *entities.Project) (*entities.Project, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireProject]
	if err := c.do(ctx, http.MethodPut, "/api/projects/:id", "/api/projects/"+escape(id), nil, project, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrProjectNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id entities.ID) error {
	if id == "" {
		return entities.ErrMissingID
	}
	err := c.do(ctx, http.MethodDelete, "/api/projects/:id", "/api/projects/"+escape(id), nil, nil, nil)
	return mapNotFound(err, entities.ErrProjectNotFound)
}

func (c *Client) AddProjectComment(ctx context.Context, id entities.ID, comment ports.CommentInput) (*entities.Project, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireProject]
	path := "/api/projects/" + escape(id) + "/comments"
	if err := c.do(ctx, http.MethodPost, "/api/projects/:id/comments", path, nil, comment, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrProjectNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

// ListEmployees fetches the employee directory
func (c *Client) ListEmployees(ctx context.Context) ([]entities.User, error) {
	var resp envelope[wireUser]
	if err := c.do(ctx, http.MethodGet, "/api/employees", "/api/employees", nil, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]entities.User, 0, len(resp.items))
	for _, w := range resp.items {
		out = append(out, w.toEntity())
	}
	return out, nil
}
