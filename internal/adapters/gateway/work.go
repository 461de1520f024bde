package gateway

import (
	"context"
	"net/http"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func (c *Client) CreateWork(ctx context.Context, work *entities.IndependentWork) (*entities.IndependentWork, error) {
	var resp single[wireWork]
	if err := c.do(ctx, http.MethodPost, "/api/independent-work", "/api/independent-work", nil, work, &resp); err != nil {
		return nil, err
	}
	created := resp.item.toEntity()
	return &created, nil
}

func (c *Client) ListEmployeeWork(ctx context.Context, employeeID entities.ID) ([]entities.IndependentWork, error) {
	if employeeID == "" {
		return nil, entities.ErrMissingID
	}

	var resp envelope[wireWork]
	path := "/api/independent-work/employee/" + escape(employeeID)
	if err := c.do(ctx, http.MethodGet, "/api/independent-work/employee/:id", path, nil, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]entities.IndependentWork, 0, len(resp.items))
	for _, w := range resp.items {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *Client) GetWork(ctx context.Context, id entities.ID) (*entities.IndependentWork, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireWork]
	if err := c.do(ctx, http.MethodGet, "/api/independent-work/:id", "/api/independent-work/"+escape(id), nil, nil, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrWorkNotFound)
	}
	work := resp.item.toEntity()
	return &work, nil
}

func (c *Client) UpdateWork(ctx context.Context, id entities.ID, work *entities.IndependentWork) (*entities.IndependentWork, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireWork]
	if err := c.do(ctx, http.MethodPut, "/api/independent-work/:id", "/api/independent-work/"+escape(id), nil, work, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrWorkNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}

func (c *Client) DeleteWork(ctx context.Context, id entities.ID) error {
	if id == "" {
		return entities.ErrMissingID
	}
	err := c.do(ctx, http.MethodDelete, "/api/independent-work/:id", "/api/independent-work/"+escape(id), nil, nil, nil)
	return mapNotFound(err, entities.ErrWorkNotFound)
}

func (c *Client) AddWorkComment(ctx context.Context, id entities.ID, comment ports.CommentInput) (*entities.IndependentWork, error) {
	if id == "" {
		return nil, entities.ErrMissingID
	}

	var resp single[wireWork]
	path := "/api/independent-work/" + escape(id) + "/comments"
	if err := c.do(ctx, http.MethodPost, "/api/independent-work/:id/comments", path, nil, comment, &resp); err != nil {
		return nil, mapNotFound(err, entities.ErrWorkNotFound)
	}
	updated := resp.item.toEntity()
	return &updated, nil
}
