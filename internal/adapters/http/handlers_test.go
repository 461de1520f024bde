package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/adapters/gateway"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"missing id", entities.ErrMissingID, http.StatusBadRequest},
		{"empty comment", fmt.Errorf("submit: %w", entities.ErrEmptyComment), http.StatusBadRequest},
		{"validation", &services.ValidationError{Fields: map[string]string{"Title": "required"}}, http.StatusBadRequest},
		{"forbidden", entities.ErrForbidden, http.StatusForbidden},
		{"task not found behind gateway error", fmt.Errorf("%w: %w", entities.ErrTaskNotFound, &gateway.Error{StatusCode: 404}), http.StatusNotFound},
		{"in flight", entities.ErrCommentInFlight, http.StatusConflict},
		{"no extension", entities.ErrNoExtensionAsked, http.StatusConflict},
		{"gateway client error", &gateway.Error{StatusCode: http.StatusUnprocessableEntity, Message: "bad date"}, http.StatusUnprocessableEntity},
		{"gateway failure", fmt.Errorf("add task comment: %w", &gateway.Error{StatusCode: 500}), http.StatusBadGateway},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "Invalid token"), http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := StatusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestStatusFor_ValidationDetails(t *testing.T) {
	_, body := StatusFor(&services.ValidationError{Fields: map[string]string{"DueDate": "isodate"}})
	assert.Equal(t, "validation failed", body.Message)
	assert.Equal(t, "isodate", body.Details["DueDate"])
}

func TestCommentFailure_ReturnsDraft(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := commentFailure(c, fmt.Errorf("add task comment: %w", &gateway.Error{StatusCode: 503}), services.NewDraft("hello"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ports.CommentFailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.Draft)
}

func TestHandlers_RequireViewer(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := NewDashboardHandler(nil, nil)
	err := h.Stats(c)
	code, _ := StatusFor(err)
	assert.Equal(t, http.StatusUnauthorized, code)

	SetViewer(c, entities.Viewer{ID: "e1", Role: entities.UserRoleEmployee})
	viewer, ok := ViewerFrom(c)
	require.True(t, ok)
	assert.Equal(t, entities.ID("e1"), viewer.ID)
}
