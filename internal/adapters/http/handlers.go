package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/adapters/gateway"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

const viewerKey = "viewer"

// SetViewer stores the signed-in viewer on the request context
func SetViewer(c echo.Context, viewer entities.Viewer) {
	c.Set(viewerKey, viewer)
}

// ViewerFrom returns the viewer set by the session middleware
func ViewerFrom(c echo.Context) (entities.Viewer, bool) {
	viewer, ok := c.Get(viewerKey).(entities.Viewer)
	return viewer, ok
}

func currentViewer(c echo.Context) (entities.Viewer, error) {
	viewer, ok := ViewerFrom(c)
	if !ok {
		return entities.Viewer{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing session")
	}
	return viewer, nil
}

func pathID(c echo.Context, name string) entities.ID {
	return entities.ID(strings.TrimSpace(c.Param(name)))
}

var sentinelStatus = []struct {
	err  error
	code int
}{
	{entities.ErrMissingID, http.StatusBadRequest},
	{entities.ErrEmptyComment, http.StatusBadRequest},
	{entities.ErrInvalidProgress, http.StatusBadRequest},
	{entities.ErrInvalidWorkDone, http.StatusBadRequest},
	{entities.ErrForbidden, http.StatusForbidden},
	{entities.ErrTaskNotFound, http.StatusNotFound},
	{entities.ErrProjectNotFound, http.StatusNotFound},
	{entities.ErrWorkNotFound, http.StatusNotFound},
	{entities.ErrUserNotFound, http.StatusNotFound},
	{entities.ErrCommentInFlight, http.StatusConflict},
	{entities.ErrNoExtensionAsked, http.StatusConflict},
	{entities.ErrNoCompletionAsked, http.StatusConflict},
}

// StatusFor maps an error returned by a handler to the status code and
// body sent to the client.
func StatusFor(err error) (int, ports.ErrorResponse) {
	var (
		httpErr  *echo.HTTPError
		validErr *services.ValidationError
		gwErr    *gateway.Error
	)

	for _, se := range sentinelStatus {
		if errors.Is(err, se.err) {
			return se.code, ports.ErrorResponse{Message: se.err.Error()}
		}
	}

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ports.ErrorResponse{Message: msg}

	case errors.As(err, &validErr):
		details := make(map[string]interface{}, len(validErr.Fields))
		for field, tag := range validErr.Fields {
			details[field] = tag
		}
		return http.StatusBadRequest, ports.ErrorResponse{Message: "validation failed", Details: details}

	case errors.As(err, &gwErr):
		// the gateway's own client errors are the caller's problem; its
		// failures are ours
		if gwErr.StatusCode >= 400 && gwErr.StatusCode < 500 {
			return gwErr.StatusCode, ports.ErrorResponse{Message: gwErr.Message}
		}
		return http.StatusBadGateway, ports.ErrorResponse{Message: "gateway request failed"}

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ports.ErrorResponse{Message: "gateway timed out"}
	}

	return http.StatusInternalServerError, ports.ErrorResponse{Message: http.StatusText(http.StatusInternalServerError)}
}

// commentFailure answers a failed comment submit with the draft text so the
// client can put it back into its input field.
func commentFailure(c echo.Context, err error, draft *services.Draft) error {
	code, body := StatusFor(err)
	return c.JSON(code, ports.CommentFailureResponse{Message: body.Message, Draft: draft.Text()})
}
