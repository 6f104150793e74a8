package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/todo-service/internal/core/domain"
)

// detailResponse is the canonical error envelope for all API errors.
type detailResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, detailResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The auth messages are
	// fixed strings that never name the failed check.
	switch {
	case errors.Is(err, domain.ErrIncorrectLogin):
		return http.StatusUnauthorized, "Incorrect Username or password"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, domain.ErrNotEnoughPermissions):
		return http.StatusForbidden, "Not enough permissions"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User Not Found"
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, "Todo not found"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email Already Exists"
	case errors.Is(err, domain.ErrUsernameExists):
		return http.StatusBadRequest, "Username Already Exists"
	case errors.Is(err, domain.ErrUserConflict):
		return http.StatusConflict, "Username or Email already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
