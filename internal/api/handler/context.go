package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskforge/todo-service/internal/api/middleware"
	"github.com/taskforge/todo-service/internal/core/domain"
)

// currentPrincipal extracts the principal injected by the Auth middleware.
// A missing principal means the route was wired without the middleware or the
// middleware was bypassed; fail closed with the uniform credentials error.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || principal.ID == 0 {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return principal, nil
}
