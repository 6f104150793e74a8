package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
)

// PrincipalKey is the echo context key under which Auth stores the resolved
// principal.
const PrincipalKey = "principal"

// Auth resolves the bearer token on every request and injects the resulting
// principal into the context. A missing header, a malformed header, and every
// token failure all surface as the same 401; the client learns nothing about
// which check failed.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c)
			}

			principal, err := auth.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return unauthorized(c)
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return domain.ErrInvalidCredentials
}
