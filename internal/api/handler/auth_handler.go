package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/todo-service/internal/core/ports"
)

// AuthHandler handles token issuance and refresh.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// loginRequest is bound from a form body (OAuth2 password-grant shape).
type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles POST /auth/token.
//
// @Summary      Exchange credentials for an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Refresh handles POST /auth/refresh-token. The Auth middleware has already
// resolved a still-valid token; a fresh one is issued for the same subject.
// The old token stays valid until its own expiry.
//
// @Summary      Issue a fresh token for the authenticated principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	token, err := h.service.Refresh(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
