package ports

import (
	"context"

	"github.com/taskforge/todo-service/internal/core/domain"
)

// AuthService issues access tokens and resolves bearer tokens to principals.
type AuthService interface {
	// Login verifies the credentials and returns a signed access token.
	// Unknown username and wrong password both yield domain.ErrIncorrectLogin.
	Login(ctx context.Context, username, password string) (string, error)

	// Refresh issues a fresh token for an already-authenticated principal.
	// The previous token stays valid until its own expiry.
	Refresh(ctx context.Context, principal domain.Principal) (string, error)

	// Resolve turns a raw bearer token into a Principal. Every failure mode
	// yields domain.ErrInvalidCredentials.
	Resolve(ctx context.Context, token string) (domain.Principal, error)
}
