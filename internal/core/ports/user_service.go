package ports

import (
	"context"

	"github.com/taskforge/todo-service/internal/core/domain"
)

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput is a full profile replacement; the password is re-hashed.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, principal domain.Principal, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, principal domain.Principal, id int64) error
}
