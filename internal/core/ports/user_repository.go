package ports

import (
	"context"

	"github.com/taskforge/todo-service/internal/core/domain"
)

// UserReader is the read-only credential lookup the identity resolver needs.
type UserReader interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	UserReader

	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user matching either field,
	// or domain.ErrUserNotFound when none does.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// CredentialCache is a read-through cache in front of username lookups.
// Implementations must fail open: a cache error never blocks the request.
type CredentialCache interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, username string) error
}
