package ports

import (
	"context"

	"github.com/taskforge/todo-service/internal/core/domain"
)

// TodoFilter narrows and paginates an owner-scoped todo listing.
// Title and Description are substring matches; State is an exact match.
// Zero values mean "no filter".
type TodoFilter struct {
	Title       string
	Description string
	State       domain.TodoState
	Skip        int
	Limit       int
}

// TodoRepository defines persistence for todo items.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64, filter TodoFilter) ([]*domain.Todo, error)
	// Patch applies the set fields of patch to the stored row inside a single
	// transaction and returns the updated record.
	Patch(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}
