package ports

import (
	"context"

	"github.com/taskforge/todo-service/internal/core/domain"
)

type CreateTodoInput struct {
	Title       string
	Description string
	State       domain.TodoState
}

type TodoService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, principal domain.Principal, filter TodoFilter) ([]*domain.Todo, error)
	Patch(ctx context.Context, principal domain.Principal, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, principal domain.Principal, id int64) error
}
