package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/todo-service/internal/api/metrics"
	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
)

// TodoService implements owner-scoped CRUD over todo items.
type TodoService struct {
	todos ports.TodoRepository
	log   zerolog.Logger
}

func NewTodoService(todos ports.TodoRepository, log zerolog.Logger) *TodoService {
	return &TodoService{todos: todos, log: log}
}

func (s *TodoService) Create(ctx context.Context, principal domain.Principal, input ports.CreateTodoInput) (*domain.Todo, error) {
	state := input.State
	if state == "" {
		state = domain.StatePending
	}

	now := time.Now().UTC()
	created, err := s.todos.Create(ctx, &domain.Todo{
		OwnerID:     principal.ID,
		Title:       input.Title,
		Description: input.Description,
		State:       state,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	metrics.TodosCreatedTotal.WithLabelValues(string(created.State)).Inc()
	return created, nil
}

// List returns only the principal's own todos; the filter never widens scope.
func (s *TodoService) List(ctx context.Context, principal domain.Principal, filter ports.TodoFilter) ([]*domain.Todo, error) {
	return s.todos.ListByOwner(ctx, principal.ID, filter)
}

// Patch applies a partial update. Existence is checked before ownership, so
// a missing todo is 404 even for a caller who would not own it.
func (s *TodoService) Patch(ctx context.Context, principal domain.Principal, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(principal, todo.OwnerID); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return todo, nil
	}
	return s.todos.Patch(ctx, id, patch)
}

func (s *TodoService) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(principal, todo.OwnerID); err != nil {
		return err
	}
	return s.todos.Delete(ctx, id)
}
