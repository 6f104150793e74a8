package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
)

// TodoRepository persists todo items in the todos table.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = `id, user_id, title, description, state, created_at, updated_at`

func scanTodo(row interface{ Scan(...any) error }) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.State, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO todos (user_id, title, description, state, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + todoColumns

	created, err := scanTodo(r.db.QueryRowContext(ctx, query,
		todo.OwnerID, todo.Title, todo.Description, todo.State, todo.CreatedAt, todo.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return t, nil
}

// ListByOwner returns the owner's todos, optionally narrowed by substring
// matches on title/description and an exact state match.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64, filter ports.TodoFilter) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1`)
	args := []any{ownerID}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		sb.WriteString(` AND title ILIKE $` + strconv.Itoa(len(args)))
	}
	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		sb.WriteString(` AND description ILIKE $` + strconv.Itoa(len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		sb.WriteString(` AND state = $` + strconv.Itoa(len(args)))
	}

	args = append(args, filter.Skip)
	sb.WriteString(` ORDER BY id OFFSET $` + strconv.Itoa(len(args)))
	args = append(args, filter.Limit)
	sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Patch applies only the set fields of patch to the stored row, reading and
// writing inside one transaction so concurrent patches cannot interleave.
func (r *TodoRepository) Patch(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin patch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanTodo(tx.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("lock todo: %w", err)
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.State != nil {
		current.State = *patch.State
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := scanTodo(tx.QueryRowContext(ctx,
		`UPDATE todos SET title = $1, description = $2, state = $3, updated_at = $4
		 WHERE id = $5
		 RETURNING `+todoColumns,
		current.Title, current.Description, current.State, current.UpdatedAt, id))
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit patch: %w", err)
	}
	return updated, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
