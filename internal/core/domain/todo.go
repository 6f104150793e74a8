package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoState represents the lifecycle state of a todo item.
type TodoState string

const (
	StatePending TodoState = "pending"
	StateDoing   TodoState = "doing"
	StateDone    TodoState = "done"
	StateTrash   TodoState = "trash"
)

// IsValid reports whether s is one of the known todo states.
func (s TodoState) IsValid() bool {
	switch s {
	case StatePending, StateDoing, StateDone, StateTrash:
		return true
	}
	return false
}

// Todo is a user-owned task record. OwnerID always references an existing
// User; only that owner may mutate or delete the record.
type Todo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       TodoState `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoPatch is a partial update where each field is either present or absent,
// never present-and-null. Only the set fields are applied to the stored row.
type TodoPatch struct {
	Title       *string
	Description *string
	State       *TodoState
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.State == nil
}
