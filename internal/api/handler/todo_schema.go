package handler

import "time"

// --- Request / Response types ---

type createTodoRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	State       string `json:"state"       validate:"omitempty,oneof=pending doing done trash"`
}

// updateTodoRequest is a patch: every field is present-or-absent. A field
// omitted from the body leaves the stored value untouched; a field set to
// null counts as absent too.
type updateTodoRequest struct {
	Title       *string `json:"title"       validate:"omitempty"`
	Description *string `json:"description" validate:"omitempty"`
	State       *string `json:"state"       validate:"omitempty,oneof=pending doing done trash"`
}

type todoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
}

type listTodosQuery struct {
	Title       string `query:"title"`
	Description string `query:"description"`
	State       string `query:"state" validate:"omitempty,oneof=pending doing done trash"`
	Skip        int    `query:"skip"  validate:"gte=0"`
	Limit       int    `query:"limit" validate:"gte=0"`
}
