package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations. Every route requires
// an authenticated principal and only ever touches that principal's items.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// Create handles POST /todo/.
//
// @Summary      Create a todo
// @Tags         todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo details"
// @Success      201   {object}  todoResponse
// @Failure      401   {object}  map[string]string
// @Router       /todo/ [post]
func (h *TodoHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), principal, ports.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		State:       domain.TodoState(req.State),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// List handles GET /todo/.
//
// @Summary      List own todos
// @Tags         todo
// @Produce      json
// @Security     BearerAuth
// @Param        title        query     string  false  "Title substring filter"
// @Param        description  query     string  false  "Description substring filter"
// @Param        state        query     string  false  "State filter"  Enums(pending, doing, done, trash)
// @Param        skip         query     int     false  "Rows to skip"    default(0)
// @Param        limit        query     int     false  "Rows to return"  default(10)
// @Success      200  {object}  todoListResponse
// @Failure      401  {object}  map[string]string
// @Router       /todo/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var q listTodosQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if c.QueryParam("limit") == "" {
		q.Limit = defaultPageLimit
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), principal, ports.TodoFilter{
		Title:       q.Title,
		Description: q.Description,
		State:       domain.TodoState(q.State),
		Skip:        q.Skip,
		Limit:       q.Limit,
	})
	if err != nil {
		return err
	}

	resp := todoListResponse{Todos: make([]todoResponse, 0, len(todos))}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, toTodoResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /todo/:id.
//
// @Summary      Patch a todo
// @Tags         todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      200   {object}  todoResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /todo/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.State != nil {
		state := domain.TodoState(*req.State)
		patch.State = &state
	}

	todo, err := h.service.Patch(c.Request().Context(), principal, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete handles DELETE /todo/:id.
//
// @Summary      Delete a todo
// @Tags         todo
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Todo id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todo/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}

func todoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid todo id")
	}
	return id, nil
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		State:       string(t.State),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
