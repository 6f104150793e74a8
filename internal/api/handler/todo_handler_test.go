package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/todo-service/internal/api/middleware"
	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
)

type stubTodoService struct {
	createFn func(ctx context.Context, principal domain.Principal, input ports.CreateTodoInput) (*domain.Todo, error)
	listFn   func(ctx context.Context, principal domain.Principal, filter ports.TodoFilter) ([]*domain.Todo, error)
	patchFn  func(ctx context.Context, principal domain.Principal, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	deleteFn func(ctx context.Context, principal domain.Principal, id int64) error
}

func (s *stubTodoService) Create(ctx context.Context, principal domain.Principal, input ports.CreateTodoInput) (*domain.Todo, error) {
	return s.createFn(ctx, principal, input)
}

func (s *stubTodoService) List(ctx context.Context, principal domain.Principal, filter ports.TodoFilter) ([]*domain.Todo, error) {
	return s.listFn(ctx, principal, filter)
}

func (s *stubTodoService) Patch(ctx context.Context, principal domain.Principal, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	return s.patchFn(ctx, principal, id, patch)
}

func (s *stubTodoService) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	return s.deleteFn(ctx, principal, id)
}

func withPrincipal(c echo.Context) {
	c.Set(middleware.PrincipalKey, domain.Principal{ID: 1, Username: "alice"})
}

func TestTodoHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		createFn: func(_ context.Context, principal domain.Principal, input ports.CreateTodoInput) (*domain.Todo, error) {
			if principal.ID != 1 {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			if input.Title != "buy milk" || input.State != "" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Todo{ID: 7, OwnerID: 1, Title: input.Title, State: domain.StatePending}, nil
		},
	}
	handler := NewTodoHandler(stub)

	body := strings.NewReader(`{"title":"buy milk"}`)
	req := httptest.NewRequest(http.MethodPost, "/todo/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withPrincipal(c)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["title"] != "buy milk" || resp["state"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTodoHandler_Create_InvalidState(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		createFn: func(context.Context, domain.Principal, ports.CreateTodoInput) (*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTodoHandler(stub)

	body := strings.NewReader(`{"title":"x","state":"bogus"}`)
	req := httptest.NewRequest(http.MethodPost, "/todo/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withPrincipal(c)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
}

func TestTodoHandler_Create_NoPrincipal(t *testing.T) {
	e := newTestEcho()
	handler := NewTodoHandler(&stubTodoService{})

	req := httptest.NewRequest(http.MethodPost, "/todo/", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTodoHandler_List_Filters(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		listFn: func(_ context.Context, principal domain.Principal, filter ports.TodoFilter) ([]*domain.Todo, error) {
			if filter.Title != "milk" || filter.State != domain.StateDoing {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			if filter.Skip != 5 || filter.Limit != 2 {
				t.Fatalf("unexpected pagination: %+v", filter)
			}
			return []*domain.Todo{{ID: 1, OwnerID: principal.ID, Title: "buy milk", State: domain.StateDoing}}, nil
		},
	}
	handler := NewTodoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/todo/?title=milk&state=doing&skip=5&limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withPrincipal(c)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["todos"]) != 1 {
		t.Fatalf("expected 1 todo, got %+v", resp)
	}
}

func TestTodoHandler_List_InvalidStateFilter(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		listFn: func(context.Context, domain.Principal, ports.TodoFilter) ([]*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTodoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/todo/?state=bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withPrincipal(c)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTodoHandler_Update_PartialBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		patchFn: func(_ context.Context, principal domain.Principal, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
			if id != 9 {
				t.Fatalf("unexpected id: %d", id)
			}
			if patch.Title == nil || *patch.Title != "renamed" {
				t.Fatalf("title must be set: %+v", patch)
			}
			if patch.Description != nil || patch.State != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			return &domain.Todo{ID: id, OwnerID: principal.ID, Title: *patch.Title, State: domain.StatePending}, nil
		},
	}
	handler := NewTodoHandler(stub)

	body := strings.NewReader(`{"title":"renamed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/todo/9", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/todo/:id")
	c.SetParamNames("id")
	c.SetParamValues("9")
	withPrincipal(c)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTodoHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		patchFn: func(context.Context, domain.Principal, int64, domain.TodoPatch) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	}
	handler := NewTodoHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/todo/999", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/todo/:id")
	c.SetParamNames("id")
	c.SetParamValues("999")
	withPrincipal(c)

	if err := handler.Update(c); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTodoService{
		deleteFn: func(_ context.Context, principal domain.Principal, id int64) error {
			if principal.ID != 1 || id != 4 {
				t.Fatalf("unexpected principal/id: %+v %d", principal, id)
			}
			return nil
		},
	}
	handler := NewTodoHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/todo/4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/todo/:id")
	c.SetParamNames("id")
	c.SetParamValues("4")
	withPrincipal(c)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Todo deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
