package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskforge/todo-service/internal/core/domain"
)

var userRows = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sampleUserRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRows).
		AddRow(int64(1), "alice", "alice@example.com", "$2a$10$hash", now, now)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "$2a$10$hash", now, now).
		WillReturnRows(sampleUserRow(now))

	got, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"users_email_key", domain.ErrEmailExists},
		{"users_username_key", domain.ErrUsernameExists},
		{"some_other_key", domain.ErrUserConflict},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectQuery(`INSERT INTO users`).
				WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUserRepository_Create_OtherDBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
	if err == nil || errors.Is(err, domain.ErrUserConflict) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 7)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sampleUserRow(now))

	got, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1 OR email = \$2`).
		WithArgs("alice", "alice@example.com").
		WillReturnRows(sampleUserRow(now))

	got, err := repo.FindByUsernameOrEmail(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("FindByUsernameOrEmail error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(userRows).
		AddRow(int64(1), "alice", "alice@example.com", "h1", now, now).
		AddRow(int64(2), "bob", "bob@example.com", "h2", now, now)

	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY id OFFSET \$1 LIMIT \$2`).
		WithArgs(0, 10).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestUserRepository_Update_Conflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`UPDATE users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Update(context.Background(), &domain.User{ID: 1, Username: "alice"})
	if !errors.Is(err, domain.ErrUserConflict) {
		t.Fatalf("expected ErrUserConflict, got %v", err)
	}
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &domain.User{ID: 404})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
