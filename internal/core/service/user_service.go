package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/todo-service/internal/api/metrics"
	"github.com/taskforge/todo-service/internal/core/domain"
	"github.com/taskforge/todo-service/internal/core/ports"
	"github.com/taskforge/todo-service/internal/security"
)

// UserService implements account registration and self-service profile CRUD.
type UserService struct {
	users ports.UserRepository
	cache ports.CredentialCache
	log   zerolog.Logger
}

// NewUserService returns a UserService. cache may be nil.
func NewUserService(users ports.UserRepository, cache ports.CredentialCache, log zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, log: log}
}

// Register creates an account. Duplicate checks run email-first so the error
// names the offending field; the unique constraints remain the backstop for
// concurrent duplicate registration.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	existing, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Email == input.Email {
			return nil, domain.ErrEmailExists
		}
		return nil, domain.ErrUsernameExists
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.users.List(ctx, skip, limit)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update replaces the principal's own profile, re-hashing the password.
// Only the owner may update; a unique violation on the new username or email
// surfaces as domain.ErrUserConflict.
func (s *UserService) Update(ctx context.Context, principal domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if err := authorizeOwner(principal, id); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, &domain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, principal.Username)
	if input.Username != principal.Username {
		s.invalidate(ctx, input.Username)
	}
	return updated, nil
}

// Delete removes the principal's own account; owned todos cascade away with it.
func (s *UserService) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	if err := authorizeOwner(principal, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, principal.Username)
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("credential cache invalidation failed")
	}
}
