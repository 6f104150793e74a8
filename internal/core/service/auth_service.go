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

// AuthService implements login, token refresh, and bearer-token resolution.
// It is stateless: the server keeps no record of issued tokens, so a token
// stays valid until its own expiry and cannot be revoked.
type AuthService struct {
	users ports.UserReader
	cache ports.CredentialCache
	codec *security.TokenCodec
	log   zerolog.Logger
}

// NewAuthService returns an AuthService. cache may be nil; lookups then go
// straight to the repository.
func NewAuthService(users ports.UserReader, cache ports.CredentialCache, codec *security.TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, cache: cache, codec: codec, log: log}
}

// Login verifies the credentials and issues an access token. The error is
// identical whether the username is unknown or the password is wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrIncorrectLogin
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrIncorrectLogin
	}

	token, err := s.codec.Issue(user.Username, time.Now().UTC())
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("password").Inc()
	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}

// Refresh issues a fresh token with the same subject and a new expiry window.
// The caller must already hold a valid token; the old one is not invalidated.
func (s *AuthService) Refresh(ctx context.Context, principal domain.Principal) (string, error) {
	token, err := s.codec.Issue(principal.Username, time.Now().UTC())
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return token, nil
}

// Resolve turns a raw bearer token into a Principal. The clock is read once
// and every failure mode collapses into domain.ErrInvalidCredentials so the
// response never reveals which check failed.
func (s *AuthService) Resolve(ctx context.Context, tokenString string) (domain.Principal, error) {
	now := time.Now().UTC()

	claims, err := s.codec.Decode(tokenString, now)
	if err != nil {
		return domain.Principal{}, s.reject("decode")
	}

	if claims.Subject == "" {
		return domain.Principal{}, s.reject("missing_subject")
	}

	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("credential lookup failed")
		}
		return domain.Principal{}, s.reject("unknown_subject")
	}

	return domain.Principal{ID: user.ID, Username: user.Username}, nil
}

func (s *AuthService) reject(reason string) error {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	return domain.ErrInvalidCredentials
}

// lookup reads a user by username through the credential cache when one is
// configured. Cache errors are logged and ignored; the repository remains
// the source of truth.
func (s *AuthService) lookup(ctx context.Context, username string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Msg("credential cache read failed")
		} else if cached != nil {
			metrics.CredentialCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CredentialCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Msg("credential cache write failed")
		}
	}
	return user, nil
}
