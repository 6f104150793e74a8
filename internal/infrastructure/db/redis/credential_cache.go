package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/todo-service/internal/core/domain"
)

const cacheTTL = time.Minute

// CredentialCache is a short-lived read-through cache for username lookups
// on the hot token-validation path. Entries are invalidated explicitly on
// profile update and deletion; the TTL bounds staleness if an invalidation
// is ever missed.
// Key format: cred:<username>
type CredentialCache struct {
	client *redis.Client
}

func NewCredentialCache(client *redis.Client) *CredentialCache {
	return &CredentialCache{client: client}
}

// cachedUser mirrors domain.User with the password hash included; the domain
// type deliberately excludes it from JSON.
type cachedUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Get returns the cached user, or (nil, nil) on a miss.
func (c *CredentialCache) Get(ctx context.Context, username string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &domain.User{
		ID:           cu.ID,
		Username:     cu.Username,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}, nil
}

func (c *CredentialCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Username), raw, cacheTTL).Err()
}

func (c *CredentialCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *CredentialCache) key(username string) string {
	return "cred:" + username
}
