package domain

import (
	"errors"
	"time"
)

var (
	// ErrIncorrectLogin is returned for a failed login regardless of whether
	// the username was unknown or the password mismatched.
	ErrIncorrectLogin = errors.New("incorrect username or password")

	// ErrInvalidCredentials covers every bearer-token failure: malformed,
	// bad signature, expired, missing subject, or unknown user.
	ErrInvalidCredentials = errors.New("could not validate credentials")

	ErrNotEnoughPermissions = errors.New("not enough permissions")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already exists")
	ErrUsernameExists       = errors.New("username already exists")
	ErrUserConflict         = errors.New("username or email already exists")
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the identity resolved from a bearer token for the current
// request. It is derived per request and never persisted.
type Principal struct {
	ID       int64
	Username string
}
