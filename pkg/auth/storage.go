package auth

import (
	"context"
	"time"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// Implementations return ErrUserNotFound for unknown ids or emails and
// ErrEmailAlreadyExists on email conflicts.

// UserReader looks users up.
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// PasswordStorage is what PasswordService needs.
type PasswordStorage interface {
	UserReader
	// CreateUser assigns the user's ID.
	CreateUser(ctx context.Context, user *User) error
	UpdatePasswordHash(ctx context.Context, id string, hash []byte, changedAt time.Time) error
}

// SessionStorage is what SessionIssuer needs.
type SessionStorage interface {
	// UpdateLastLogin touches only the last login timestamp.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// ResetStorage is what ResetService needs.
type ResetStorage interface {
	UserReader
	// SetResetToken overwrites the reset mirror.
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	// ClearResetToken removes the mirror if it still holds tokenHash.
	ClearResetToken(ctx context.Context, id, tokenHash string) error
	// CompleteReset sets the new password hash and clears the mirror only if
	// the mirror still holds expectedHash and has not expired at changedAt.
	// Otherwise it returns ErrResetNotPending and changes nothing.
	CompleteReset(ctx context.Context, id, expectedHash string, newHash []byte, changedAt time.Time) error
}

// ListFilter narrows ListUsers.
type ListFilter struct {
	Role  rbac.Role
	Limit int
	Skip  int
}

// Storage is the full credential store used by account management.
type Storage interface {
	PasswordStorage
	SessionStorage
	ResetStorage
	ListUsers(ctx context.Context, filter ListFilter) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role rbac.Role) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}
