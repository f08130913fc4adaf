package userstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// Memory is a mutex guarded auth.Storage. Users are copied on the way in
// and out so callers never share state with the store.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]*auth.User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]*auth.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

var _ auth.Storage = (*Memory)(nil)

func clone(u *auth.User) *auth.User {
	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.EnrolledCourses = slices.Clone(u.EnrolledCourses)
	if u.PasswordChangedAt != nil {
		t := *u.PasswordChangedAt
		c.PasswordChangedAt = &t
	}
	if u.ResetExpiresAt != nil {
		t := *u.ResetExpiresAt
		c.ResetExpiresAt = &t
	}
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

// GetUserByID returns a copy of the user, or auth.ErrUserNotFound.
func (m *Memory) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return clone(u), nil
}

// GetUserByEmail looks the user up by normalized email.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return clone(m.users[id]), nil
}

// CreateUser assigns a UUID id. A taken email is auth.ErrEmailAlreadyExists.
func (m *Memory) CreateUser(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[user.Email]; exists {
		return auth.ErrEmailAlreadyExists
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = clone(user)
	m.byEmail[user.Email] = user.ID
	return nil
}

// DeleteUser removes the user and frees its email.
func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.users, id)
	return nil
}

// ListUsers returns users newest first.
func (m *Memory) ListUsers(_ context.Context, f auth.ListFilter) ([]*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*auth.User, 0, len(m.users))
	for _, u := range m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, clone(u))
	}
	slices.SortFunc(out, func(a, b *auth.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if f.Skip > 0 {
		out = out[min(f.Skip, len(out)):]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// update applies fn to the stored user under the write lock.
func (m *Memory) update(id string, fn func(u *auth.User) error) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	return clone(u), nil
}

// UpdateLastLogin touches only the last-login timestamp.
func (m *Memory) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	_, err := m.update(id, func(u *auth.User) error {
		u.LastLoginAt = &at
		return nil
	})
	return err
}

// UpdateRole sets the role and returns the updated user.
func (m *Memory) UpdateRole(_ context.Context, id string, role rbac.Role) (*auth.User, error) {
	return m.update(id, func(u *auth.User) error {
		u.Role = role
		u.UpdatedAt = m.now().UTC()
		return nil
	})
}

// UpdatePasswordHash replaces the hash and records when it changed.
func (m *Memory) UpdatePasswordHash(_ context.Context, id string, hash []byte, changedAt time.Time) error {
	_, err := m.update(id, func(u *auth.User) error {
		u.PasswordHash = slices.Clone(hash)
		u.PasswordChangedAt = &changedAt
		u.UpdatedAt = changedAt
		return nil
	})
	return err
}

// SetResetToken replaces any pending reset mirror.
func (m *Memory) SetResetToken(_ context.Context, id, tokenHash string, expiresAt time.Time) error {
	_, err := m.update(id, func(u *auth.User) error {
		u.ResetTokenHash = tokenHash
		u.ResetExpiresAt = &expiresAt
		return nil
	})
	return err
}

// ClearResetToken clears the mirror only while it still holds tokenHash.
func (m *Memory) ClearResetToken(_ context.Context, id, tokenHash string) error {
	_, err := m.update(id, func(u *auth.User) error {
		if u.ResetTokenHash == tokenHash {
			u.ResetTokenHash = ""
			u.ResetExpiresAt = nil
		}
		return nil
	})
	return err
}

// CompleteReset swaps in newHash and clears the mirror if the stored hash
// equals expectedHash; otherwise it returns auth.ErrResetNotPending.
func (m *Memory) CompleteReset(_ context.Context, id, expectedHash string, newHash []byte, changedAt time.Time) error {
	_, err := m.update(id, func(u *auth.User) error {
		if expectedHash == "" || u.ResetTokenHash != expectedHash ||
			u.ResetExpiresAt == nil || !changedAt.Before(*u.ResetExpiresAt) {
			return auth.ErrResetNotPending
		}
		u.PasswordHash = slices.Clone(newHash)
		u.PasswordChangedAt = &changedAt
		u.UpdatedAt = changedAt
		u.ResetTokenHash = ""
		u.ResetExpiresAt = nil
		return nil
	})
	return err
}
