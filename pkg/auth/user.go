package auth

import (
	"time"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// User is a persisted account.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              rbac.Role  `json:"role"`
	PasswordHash      []byte     `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`
	ResetTokenHash    string     `json:"-"`
	ResetExpiresAt    *time.Time `json:"-"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	EnrolledCourses   []string   `json:"enrolledCourses,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Sanitized returns a copy without the credential hash and reset mirror.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = nil
	c.ResetTokenHash = ""
	c.ResetExpiresAt = nil
	if u.EnrolledCourses != nil {
		c.EnrolledCourses = append([]string(nil), u.EnrolledCourses...)
	}
	return &c
}

// Principal returns the identity used for authorization decisions.
func (u *User) Principal() rbac.Principal {
	return rbac.Principal{ID: u.ID, Role: u.Role}
}

// PasswordChangedAfter reports whether the password changed after t.
// Both sides are compared at second precision, matching JWT timestamps.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Second).After(t.Truncate(time.Second))
}
