package rbac

import "strings"

// Role is one of the closed set of roles.
type Role string

const (
	RoleUser      Role = "user"
	RolePremium   Role = "premium"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ranks is the total order over roles. Roles missing here rank 0.
var ranks = map[Role]int{
	RoleUser:      1,
	RolePremium:   2,
	RoleModerator: 3,
	RoleAdmin:     4,
}

// AllRoles returns every role in ascending rank.
func AllRoles() []Role {
	return []Role{RoleUser, RolePremium, RoleModerator, RoleAdmin}
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool { return ranks[r] > 0 }

// Rank returns the position of r in the hierarchy, from 1 for user to 4 for
// admin. Unknown roles rank 0.
func (r Role) Rank() int { return ranks[r] }

func (r Role) String() string { return string(r) }

// AtLeast reports whether r ranks at or above min. Unknown roles on either
// side never satisfy the check.
func (r Role) AtLeast(min Role) bool {
	if !r.IsValid() || !min.IsValid() {
		return false
	}
	return r.Rank() >= min.Rank()
}

// IsElevated reports whether r bypasses ownership checks.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleModerator
}
