package rbac

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// CheckAllowed passes when role is a member of allowed.
func CheckAllowed(role Role, allowed ...Role) error {
	if role.IsValid() && slices.Contains(allowed, role) {
		return nil
	}
	return fmt.Errorf("%w: requires one of [%s]", ErrRoleNotAllowed, joinRoles(allowed))
}

func joinRoles(roles []Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// CheckMinimum passes when role ranks at or above min.
func CheckMinimum(role, min Role) error {
	if role.AtLeast(min) {
		return nil
	}
	return fmt.Errorf("%w: requires %s or higher", ErrInsufficientRole, min)
}

// Resource carries the owning fields of a guarded document. A course is
// owned by its instructor, a review by its user.
type Resource struct {
	Instructor string
	User       string
}

// Owner returns the instructor when set, otherwise the user.
func (r Resource) Owner() string {
	if r.Instructor != "" {
		return r.Instructor
	}
	return r.User
}

// CheckOwnership passes for elevated principals and for the resource owner.
func CheckOwnership(p Principal, res Resource) error {
	if p.Role.IsElevated() {
		return nil
	}
	if p.ID != "" && p.ID == res.Owner() {
		return nil
	}
	return ErrNotOwner
}

// ResourceLookup loads the owning fields of a resource by id. Missing
// resources must be reported as ErrResourceNotFound.
type ResourceLookup interface {
	LookupResource(ctx context.Context, id string) (Resource, error)
}

// ResourceLookupFunc adapts a function to ResourceLookup.
type ResourceLookupFunc func(ctx context.Context, id string) (Resource, error)

func (f ResourceLookupFunc) LookupResource(ctx context.Context, id string) (Resource, error) {
	return f(ctx, id)
}
