package rbac

import "errors"

var (
	ErrInvalidRole           = errors.New("rbac: invalid role")
	ErrRoleNotAllowed        = errors.New("rbac: role not allowed")
	ErrInsufficientRole      = errors.New("rbac: insufficient role")
	ErrNotOwner              = errors.New("rbac: not the resource owner")
	ErrResourceNotFound      = errors.New("rbac: resource not found")
	ErrInvalidResourceID     = errors.New("rbac: invalid resource id")
	ErrPrincipalNotInContext = errors.New("rbac: principal not in context")
)
