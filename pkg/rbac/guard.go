package rbac

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/coursehub/handler"
)

// Guard turns policies into HTTP middleware.
type Guard struct {
	idParam string
	respond handler.ErrorResponder
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithIDParam sets the chi URL parameter holding the resource id. Defaults to "id".
func WithIDParam(name string) GuardOption {
	return func(g *Guard) {
		if name != "" {
			g.idParam = name
		}
	}
}

// WithErrorResponder sets how policy failures are rendered.
func WithErrorResponder(fn handler.ErrorResponder) GuardOption {
	return func(g *Guard) {
		if fn != nil {
			g.respond = fn
		}
	}
}

// NewGuard creates a Guard reading the resource id from the "id" URL
// parameter and rendering failures with handler.WriteError.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		idParam: "id",
		respond: handler.WriteError,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize admits principals whose role is one of roles.
func (g *Guard) Authorize(roles ...Role) func(http.Handler) http.Handler {
	forbidden := handler.ErrForbidden.WithMessage("This action requires one of the roles: " + joinRoles(roles))
	return g.policy(func(r *http.Request, p Principal) error {
		if err := CheckAllowed(p.Role, roles...); err != nil {
			return errors.Join(forbidden, err)
		}
		return nil
	})
}

// RequireMinimumRole admits principals ranked at or above min. The 403
// message names min.
func (g *Guard) RequireMinimumRole(min Role) func(http.Handler) http.Handler {
	forbidden := handler.ErrForbidden.WithMessage("Access denied. Minimum role required: " + min.String())
	return g.policy(func(r *http.Request, p Principal) error {
		if err := CheckMinimum(p.Role, min); err != nil {
			return errors.Join(forbidden, err)
		}
		return nil
	})
}

// RequireOwnerOrElevated loads the resource named by the id URL parameter
// and admits its owner, moderators and admins. The lookup always runs, so a
// missing resource is a 404 even for elevated principals.
func (g *Guard) RequireOwnerOrElevated(lookup ResourceLookup) func(http.Handler) http.Handler {
	return g.policy(func(r *http.Request, p Principal) error {
		id := chi.URLParam(r, g.idParam)
		if id == "" {
			return ErrInvalidResourceID
		}
		res, err := lookup.LookupResource(r.Context(), id)
		if err != nil {
			return err
		}
		return CheckOwnership(p, res)
	})
}

func (g *Guard) policy(check func(r *http.Request, p Principal) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				g.respond(w, r, ToHTTPError(ErrPrincipalNotInContext))
				return
			}
			if err := check(r, p); err != nil {
				g.respond(w, r, ToHTTPError(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ToHTTPError maps policy errors to HTTP errors, keeping the cause in the chain.
func ToHTTPError(err error) error {
	var httpErr handler.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return err
	case errors.Is(err, ErrPrincipalNotInContext):
		return errors.Join(handler.ErrUnauthorized, err)
	case errors.Is(err, ErrRoleNotAllowed), errors.Is(err, ErrInsufficientRole):
		return errors.Join(handler.ErrForbidden, err)
	case errors.Is(err, ErrNotOwner):
		return errors.Join(handler.ErrForbidden.WithMessage("You can only modify your own resources"), err)
	case errors.Is(err, ErrResourceNotFound):
		return errors.Join(handler.ErrNotFound.WithMessage("No document found with that ID"), err)
	case errors.Is(err, ErrInvalidResourceID):
		return errors.Join(handler.ErrBadRequest.WithMessage("Invalid resource id"), err)
	default:
		return err
	}
}
