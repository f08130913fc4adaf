package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/coursehub/binder"
	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// Store resolves owners for the guard and removes documents by id.
type Store interface {
	rbac.ResourceLookup
	Delete(ctx context.Context, id string) error
}

// RouterOptions wires the catalog routes. Nil stores skip their routes.
type RouterOptions struct {
	Courses Store // mounted at /courses
	Reviews Store // mounted at /reviews

	// Authenticate must place the principal on the request context.
	Authenticate func(http.Handler) http.Handler
	Guard        *rbac.Guard
	ErrorHandler handler.ErrorHandler[handler.Context]
}

// Routes registers /courses and /reviews on r inside their own group, so
// the authenticator does not leak onto sibling routes.
func Routes(opts RouterOptions) func(chi.Router) {
	if opts.Guard == nil {
		opts.Guard = rbac.NewGuard()
	}
	return func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(opts.Authenticate)
			if opts.Courses != nil {
				r.Mount("/courses", deleteRoutes(opts.Courses, opts.Guard, opts.ErrorHandler))
			}
			if opts.Reviews != nil {
				r.Mount("/reviews", deleteRoutes(opts.Reviews, opts.Guard, opts.ErrorHandler))
			}
		})
	}
}

// Router assembles the catalog module as a standalone router.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	Routes(opts)(r)
	return r
}

type ResourceIDRequest struct {
	ID string `path:"id"`
}

func deleteRoutes(store Store, guard *rbac.Guard, errorHandler handler.ErrorHandler[handler.Context]) http.Handler {
	r := chi.NewRouter()
	r.With(guard.RequireOwnerOrElevated(store)).Delete("/{id}", handler.Wrap(
		func(ctx handler.Context, req ResourceIDRequest) handler.Response {
			if err := store.Delete(ctx, req.ID); err != nil {
				return handler.Error(rbac.ToHTTPError(err))
			}
			return handler.Empty()
		},
		handler.WithBinders[handler.Context, ResourceIDRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, ResourceIDRequest](errorHandler),
	))
	return r
}
