package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/coursehub/binder"
	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
	svcauth "github.com/dmitrymomot/coursehub/svc/auth"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// UsersStorage is the subset of auth.Storage used by user administration.
type UsersStorage interface {
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
	ListUsers(ctx context.Context, filter auth.ListFilter) ([]*auth.User, error)
	UpdateRole(ctx context.Context, id string, role rbac.Role) (*auth.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UsersService serves the /users routes.
type UsersService struct {
	store        UsersStorage
	authn        *svcauth.Authenticator
	guard        *rbac.Guard
	cookies      *SessionCookies
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewUsersService(
	store UsersStorage,
	authn *svcauth.Authenticator,
	guard *rbac.Guard,
	cookies *SessionCookies,
	errorHandler handler.ErrorHandler[handler.Context],
) *UsersService {
	return &UsersService{
		store:        store,
		authn:        authn,
		guard:        guard,
		cookies:      cookies,
		errorHandler: errorHandler,
	}
}

func (s *UsersService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.authn.Middleware)

	r.Delete("/me", handler.Wrap(s.deleteMe,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.With(s.guard.RequireMinimumRole(rbac.RoleModerator)).Get("/", handler.Wrap(s.list,
		handler.WithBinders[handler.Context, ListUsersRequest](binder.BindQuery()),
		handler.WithErrorHandler[handler.Context, ListUsersRequest](s.errorHandler),
	))
	r.With(s.guard.RequireMinimumRole(rbac.RoleModerator)).Get("/{id}", handler.Wrap(s.get,
		handler.WithBinders[handler.Context, UserIDRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, UserIDRequest](s.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(s.guard.Authorize(rbac.RoleAdmin))

		r.Patch("/{id}/role", handler.Wrap(s.updateRole,
			handler.WithBinders[handler.Context, UpdateRoleRequest](
				binder.Path(chi.URLParam),
				binder.BindJSON(),
			),
			handler.WithErrorHandler[handler.Context, UpdateRoleRequest](s.errorHandler),
		))
		r.Delete("/{id}", handler.Wrap(s.delete,
			handler.WithBinders[handler.Context, UserIDRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, UserIDRequest](s.errorHandler),
		))
	})

	return r
}

type ListUsersRequest struct {
	Role  string `query:"role"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

type UserIDRequest struct {
	ID string `path:"id"`
}

type UpdateRoleRequest struct {
	ID   string `path:"id" json:"-"`
	Role string `json:"role"`
}

type usersPayload struct {
	Users []*auth.User `json:"users"`
}

func (r ListUsersRequest) filter() (auth.ListFilter, error) {
	f := auth.ListFilter{Limit: defaultPageSize}
	if r.Role != "" {
		role, err := rbac.ParseRole(r.Role)
		if err != nil {
			return f, err
		}
		f.Role = role
	}
	if r.Limit > 0 {
		f.Limit = min(r.Limit, maxPageSize)
	}
	if r.Page > 1 {
		f.Skip = (r.Page - 1) * f.Limit
	}
	return f, nil
}

func (s *UsersService) list(ctx handler.Context, req ListUsersRequest) handler.Response {
	filter, err := req.filter()
	if err != nil {
		return handler.Error(mapError(err))
	}

	users, err := s.store.ListUsers(ctx, filter)
	if err != nil {
		return handler.Error(err)
	}
	for i, u := range users {
		users[i] = u.Sanitized()
	}
	return handler.JSON(usersPayload{Users: users}, handler.WithResults(len(users)))
}

func (s *UsersService) get(ctx handler.Context, req UserIDRequest) handler.Response {
	user, err := s.store.GetUserByID(ctx, req.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(userPayload{User: user.Sanitized()})
}

// deleteMe removes the caller's account and clears the session cookie.
func (s *UsersService) deleteMe(ctx handler.Context, _ struct{}) handler.Response {
	user := svcauth.GetUserFromContext(ctx)
	if user == nil {
		return handler.Error(handler.ErrUnauthorized)
	}
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		return handler.Error(mapError(err))
	}
	if s.cookies != nil {
		if err := s.cookies.Clear(ctx.ResponseWriter()); err != nil {
			return handler.Error(err)
		}
	}
	return handler.Empty()
}

func (s *UsersService) updateRole(ctx handler.Context, req UpdateRoleRequest) handler.Response {
	role, err := rbac.ParseRole(req.Role)
	if err != nil {
		return handler.Error(mapError(err))
	}
	user, err := s.store.UpdateRole(ctx, req.ID, role)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(userPayload{User: user.Sanitized()})
}

func (s *UsersService) delete(ctx handler.Context, req UserIDRequest) handler.Response {
	if err := s.store.DeleteUser(ctx, req.ID); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Empty()
}
