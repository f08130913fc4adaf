package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/coursehub/binder"
	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/pkg/auth"
	svcauth "github.com/dmitrymomot/coursehub/svc/auth"
)

// AuthDeps are the collaborators of AuthService. Throttle may be nil.
type AuthDeps struct {
	Passwords     *auth.PasswordService
	Sessions      *auth.SessionIssuer
	Resets        *auth.ResetService
	Authenticator *svcauth.Authenticator
	Cookies       *SessionCookies
	ErrorHandler  handler.ErrorHandler[handler.Context]
	// Throttle wraps the unauthenticated credential endpoints.
	Throttle func(http.Handler) http.Handler
}

// AuthService serves the /auth routes.
type AuthService struct {
	AuthDeps
}

func NewAuthService(deps AuthDeps) *AuthService {
	if deps.Throttle == nil {
		deps.Throttle = func(next http.Handler) http.Handler { return next }
	}
	return &AuthService{AuthDeps: deps}
}

func (s *AuthService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(s.Throttle)

		r.Post("/register", handler.Wrap(s.register,
			handler.WithBinders[handler.Context, RegisterRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, RegisterRequest](s.ErrorHandler),
		))
		r.Post("/login", handler.Wrap(s.login,
			handler.WithBinders[handler.Context, LoginRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, LoginRequest](s.ErrorHandler),
		))
		r.Post("/forgot-password", handler.Wrap(s.forgotPassword,
			handler.WithBinders[handler.Context, ForgotPasswordRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, ForgotPasswordRequest](s.ErrorHandler),
		))
		r.Patch("/reset-password/{token}", handler.Wrap(s.resetPassword,
			handler.WithBinders[handler.Context, ResetPasswordRequest](
				binder.Path(chi.URLParam),
				binder.BindJSON(),
			),
			handler.WithErrorHandler[handler.Context, ResetPasswordRequest](s.ErrorHandler),
		))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.Authenticator.Middleware)

		r.Get("/logout", handler.Wrap(s.logout,
			handler.WithErrorHandler[handler.Context, struct{}](s.ErrorHandler),
		))

		r.Get("/me", handler.Wrap(s.me,
			handler.WithErrorHandler[handler.Context, struct{}](s.ErrorHandler),
		))
		r.Patch("/update-password", handler.Wrap(s.updatePassword,
			handler.WithBinders[handler.Context, UpdatePasswordRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, UpdatePasswordRequest](s.ErrorHandler),
		))
	})

	return r
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token           string `path:"token" json:"-"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// userPayload is the data object of user responses.
type userPayload struct {
	User *auth.User `json:"user"`
}

// startSession issues a session for user, sets the cookie and returns the
// token in the body for non-cookie clients.
func (s *AuthService) startSession(ctx handler.Context, user *auth.User, status int) handler.Response {
	sess, err := s.Sessions.Issue(ctx, user)
	if err != nil {
		return handler.Error(err)
	}
	if err := s.Cookies.Set(ctx.ResponseWriter(), sess); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(userPayload{User: sess.User},
		handler.WithStatus(status),
		handler.WithToken(sess.Token),
	)
}

func (s *AuthService) register(ctx handler.Context, req RegisterRequest) handler.Response {
	user, err := s.Passwords.Register(ctx, auth.RegisterParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return handler.Error(mapError(err))
	}
	return s.startSession(ctx, user, http.StatusCreated)
}

func (s *AuthService) login(ctx handler.Context, req LoginRequest) handler.Response {
	user, err := s.Passwords.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return s.startSession(ctx, user, http.StatusOK)
}

// logout does not revoke the token; clients presenting it as a bearer
// header stay authenticated until it expires.
func (s *AuthService) logout(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.Cookies.Clear(ctx.ResponseWriter()); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(nil)
}

func (s *AuthService) forgotPassword(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	if err := s.Resets.RequestReset(ctx, req.Email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return handler.Error(errors.Join(ErrNoUserWithEmail, err))
		}
		return handler.Error(mapError(err))
	}
	return handler.JSON(nil, handler.WithMessage("Token sent to email!"))
}

func (s *AuthService) resetPassword(ctx handler.Context, req ResetPasswordRequest) handler.Response {
	user, err := s.Resets.ConsumeReset(ctx, req.Token, req.Password, req.PasswordConfirm)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return s.startSession(ctx, user, http.StatusOK)
}

func (s *AuthService) me(ctx handler.Context, _ struct{}) handler.Response {
	user := svcauth.GetUserFromContext(ctx)
	if user == nil {
		return handler.Error(handler.ErrUnauthorized)
	}
	return handler.JSON(userPayload{User: user})
}

func (s *AuthService) updatePassword(ctx handler.Context, req UpdatePasswordRequest) handler.Response {
	current := svcauth.GetUserFromContext(ctx)
	if current == nil {
		return handler.Error(handler.ErrUnauthorized)
	}
	user, err := s.Passwords.ChangePassword(ctx, current.ID, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return s.startSession(ctx, user, http.StatusOK)
}
