package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/coursehub/handler"
	credentials "github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/pkg/logger"
)

const (
	// DefaultCookieName carries the session token for browser clients.
	DefaultCookieName = "token"
	// LoggedOutValue overwrites the session cookie on logout.
	LoggedOutValue = "loggedout"
)

// Authentication failures. All of them render as 401.
var (
	ErrNotLoggedIn     = handler.ErrUnauthorized
	ErrTokenExpired    = handler.ErrUnauthorized.WithMessage("Your token has expired! Please log in again.")
	ErrInvalidToken    = handler.ErrUnauthorized.WithMessage("Invalid token. Please log in again!")
	ErrUserGone        = handler.ErrUnauthorized.WithMessage("The user belonging to this token does no longer exist.")
	ErrPasswordChanged = handler.ErrUnauthorized.WithMessage("User recently changed password! Please log in again.")
)

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	Verify(token string, purpose jwt.Purpose) (*jwt.Claims, error)
}

// UserFinder resolves token subjects.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*credentials.User, error)
}

// Authenticator is the session authentication middleware.
type Authenticator struct {
	tokens  TokenVerifier
	users   UserFinder
	extract jwt.TokenExtractorFunc
	respond handler.ErrorResponder
	log     *slog.Logger
}

type config struct {
	cookieName string
	respond    handler.ErrorResponder
	log        *slog.Logger
}

// Option configures an Authenticator.
type Option func(*config)

// WithCookieName sets the session cookie name. Defaults to "token".
func WithCookieName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithErrorResponder sets how authentication failures are rendered.
func WithErrorResponder(fn handler.ErrorResponder) Option {
	return func(c *config) {
		if fn != nil {
			c.respond = fn
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// NewAuthenticator creates the middleware. Tokens are read from the
// Authorization header first and from the session cookie second.
func NewAuthenticator(tokens TokenVerifier, users UserFinder, opts ...Option) *Authenticator {
	cfg := &config{
		cookieName: DefaultCookieName,
		respond:    handler.WriteError,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Authenticator{
		tokens: tokens,
		users:  users,
		extract: jwt.FirstOf(
			jwt.BearerTokenExtractor,
			jwt.CookieTokenExtractor(cfg.cookieName, LoggedOutValue),
		),
		respond: cfg.respond,
		log:     cfg.log,
	}
}

// Authenticate resolves the user behind the request's session token.
func (a *Authenticator) Authenticate(r *http.Request) (*credentials.User, error) {
	raw, err := a.extract(r)
	if err != nil {
		return nil, errors.Join(ErrNotLoggedIn, err)
	}

	claims, err := a.tokens.Verify(raw, jwt.PurposeSession)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, errors.Join(ErrTokenExpired, err)
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}

	user, err := a.users.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, credentials.ErrUserNotFound) {
			return nil, errors.Join(ErrUserGone, err)
		}
		return nil, err
	}

	if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
		return nil, ErrPasswordChanged
	}

	return user.Sanitized(), nil
}

// Middleware rejects unauthenticated requests before they reach next.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.Authenticate(r)
		if err != nil {
			a.log.DebugContext(r.Context(), "authentication failed",
				logger.Error(err),
				logger.Component("authenticator"),
			)
			a.respond(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetUserToContext(r.Context(), user)))
	})
}
