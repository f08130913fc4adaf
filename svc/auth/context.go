package auth

import (
	"context"
	"log/slog"

	credentials "github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

type userContextKey struct{}

// SetUserToContext stores the authenticated user and its principal.
func SetUserToContext(ctx context.Context, user *credentials.User) context.Context {
	ctx = context.WithValue(ctx, userContextKey{}, user)
	return rbac.SetPrincipalToContext(ctx, user.Principal())
}

// GetUserFromContext returns the authenticated user, or nil.
func GetUserFromContext(ctx context.Context) *credentials.User {
	user, _ := ctx.Value(userContextKey{}).(*credentials.User)
	return user
}

// LoggerExtractor adds "user_id" to log records of authenticated requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if user := GetUserFromContext(ctx); user != nil {
			return slog.String("user_id", user.ID), true
		}
		return slog.Attr{}, false
	}
}
