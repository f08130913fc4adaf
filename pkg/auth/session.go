package auth

import (
	"context"
	"time"

	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/pkg/logger"
)

// TokenIssuer mints signed tokens.
type TokenIssuer interface {
	Issue(subject string, purpose jwt.Purpose, ttl time.Duration) (jwt.Token, error)
	SessionTTL() time.Duration
}

// Session is a freshly issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// SessionIssuer mints session tokens after a successful login,
// registration or password change.
type SessionIssuer struct {
	tokens TokenIssuer
	store  SessionStorage
	opts   *options
}

func NewSessionIssuer(tokens TokenIssuer, store SessionStorage, opts ...Option) *SessionIssuer {
	return &SessionIssuer{tokens: tokens, store: store, opts: newOptions(opts)}
}

// Issue signs a session token for user and records the login time. A failed
// last login update is logged and does not fail the login.
func (s *SessionIssuer) Issue(ctx context.Context, user *User) (Session, error) {
	tok, err := s.tokens.Issue(user.ID, jwt.PurposeSession, s.tokens.SessionTTL())
	if err != nil {
		return Session{}, err
	}

	now := s.opts.now().UTC()
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.opts.log.WarnContext(ctx, "failed to update last login",
			logger.UserID(user.ID),
			logger.Error(err),
			logger.Component("session"),
		)
	} else {
		user.LastLoginAt = &now
	}

	return Session{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
		User:      user.Sanitized(),
	}, nil
}
