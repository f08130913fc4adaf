package account

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/cookie"
	svcauth "github.com/dmitrymomot/coursehub/svc/auth"
)

// logoutTTL is how long the logout sentinel cookie lives.
const logoutTTL = 10 * time.Second

// SessionCookies writes the session cookie that mirrors a session token.
type SessionCookies struct {
	cookies *cookie.Manager
	name    string
	now     func() time.Time
}

// NewSessionCookies writes the cookie named name through cookies, which
// carries the HttpOnly, SameSite and Secure attributes.
func NewSessionCookies(cookies *cookie.Manager, name string) *SessionCookies {
	if name == "" {
		name = svcauth.DefaultCookieName
	}
	return &SessionCookies{cookies: cookies, name: name, now: time.Now}
}

// Set stores the token with the token's own expiry.
func (c *SessionCookies) Set(w http.ResponseWriter, sess auth.Session) error {
	return c.cookies.Set(w, c.name, sess.Token, cookie.WithExpires(sess.ExpiresAt))
}

// Clear overwrites the cookie with the logout sentinel.
func (c *SessionCookies) Clear(w http.ResponseWriter) error {
	return c.cookies.Set(w, c.name, svcauth.LoggedOutValue, cookie.WithExpires(c.now().Add(logoutTTL)))
}
