// Package auth resolves the caller of an HTTP request from a session token.
//
// The Authenticator middleware reads a token from the Authorization header
// (Bearer scheme) or, failing that, from the session cookie. It verifies the
// token, loads its subject and rejects the request with 401 when any step
// fails. On success the sanitized user and its rbac.Principal are stored in
// the request context, so authorization middleware from pkg/rbac can run next.
//
//	authn := auth.NewAuthenticator(codec, users, auth.WithErrorResponder(respond))
//	r.Group(func(r chi.Router) {
//		r.Use(authn.Middleware)
//		r.With(guard.RequireMinimumRole(rbac.RoleModerator)).Get("/users", list)
//	})
package auth
