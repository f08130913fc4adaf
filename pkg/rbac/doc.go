// Package rbac implements role based access control over a closed, totally
// ordered set of roles:
//
//	user (1) < premium (2) < moderator (3) < admin (4)
//
// It offers three composable policies: an exact role set (Authorize), a
// minimum role in the hierarchy (RequireMinimumRole) and resource ownership
// with an elevated bypass (RequireOwnerOrElevated). The pure checks
// (CheckAllowed, CheckMinimum, CheckOwnership) are usable from services;
// Guard exposes them as chi compatible middleware that aborts the chain on
// the first failing policy:
//
//	guard := rbac.NewGuard(rbac.WithErrorResponder(respond))
//	r.With(authn.Middleware, guard.RequireMinimumRole(rbac.RoleModerator)).
//		Get("/users", h.ListUsers)
//
// A Principal must be in the request context before any policy runs; the
// session authenticator puts it there.
package rbac
