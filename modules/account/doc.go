// Package account is the JSON HTTP surface for accounts: registration,
// login and logout, password reset and change, the current profile and user
// administration.
//
// Routes are grouped into Mountable services and assembled by Router:
//
//	r.Mount("/api/v1", account.Router(account.RouterOptions{
//		Auth:  account.NewAuthService(deps),
//		Users: account.NewUsersService(store, authn, guard, cookies, errorHandler),
//	}))
package account
