// Package cookie writes and reads HTTP cookies with shared defaults.
//
// A Manager holds the attributes every cookie of the application gets
// (path, domain, HttpOnly, Secure, SameSite). Per-call options override them:
//
//	cookies := cookie.New(cookie.WithSecure(!env.IsDevelopment()), cookie.WithSameSite(http.SameSiteStrictMode))
//	cookies.Set(w, "token", tok.Value, cookie.WithExpires(tok.ExpiresAt))
//	value, err := cookies.Get(r, "token")
//	cookies.Delete(w, "token")
package cookie
