// Package auth implements credential handling for password accounts:
// registration, login, password changes, session issuance and the
// single-use password reset flow.
//
// Services depend on narrow storage interfaces, one method per field set
// they touch, so partial updates (last login, reset mirror, password hash)
// never go through a general save.
//
// Password reset tokens are signed JWTs with a server-side mirror. The
// mirror holds the SHA-256 of the token and its expiry; a reset succeeds
// only if the signature verifies and the mirror still matches. Issuing a
// new token overwrites the mirror, which supersedes any earlier token.
// Concurrent requests race on the mirror and the last write wins; the
// final password update is a compare-and-swap on the stored hash, so a
// token can be consumed at most once.
package auth
