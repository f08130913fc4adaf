package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrEmailAlreadyExists = errors.New("auth: email already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrIncorrectPassword  = errors.New("auth: current password is incorrect")
)

var (
	ErrTokenInvalid    = errors.New("auth: reset token is invalid")
	ErrTokenExpired    = errors.New("auth: reset token has expired")
	ErrResetNotPending = errors.New("auth: no pending password reset")
	ErrResetSuperseded = errors.New("auth: reset token was superseded")
)

// ErrEmailDeliveryFailed is returned when the reset email could not be
// sent. The pending reset is rolled back before it is returned.
var ErrEmailDeliveryFailed = errors.New("auth: failed to deliver email")
