package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

var (
	ErrIncorrectLogin    = handler.ErrUnauthorized.WithMessage("Incorrect email or password")
	ErrWrongCurrent      = handler.ErrUnauthorized.WithMessage("Your current password is wrong.")
	ErrNoUserWithEmail   = handler.ErrNotFound.WithMessage("There is no user with that email address.")
	ErrNoUserWithID      = handler.ErrNotFound.WithMessage("No document found with that ID")
	ErrResetTokenInvalid = handler.ErrBadRequest.WithMessage("Token is invalid or has expired")
	ErrInvalidRole       = handler.ErrBadRequest.WithMessage("Invalid role. Allowed roles: user, premium, moderator, admin")
	ErrEmailNotSent      = handler.NewHTTPError(http.StatusInternalServerError, "email_failed",
		"There was an error sending the email. Try again later!")
)

// mapError converts credential service errors to HTTP errors, keeping the
// cause in the chain. Unknown errors are returned unchanged and render as 500.
func mapError(err error) error {
	var mapped handler.HTTPError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrInvalidCredentials):
		mapped = ErrIncorrectLogin
	case errors.Is(err, auth.ErrIncorrectPassword):
		mapped = ErrWrongCurrent
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		mapped = handler.ErrConflict
	case errors.Is(err, auth.ErrEmailDeliveryFailed):
		mapped = ErrEmailNotSent
	case errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrResetNotPending),
		errors.Is(err, auth.ErrResetSuperseded):
		mapped = ErrResetTokenInvalid
	case errors.Is(err, auth.ErrUserNotFound):
		mapped = ErrNoUserWithID
	case errors.Is(err, rbac.ErrInvalidRole):
		mapped = ErrInvalidRole
	default:
		return err
	}
	return errors.Join(mapped, err)
}
