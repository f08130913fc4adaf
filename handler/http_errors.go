package handler

import "net/http"

// HTTPError is an error with an HTTP status code, a stable key and a
// client-facing message.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// WithMessage returns a copy of e with the given client-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request", Message: "Invalid request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized", Message: "You are not logged in! Please log in to get access."}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden", Message: "You do not have permission to perform this action"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: "Resource not found"}
	ErrConflict            = HTTPError{Code: http.StatusBadRequest, Key: "duplicate", Message: "Duplicate field value. Please use another value!"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests", Message: "Too many requests, please try again later"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error", Message: "Something went wrong"}
)

// NewHTTPError creates an HTTPError with the given status, key and message.
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}
