package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/coursehub/binder"
	"github.com/dmitrymomot/coursehub/pkg/logger"
	"github.com/dmitrymomot/coursehub/pkg/requestid"
	"github.com/dmitrymomot/coursehub/pkg/validator"
)

// ErrorHandlerConfig configures the error handler.
type ErrorHandlerConfig struct {
	// ShowStack adds the full error chain to the response body.
	// Never enable in production.
	ShowStack bool
}

// ErrorResponder renders an error outside of Wrap, e.g. from middleware.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Classify maps an error to a status code and an error envelope.
func Classify(err error) (int, JSONResponse) {
	body := JSONResponse{Success: false}

	var httpErr HTTPError
	var validationErr validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		body.Message = "Invalid input data"
		body.Errors = make(map[string][]string, len(validationErr))
		for _, field := range validationErr.Fields() {
			body.Errors[field] = validationErr.Get(field)
		}
		return http.StatusBadRequest, body

	case errors.As(err, &httpErr):
		body.Message = httpErr.Message
		if body.Message == "" {
			body.Message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, body

	case errors.Is(err, binder.ErrBodyTooLarge):
		body.Message = "Request body too large"
		return http.StatusRequestEntityTooLarge, body

	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath):
		body.Message = err.Error()
		return http.StatusBadRequest, body
	}

	body.Message = ErrInternalServerError.Message
	return http.StatusInternalServerError, body
}

// WriteError renders err as a JSON error envelope without logging.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	status, body := Classify(err)
	_ = writeJSON(w, status, body)
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorResponder creates an ErrorResponder that logs every error with
// request context before rendering it.
func NewErrorResponder(log *slog.Logger, cfg ErrorHandlerConfig) ErrorResponder {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, body := Classify(err)
		if cfg.ShowStack {
			body.Stack = err.Error()
		}

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if werr := writeJSON(w, status, body); werr != nil {
			log.WarnContext(r.Context(), "failed to write error response",
				logger.Error(werr),
				logger.Component("error_handler"),
			)
		}
	}
}

// NewErrorHandler adapts NewErrorResponder for use with Wrap.
// Configure it once in main and pass it to every module.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	respond := NewErrorResponder(log, cfg)
	return func(ctx Context, err error) {
		respond(ctx.ResponseWriter(), ctx.Request(), err)
	}
}
