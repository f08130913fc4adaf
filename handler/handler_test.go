package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursehub/binder"
	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/pkg/validator"
)

type echoRequest struct {
	Name string `json:"name"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req echoRequest) handler.Response {
		if req.Name == "" {
			return handler.Error(validator.Apply(validator.Required("name", req.Name)))
		}
		return handler.JSON(req, handler.WithStatus(http.StatusCreated), handler.WithMessage("created"))
	}
	h := handler.Wrap(echo, handler.WithBinders[handler.Context, echoRequest](binder.BindJSON()))

	t.Run("success envelope", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"go"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, "created", body.Message)
		assert.Equal(t, map[string]any{"name": "go"}, body.Data)
	})

	t.Run("binder error is 400", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeBody(t, rec).Success)
	})

	t.Run("validation error carries field map", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, []string{"field is required"}, body.Errors["name"])
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		nilHandler := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		nilHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		wrapped := handler.Wrap(
			func(handler.Context, struct{}) handler.Response { return handler.Empty() },
			handler.WithDecorators(mark("outer"), mark("inner")),
		)
		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"outer", "inner"}, order)
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"http error", handler.ErrForbidden, http.StatusForbidden, handler.ErrForbidden.Message},
		{"wrapped http error", errors.Join(errors.New("cause"), handler.ErrNotFound.WithMessage("No user")), http.StatusNotFound, "No user"},
		{"conflict renders 400", handler.ErrConflict, http.StatusBadRequest, handler.ErrConflict.Message},
		{"body too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "Request body too large"},
		{"unknown error hides details", errors.New("db exploded"), http.StatusInternalServerError, "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, body := handler.Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body.Message)
			assert.False(t, body.Success)
		})
	}
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("stack only when enabled", func(t *testing.T) {
		t.Parallel()
		for _, show := range []bool{true, false} {
			buf := &bytes.Buffer{}
			log := slog.New(slog.NewJSONHandler(buf, nil))
			eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ShowStack: show})

			rec := httptest.NewRecorder()
			eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), errors.New("db exploded"))

			body := decodeBody(t, rec)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			if show {
				assert.Equal(t, "db exploded", body.Stack)
			} else {
				assert.Empty(t, body.Stack)
			}
			assert.Contains(t, buf.String(), `"level":"ERROR"`)
			assert.Contains(t, buf.String(), `"status_code":500`)
		}
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		eh := handler.NewErrorHandler(slog.New(slog.NewJSONHandler(buf, nil)), handler.ErrorHandlerConfig{})

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrUnauthorized)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
	})
}

func TestJSONOptions(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	resp := handler.JSON([]string{"a", "b"}, handler.WithResults(2), handler.WithToken("tok"))
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	body := decodeBody(t, rec)
	require.NotNil(t, body.Results)
	assert.Equal(t, 2, *body.Results)
	assert.Equal(t, "tok", body.Token)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
