package rbac_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, r := range rbac.AllRoles() {
		got, err := rbac.ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := rbac.ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleAdmin, got)

	_, err = rbac.ParseRole("superuser")
	assert.ErrorIs(t, err, rbac.ErrInvalidRole)
}

func TestRole_Rank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, rbac.RoleUser.Rank())
	assert.Equal(t, 2, rbac.RolePremium.Rank())
	assert.Equal(t, 3, rbac.RoleModerator.Rank())
	assert.Equal(t, 4, rbac.RoleAdmin.Rank())
	assert.Equal(t, 0, rbac.Role("guest").Rank())
}

func TestCheckMinimum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role  rbac.Role
		min   rbac.Role
		allow bool
	}{
		{rbac.RoleUser, rbac.RoleModerator, false},
		{rbac.RolePremium, rbac.RoleModerator, false},
		{rbac.RoleModerator, rbac.RoleModerator, true},
		{rbac.RoleAdmin, rbac.RoleModerator, true},
		{rbac.RoleUser, rbac.RoleUser, true},
		{rbac.Role("guest"), rbac.RoleUser, false},
		{rbac.Role(""), rbac.RoleUser, false},
		{rbac.RoleAdmin, rbac.Role("guest"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+">="+string(tt.min), func(t *testing.T) {
			t.Parallel()
			err := rbac.CheckMinimum(tt.role, tt.min)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, rbac.ErrInsufficientRole)
			}
		})
	}
}

func TestCheckAllowed(t *testing.T) {
	t.Parallel()

	assert.NoError(t, rbac.CheckAllowed(rbac.RoleAdmin, rbac.RoleAdmin))
	assert.NoError(t, rbac.CheckAllowed(rbac.RolePremium, rbac.RoleUser, rbac.RolePremium))

	err := rbac.CheckAllowed(rbac.RoleModerator, rbac.RoleAdmin)
	assert.ErrorIs(t, err, rbac.ErrRoleNotAllowed)
	assert.Contains(t, err.Error(), "admin")

	assert.ErrorIs(t, rbac.CheckAllowed(rbac.RoleAdmin), rbac.ErrRoleNotAllowed)
	assert.ErrorIs(t, rbac.CheckAllowed(rbac.Role("root"), rbac.Role("root")), rbac.ErrRoleNotAllowed)
}

func TestCheckOwnership(t *testing.T) {
	t.Parallel()

	course := rbac.Resource{Instructor: "owner", User: "someone-else"}
	review := rbac.Resource{User: "owner"}

	for _, res := range []rbac.Resource{course, review} {
		assert.NoError(t, rbac.CheckOwnership(rbac.Principal{ID: "owner", Role: rbac.RoleUser}, res))
		assert.ErrorIs(t, rbac.CheckOwnership(rbac.Principal{ID: "other", Role: rbac.RoleUser}, res), rbac.ErrNotOwner)
		assert.ErrorIs(t, rbac.CheckOwnership(rbac.Principal{ID: "other", Role: rbac.RolePremium}, res), rbac.ErrNotOwner)
		assert.NoError(t, rbac.CheckOwnership(rbac.Principal{ID: "other", Role: rbac.RoleAdmin}, res))
		assert.NoError(t, rbac.CheckOwnership(rbac.Principal{ID: "other", Role: rbac.RoleModerator}, res))
	}

	// The instructor owns a course even when a user field is present.
	assert.ErrorIs(t, rbac.CheckOwnership(rbac.Principal{ID: "someone-else", Role: rbac.RoleUser}, course), rbac.ErrNotOwner)
	// An unowned resource is never owned by an empty id.
	assert.ErrorIs(t, rbac.CheckOwnership(rbac.Principal{Role: rbac.RoleUser}, rbac.Resource{}), rbac.ErrNotOwner)
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, p *rbac.Principal, path string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if p != nil {
				req = req.WithContext(rbac.SetPrincipalToContext(req.Context(), *p))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.With(mw).Delete("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec, reached
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var body response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGuard_RequireMinimumRole(t *testing.T) {
	t.Parallel()

	guard := rbac.NewGuard()
	mw := guard.RequireMinimumRole(rbac.RoleModerator)

	for _, role := range rbac.AllRoles() {
		rec, reached := serve(t, mw, &rbac.Principal{ID: "u", Role: role}, "/things/1")
		if role.AtLeast(rbac.RoleModerator) {
			assert.True(t, reached, role)
			assert.Equal(t, http.StatusNoContent, rec.Code)
		} else {
			assert.False(t, reached, role)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, "Access denied. Minimum role required: moderator", body.Message)
		}
	}
}

func TestGuard_Authorize(t *testing.T) {
	t.Parallel()

	mw := rbac.NewGuard().Authorize(rbac.RoleAdmin)

	rec, reached := serve(t, mw, &rbac.Principal{ID: "u", Role: rbac.RoleModerator}, "/things/1")
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "admin")

	rec, reached = serve(t, mw, &rbac.Principal{ID: "u", Role: rbac.RoleAdmin}, "/things/1")
	assert.True(t, reached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGuard_NoPrincipal(t *testing.T) {
	t.Parallel()

	rec, reached := serve(t, rbac.NewGuard().RequireMinimumRole(rbac.RoleUser), nil, "/things/1")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_RequireOwnerOrElevated(t *testing.T) {
	t.Parallel()

	lookups := 0
	lookup := rbac.ResourceLookupFunc(func(_ context.Context, id string) (rbac.Resource, error) {
		lookups++
		if id != "course-1" {
			return rbac.Resource{}, rbac.ErrResourceNotFound
		}
		return rbac.Resource{Instructor: "owner"}, nil
	})
	mw := rbac.NewGuard().RequireOwnerOrElevated(lookup)

	tests := []struct {
		name      string
		principal rbac.Principal
		path      string
		status    int
	}{
		{"owner", rbac.Principal{ID: "owner", Role: rbac.RoleUser}, "/things/course-1", http.StatusNoContent},
		{"other user", rbac.Principal{ID: "other", Role: rbac.RoleUser}, "/things/course-1", http.StatusForbidden},
		{"other premium", rbac.Principal{ID: "other", Role: rbac.RolePremium}, "/things/course-1", http.StatusForbidden},
		{"moderator", rbac.Principal{ID: "mod", Role: rbac.RoleModerator}, "/things/course-1", http.StatusNoContent},
		{"admin", rbac.Principal{ID: "adm", Role: rbac.RoleAdmin}, "/things/course-1", http.StatusNoContent},
		{"missing for admin", rbac.Principal{ID: "adm", Role: rbac.RoleAdmin}, "/things/nope", http.StatusNotFound},
		{"missing for owner", rbac.Principal{ID: "owner", Role: rbac.RoleUser}, "/things/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		p := tt.principal
		rec, reached := serve(t, mw, &p, tt.path)
		assert.Equal(t, tt.status, rec.Code, tt.name)
		assert.Equal(t, tt.status == http.StatusNoContent, reached, tt.name)
	}
	assert.Equal(t, len(tests), lookups)
}

func TestGuard_Chained(t *testing.T) {
	t.Parallel()

	guard := rbac.NewGuard()
	chain := func(next http.Handler) http.Handler {
		return guard.RequireMinimumRole(rbac.RolePremium)(guard.Authorize(rbac.RolePremium, rbac.RoleAdmin)(next))
	}

	_, reached := serve(t, chain, &rbac.Principal{ID: "u", Role: rbac.RoleModerator}, "/things/1")
	assert.False(t, reached)

	_, reached = serve(t, chain, &rbac.Principal{ID: "u", Role: rbac.RolePremium}, "/things/1")
	assert.True(t, reached)
}
