package binder

import "net/http"

// BindQuery fills `query:"name"` fields from the URL query string.
//
//	type ListUsersRequest struct {
//		Role  string `query:"role"`
//		Limit int    `query:"limit"`
//	}
func BindQuery() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindFields(v, "query", q.Get, ErrInvalidQuery)
	}
}
