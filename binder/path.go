package binder

import (
	"fmt"
	"net/http"
)

// Path fills `path:"name"` fields using the router's parameter extractor.
//
//	r.Patch("/users/{id}/role", handler.Wrap(svc.UpdateRole,
//		handler.WithBinders[handler.Context, UpdateRoleRequest](
//			binder.Path(chi.URLParam),
//			binder.BindJSON(),
//		),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindFields(v, "path", func(name string) string {
			return extractor(r, name)
		}, ErrInvalidPath)
	}
}
