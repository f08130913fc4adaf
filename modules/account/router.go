package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services to mount. Nil services are skipped.
type RouterOptions struct {
	Auth  Mountable // mounted at /auth
	Users Mountable // mounted at /users
}

// Router assembles the account module.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Auth != nil {
		r.Mount("/auth", opts.Auth.Handle())
	}
	if opts.Users != nil {
		r.Mount("/users", opts.Users.Handle())
	}
	return r
}
