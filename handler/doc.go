// Package handler provides typed JSON handlers for the HTTP API.
//
// A handler is a generic function that receives a bound request value and
// returns a Response. Wrap adapts it to http.HandlerFunc, running binders
// first and routing every failure through an ErrorHandler:
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func (s *Service) Login(ctx handler.Context, req LoginRequest) handler.Response {
//		user, err := s.passwords.Authenticate(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(user.Sanitized())
//	}
//
//	r.Post("/login", handler.Wrap(svc.Login,
//		handler.WithBinders[handler.Context, LoginRequest](binder.BindJSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](errHandler),
//	))
//
// All JSON bodies share one envelope:
//
//	{"success": true, "message": "...", "token": "...", "data": {...}}
//	{"success": false, "message": "...", "errors": {"field": ["..."]}}
//
// Errors are classified by HTTPError (explicit status and message),
// validator.ValidationErrors and binder errors (400), anything else is a
// 500 with a generic message. Middleware that runs outside Wrap renders the
// same shape through WriteError or an ErrorResponder.
package handler
