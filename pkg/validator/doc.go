// Package validator provides composable validation rules. Each rule pairs a
// check with the error it reports; Apply runs them all and returns every
// failure as ValidationErrors.
//
//	err := validator.Apply(
//		validator.Required("name", req.Name),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 8),
//		validator.Equal("passwordConfirm", req.PasswordConfirm, req.Password, "passwords are not the same"),
//	)
package validator
