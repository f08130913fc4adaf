// Package environment carries the deployment environment through request
// contexts and structured logs.
//
// Environment is a typed string with the Development, Staging and Production
// constants. Parse maps a configured name onto one of them. Anything it does
// not recognize, including the empty string, is Production, so a missing or
// misspelled APP_ENV never relaxes cookie or error-body settings.
//
// Middleware stores the environment on every request context, FromContext
// reads it back and LoggerExtractor adds it to slog records:
//
//	env := environment.Parse(cfg.Env)
//	r.Use(environment.Middleware(env))
//
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
//
// The helpers never return errors. A context without an environment yields
// the zero value "".
package environment
