// Package httpserver runs an http.Handler with configured timeouts and shuts
// it down gracefully when the context is cancelled or the process receives
// SIGINT or SIGTERM.
//
// Liveness and readiness probes are mounted with HealthRoutes:
//
//	r.Route("/health", httpserver.HealthRoutes(log,
//		httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)},
//	))
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil { ... }
package httpserver
