// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID when it is at most 128
// characters of letters, digits, "-" and "_", and generates a UUID
// otherwise. The id is stored on the request context and echoed in the
// response header.
//
//	r.Use(requestid.Middleware)
//
// FromContext returns the id for a context and LoggerExtractor adds it to
// slog records as "request_id". Invalid client ids are replaced, never
// rejected.
package requestid
