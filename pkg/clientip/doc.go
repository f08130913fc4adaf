// Package clientip resolves the client address of an HTTP request behind
// common reverse proxies and stores it in the request context.
package clientip
