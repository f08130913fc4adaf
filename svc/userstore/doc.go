// Package userstore provides the credential store behind auth.Storage:
// Mongo for production and Memory for tests and local runs.
package userstore
