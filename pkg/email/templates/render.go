// Package templates renders the HTML bodies of transactional emails.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed *.html
var files embed.FS

var parsed = template.Must(template.ParseFS(files, "*.html"))

const (
	PasswordReset = "password_reset.html"
	Welcome       = "welcome.html"
)

// PasswordResetData feeds PasswordReset.
type PasswordResetData struct {
	Name     string
	ResetURL string
	TTL      string
}

// WelcomeData feeds Welcome.
type WelcomeData struct {
	Name   string
	AppURL string
}

// Render executes the named template.
func Render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := parsed.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}
