package auth

import (
	"context"

	"github.com/dmitrymomot/coursehub/pkg/email"
	"github.com/dmitrymomot/coursehub/pkg/email/templates"
)

// WelcomeEmail returns an after-register hook that greets new users.
// Use it with WithAfterRegister; delivery failures are only logged.
func WelcomeEmail(sender email.EmailSender, appName, appURL string) func(ctx context.Context, user *User) error {
	return func(ctx context.Context, user *User) error {
		html, err := templates.Render(templates.Welcome, templates.WelcomeData{
			Name:   user.Name,
			AppURL: appURL,
		})
		if err != nil {
			return err
		}
		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   user.Email,
			Subject:  "Welcome to " + appName + "!",
			BodyText: "Hi " + user.Name + ", welcome to " + appName + "! Start learning at " + appURL,
			BodyHTML: html,
			Tag:      "welcome",
		})
	}
}
