package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursehub/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "jane@example.com", Subject: "Hi", BodyText: "hello"}
	require.NoError(t, valid.Validate())

	tests := map[string]email.SendEmailParams{
		"bad recipient": {SendTo: "jane", Subject: "Hi", BodyText: "x"},
		"no subject":    {SendTo: "jane@example.com", Subject: " ", BodyText: "x"},
		"no body":       {SendTo: "jane@example.com", Subject: "Hi"},
	}
	for name, p := range tests {
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams, name)
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	cfg := email.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "noreply@example.com",
		SupportEmail:         "support@example.com",
	}
	client, err := email.NewPostmarkClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.True(t, cfg.PostmarkEnabled())

	broken := []func(c *email.Config){
		func(c *email.Config) { c.PostmarkServerToken = "" },
		func(c *email.Config) { c.PostmarkAccountToken = "" },
		func(c *email.Config) { c.SenderEmail = "nope" },
		func(c *email.Config) { c.SupportEmail = "" },
	}
	for _, mutate := range broken {
		c := cfg
		mutate(&c)
		_, err := email.NewPostmarkClient(c)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	}

	assert.Panics(t, func() { email.MustNewPostmarkClient(email.Config{}) })
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "jane@example.com",
		Subject:  "Your password reset token",
		BodyText: "reset at https://x/reset-password/t",
		BodyHTML: "<p>reset</p>",
		Tag:      "password-reset",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var exts []string
	for _, e := range entries {
		assert.True(t, strings.Contains(e.Name(), "password-reset"))
		exts = append(exts, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".html", ".txt", ".json"}, exts)

	err = sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
}
