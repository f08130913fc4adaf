// Package email delivers transactional email through Postmark, or writes
// messages to disk in development with DevSender.
//
//	var sender email.EmailSender
//	if cfg.PostmarkServerToken != "" {
//		sender = email.MustNewPostmarkClient(cfg)
//	} else {
//		sender = email.NewDevSender(cfg.DevDir)
//	}
//
// HTML bodies are rendered from the embedded templates in the templates
// subpackage.
package email
