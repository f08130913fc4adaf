package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/coursehub/pkg/email"
	"github.com/dmitrymomot/coursehub/pkg/email/templates"
	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/pkg/logger"
	"github.com/dmitrymomot/coursehub/pkg/sanitizer"
	"github.com/dmitrymomot/coursehub/pkg/validator"
)

const resetSubject = "Your password reset token (valid for 1 hour)"

// TokenCodec mints and verifies signed tokens.
type TokenCodec interface {
	TokenIssuer
	Verify(token string, purpose jwt.Purpose) (*jwt.Claims, error)
}

// ResetService runs the password reset flow.
type ResetService struct {
	store       ResetStorage
	tokens      TokenCodec
	sender      email.EmailSender
	frontendURL string
	opts        *options
}

func NewResetService(store ResetStorage, tokens TokenCodec, sender email.EmailSender, frontendURL string, opts ...Option) *ResetService {
	return &ResetService{
		store:       store,
		tokens:      tokens,
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		opts:        newOptions(opts),
	}
}

// hashToken is the form a reset token takes in the server-side mirror.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ResetURL builds the link delivered to the user.
func (s *ResetService) ResetURL(token string) string {
	return s.frontendURL + "/reset-password/" + token
}

// RequestReset issues a reset token for the account registered under
// addr, stores its mirror and emails the link. If the email cannot be sent
// the mirror is cleared again and ErrEmailDeliveryFailed is returned.
func (s *ResetService) RequestReset(ctx context.Context, addr string) error {
	addr = sanitizer.NormalizeEmail(addr)
	if err := validator.Apply(validator.Required("email", addr)); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(ctx, addr)
	if err != nil {
		return err
	}

	tok, err := s.tokens.Issue(user.ID, jwt.PurposeReset, jwt.ResetTTL)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	tokenHash := hashToken(tok.Value)
	if err := s.store.SetResetToken(ctx, user.ID, tokenHash, tok.ExpiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.deliver(ctx, user, tok.Value); err != nil {
		s.opts.log.ErrorContext(ctx, "failed to send password reset email",
			logger.UserID(user.ID),
			logger.Email(user.Email),
			logger.Error(err),
			logger.Component("password_reset"),
		)

		// The rollback must run even if the request was cancelled.
		if clearErr := s.store.ClearResetToken(context.WithoutCancel(ctx), user.ID, tokenHash); clearErr != nil {
			s.opts.log.ErrorContext(ctx, "failed to roll back reset token",
				logger.UserID(user.ID),
				logger.Error(clearErr),
				logger.Component("password_reset"),
			)
		}
		return errors.Join(ErrEmailDeliveryFailed, err)
	}

	s.opts.log.InfoContext(ctx, "password reset requested",
		logger.UserID(user.ID),
		logger.Event("password_reset_requested"),
	)
	return nil
}

func (s *ResetService) deliver(ctx context.Context, user *User, token string) error {
	link := s.ResetURL(token)

	html, err := templates.Render(templates.PasswordReset, templates.PasswordResetData{
		Name:     user.Name,
		ResetURL: link,
		TTL:      "1 hour",
	})
	if err != nil {
		return err
	}

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:  user.Email,
		Subject: resetSubject,
		BodyText: fmt.Sprintf("Forgot your password? Set a new one at: %s\n"+
			"If you didn't forget your password, please ignore this email.", link),
		BodyHTML: html,
		Tag:      "password-reset",
	})
}

// ConsumeReset sets a new password using a reset token. The token must
// verify, belong to an existing user and match the stored mirror, which is
// cleared together with the password update.
func (s *ResetService) ConsumeReset(ctx context.Context, token, password, confirm string) (*User, error) {
	claims, err := s.tokens.Verify(token, jwt.PurposeReset)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, errors.Join(ErrTokenExpired, err)
		}
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	user, err := s.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, errors.Join(ErrTokenInvalid, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := s.opts.now()
	tokenHash := hashToken(token)
	switch {
	case user.ResetTokenHash == "":
		return nil, ErrResetNotPending
	case subtle.ConstantTimeCompare([]byte(user.ResetTokenHash), []byte(tokenHash)) != 1:
		return nil, ErrResetSuperseded
	case user.ResetExpiresAt == nil || !now.Before(*user.ResetExpiresAt):
		return nil, ErrTokenExpired
	}

	if err := validator.Apply(validatePassword("password", password, confirm)...); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password, s.opts.bcryptCost)
	if err != nil {
		return nil, err
	}

	changedAt := passwordChangedAt(now)
	if err := s.store.CompleteReset(ctx, user.ID, tokenHash, hash, changedAt); err != nil {
		if errors.Is(err, ErrResetNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to complete reset: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = ""
	user.ResetExpiresAt = nil
	user.UpdatedAt = changedAt

	s.opts.log.InfoContext(ctx, "password reset completed",
		logger.UserID(user.ID),
		logger.Event("password_reset_completed"),
	)
	return user, nil
}
