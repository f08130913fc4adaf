package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/coursehub/pkg/logger"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
	"github.com/dmitrymomot/coursehub/pkg/sanitizer"
	"github.com/dmitrymomot/coursehub/pkg/validator"
)

const (
	minPasswordLen   = 8
	maxPasswordBytes = 72 // bcrypt input limit
	maxNameLen       = 100
)

// RegisterParams is the input of PasswordService.Register.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// PasswordService manages password credentials.
type PasswordService struct {
	store PasswordStorage
	opts  *options
}

func NewPasswordService(store PasswordStorage, opts ...Option) *PasswordService {
	return &PasswordService{store: store, opts: newOptions(opts)}
}

func validatePassword(field, password, confirm string) []validator.Rule {
	return []validator.Rule{
		validator.Required(field, password),
		validator.MinLen(field, password, minPasswordLen),
		validator.MaxBytes(field, password, maxPasswordBytes),
		validator.Equal("passwordConfirm", confirm, password, "passwords are not the same"),
	}
}

func hashPassword(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// passwordChangedAt is stored at second precision so a session minted in
// the same second as the change stays valid.
func passwordChangedAt(now time.Time) time.Time {
	return now.UTC().Truncate(time.Second)
}

// Register creates a user with the default role. The after-register hook,
// if any, runs in the background.
func (s *PasswordService) Register(ctx context.Context, p RegisterParams) (*User, error) {
	name := sanitizer.CleanName(p.Name)
	email := sanitizer.NormalizeEmail(p.Email)

	rules := []validator.Rule{
		validator.Required("name", name),
		validator.MaxLen("name", name, maxNameLen),
		validator.ValidEmail("email", email),
	}
	if err := validator.Apply(append(rules, validatePassword("password", p.Password, p.PasswordConfirm)...)...); err != nil {
		return nil, err
	}

	hash, err := hashPassword(p.Password, s.opts.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.opts.now().UTC()
	user := &User{
		Name:         name,
		Email:        email,
		Role:         rbac.RoleUser,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.opts.afterRegister != nil {
		s.runAfterRegister(user.Sanitized())
	}

	return user, nil
}

func (s *PasswordService) runAfterRegister(user *User) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.opts.log.Error("afterRegister hook panicked",
					logger.UserID(user.ID),
					slog.Any("panic", r),
					logger.Component("password"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.opts.afterRegister(ctx, user); err != nil {
			s.opts.log.Error("afterRegister hook failed",
				logger.UserID(user.ID),
				logger.Error(err),
				logger.Component("password"),
			)
		}
	}()
}

// Authenticate verifies an email and password pair. Every lookup or
// comparison failure is reported as ErrInvalidCredentials.
func (s *PasswordService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.Required("password", password),
	); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces the password of an authenticated user after
// checking the current one.
func (s *PasswordService) ChangePassword(ctx context.Context, userID, current, password, confirm string) (*User, error) {
	rules := append([]validator.Rule{validator.Required("passwordCurrent", current)},
		validatePassword("password", password, confirm)...)
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)); err != nil {
		return nil, ErrIncorrectPassword
	}

	hash, err := hashPassword(password, s.opts.bcryptCost)
	if err != nil {
		return nil, err
	}

	changedAt := passwordChangedAt(s.opts.now())
	if err := s.store.UpdatePasswordHash(ctx, user.ID, hash, changedAt); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.UpdatedAt = changedAt
	return user, nil
}
