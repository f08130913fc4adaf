package auth

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type options struct {
	log           *slog.Logger
	now           func() time.Time
	bcryptCost    int
	afterRegister func(ctx context.Context, user *User) error
}

// Option configures the services in this package.
type Option func(*options)

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithBcryptCost sets the bcrypt work factor. Values outside bcrypt's
// accepted range are ignored.
func WithBcryptCost(cost int) Option {
	return func(o *options) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			o.bcryptCost = cost
		}
	}
}

// WithAfterRegister sets a hook that runs in the background after a
// successful registration. Its errors are logged and never reach the caller.
func WithAfterRegister(fn func(ctx context.Context, user *User) error) Option {
	return func(o *options) { o.afterRegister = fn }
}

func newOptions(opts []Option) *options {
	o := &options{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
