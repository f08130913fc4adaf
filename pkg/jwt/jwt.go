package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose binds a token to the flow that minted it.
type Purpose string

const (
	PurposeSession Purpose = "session"
	PurposeReset   Purpose = "password_reset"
)

const (
	// DefaultSessionTTL is used when Config.SessionTTL is zero.
	DefaultSessionTTL = 7 * 24 * time.Hour
	// ResetTTL is fixed for password reset tokens.
	ResetTTL = time.Hour
)

// Claims are the registered JWT claims plus the purpose claim.
type Claims struct {
	jwtlib.RegisteredClaims
	Purpose Purpose `json:"pur"`
}

// Token is a freshly issued token with its temporal bounds.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies tokens with HMAC-SHA256.
type Codec struct {
	key        []byte
	issuer     string
	sessionTTL time.Duration
	now        func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a codec from the given configuration.
func New(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSigningKey
	}

	c := &Codec{
		key:        []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
	if c.sessionTTL <= 0 {
		c.sessionTTL = DefaultSessionTTL
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SessionTTL returns the configured lifetime of session tokens.
func (c *Codec) SessionTTL() time.Duration {
	return c.sessionTTL
}

// Issue signs a token for subject that expires ttl after issuance.
func (c *Codec) Issue(subject string, purpose Purpose, ttl time.Duration) (Token, error) {
	if subject == "" {
		return Token{}, ErrMissingSubject
	}
	if ttl <= 0 {
		return Token{}, ErrInvalidTTL
	}

	// JWT timestamps have second precision.
	issuedAt := c.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwtlib.NewNumericDate(issuedAt),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
		Purpose: purpose,
	}

	value, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{
		Value:     value,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature, expiry and purpose of a token and returns its claims.
func (c *Codec) Verify(token string, purpose Purpose) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(token, claims,
		func(t *jwtlib.Token) (any, error) {
			return c.key, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, translateError(err)
	}

	if claims.Subject == "" {
		return nil, ErrMalformedToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}

	return claims, nil
}

// translateError maps library errors onto the codec's error set.
func translateError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return errors.Join(ErrMalformedToken, err)
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid),
		errors.Is(err, jwtlib.ErrTokenUnverifiable):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	default:
		return errors.Join(ErrMalformedToken, err)
	}
}
