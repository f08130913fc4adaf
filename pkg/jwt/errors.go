package jwt

import "errors"

var (
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrMissingSubject    = errors.New("jwt: missing subject")
	ErrInvalidTTL        = errors.New("jwt: ttl must be positive")
	ErrMalformedToken    = errors.New("jwt: malformed token")
	ErrInvalidSignature  = errors.New("jwt: invalid signature")
	ErrExpiredToken      = errors.New("jwt: token is expired")
	ErrWrongPurpose      = errors.New("jwt: token issued for another purpose")
	ErrNoToken           = errors.New("jwt: no token in request")
)
