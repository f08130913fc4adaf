package ratelimit

import "time"

// Config sets the budget for the credential endpoints.
type Config struct {
	Limit  int           `env:"RATE_LIMIT_AUTH_REQUESTS" envDefault:"10"`
	Window time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" envDefault:"15m"`
	Prefix string        `env:"RATE_LIMIT_PREFIX" envDefault:"rl:"`
}
