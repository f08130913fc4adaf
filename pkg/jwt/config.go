package jwt

import "time"

// Config holds the codec settings. Secret is process-wide and read once at startup.
type Config struct {
	Secret     string        `env:"JWT_SECRET,required"`
	SessionTTL time.Duration `env:"JWT_SESSION_TTL" envDefault:"168h"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"coursehub"`
}
