package auth

import (
	"os"
	"time"
)

// Config holds the process-wide signing secret and session lifetime. The
// secret must stay stable across restarts for issued tokens to remain valid.
type Config struct {
	Secret     string
	SessionTTL time.Duration
}

// ConfigFromEnv reads JWT_SECRET and SESSION_TTL from the environment.
// Sessions default to 24 hours.
func ConfigFromEnv() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// development fallback; deployments must set a real secret
		secret = "change-me-in-production"
	}
	ttl := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{Secret: secret, SessionTTL: ttl}
}
