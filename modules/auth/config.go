package auth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the auth module configuration, loaded from environment
// variables. The JWT secret must be overridden in any real deployment.
type Config struct {
	DBPath          string        `env:"AUTH_DB_PATH" envDefault:"todo_auth.db"`
	JWTSecret       string        `env:"JWT_SECRET_KEY" envDefault:"change-me-in-production"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"todo-api"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
	MinPasswordLen  int           `env:"AUTH_MIN_PASSWORD_LEN" envDefault:"8"`
	BcryptCost      int           `env:"AUTH_BCRYPT_COST" envDefault:"12"`
}

// LoadConfig parses the auth configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse auth config: %w", err)
	}
	if cfg.MinPasswordLen < 1 {
		cfg.MinPasswordLen = 1
	}
	if cfg.MinPasswordLen > MaxPasswordLen {
		cfg.MinPasswordLen = MaxPasswordLen
	}
	return cfg, nil
}
