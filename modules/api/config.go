package api

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the HTTP module configuration.
type Config struct {
	HTTPPort int `env:"HTTP_PORT" envDefault:"3000"`
}

// LoadConfig parses the API configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse api config: %w", err)
	}
	return cfg, nil
}
