package task

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the task module configuration.
type Config struct {
	DBPath string `env:"TASKS_DB_PATH" envDefault:"todo.db"`
}

// LoadConfig parses the task configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse task config: %w", err)
	}
	return cfg, nil
}
