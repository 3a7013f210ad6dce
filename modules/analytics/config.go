package analytics

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidTimeframe is returned for timeframes outside the enum.
var ErrInvalidTimeframe = errors.New("invalid timeframe: must be day, week or month")

// Config holds the analytics window lengths, in days. The boundary
// semantics of a timeframe are deployment policy, not code.
type Config struct {
	WeekDays  int `env:"ANALYTICS_WEEK_DAYS" envDefault:"7"`
	MonthDays int `env:"ANALYTICS_MONTH_DAYS" envDefault:"30"`
}

// LoadConfig parses the analytics configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse analytics config: %w", err)
	}
	// A window always spans at least one day, so the daily trend is never empty.
	if cfg.WeekDays < 1 {
		cfg.WeekDays = 1
	}
	if cfg.MonthDays < 1 {
		cfg.MonthDays = 1
	}
	return cfg, nil
}

// WindowDays maps a timeframe to its trailing window length. An empty
// timeframe defaults to a week.
func (c Config) WindowDays(timeframe string) (int, error) {
	switch timeframe {
	case "day":
		return 1, nil
	case "week", "":
		return c.WeekDays, nil
	case "month":
		return c.MonthDays, nil
	default:
		return 0, ErrInvalidTimeframe
	}
}
