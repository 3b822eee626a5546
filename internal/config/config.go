// /internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, populated from the environment.
// A .env file in the working directory is loaded first if present.
type Config struct {
	DiscordToken  string        `env:"DISCORD_TOKEN,required"`
	StoragePath   string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogPath       string        `env:"LOG_PATH"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
	DefaultLocale string        `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// New loads the configuration from the environment.
func New() (*Config, error) {
	_ = godotenv.Load() // fall back to system environment when no .env exists

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
