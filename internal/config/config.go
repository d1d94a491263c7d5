package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/visitrack/internal/geo"
	"github.com/dmitrymomot/visitrack/internal/notify"
	"github.com/dmitrymomot/visitrack/internal/visitor"
	"github.com/dmitrymomot/visitrack/pkg/httpserver"
)

// Config aggregates all service configuration, populated from
// environment variables.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"` // Env selects logger defaults: "production" or anything else for development.
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Server  httpserver.Config
	Visitor visitor.Config
	Geo     geo.Config

	Telegram  notify.TelegramConfig
	Discord   notify.DiscordConfig
	Email     notify.EmailConfig
	Datastore notify.DatastoreConfig
	Postgres  notify.PostgresConfig
}

// Load reads an optional .env file, then parses the environment into
// Config. Missing .env is fine; a malformed environment is not.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
