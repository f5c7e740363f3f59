package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver    string `env:"PITWALL_DB_DRIVER" envDefault:"sqlite3" validate:"oneof=sqlite3 pgx"`
	DatabaseURL string `env:"PITWALL_DATABASE_URL" envDefault:"pitwall.db?_journal_mode=WAL&_foreign_keys=on" validate:"required"`
	HTTPAddr    string `env:"PITWALL_HTTP_ADDR" envDefault:":8080" validate:"required"`
	LogLevel    string `env:"PITWALL_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"PITWALL_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	CORSOrigins       []string      `env:"PITWALL_CORS_ORIGINS" envSeparator:"," envDefault:"*" validate:"min=1"`
	StandingsCacheTTL time.Duration `env:"PITWALL_STANDINGS_CACHE_TTL" envDefault:"30s"`
}

// Load reads the given dotenv files (.env when none is given) and then the
// environment. A missing dotenv file is not an error; variables already set
// in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load dotenv: %w", err)
		}
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the process logger described by the configuration.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
