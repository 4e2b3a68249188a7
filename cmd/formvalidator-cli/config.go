package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

// cliConfig is read from the environment (and an optional .env file), then
// overridden by flags.
type cliConfig struct {
	Forms      string `env:"FORMS"`
	Form       string `env:"FORM"`
	OpenAPI    string `env:"OPENAPI"`
	Operation  string `env:"OPERATION"`
	Locale     string `env:"LOCALE" envDefault:"ja"`
	Messages   string `env:"MESSAGES"`
	PostalURL  string `env:"POSTAL_BASE_URL"`
	RedisURL   string `env:"REDIS_URL"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"warn"`
	EnvConfig  bool   `env:"CONFIG_FROM_ENV"`
	Validation model.Config
}

const envPrefix = "FORMVALIDATOR_"

func loadConfig(args []string, envFiles ...string) (cliConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return cliConfig{}, fmt.Errorf("formvalidator-cli: load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := cliConfig{Validation: model.DefaultConfig()}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cliConfig{}, errors.Join(errors.New("formvalidator-cli: parse environment"), err)
	}

	fs := flag.NewFlagSet("formvalidator-cli", flag.ContinueOnError)
	fs.StringVar(&cfg.Forms, "forms", cfg.Forms, "directory of JSON/YAML form declarations")
	fs.StringVar(&cfg.Form, "form", cfg.Form, "form id to fill in")
	fs.StringVar(&cfg.OpenAPI, "openapi", cfg.OpenAPI, "OpenAPI document to read declarations from")
	fs.StringVar(&cfg.Operation, "operation", cfg.Operation, "OpenAPI operation id")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale (ja, en)")
	fs.StringVar(&cfg.Messages, "messages", cfg.Messages, "message override file (JSON or YAML)")
	fs.StringVar(&cfg.PostalURL, "postal-url", cfg.PostalURL, "postal data base URL; enables autofill lookups")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "redis URL for the postal data cache")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}

	if cfg.Form == "" && cfg.Operation != "" {
		cfg.Form = cfg.Operation
	}
	if cfg.Forms == "" && cfg.OpenAPI == "" {
		return cliConfig{}, errors.New("formvalidator-cli: -forms or -openapi is required")
	}
	return cfg, nil
}

func (c cliConfig) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return level
}
