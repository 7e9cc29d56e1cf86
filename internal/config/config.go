// Package config loads CLI settings from the environment.
package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the CLI defaults. Command-line flags override every field.
type Config struct {
	Lang          string `env:"VLD_LANG" envDefault:"en"`
	LogLevel      string `env:"VLD_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"VLD_LOG_FORMAT" envDefault:"text"`
	Output        string `env:"VLD_OUTPUT" envDefault:"text"`
	DuplicateKeys string `env:"VLD_DUPLICATE_KEYS" envDefault:"last"`
	MaxIssues     int    `env:"VLD_MAX_ISSUES" envDefault:"0"`
	MaxDepth      int    `env:"VLD_MAX_DEPTH" envDefault:"0"`
}

// Load reads a .env file from the working directory when present, then the
// process environment.
func Load() (Config, error) {
	// the .env file is optional
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadFrom parses cfg from the given variables only. Used by tests and
// embedders that manage their own environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and bounds.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Lang, validation.Required, validation.Length(2, 35)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.Output, validation.In("text", "json")),
		validation.Field(&c.DuplicateKeys, validation.In("last", "error")),
		validation.Field(&c.MaxIssues, validation.Min(0)),
		validation.Field(&c.MaxDepth, validation.Min(0)),
	)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

