// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mmynk/platelog/internal/models"
)

// Config is the server configuration. Every field has a usable default.
// The default JWTSecret is for development only; see InsecureSecret.
type Config struct {
	Port       int    `env:"PORT" envDefault:"8080"`
	DBPath     string `env:"DB_PATH" envDefault:"./data/platelog.db"`
	StaticPath string `env:"STATIC_PATH"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	RecognitionDelay       time.Duration `env:"RECOGNITION_DELAY" envDefault:"2s"`
	RecognitionFailureRate float64       `env:"RECOGNITION_FAILURE_RATE" envDefault:"0"`

	CalorieGoal  float64 `env:"CALORIE_GOAL" envDefault:"2000"`
	DefaultTheme string  `env:"DEFAULT_THEME" envDefault:"light"`
	Timezone     string  `env:"TIMEZONE" envDefault:"Local"`
	SeedDemo     bool    `env:"SEED_DEMO" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// DevJWTSecret is the JWT_SECRET default. Tokens signed with it can be forged
// by anyone who has read this file.
const DevJWTSecret = "dev-secret-change-me"

const minSecretLen = 16

// InsecureSecret reports whether the server is signing tokens with the
// development secret.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.RecognitionDelay < 0 {
		errs = append(errs, fmt.Errorf("RECOGNITION_DELAY must not be negative"))
	}
	if c.RecognitionFailureRate < 0 || c.RecognitionFailureRate > 1 {
		errs = append(errs, fmt.Errorf("RECOGNITION_FAILURE_RATE must be within [0,1]"))
	}
	if c.CalorieGoal <= 0 {
		errs = append(errs, fmt.Errorf("CALORIE_GOAL must be positive"))
	}
	if _, err := models.ParseTheme(c.DefaultTheme); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_THEME: %w", err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if len(c.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. Days and meal times are computed in it.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}
