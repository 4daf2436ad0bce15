// Package config reads the server settings from the environment, loading a
// .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the complete runtime configuration.
type Config struct {
	// Port the HTTP listener binds (PORT).
	Port int
	// DatabaseURL selects the persistent store; empty means in-memory
	// (DATABASE_URL).
	DatabaseURL string
	// Serverless is set on hosting platforms that invoke the handler per
	// request (VERCEL=1). No listener is bound and no static files are
	// served.
	Serverless bool
	// Env is "development" or "production" (APP_ENV).
	Env string
	// StaticDir holds the built client (STATIC_DIR).
	StaticDir string
	// ReadyTimeout bounds how long early requests wait for seeding
	// (READY_TIMEOUT).
	ReadyTimeout time.Duration
	// LogLevel is one of debug, info, warn, error (LOG_LEVEL).
	LogLevel string

	SMTP SMTPConfig
}

// SMTPConfig configures the contact notification mail.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Enabled reports whether credentials are present.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != ""
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset values.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         5000,
		DatabaseURL:  getenv("DATABASE_URL"),
		Serverless:   getenv("VERCEL") == "1",
		Env:          valueOr(getenv("APP_ENV"), "production"),
		StaticDir:    valueOr(getenv("STATIC_DIR"), "dist/public"),
		ReadyTimeout: 15 * time.Second,
		LogLevel:     valueOr(getenv("LOG_LEVEL"), "info"),
		SMTP: SMTPConfig{
			Host: valueOr(getenv("SMTP_HOST"), "smtp.gmail.com"),
			Port: valueOr(getenv("SMTP_PORT"), "587"),
			User: getenv("SMTP_USER"),
			Pass: getenv("SMTP_PASS"),
			To:   getenv("TO_EMAIL"),
		},
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := getenv("READY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid READY_TIMEOUT %q", v)
		}
		cfg.ReadyTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Env {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	if c.SMTP.Enabled() && c.SMTP.To == "" {
		return errors.New("TO_EMAIL is required when SMTP credentials are set")
	}
	return nil
}

// Development reports whether the server runs in development mode.
func (c *Config) Development() bool { return c.Env == "development" }

// Addr is the listen address.
func (c *Config) Addr() string { return "0.0.0.0:" + strconv.Itoa(c.Port) }

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
