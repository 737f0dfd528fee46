package config

import (
	"errors"
	"os"
	"strings"
)

// Config is the process configuration, supplied via environment variables.
type Config struct {
	DatabaseURL string // PostgreSQL connection string (required)
	Port        string // HTTP listen port (default 8080)
	BaseURL     string // public base URL, no trailing slash
	LogLevel    string // zap level: debug, info, warn, error
}

// FromEnv reads configuration from the environment. A missing DATABASE_URL is
// a fatal startup condition and is returned as an error.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:        strings.TrimSpace(os.Getenv("PORT")),
		BaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/"),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
