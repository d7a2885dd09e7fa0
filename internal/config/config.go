// Package config loads process configuration from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mmynk/tzgroups/internal/strategy"
	"github.com/mmynk/tzgroups/pkg/logging"
)

// Config is the runtime configuration shared by the server and the CLI.
type Config struct {
	// Port is the HTTP listen port (PORT).
	Port int
	// LogLevel is any level logging.ParseLevel accepts (LOG_LEVEL).
	LogLevel string
	// Workers bounds strategy parallelism; 0 means GOMAXPROCS (TZGROUPS_WORKERS).
	Workers int
	// Strategy is the default used when a request names none (TZGROUPS_STRATEGY).
	Strategy strategy.Kind
	// Metrics enables the Prometheus collector and /metrics (TZGROUPS_METRICS).
	Metrics bool
}

// Load reads the given .env files, or ".env" when none are named, then the
// environment. Variables already set in the environment win over the files.
// A missing file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("No .env file found, using environment variables", "path", f)
				continue
			}
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		slog.Debug("Loaded configuration from .env file", "path", f)
	}

	cfg := &Config{
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be a port number, got %q", os.Getenv("PORT"))
	}
	if cfg.Workers, err = strconv.Atoi(getEnv("TZGROUPS_WORKERS", "0")); err != nil || cfg.Workers < 0 {
		return nil, fmt.Errorf("TZGROUPS_WORKERS must be a non-negative integer, got %q", os.Getenv("TZGROUPS_WORKERS"))
	}
	if cfg.Strategy, err = strategy.ParseKind(getEnv("TZGROUPS_STRATEGY", "hillclimb")); err != nil {
		return nil, fmt.Errorf("TZGROUPS_STRATEGY: %w", err)
	}
	if cfg.Metrics, err = strconv.ParseBool(getEnv("TZGROUPS_METRICS", "true")); err != nil {
		return nil, fmt.Errorf("TZGROUPS_METRICS must be a boolean, got %q", os.Getenv("TZGROUPS_METRICS"))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Params returns base strategy parameters for this configuration.
func (c *Config) Params() strategy.Params {
	return strategy.Params{Workers: c.Workers}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
