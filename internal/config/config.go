// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the calculator API settings.
type Config struct {
	HTTPAddr        string
	LogLevel        zapcore.Level
	ServiceName     string
	ExportEnabled   bool
	ShutdownTimeout time.Duration

	SessionMax           int
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		HTTPAddr:             ":8080",
		LogLevel:             zapcore.InfoLevel,
		ServiceName:          "calculator-api",
		ExportEnabled:        false,
		ShutdownTimeout:      5 * time.Second,
		SessionMax:           10000,
		SessionTTL:           30 * time.Minute,
		SessionSweepInterval: time.Minute,
	}
}

// LoadDotEnv loads environment variables from the given files (".env" when
// none are given) if present. Existing process environment variables are
// not overridden.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// FromEnv builds a Config from the process environment on top of Default.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		cfg.HTTPAddr = v
	}

	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	if v, ok := lookup("OTEL_EXPORT_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("OTEL_EXPORT_ENABLED: %w", err)
		}
		cfg.ExportEnabled = b
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
		{"SESSION_TTL", &cfg.SessionTTL},
		{"SESSION_SWEEP_INTERVAL", &cfg.SessionSweepInterval},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("%s: must be positive, got %s", d.key, v)
		}
		*d.dst = parsed
	}

	if v, ok := lookup("SESSION_MAX"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_MAX: %w", err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("SESSION_MAX: must not be negative, got %d", n)
		}
		cfg.SessionMax = n
	}

	return cfg, nil
}
