package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath    string
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // optional additional log destination
}

// Load reads configuration from environment variables and returns a Config
// struct, applying defaults for everything optional. If a .env file exists
// in the current directory it is loaded first; environment variables
// already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:    getEnv("CARDIFY_DB_PATH", "cardify.db"),
		LogFormat: getEnv("CARDIFY_LOG_FORMAT", "text"),
		LogFile:   getEnv("CARDIFY_LOG_FILE", ""),
	}

	level, err := ParseLogLevel(getEnv("CARDIFY_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("CARDIFY_LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Create the database directory if the path has one.
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return cfg, nil
}

// ParseLogLevel converts a level name into a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
