// Package config reads the signup server's runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/mergington-activities/internal/storage"
)

// Config captures runtime configuration values for the signup server.
type Config struct {
	HTTPHost        string
	HTTPPort        int
	ActivitiesFile  string
	TeachersFile    string
	StaticDir       string // empty means auto-detect, then embedded assets
	StorageType     string
	RedisURL        string
	AllowedOrigins  []string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	return Config{
		HTTPHost:        getEnv("HTTP_HOST", ""),
		HTTPPort:        getIntEnv("HTTP_PORT", 8080),
		ActivitiesFile:  getEnv("ACTIVITIES_FILE", "data/activities.json"),
		TeachersFile:    getEnv("TEACHERS_FILE", "data/teachers.json"),
		StaticDir:       getEnv("STATIC_DIR", ""),
		StorageType:     strings.ToLower(getEnv("STORAGE_TYPE", storage.TypeMemory)),
		RedisURL:        getEnv("REDIS_URL", ""),
		AllowedOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:        getLevelEnv("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate reports configuration that cannot start a server
func (c Config) Validate() error {
	var errs []error
	switch c.StorageType {
	case storage.TypeMemory:
	case storage.TypeRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", storage.TypeMemory, storage.TypeRedis, c.StorageType))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.ActivitiesFile == "" {
		errs = append(errs, errors.New("ACTIVITIES_FILE must not be empty"))
	}
	if c.TeachersFile == "" {
		errs = append(errs, errors.New("TEACHERS_FILE must not be empty"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getLevelEnv(key string, fallback slog.Level) slog.Level {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return fallback
}
