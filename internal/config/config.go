// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Content provider keys. A provider with no key is simply unavailable.
	PerplexityAPIKey string
	PerplexityModel  string
	HuggingFaceKey   string
	HuggingFaceModel string
	ActiveProvider   string // preferred provider name, optional

	// Image generation
	ImageBaseURL string

	// Scheduler
	ScheduleInterval time.Duration
	ScheduleFile     string // when set, schedule lives in this JSON file instead of PostgreSQL

	// Admin API
	AdminAPIKey string // plain key or bcrypt hash
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "aidigest"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "aidigest"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityModel:  os.Getenv("PERPLEXITY_MODEL"),
		HuggingFaceKey:   os.Getenv("HUGGINGFACE_API_KEY"),
		HuggingFaceModel: os.Getenv("HUGGINGFACE_MODEL"),
		ActiveProvider:   os.Getenv("AI_PROVIDER"),

		ImageBaseURL: os.Getenv("IMAGE_BASE_URL"),

		ScheduleFile: os.Getenv("SCHEDULE_FILE"),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	interval, err := parseInterval(envOrDefault("SCHEDULE_CHECK_INTERVAL", "60s"))
	if err != nil {
		return nil, err
	}
	cfg.ScheduleInterval = interval

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminAPIKey == "" {
			return nil, fmt.Errorf("ADMIN_API_KEY must be set in production")
		}
	}

	return cfg, nil
}

// parseInterval parses the scheduler polling interval and rejects values
// that would busy-loop.
func parseInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("SCHEDULE_CHECK_INTERVAL: %w", err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("SCHEDULE_CHECK_INTERVAL must be at least 1s, got %s", d)
	}
	return d, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
