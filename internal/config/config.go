// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	AllowedOrigin string
	AWSRegion     string
	S3Bucket      string
	LogLevel      string
	PresetsFile   string

	RateLimit  int
	RateWindow time.Duration

	// MaxTextLength is counted in runes.
	MaxTextLength int

	JobWorkers int
	JobExpiry  time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		AWSRegion:     getEnv("AWS_REGION", "ap-northeast-1"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PresetsFile:   getEnv("PRESETS_FILE", ""),
	}

	var err error
	if cfg.RateLimit, err = getEnvInt("RATE_LIMIT", 60); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getEnvDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.MaxTextLength, err = getEnvInt("MAX_TEXT_LENGTH", 100000); err != nil {
		return nil, err
	}
	if cfg.JobWorkers, err = getEnvInt("JOB_WORKERS", 2); err != nil {
		return nil, err
	}
	if cfg.JobExpiry, err = getEnvDuration("JOB_EXPIRY", time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// JobsEnabled reports whether batch jobs can run, which needs a bucket.
func (c *Config) JobsEnabled() bool {
	return c.S3Bucket != ""
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate port is a number
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.New("invalid port: must be a number")
	}
	if c.RateLimit <= 0 {
		return errors.New("invalid rate limit: must be positive")
	}
	if c.RateWindow <= 0 {
		return errors.New("invalid rate window: must be positive")
	}
	if c.MaxTextLength <= 0 {
		return errors.New("invalid max text length: must be positive")
	}
	if c.JobWorkers <= 0 {
		return errors.New("invalid job workers: must be positive")
	}

	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
