// Package config loads runtime configuration for the rtlfix CLI from
// environment variables, with an optional .env file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dlvinn/rtlfix/text"
)

// Config holds CLI and batch-processing settings. Flags override
// these values; they exist so deployments can pin defaults without
// wrapping the binary.
type Config struct {
	// Workers is the batch concurrency limit.
	Workers int

	// RTLThreshold is the classifier threshold.
	RTLThreshold float64

	// Suffix is appended to output file names in folder mode.
	Suffix string

	// LogStyle and LogLevel configure the zap logger.
	LogStyle string
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Workers:      getEnvAsIntOrDefault("RTLFIX_WORKERS", runtime.NumCPU()),
		RTLThreshold: getEnvAsFloatOrDefault("RTLFIX_RTL_THRESHOLD", text.DefaultRTLThreshold),
		Suffix:       getEnvOrDefault("RTLFIX_SUFFIX", "_fixed"),
		LogStyle:     getEnvOrDefault("RTLFIX_LOG_STYLE", "terminal"),
		LogLevel:     getEnvOrDefault("RTLFIX_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > 256 {
		return fmt.Errorf("RTLFIX_WORKERS must be between 1 and 256, got %d", c.Workers)
	}
	if c.RTLThreshold <= 0 || c.RTLThreshold >= 1 {
		return fmt.Errorf("RTLFIX_RTL_THRESHOLD must be between 0 and 1 exclusive, got %g", c.RTLThreshold)
	}
	if c.Suffix == "" {
		return fmt.Errorf("RTLFIX_SUFFIX must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvAsFloatOrDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
