package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Batch BatchConfig
	Store StoreConfig
}

// BatchConfig holds batch-processing configuration
type BatchConfig struct {
	Workers        int
	ProcessTimeout time.Duration
	InputDir       string
	OutputDir      string
}

// StoreConfig holds results-store configuration
type StoreConfig struct {
	DSN     string
	Enabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			Workers:        getEnvAsInt("EXTRACTOR_WORKERS", 4),
			ProcessTimeout: getEnvAsDuration("EXTRACTOR_PROCESS_TIMEOUT", 30*time.Second),
			InputDir:       getEnv("EXTRACTOR_INPUT_DIR", "data/raw/exemplos"),
			OutputDir:      getEnv("EXTRACTOR_OUTPUT_DIR", "data/processed"),
		},
		Store: StoreConfig{
			DSN:     getEnv("EXTRACTOR_DB", ""),
			Enabled: getEnv("EXTRACTOR_DB", "") != "",
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACTOR_WORKERS must be positive", ErrInvalidInput)
	}
	if c.Batch.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "EXTRACTOR_INPUT_DIR is required", ErrInvalidInput)
	}
	return nil
}
