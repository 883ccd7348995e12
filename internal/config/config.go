// Package config reads pipeline settings from environment variables.
// The CLI loads .env first (via godotenv) and lets flags override the
// resulting values.
package config

import (
	"os"
	"strconv"

	"goprep/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	Input      string
	TrainOut   string
	TestOut    string // empty means the test partition is not persisted
	Target     string
	Seed       int64
	TestRatio  float64
	KNN        int // neighbours for KNN imputation
	SMOTENears int // neighbours considered by oversampling
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input:      os.Getenv("GOPREP_INPUT"),
		TrainOut:   getEnvOrDefault("GOPREP_OUTPUT", "train.csv"),
		TestOut:    os.Getenv("GOPREP_TEST_OUTPUT"),
		Target:     os.Getenv("GOPREP_TARGET"),
		Seed:       getEnvInt64OrDefault("GOPREP_SEED", 42),
		TestRatio:  getEnvFloatOrDefault("GOPREP_TEST_RATIO", 0.2),
		KNN:        getEnvIntOrDefault("GOPREP_KNN_NEIGHBORS", 3),
		SMOTENears: getEnvIntOrDefault("GOPREP_SMOTE_NEIGHBORS", 5),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.TestRatio <= 0 || c.TestRatio >= 1 {
		return errors.ConfigInvalid("test ratio must be in (0,1)")
	}
	if c.KNN <= 0 {
		return errors.ConfigInvalid("KNN neighbours must be positive")
	}
	if c.SMOTENears <= 0 {
		return errors.ConfigInvalid("SMOTE neighbours must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
