package config

import (
	"os"
	"strconv"

	"apptdash/domain/appointment"
	"apptdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Filter  FilterConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds source dataset settings
type DataConfig struct {
	File string
}

// FilterConfig holds the default inclusive age interval applied when a
// request does not narrow it.
type FilterConfig struct {
	AgeMin int
	AgeMax int
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// Load reads configuration from environment variables and validates it.
// Every setting has a default, so an empty environment reproduces the stock
// behavior: the Kaggle appointments file served on port 8050.
func Load() (*Config, error) {
	config := &Config{
		Server:  loadServerConfig(),
		Data:    loadDataConfig(),
		Filter:  loadFilterConfig(),
		Logging: loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8050"),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File: getEnvOrDefault("DATA_FILE", "KaggleV2-May-2016.csv"),
	}
}

func loadFilterConfig() FilterConfig {
	return FilterConfig{
		AgeMin: getEnvIntOrDefault("AGE_MIN", appointment.DefaultAgeMin),
		AgeMax: getEnvIntOrDefault("AGE_MAX", appointment.DefaultAgeMax),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric")
	}
	if config.Data.File == "" {
		return errors.ConfigInvalid("data file path is required")
	}
	if config.Filter.AgeMin > config.Filter.AgeMax {
		return errors.ConfigInvalid("AGE_MIN must not exceed AGE_MAX")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
