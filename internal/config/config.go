// Package config manages application configuration
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"

	// Persisted document and audit log locations
	DocumentPath string
	HistoryDB    string

	// Statement parsing
	DefaultStatementYear int // fills in statement dates with no year; 0 = current year
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:                 getEnv("TALLY_PORT", "8080"),
		Environment:          getEnv("TALLY_ENV", "development"),
		DocumentPath:         getEnv("TALLY_CONFIG_PATH", "config.json"),
		HistoryDB:            getEnv("TALLY_HISTORY_DB", "tally-history.db"),
		DefaultStatementYear: getIntEnv("TALLY_STATEMENT_YEAR", 0),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
