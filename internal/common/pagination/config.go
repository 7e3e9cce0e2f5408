// Package pagination provides a reusable keyset (cursor) pagination framework.
// Pages continue strictly after an opaque cursor position instead of using
// numeric offsets, so concurrent inserts never cause skipped or duplicated
// items between pages.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultLimit int // Default items per page (typically 12)
	MaxLimit     int // Maximum allowed items per page (typically 50)
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 12,
		MaxLimit:     50,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return Config{
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", 12),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", 50),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
