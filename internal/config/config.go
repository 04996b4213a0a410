package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database: path or DSN for the sales data store
	DatabaseURL string

	// Connection pool bounds
	PoolMaxOpen int
	PoolMaxIdle int

	// Per-operation query timeout
	QueryTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "./data/sales.db"),

		PoolMaxOpen: getEnvInt("POOL_MAX_OPEN", 20),
		PoolMaxIdle: getEnvInt("POOL_MAX_IDLE", 5),

		QueryTimeout: getEnvDuration("QUERY_TIMEOUT", 7*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		errors = append(errors, "database URL cannot be empty")
	}

	if c.PoolMaxOpen < 1 {
		errors = append(errors, fmt.Sprintf("invalid pool max open %d: must be at least 1", c.PoolMaxOpen))
	}
	if c.PoolMaxIdle < 0 {
		errors = append(errors, fmt.Sprintf("invalid pool max idle %d: must not be negative", c.PoolMaxIdle))
	}
	if c.PoolMaxOpen >= 1 && c.PoolMaxIdle > c.PoolMaxOpen {
		errors = append(errors, fmt.Sprintf("invalid pool bounds: max idle %d exceeds max open %d", c.PoolMaxIdle, c.PoolMaxOpen))
	}

	if c.QueryTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid query timeout %v: must be at least 100ms", c.QueryTimeout))
	} else if c.QueryTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid query timeout %v: must be at most 1 minute", c.QueryTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
