// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime knobs.
type Config struct {
	// Port is the HTTP listen port for serve.
	Port string

	// DBPath is the SQLite database file path.
	DBPath string

	// Backend selects the storage backend: "sqlite" or "memory".
	Backend string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; a missing file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		DBPath:  getEnv("DB_PATH", "./data/splitbook.db"),
		Backend: getEnv("DB_BACKEND", "sqlite"),
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	switch c.Backend {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with the sqlite backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid backend %q: must be \"sqlite\" or \"memory\"", c.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
