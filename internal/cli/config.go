package cli

import (
	"os"
	"strconv"
)

// Config holds server CLI configuration. Flags override environment
// variables, which override the defaults.
type Config struct {
	Host        string
	Port        int
	StorageType string
	RedisURL    string
	SearchDepth int
	LogLevel    string
}

// DefaultConfig returns a Config seeded from the environment
func DefaultConfig() *Config {
	return &Config{
		Host:        os.Getenv("ARCADE_HOST"),
		Port:        getEnvIntOrDefault("ARCADE_PORT", 8080),
		StorageType: getEnvOrDefault("ARCADE_STORAGE", "memory"),
		RedisURL:    os.Getenv("ARCADE_REDIS_URL"),
		SearchDepth: getEnvIntOrDefault("ARCADE_SEARCH_DEPTH", 0),
		LogLevel:    getEnvOrDefault("ARCADE_LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
