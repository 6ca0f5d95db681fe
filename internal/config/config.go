package config

import "os"

// Config holds all application configuration
type Config struct {
	SnapshotPath string
	LogLevel     string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		SnapshotPath: getEnv("SNAPSHOT_PATH", "snapshot.json"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
