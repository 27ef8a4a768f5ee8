package config

import (
	"os"

	"github.com/subosito/gotenv"
)

type Config struct {
	// Storage backend selection: "memory" or "sqlite".
	StorageBackend string
	SQLitePath     string

	LogLevel string
	AppEnv   string
}

func Load() *Config {
	_ = gotenv.Load()

	return &Config{
		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AppEnv:         getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
