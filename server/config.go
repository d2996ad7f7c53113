package server

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the message service settings.
type Config struct {
	Port string
	Env  string
	// DatabasePath selects the SQLite store. Empty keeps messages in memory.
	DatabasePath string
	// StaticDir is served at / when set, for a browser build of the client.
	StaticDir string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		StaticDir:    os.Getenv("STATIC_DIR"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
