package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recipe server.
type Config struct {
	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// LogMeal configuration
	LogMealAPIKey string
	LogMealAPIURL string

	// Server configuration (HTTP serving mode)
	ServerHost string
	ServerPort int

	// Image storage configuration
	ImageStorageDir string
}

// Load creates a Config from environment variables, falling back to
// defaults where a variable is unset. A .env file in the working
// directory is honored when present.
func Load() *Config {
	// A missing .env is the normal case in production; real env vars win
	// either way.
	_ = godotenv.Load()

	return &Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4"),
		LogMealAPIKey:   os.Getenv("LOGMEAL_API_KEY"),
		LogMealAPIURL:   getEnv("LOGMEAL_API_URL", "https://api.logmeal.com/v2"),
		ServerHost:      getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:      getEnvInt("SERVER_PORT", 8000),
		ImageStorageDir: getEnv("IMAGE_STORAGE_DIR", "resources/images"),
	}
}

// Addr returns the host:port the HTTP serving mode binds to.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + strconv.Itoa(c.ServerPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
