package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string

	// Gemini settings. The API key is required: every AI-backed
	// operation needs it, so its absence is a startup failure.
	GeminiAPIKey string
	TextModel    string
	ImageModel   string
	AITimeout    time.Duration

	// Cron expression for the background maintenance pass (event
	// pruning, idle stylist session expiry).
	MaintenanceCron string
}

// Load loads configuration from a .env file (if present) and the
// environment, applying defaults for everything but the API key.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	timeoutStr := getEnv("AI_TIMEOUT_SECONDS", "120")
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./aura.db"),
		GeminiAPIKey:    apiKey,
		TextModel:       getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:      getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		AITimeout:       time.Duration(timeoutSec) * time.Second,
		MaintenanceCron: getEnv("MAINTENANCE_CRON", "*/10 * * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
