package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Application configuration
	DataDir string

	// MinMatchPercent is the minimum match percentage a recipe must reach
	// to appear in suggestions
	MinMatchPercent float64

	// ExpiringSoonDays is the number of remaining days within which an item
	// is flagged as expiring soon
	ExpiringSoonDays int

	// AlertHour is the local hour (0-23) at which the daily expiration
	// digest is sent
	AlertHour int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	// Required configurations
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	cfg.BotToken = botToken

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	cfg.OpenAIAPIKey = openAIAPIKey

	// Optional configurations with defaults
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")

	cfg.MinMatchPercent, err = getEnvFloat("MIN_MATCH_PERCENT", 50)
	if err != nil {
		return nil, err
	}
	if cfg.MinMatchPercent < 0 || cfg.MinMatchPercent > 100 {
		return nil, fmt.Errorf("MIN_MATCH_PERCENT must be between 0 and 100, got %v", cfg.MinMatchPercent)
	}

	cfg.ExpiringSoonDays, err = getEnvInt("EXPIRING_SOON_DAYS", 3)
	if err != nil {
		return nil, err
	}
	if cfg.ExpiringSoonDays < 0 {
		return nil, fmt.Errorf("EXPIRING_SOON_DAYS must be non-negative, got %d", cfg.ExpiringSoonDays)
	}

	cfg.AlertHour, err = getEnvInt("ALERT_HOUR", 9)
	if err != nil {
		return nil, err
	}
	if cfg.AlertHour < 0 || cfg.AlertHour > 23 {
		return nil, fmt.Errorf("ALERT_HOUR must be between 0 and 23, got %d", cfg.AlertHour)
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt returns the integer value of the environment variable or the default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

// getEnvFloat returns the float value of the environment variable or the default value
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}
