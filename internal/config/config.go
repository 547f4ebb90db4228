package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Telegram
	BotToken string

	// AI provider
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AIModel       string

	// Database
	DBPath string

	// Admin API
	Port       string
	AdminToken string

	// Environment ("production" enables JSON logging)
	Env string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		AIModel:       getEnv("AI_MODEL", "gpt-4o-mini"),

		DBPath: getEnv("DB_PATH", "kopilka.sqlite"),

		Port:       getEnv("PORT", "8080"),
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		Env: getEnv("ENV", "development"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// RequireBotToken validates that the Telegram token is set.
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not configured")
	}
	return nil
}

// RequireOpenAIKey validates that the AI provider key is set.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not configured")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
