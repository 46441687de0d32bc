package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-sourced configuration.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	BaseURL    string
	RTUsername string

	CacheTTL   time.Duration
	SessionTTL time.Duration

	SessionSecret string
	StartYear     int

	ReportsPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BaseURL:        os.Getenv("BASE_URL"),
		RTUsername:     os.Getenv("RT_USERNAME"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		ReportsPath:    getEnv("REPORTS_CONFIG", "reports.yaml"),
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is required")
	}
	if config.RTUsername == "" {
		return nil, fmt.Errorf("RT_USERNAME is required")
	}
	if config.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_MINUTES: %w", err)
	}
	config.CacheTTL = time.Duration(cacheTTL) * time.Minute

	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}
	config.SessionTTL = time.Duration(sessionTTL) * time.Hour

	config.StartYear, err = strconv.Atoi(getEnv("START_YEAR", "2019"))
	if err != nil {
		return nil, fmt.Errorf("invalid START_YEAR: %w", err)
	}

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
