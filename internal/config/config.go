package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Completion service configuration
	CompletionProvider string // "groq" or "gemini"
	CompletionModel    string
	GroqAPIKey         string
	GeminiAPIKey       string

	// LinkedIn configuration
	LinkedInAccessToken string
	PostVisibility      string

	// Schedule configuration
	PostHour int // UTC hour of the daily post
	TimeZone string

	// Pipeline configuration
	MaxAttempts int

	// Persistence and logging
	RecordsFile string
	LogDir      string

	// HTTP client configuration
	HTTPTimeoutSeconds int

	// Failure alerting (optional)
	AlertWebhookURL string
	AlertEmail      string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		CompletionProvider: strings.ToLower(getEnv("COMPLETION_PROVIDER", "groq")),
		CompletionModel:    getEnv("COMPLETION_MODEL", "llama-3.3-70b-versatile"),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),

		LinkedInAccessToken: getEnv("LINKEDIN_ACCESS_TOKEN", ""),
		PostVisibility:      getEnv("POST_VISIBILITY", "PUBLIC"),

		PostHour: getIntEnv("POST_HOUR", 10),
		TimeZone: getEnv("TIMEZONE", "UTC"),

		MaxAttempts: getIntEnv("MAX_ATTEMPTS", 3),

		RecordsFile: getEnv("RECORDS_FILE", "linkedin_posts_seo.json"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		HTTPTimeoutSeconds: getIntEnv("HTTP_TIMEOUT_SECONDS", 30),

		AlertWebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),
		AlertEmail:      getEnv("ALERT_EMAIL", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getIntEnv("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LinkedInAccessToken == "" {
		return fmt.Errorf("LINKEDIN_ACCESS_TOKEN is required")
	}

	switch c.CompletionProvider {
	case "groq":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when COMPLETION_PROVIDER is 'groq'")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when COMPLETION_PROVIDER is 'gemini'")
		}
	default:
		return fmt.Errorf("COMPLETION_PROVIDER must be 'groq' or 'gemini'")
	}

	visibility := strings.ToUpper(c.PostVisibility)
	if visibility != "PUBLIC" && visibility != "CONNECTIONS" {
		return fmt.Errorf("POST_VISIBILITY must be 'PUBLIC' or 'CONNECTIONS'")
	}

	if c.PostHour < 0 || c.PostHour > 23 {
		return fmt.Errorf("POST_HOUR must be between 0 and 23")
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be a positive integer")
	}

	if c.AlertEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when ALERT_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
