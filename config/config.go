package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the tree identifier service
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// LLM provider selection: "gemini" or "stub" (no-network, for CI)
	LLMProvider string

	// Upload limits
	MaxUploadBytes int64

	// Rate limiting
	RateLimitPerMinute int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Server defaults
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		// Gemini defaults
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Provider defaults
		LLMProvider: getEnv("LLM_PROVIDER", "gemini"),

		// Upload defaults (8 MiB)
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 8<<20),

		// Rate limiting defaults
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 30),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64Env gets an int64 environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
