// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Project   ProjectConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Content   ContentConfig
	HubSpot   HubSpotConfig
	RateLimit RateLimitConfig
}

// ProjectConfig holds general project information
type ProjectConfig struct {
	Name        string
	Version     string
	APIPrefix   string
	Environment string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           int
	MaxRequestSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// ContentConfig holds paths of file based storages
type ContentConfig struct {
	BasePath       string
	LocalUsersFile string
}

// HubSpotConfig holds HubSpot CRM settings.
// An empty APIKey disables the remote directory and all registrations go to the local store.
type HubSpotConfig struct {
	APIKey  string
	ListID  string
	BaseURL string
	Timeout time.Duration
}

// RateLimitConfig holds request rate limiting settings
type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	cfg.Project.Name = getEnv("PROJECT_NAME", "Virtual Tech Box Learning Platform")
	cfg.Project.Version = getEnv("VERSION", "1.0.0")
	cfg.Project.APIPrefix = getEnv("API_V1_STR", "/api/v1")
	if !strings.HasPrefix(cfg.Project.APIPrefix, "/") {
		return nil, fmt.Errorf("API_V1_STR must start with '/'")
	}
	cfg.Project.Environment = getEnv("ENVIRONMENT", "development")

	// Server configuration
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	maxRequestSize, err := strconv.ParseInt(getEnv("MAX_REQUEST_SIZE", "1048576"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_REQUEST_SIZE: %w", err)
	}
	cfg.Server.MaxRequestSize = maxRequestSize

	// Logging configuration
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Content configuration
	cfg.Content.BasePath = getEnv("CONTENT_BASE_PATH", "./content/modules")
	cfg.Content.LocalUsersFile = getEnv("LOCAL_USERS_FILE", "local_users.json")

	// HubSpot configuration (optional, remote directory is disabled without an API key)
	cfg.HubSpot.APIKey = os.Getenv("HUBSPOT_API_KEY")
	cfg.HubSpot.ListID = os.Getenv("HUBSPOT_LIST_ID")
	cfg.HubSpot.BaseURL = getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com")

	timeout, err := time.ParseDuration(getEnv("HUBSPOT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HUBSPOT_TIMEOUT: %w", err)
	}
	cfg.HubSpot.Timeout = timeout

	// Rate limit configuration
	rpm, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if rpm <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	cfg.RateLimit.RequestsPerMinute = rpm

	return cfg, nil
}

// getEnv returns the value of an environment variable or the fallback if it is empty
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses a comma-separated list of origins.
// Returns "*" if the list is empty or contains no valid origins.
func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}

	origins := strings.Split(raw, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}
