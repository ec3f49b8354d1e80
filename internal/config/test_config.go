package config

import (
	"fmt"
	"os"
	"time"
)

// LoadTestConfig loads the configuration for integration tests.
// It reads only TEST_* environment variables, never a .env file. Content and
// local store paths are left empty for the tests to fill with temporary
// directories. The remote directory stays disabled unless TEST_HUBSPOT_BASE_URL
// is set.
func LoadTestConfig() (*Config, error) {
	cfg := &Config{}
	cfg.Project.Name = "Virtual Tech Box Learning Platform"
	cfg.Project.Version = "test"
	cfg.Project.APIPrefix = "/api/v1"
	cfg.Project.Environment = "test"
	cfg.Server.MaxRequestSize = 1 << 20
	cfg.Logging.Level = "debug"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.RateLimit.RequestsPerMinute = 1000
	cfg.HubSpot.Timeout = 2 * time.Second

	baseURL := os.Getenv("TEST_HUBSPOT_BASE_URL")
	if baseURL == "" {
		return cfg, nil
	}
	cfg.HubSpot.BaseURL = baseURL

	apiKey := os.Getenv("TEST_HUBSPOT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TEST_HUBSPOT_API_KEY is required when TEST_HUBSPOT_BASE_URL is set")
	}
	cfg.HubSpot.APIKey = apiKey
	cfg.HubSpot.ListID = os.Getenv("TEST_HUBSPOT_LIST_ID")

	return cfg, nil
}
