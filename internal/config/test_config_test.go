package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestConfig_RemoteDisabledByDefault(t *testing.T) {
	t.Setenv("TEST_HUBSPOT_BASE_URL", "")
	t.Setenv("TEST_HUBSPOT_API_KEY", "")

	// A .env in the working directory must not leak into test configuration
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_HUBSPOT_BASE_URL=http://localhost:1\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadTestConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.HubSpot.BaseURL)
	assert.Empty(t, cfg.HubSpot.APIKey)
	assert.Equal(t, "/api/v1", cfg.Project.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Content.BasePath)
}

func TestLoadTestConfig_Remote(t *testing.T) {
	t.Setenv("TEST_HUBSPOT_BASE_URL", "http://localhost:8089")
	t.Setenv("TEST_HUBSPOT_API_KEY", "sandbox-token")
	t.Setenv("TEST_HUBSPOT_LIST_ID", "7")

	cfg, err := LoadTestConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8089", cfg.HubSpot.BaseURL)
	assert.Equal(t, "sandbox-token", cfg.HubSpot.APIKey)
	assert.Equal(t, "7", cfg.HubSpot.ListID)
}

func TestLoadTestConfig_RemoteWithoutKey(t *testing.T) {
	t.Setenv("TEST_HUBSPOT_BASE_URL", "http://localhost:8089")
	t.Setenv("TEST_HUBSPOT_API_KEY", "")

	_, err := LoadTestConfig()

	assert.Error(t, err)
}
