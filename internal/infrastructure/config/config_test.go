package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownWait)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Store config
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.True(t, cfg.Store.Cache)

	// Shell config
	assert.Equal(t, 30, cfg.Shell.CascadeOffset)
	assert.Equal(t, 800, cfg.Shell.DefaultWidth)
	assert.Equal(t, 300, cfg.Shell.MinHeight)
	assert.Equal(t, 3*time.Second, cfg.Shell.PowerDelay)
	assert.Equal(t, 10, cfg.Shell.RecentLimit)
	assert.Equal(t, 50, cfg.Shell.MailLimit)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
		"STORE_BACKEND":      "sqlite",
		"STORE_PATH":         "/var/lib/webdesk/state.db",
		"REDIS_ADDR":         "redis:6379",
		"REDIS_DB":           "2",
		"POWER_DELAY":        "500ms",
		"APPS_FILE":          "apps.yaml",
		"CORS_ORIGINS":       "http://localhost:5173,https://desk.example.com",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:5173", "https://desk.example.com"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/var/lib/webdesk/state.db", cfg.Store.Path)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 500*time.Millisecond, cfg.Shell.PowerDelay)
	assert.Equal(t, "apps.yaml", cfg.Apps.File)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Defaults still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 100, cfg.Shell.BaseX)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric rps", "RATE_LIMIT_RPS", "fast"},
		{"bad duration", "POWER_DELAY", "soon"},
		{"bad bool", "STORE_CACHE", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}
