package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())

	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, "linkup", cfg.Database.Name)

	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, "http://localhost:5173", cfg.CORS.HTTPOrigin)
	assert.Equal(t, "https://linkedin1-frontend.onrender.com", cfg.CORS.RealtimeOrigin)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                 "9000",
		"HOST":                 "127.0.0.1",
		"DB_DRIVER":            "memory",
		"DB_NAME":              "linkup_test",
		"JWT_SECRET":           "a-much-longer-test-secret",
		"TOKEN_TTL":            "1h",
		"CORS_HTTP_ORIGIN":     "https://app.example.com",
		"CORS_REALTIME_ORIGIN": "https://rt.example.com",
		"WS_PING_INTERVAL":     "10s",
		"LOG_LEVEL":            "debug",
		"LOG_DEV":              "true",
		"RATE_LIMIT_ENABLED":   "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "linkup_test", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://app.example.com", cfg.CORS.HTTPOrigin)
	assert.Equal(t, "https://rt.example.com", cfg.CORS.RealtimeOrigin)
	assert.Equal(t, 10*time.Second, cfg.Realtime.PingInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nDB_NAME=fromfile\n"), 0o600))

	t.Setenv("DB_NAME", "fromenv")

	cfg, err := Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("PORT") })

	assert.Equal(t, "7000", cfg.Server.Port)
	// Real environment wins over the file.
	assert.Equal(t, "fromenv", cfg.Database.Name)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric port", key: "PORT", value: "http"},
		{name: "unknown driver", key: "DB_DRIVER", value: "sqlite"},
		{name: "short secret", key: "JWT_SECRET", value: "short"},
		{name: "bad origin", key: "CORS_HTTP_ORIGIN", value: "not a url"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "unparsable duration", key: "TOKEN_TTL", value: "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := LoadOrDefault()

	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestLoadBlankPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
}
