package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PITWALL_DB_DRIVER",
	"PITWALL_DATABASE_URL",
	"PITWALL_HTTP_ADDR",
	"PITWALL_LOG_LEVEL",
	"PITWALL_LOG_FORMAT",
	"PITWALL_CORS_ORIGINS",
	"PITWALL_STANDINGS_CACHE_TTL",
}

// clearEnv unsets every config variable for the duration of the test,
// including ones a dotenv file sets during it.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "pitwall.db?_journal_mode=WAL&_foreign_keys=on", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.StandingsCacheTTL)
}

func TestLoad_ListAndDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PITWALL_CORS_ORIGINS", "https://pitwall.example,http://localhost:3000")
	t.Setenv("PITWALL_STANDINGS_CACHE_TTL", "2m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://pitwall.example", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.StandingsCacheTTL)
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PITWALL_HTTP_ADDR=:9999\nPITWALL_LOG_FORMAT=json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvironmentWinsOverDotenv(t *testing.T) {
	clearEnv(t)
	os.Setenv("PITWALL_HTTP_ADDR", ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PITWALL_HTTP_ADDR=:9999\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	os.Setenv("PITWALL_DB_DRIVER", "mysql")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "event_id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"event_id":"abc"`)
}
