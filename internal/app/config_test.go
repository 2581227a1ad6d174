package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET_KEY", "")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.False(t, cfg.ShowRequiresOwnership)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
access_token_ttl: 30m
show_requires_ownership: true
cors_allowed_origins: ["https://app.example.com"]
db:
  driver: sqlite
  sqlite_path: /tmp/wl.db
otel:
  enabled: true
  headers: "api-key=abc"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000")
	t.Setenv("REFRESH_TOKEN_TTL", "120")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.5")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 2*time.Minute, cfg.RefreshTokenTTL)
	assert.True(t, cfg.ShowRequiresOwnership)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.dbConfig().Driver)
	assert.Equal(t, "/tmp/wl.db", cfg.dbConfig().SQLitePath)

	oc := cfg.otelConfig()
	assert.True(t, oc.Enabled)
	assert.Equal(t, 0.5, oc.SampleRatio)
	assert.Equal(t, "abc", oc.Headers["api-key"])
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig(logger.Nop())
	assert.Error(t, err)

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig(logger.Nop())
	assert.Error(t, err)
}
