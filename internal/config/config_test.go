package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultReadTimeout, cfg.Server.ReadTimeout)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "quizforge", cfg.MongoDB.Database)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Redis.Password)

	assert.Equal(t, config.StoreRedis, cfg.Security.SessionStore)
	assert.Equal(t, config.DefaultSessionTTL, cfg.Security.SessionTTL)
	assert.False(t, cfg.Security.StrictIPCheck)
	assert.Equal(t, config.DefaultRetryMaxRetries, cfg.Security.Retry.MaxRetries)
	assert.Equal(t, config.DefaultRetryInitialDelay, cfg.Security.Retry.InitialDelay)

	assert.Equal(t, config.DefaultAuditBufferSize, cfg.Audit.BufferSize)
	assert.True(t, cfg.Audit.PublishToRedis)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NoError(t, cfg.Validate())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := config.ServerConfig{Host: "localhost", Port: 3000}
	assert.Equal(t, "localhost:3000", cfg.Address())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad port", func(c *config.Config) { c.Server.Port = 0 }},
		{"missing mongo uri", func(c *config.Config) { c.MongoDB.URI = "" }},
		{"missing redis addr with redis store", func(c *config.Config) { c.Redis.Addr = "" }},
		{"missing issuer", func(c *config.Config) { c.OIDC.IssuerURL = "" }},
		{"bad session store", func(c *config.Config) { c.Security.SessionStore = "etcd" }},
		{"bad session ttl", func(c *config.Config) { c.Security.SessionTTL = 0 }},
		{"negative retries", func(c *config.Config) { c.Security.Retry.MaxRetries = -1 }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }},
		{"bad audit buffer", func(c *config.Config) { c.Audit.BufferSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrConfigInvalid)
		})
	}
}

func TestValidate_MemoryStoresSkipRedis(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Redis.Addr = ""
	cfg.Security.SessionStore = config.StoreMemory
	cfg.RateLimit.Store = config.StoreMemory
	cfg.Audit.PublishToRedis = false

	require.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
mongodb:
  database: quizforge_test
security:
  strict_ip_check: true
  session_ttl: 1h
  retry:
    max_retries: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "quizforge_test", cfg.MongoDB.Database)
	assert.True(t, cfg.Security.StrictIPCheck)
	assert.Equal(t, time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, 5, cfg.Security.Retry.MaxRetries)
	// untouched fields keep their defaults
	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SECURITY_STRICT_IP_CHECK", "true")
	t.Setenv("SECURITY_RETRY_INITIAL_DELAY", "250ms")

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.True(t, cfg.Security.StrictIPCheck)
	assert.Equal(t, 250*time.Millisecond, cfg.Security.Retry.InitialDelay)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
