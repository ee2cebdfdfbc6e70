package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/roster")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionBackendDatabase, cfg.SessionBackend)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:5050", cfg.Addr())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/roster")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TrustProxyHeaders)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseURL: "postgres://localhost/roster", SessionBackend: SessionBackendDatabase, SessionTTL: time.Hour, LoginRateLimit: 1, LoginRateBurst: 1}
	require.NoError(t, base.Validate())

	redis := base
	redis.SessionBackend = SessionBackendRedis
	require.NoError(t, redis.Validate())

	bad := base
	bad.SessionBackend = "memcached"
	assert.Error(t, bad.Validate())

	bad = base
	bad.SessionTTL = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.LoginRateBurst = 0
	assert.Error(t, bad.Validate())
}
