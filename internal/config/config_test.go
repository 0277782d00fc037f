package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "CACHE_TTL", "WISH_CACHE_TTL", "JWT_TTL", "CORS_ORIGINS", "AUTH_RATE_LIMIT", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.WishCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, float64(5), cfg.AuthRateLimit)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("WISH_CACHE_TTL", "5s")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("AUTH_RATE_LIMIT", "0.5")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.WishCacheTTL)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 0.5, cfg.AuthRateLimit)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}
