package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 5*time.Minute, cfg.Activities.SourceTTL)
	assert.Equal(t, 4, cfg.Activities.RefreshWorkers)
	assert.Equal(t, time.UTC, cfg.Activities.Location())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://organize.example.org/, https://app.example.org")
	t.Setenv("ACTIVITIES_SOURCE_TTL", "90s")
	t.Setenv("ACTIVITIES_CACHE_TTL", "not-a-duration")
	t.Setenv("ACTIVITIES_TIMEZONE", "Nowhere/Invalid")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://organize.example.org/", "https://app.example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Activities.SourceTTL)
	assert.Equal(t, 2*time.Minute, cfg.Activities.CacheTTL)
	assert.Equal(t, time.UTC, cfg.Activities.Location())
}

func TestLoadConnectionSettings(t *testing.T) {
	t.Setenv("DB_STATEMENT_TIMEOUT", "3s")
	t.Setenv("REDIS_POOL_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "organize-activities-api", cfg.Database.AppName)
	assert.Equal(t, 3*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.Timeout)
}
