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

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "discord_auctions", cfg.Mongo.Database)
	assert.Equal(t, 25, cfg.MySQL.MaxOpenConns)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, "@every 10m", cfg.Sweep.Schedule)
	assert.Equal(t, 24*time.Hour, cfg.Sweep.MaxAge)
	assert.NotEmpty(t, cfg.Instance.ID)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("SWEEP_MAX_AGE", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Address)
	assert.Equal(t, "token-123", cfg.Discord.Token)
	assert.Equal(t, time.Hour, cfg.Sweep.MaxAge)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}
