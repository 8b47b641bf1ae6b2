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

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, BackendMemory, cfg.EventsBackend)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TREED_HTTP_PORT", "3001")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.HTTPPort)
	assert.Equal(t, ":3001", cfg.GetHTTPAddr())
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.True(t, cfg.NeedsRedis())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"http port", func(c *Config) { c.HTTPPort = 0 }},
		{"grpc port", func(c *Config) { c.GRPCPort = 70000 }},
		{"storage backend", func(c *Config) { c.StorageBackend = "postgres" }},
		{"events backend", func(c *Config) { c.EventsBackend = "kafka" }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"redis addr", func(c *Config) {
			c.StorageBackend = BackendRedis
			c.Redis.Addr = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
