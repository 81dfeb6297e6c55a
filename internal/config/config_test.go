package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.6, cfg.Classification.ReviewThreshold)
	assert.Equal(t, "mock", cfg.Embedding.Provider)
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server:
  port: 9090
classification:
  review_threshold: 0.75
embedding:
  provider: openrouter
  model: test/model
  timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.75, cfg.Classification.ReviewThreshold)
	assert.Equal(t, "openrouter", cfg.Embedding.Provider)
	assert.Equal(t, "test/model", cfg.Embedding.Model)
	assert.Equal(t, 10*time.Second, cfg.Embedding.Timeout)
	// Untouched sections keep their defaults.
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("REVIEW_THRESHOLD", "0.5")
	t.Setenv("EMBEDDING_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "secret")
	t.Setenv("REDIS_URL", "redis://cache-host:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Classification.ReviewThreshold)
	assert.Equal(t, "openrouter", cfg.Embedding.Provider)
	assert.Equal(t, "secret", cfg.Embedding.APIKey)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache-host:6379", cfg.Cache.Redis.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad provider", func(c *Config) { c.Embedding.Provider = "magic" }},
		{"bad dimension", func(c *Config) { c.Embedding.Dimension = 0 }},
		{"threshold above one", func(c *Config) { c.Classification.ReviewThreshold = 1.5 }},
		{"threshold negative", func(c *Config) { c.Classification.ReviewThreshold = -0.1 }},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "disk" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
