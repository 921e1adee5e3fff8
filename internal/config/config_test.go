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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Monitor.LoadTimeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "cart.json", cfg.Storage.CartFile)
	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONITOR_LOAD_TIMEOUT", "250ms")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.LoadTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 5433, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "s3" }, true},
		{"zero load timeout", func(c *Config) { c.Monitor.LoadTimeout = 0 }, true},
		{"file backend without paths", func(c *Config) { c.Storage.CartFile = "" }, true},
		{"memory backend needs no paths", func(c *Config) {
			c.Storage.Backend = "memory"
			c.Storage.CartFile = ""
			c.Storage.FavoritesFile = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
