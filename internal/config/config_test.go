package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 5, cfg.Sync.PageSize)
	assert.Equal(t, "Server", cfg.Sync.Category)
	assert.Equal(t, 6, cfg.Sync.ManualLimit)
	assert.Equal(t, DefaultRemoteBaseURL, cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.False(t, cfg.CSRF.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 50, cfg.Notifications.Capacity)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SYNC_INTERVAL", "1m")
	t.Setenv("SYNC_CATEGORY", "Remote")
	t.Setenv("SYNC_ENABLED", "false")
	t.Setenv("REMOTE_BASE_URL", "http://localhost:3000")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, "Remote", cfg.Sync.Category)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "http://localhost:3000", cfg.Remote.BaseURL)
}
