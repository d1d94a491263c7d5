package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitrack/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 30*time.Minute, cfg.Visitor.Window)
		assert.Equal(t, 100000, cfg.Visitor.Capacity)
		assert.Equal(t, "http://ip-api.com", cfg.Geo.PrimaryURL)
		assert.False(t, cfg.Telegram.Enabled)
		assert.False(t, cfg.Postgres.Enabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("DEDUP_WINDOW", "15m")
		t.Setenv("TELEGRAM_ENABLED", "true")
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 15*time.Minute, cfg.Visitor.Window)
		assert.True(t, cfg.Telegram.Enabled)
		assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	})

	t.Run("malformed value fails", func(t *testing.T) {
		t.Setenv("DEDUP_WINDOW", "not-a-duration")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
