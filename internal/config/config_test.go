package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 5, cfg.DB.ConnectRetries)
	assert.True(t, cfg.Migrations)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0.35, cfg.PayoutRate)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nPAYOUT_RATE=0.4\nCACHE_TTL=30s\nTELEGRAM_BOT_TOKEN=abc\nTELEGRAM_CHAT_ID=-1001\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	for _, k := range []string{"JWT_SECRET", "PAYOUT_RATE", "CACHE_TTL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 0.4, cfg.PayoutRate)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, int64(-1001), cfg.Telegram.ChatID)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTSecret: "s", PayoutRate: 0.35}
	assert.NoError(t, cfg.Validate())

	bad := &Config{PayoutRate: 1.5, Telegram: Telegram{Token: "t"}}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "PAYOUT_RATE")
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}
