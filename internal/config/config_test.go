package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_TIMEOUT", "")
	t.Setenv("DEMO_ORDER_FEED", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.False(t, cfg.DemoOrderFeed)
	assert.Equal(t, "http://localhost:8080/uploads", cfg.UploadsURL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CHECKOUT_LOCK_TTL", "5")
	t.Setenv("DEMO_ORDER_FEED", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")
	t.Setenv("SESSION_TIMEOUT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Second, cfg.LockTTL())
	assert.True(t, cfg.DemoOrderFeed)
	assert.Equal(t, "https://shop.example.com/uploads", cfg.UploadsURL())
	assert.Equal(t, 86400, cfg.SessionTimeout)
}
