package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "warehouse.transactions", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBroker)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}
