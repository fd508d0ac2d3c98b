// Package config collects runtime configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the process reads at startup. Values come from
// environment variables (optionally loaded from a .env file by the entry
// point) with the defaults below.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string

	// PageSize caps how many products a single listing may return.
	PageSize int

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// LowStockThreshold triggers an alert when a product's stock drops
	// below it after an OUT transaction. Zero disables alerts.
	LowStockThreshold int

	CacheTTL time.Duration

	// KafkaBroker enables transaction event publishing when non-empty.
	KafkaBroker string
	KafkaTopic  string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("PAGE_SIZE", 100)
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOW_STOCK_THRESHOLD", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 30)
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_TOPIC", "warehouse.transactions")

	return Config{
		Addr:              v.GetString("ADDR"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		PageSize:          v.GetInt("PAGE_SIZE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		CacheTTL:          time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		KafkaBroker:       v.GetString("KAFKA_BROKER"),
		KafkaTopic:        v.GetString("KAFKA_TOPIC"),
	}
}
