// Package cache keeps a short-lived copy of the product listing in Redis so
// repeated reads between transactions skip the database.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productsKey = "warehouse:products"

type ProductCache struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ctx context.Context, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ctx: ctx, ttl: ttl}
}

// GetProducts returns the cached listing payload, if any. A nil cache always
// misses so handlers can run without Redis configured.
func (c *ProductCache) GetProducts() ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(c.ctx, productsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *ProductCache) SetProducts(data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(c.ctx, productsKey, data, c.ttl).Err(); err != nil {
		zap.L().Warn("failed to cache product listing", zap.Error(err))
	}
}

// Invalidate drops the cached listing. Called after every accepted
// transaction so reads never serve stale stock longer than the TTL.
func (c *ProductCache) Invalidate() {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(c.ctx, productsKey).Err(); err != nil {
		zap.L().Warn("failed to invalidate product cache", zap.Error(err))
	}
}
