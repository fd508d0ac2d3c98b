package handlers

import (
	"github.com/rogerio-castellano/warehouse-api/internal/cache"
	"github.com/rogerio-castellano/warehouse-api/internal/events"
	repo "github.com/rogerio-castellano/warehouse-api/internal/repo"
)

var (
	productRepo repo.ProductRepository
	ledgerRepo  repo.LedgerRepository
	userRepo    repo.UserRepository

	productCache *cache.ProductCache
	publisher    *events.Publisher

	pageSize          = 100
	lowStockThreshold = 0
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetLedgerRepo(r repo.LedgerRepository) {
	ledgerRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetProductCache(c *cache.ProductCache) {
	productCache = c
}

func SetPublisher(p *events.Publisher) {
	publisher = p
}

func SetPageSize(n int) {
	if n > 0 {
		pageSize = n
	}
}

func SetLowStockThreshold(n int) {
	lowStockThreshold = n
}
