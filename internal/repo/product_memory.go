package repo

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// GetAll retrieves up to limit products in insertion order.
func (r *InMemoryProductRepository) GetAll(limit int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := min(limit, len(r.products))
	out := make([]models.Product, end)
	copy(out, r.products[:end])
	return out, nil
}

// GetByName retrieves a product by its name.
func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

// deposit adds quantity to a product's stock, creating the product with the
// default category when it does not exist yet. Mirrors the upsert-increment
// the Postgres ledger performs.
func (r *InMemoryProductRepository) deposit(name string, quantity int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, p := range r.products {
		if p.Name == name {
			r.products[i].Stock += quantity
			r.products[i].UpdatedAt = now
			return r.products[i].Stock
		}
	}

	r.products = append(r.products, models.Product{
		ID:        r.nextID,
		Name:      name,
		Category:  "General",
		Stock:     quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	r.nextID++
	return quantity
}

// withdraw removes quantity from a product's stock. The check and the
// decrement happen under one lock, so concurrent withdrawals serialize the
// same way the conditional update does in Postgres. Returns the stock after
// the withdrawal, or the untouched current stock and false when the product
// is missing or holds too little.
func (r *InMemoryProductRepository) withdraw(name string, quantity int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.Name == name {
			if p.Stock < quantity {
				return p.Stock, false
			}
			r.products[i].Stock -= quantity
			r.products[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
			return r.products[i].Stock, true
		}
	}
	return 0, false
}
