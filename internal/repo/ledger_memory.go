package repo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

// InMemoryLedgerRepository applies transactions against an
// InMemoryProductRepository and keeps the append-only log in a slice.
type InMemoryLedgerRepository struct {
	mu           sync.Mutex
	transactions []models.Transaction
	nextID       int
	products     *InMemoryProductRepository
}

func NewInMemoryLedgerRepository(products *InMemoryProductRepository) *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{
		transactions: []models.Transaction{},
		nextID:       1,
		products:     products,
	}
}

func (r *InMemoryLedgerRepository) Record(t models.Transaction) (models.Transaction, error) {
	switch t.Type {
	case models.TransactionOut:
		current, ok := r.products.withdraw(t.ProductName, t.Quantity)
		if !ok {
			return models.Transaction{}, &InsufficientStockError{Current: current, Requested: t.Quantity}
		}
	case models.TransactionIn:
		r.products.deposit(t.ProductName, t.Quantity)
	default:
		return models.Transaction{}, ErrInvalidTransactionType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	t.Reference = uuid.NewString()
	t.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	r.nextID++
	r.transactions = append(r.transactions, t)
	return t, nil
}

func (r *InMemoryLedgerRepository) GetAll(tf TransactionFilter) ([]models.Transaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Transaction
	for _, t := range r.transactions {
		ts, err := time.Parse(time.RFC3339Nano, t.Timestamp)
		if err != nil {
			continue
		}
		if tf.Since != nil && ts.Before(*tf.Since) {
			continue
		}
		if tf.Until != nil && ts.After(*tf.Until) {
			continue
		}
		filtered = append(filtered, t)
	}

	// Newest first, matching the Postgres ordering.
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	total := len(filtered)

	start := 0
	if tf.Offset != nil {
		start = clamp(*tf.Offset, 0, total)
	}

	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	end := clamp(start+limit, start, total)

	return filtered[start:end], total, nil
}

func (r *InMemoryLedgerRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = []models.Transaction{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
