package repo

import (
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

type TransactionFilter struct {
	Since  *time.Time
	Until  *time.Time
	Limit  *int
	Offset *int
}

// LedgerRepository owns the stock-affecting flow: Record applies the stock
// adjustment and appends the audit entry as one atomic operation, so either
// both land or neither does.
type LedgerRepository interface {
	Record(t models.Transaction) (models.Transaction, error)
	GetAll(tf TransactionFilter) ([]models.Transaction, int, error)
}
