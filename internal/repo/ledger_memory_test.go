package repo

import (
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() (*InMemoryLedgerRepository, *InMemoryProductRepository) {
	products := NewInMemoryProductRepository()
	return NewInMemoryLedgerRepository(products), products
}

func TestRecordDepositCreatesProduct(t *testing.T) {
	ledger, products := newTestLedger()

	created, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 10, Type: models.TransactionIn})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Reference)
	assert.NotEmpty(t, created.Timestamp)
	assert.Equal(t, 1, created.ID)

	p, err := products.GetByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, 10, p.Stock)
}

func TestRecordWithdrawal(t *testing.T) {
	ledger, products := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 10, Type: models.TransactionIn})
	require.NoError(t, err)

	_, err = ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 3, Type: models.TransactionOut})
	require.NoError(t, err)

	p, err := products.GetByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
}

func TestRecordInsufficientStock(t *testing.T) {
	ledger, products := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 7, Type: models.TransactionIn})
	require.NoError(t, err)

	_, err = ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 100, Type: models.TransactionOut})
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 7, insufficient.Current)
	assert.Equal(t, 100, insufficient.Requested)

	// Neither the stock nor the log may change on rejection.
	p, err := products.GetByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)

	_, total, err := ledger.GetAll(TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRecordWithdrawalFromMissingProduct(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Ghost", Quantity: 5, Type: models.TransactionOut})
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Current)
	assert.Equal(t, 5, insufficient.Requested)
}

func TestRecordInvalidType(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 5, Type: "SIDEWAYS"})
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestGetAllNewestFirst(t *testing.T) {
	ledger, _ := newTestLedger()

	for i := 1; i <= 3; i++ {
		_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: i, Type: models.TransactionIn})
		require.NoError(t, err)
	}

	transactions, total, err := ledger.GetAll(TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, transactions, 3)
	assert.Equal(t, 3, transactions[0].Quantity)
	assert.Equal(t, 1, transactions[2].Quantity)
}

func TestGetAllPagination(t *testing.T) {
	ledger, _ := newTestLedger()

	for i := 0; i < 5; i++ {
		_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 1, Type: models.TransactionIn})
		require.NoError(t, err)
	}

	limit, offset := 2, 4
	transactions, total, err := ledger.GetAll(TransactionFilter{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, transactions, 1)
}

func TestGetAllSinceFilter(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 1, Type: models.TransactionIn})
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	transactions, total, err := ledger.GetAll(TransactionFilter{Since: &future})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, transactions)
}

func TestConcurrentWithdrawalsNeverGoNegative(t *testing.T) {
	ledger, products := newTestLedger()

	_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 100, Type: models.TransactionIn})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Record(models.Transaction{ProductName: "Widget", Quantity: 10, Type: models.TransactionOut})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, accepted, 10)

	p, err := products.GetByName("Widget")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Stock, 0)
	assert.Equal(t, 100-10*accepted, p.Stock)
}
