package repo

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned when an insert violates a unique constraint.
var ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")

// ErrInvalidTransactionType guards against directions other than IN/OUT
// reaching the ledger; the HTTP boundary rejects them first.
var ErrInvalidTransactionType = errors.New("transaction type must be IN or OUT")

// InsufficientStockError rejects an OUT transaction that would drive stock
// negative. It carries the quantities so callers can report both.
type InsufficientStockError struct {
	Current   int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: current %d, requested %d", e.Current, e.Requested)
}
