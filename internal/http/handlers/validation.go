package handlers

import (
	"strings"

	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

type TransactionValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateTransaction rejects malformed input before anything touches
// persistence. Type must match the enum exactly; direction is never inferred
// from sign or from absence of a match.
func validateTransaction(t TransactionRequest) []TransactionValidationError {
	errs := []TransactionValidationError{}
	if strings.TrimSpace(t.ProductName) == "" {
		errs = append(errs, TransactionValidationError{Field: "ProductName", Description: "Product name is required"})
	}
	if t.Quantity <= 0 {
		errs = append(errs, TransactionValidationError{Field: "Quantity", Description: "Quantity must be a positive integer"})
	}
	if t.Type != models.TransactionIn && t.Type != models.TransactionOut {
		errs = append(errs, TransactionValidationError{Field: "Type", Description: "Type must be IN or OUT"})
	}
	return errs
}
