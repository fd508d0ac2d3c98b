package models

// Transaction direction. Quantity is always positive; direction is carried
// by the type field, never by sign.
const (
	TransactionIn  = "IN"
	TransactionOut = "OUT"
)

type Transaction struct {
	ID          int    `json:"id"`
	Reference   string `json:"reference"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
}
