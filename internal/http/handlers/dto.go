package handlers

// ProductResponse is the external projection of a stored product. The
// identifier is stringified and absent fields fall back to their defaults.
type ProductResponse struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

type TransactionRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type"`
}

type TransactionAck struct {
	Status string `json:"status"`
}

type TransactionResponse struct {
	ID          int    `json:"id"`
	Reference   string `json:"reference"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type TransactionsSearchResult struct {
	Data []TransactionResponse `json:"data"`
	Meta Meta                  `json:"meta,omitempty"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type HealthResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
