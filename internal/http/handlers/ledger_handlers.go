package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/alerts"
	"github.com/rogerio-castellano/warehouse-api/internal/models"
	repo "github.com/rogerio-castellano/warehouse-api/internal/repo"
	"go.uber.org/zap"
)

// RecordTransactionHandler godoc
// @Summary Log a stock transaction
// @Description Applies the stock adjustment and appends an audit entry atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction to log"
// @Success 200 {object} TransactionAck
// @Failure 400 {string} string "Invalid input or insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /transaction [post]
func RecordTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateTransaction(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	// Timestamp and reference are server-assigned; anything the client sent
	// besides the three fields above is ignored.
	created, err := ledgerRepo.Record(models.Transaction{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Type:        req.Type,
	})
	if err != nil {
		var insufficient *repo.InsufficientStockError
		if errors.As(err, &insufficient) {
			http.Error(w, fmt.Sprintf("Insufficient stock. Current: %d, Requested: %d",
				insufficient.Current, insufficient.Requested), http.StatusBadRequest)
			return
		}
		zap.L().Error("could not record transaction",
			zap.String("product", req.ProductName), zap.Error(err))
		http.Error(w, "could not record transaction", http.StatusInternalServerError)
		return
	}

	productCache.Invalidate()
	publisher.PublishTransaction(created)

	if created.Type == models.TransactionOut && lowStockThreshold > 0 {
		if p, err := productRepo.GetByName(created.ProductName); err == nil && p.Stock < lowStockThreshold {
			alerts.SendLowStockAlert(p.Name, p.Stock, lowStockThreshold)
		}
	}

	writeJSON(w, http.StatusOK, TransactionAck{Status: "success"})
}

// GetTransactionsHandler godoc
// @Summary Get the transaction audit log
// @Tags transactions
// @Produce json
// @Param since query string false "Filter transactions from this timestamp (RFC3339)"
// @Param until query string false "Filter transactions until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /transactions [get]
// @Security BearerAuth
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	// Reverse the substitution from + for space in the date parameters,
	// otherwise time.Parse will fail. URL query parameters replace + with a
	// space, so 2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00.
	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	var since, until *time.Time
	if sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return
		}
		since = &ts
	}
	if untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return
		}
		until = &ts
	}

	var limit, offset *int

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return
		}
		limit = &v
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil || v < 0 {
			http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
			return
		}
		offset = &v
	}

	transactions, total, err := ledgerRepo.GetAll(repo.TransactionFilter{
		Since:  since,
		Until:  until,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		zap.L().Error("could not retrieve transactions", zap.Error(err))
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}

	response := TransactionsSearchResult{
		Data: make([]TransactionResponse, len(transactions)),
		Meta: Meta{TotalCount: total},
	}
	for i, t := range transactions {
		response.Data[i] = TransactionResponse{
			ID:          t.ID,
			Reference:   t.Reference,
			ProductName: t.ProductName,
			Quantity:    t.Quantity,
			Type:        t.Type,
			Timestamp:   t.Timestamp,
		}
	}

	writeJSON(w, http.StatusOK, response)
}
