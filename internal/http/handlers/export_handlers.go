package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/repo"
	"go.uber.org/zap"
)

// ExportTransactionsHandler godoc
// @Summary Export the transaction audit log
// @Produce text/csv, application/json
// @Tags transactions
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /transactions/export [get]
// @Security BearerAuth
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	var since, until *time.Time
	if sinceStr != "" {
		if ts, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			since = &ts
		}
	}
	if untilStr != "" {
		if ts, err := time.Parse(time.RFC3339, untilStr); err == nil {
			until = &ts
		}
	}

	transactions, _, err := ledgerRepo.GetAll(repo.TransactionFilter{Since: since, Until: until})
	if err != nil {
		zap.L().Error("could not retrieve transactions for export", zap.Error(err))
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
		json.NewEncoder(w).Encode(transactions)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "reference", "product_name", "quantity", "type", "timestamp"})
		for _, t := range transactions {
			_ = csvWriter.Write([]string{
				strconv.Itoa(t.ID),
				t.Reference,
				t.ProductName,
				strconv.Itoa(t.Quantity),
				t.Type,
				t.Timestamp,
			})
		}
		csvWriter.Flush()
	}
}
