package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// GetProductsHandler godoc
// @Summary List products
// @Description Returns the current state of every product, up to the page size
// @Tags products
// @Produce json
// @Param limit query int false "Maximum number of products to return"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := pageSize
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		l, err := strconv.Atoi(lStr)
		if err != nil || l < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(l, pageSize)
	}

	// Only the default page is cached; narrower listings go to the store.
	if limit == pageSize {
		if data, ok := productCache.GetProducts(); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	products, err := productRepo.GetAll(limit)
	if err != nil {
		zap.L().Error("could not fetch products", zap.Error(err))
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		category := p.Category
		if category == "" {
			category = "General"
		}
		response[i] = ProductResponse{
			Id:       strconv.Itoa(p.ID),
			Name:     p.Name,
			Category: category,
			Stock:    p.Stock,
		}
	}

	data, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	if limit == pageSize {
		productCache.SetProducts(data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResult
// @Router / [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResult{
		Message: "Warehouse backend is running",
		Status:  "online",
	})
}
