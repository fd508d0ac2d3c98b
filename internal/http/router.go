package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/warehouse-api/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handlers.HealthHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.With(RateLimitMiddleware).Post("/transaction", handlers.RecordTransactionHandler)
	r.With(AuthMiddleware).Get("/transactions", handlers.GetTransactionsHandler)
	r.With(AuthMiddleware).Get("/transactions/export", handlers.ExportTransactionsHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
