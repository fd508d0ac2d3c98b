package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/warehouse-api/internal/http"
	handler "github.com/rogerio-castellano/warehouse-api/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-api/internal/models"
	"github.com/rogerio-castellano/warehouse-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	ledgerRepo  *repo.InMemoryLedgerRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	ledgerRepo = repo.NewInMemoryLedgerRepository(productRepo)
	handler.SetLedgerRepo(ledgerRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
}

func clearAll() {
	productRepo.Clear()
	ledgerRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func postTransaction(r http.Handler, t handler.TransactionRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(t)
	req := httptest.NewRequest(http.MethodPost, "/transaction", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProducts(r http.Handler) []handler.ProductResponse {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var products []handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&products)
	return products
}

func getTransactions(r http.Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/transactions"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stockOf(r http.Handler, name string) (int, bool) {
	for _, p := range getProducts(r) {
		if p.Name == name {
			return p.Stock, true
		}
	}
	return 0, false
}
