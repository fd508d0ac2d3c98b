package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	api "github.com/rogerio-castellano/warehouse-api/internal/http"
	handler "github.com/rogerio-castellano/warehouse-api/internal/http/handlers"
)

func TestRecordTransaction_InCreatesProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 10, Type: "IN"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var ack handler.TransactionAck
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if ack.Status != "success" {
		t.Errorf("expected status 'success', got %q", ack.Status)
	}

	products := getProducts(r)
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	p := products[0]
	if p.Id == "" {
		t.Error("expected a non-empty stringified id")
	}
	if p.Name != "Widget" {
		t.Errorf("expected name 'Widget', got %q", p.Name)
	}
	if p.Category != "General" {
		t.Errorf("expected default category 'General', got %q", p.Category)
	}
	if p.Stock != 10 {
		t.Errorf("expected stock 10, got %d", p.Stock)
	}
}

func TestRecordTransaction_WidgetScenario(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 10, Type: "IN"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for IN, got %d", w.Code)
	}

	w = postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 3, Type: "OUT"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for OUT, got %d", w.Code)
	}
	if stock, _ := stockOf(r, "Widget"); stock != 7 {
		t.Errorf("expected stock 7 after IN 10 / OUT 3, got %d", stock)
	}

	w = postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 100, Type: "OUT"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	expectedBody := "Insufficient stock. Current: 7, Requested: 100\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}

	if stock, _ := stockOf(r, "Widget"); stock != 7 {
		t.Errorf("expected stock unchanged at 7, got %d", stock)
	}

	lw := getTransactions(r, "")
	if lw.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for transactions, got %d", lw.Code)
	}
	var resp handler.TransactionsSearchResult
	if err := json.NewDecoder(lw.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 2 {
		t.Errorf("expected 2 logged transactions (rejection must not log), got %d", resp.Meta.TotalCount)
	}
}

func TestRecordTransaction_OutOnMissingProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postTransaction(r, handler.TransactionRequest{ProductName: "Ghost", Quantity: 5, Type: "OUT"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	expectedBody := "Insufficient stock. Current: 0, Requested: 5\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestRecordTransaction_SignedSum(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	steps := []struct {
		qty int
		typ string
	}{
		{50, "IN"}, {20, "OUT"}, {5, "IN"}, {30, "OUT"}, {100, "IN"},
	}

	want := 0
	for _, s := range steps {
		w := postTransaction(r, handler.TransactionRequest{ProductName: "Gadget", Quantity: s.qty, Type: s.typ})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK for %s %d, got %d", s.typ, s.qty, w.Code)
		}
		if s.typ == "IN" {
			want += s.qty
		} else {
			want -= s.qty
		}
	}

	if stock, _ := stockOf(r, "Gadget"); stock != want {
		t.Errorf("expected final stock %d, got %d", want, stock)
	}
}

func TestRecordTransaction_Validation(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.TransactionRequest
		expectedErrors []string
	}{
		{
			name:           "Missing product name",
			payload:        handler.TransactionRequest{ProductName: "", Quantity: 1, Type: "IN"},
			expectedErrors: []string{"ProductName"},
		},
		{
			name:           "Zero quantity",
			payload:        handler.TransactionRequest{ProductName: "Widget", Quantity: 0, Type: "IN"},
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.TransactionRequest{ProductName: "Widget", Quantity: -4, Type: "OUT"},
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Missing type",
			payload:        handler.TransactionRequest{ProductName: "Widget", Quantity: 1},
			expectedErrors: []string{"Type"},
		},
		{
			name:           "Lowercase type",
			payload:        handler.TransactionRequest{ProductName: "Widget", Quantity: 1, Type: "out"},
			expectedErrors: []string{"Type"},
		},
		{
			name:           "Everything wrong",
			payload:        handler.TransactionRequest{ProductName: " ", Quantity: -1, Type: "REMOVE"},
			expectedErrors: []string{"ProductName", "Quantity", "Type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postTransaction(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.TransactionValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}

	if count := len(getProducts(r)); count != 0 {
		t.Errorf("expected no products after rejected input, got %d", count)
	}
}

func TestRecordTransaction_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	badJSON := `{product_name: "Widget" quantity: 1}` // missing quotes and comma
	req := httptest.NewRequest(http.MethodPost, "/transaction", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}

	expectedBody := "invalid input\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestRecordTransaction_ServerAssignedTimestamp(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	// A client-supplied timestamp must be ignored.
	body := `{"product_name":"Widget","quantity":4,"type":"IN","timestamp":"1999-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/transaction", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	lw := getTransactions(r, "")
	var resp handler.TransactionsSearchResult
	if err := json.NewDecoder(lw.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one transaction, got %d", len(resp.Data))
	}

	entry := resp.Data[0]
	if entry.Reference == "" {
		t.Error("expected a server-assigned reference")
	}
	ts, err := time.Parse(time.RFC3339Nano, entry.Timestamp)
	if err != nil {
		t.Fatalf("could not parse timestamp %q: %v", entry.Timestamp, err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("expected a server-assigned timestamp, got %v", ts)
	}
}

func TestRecordTransaction_ConcurrentWithdrawals(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 100, Type: "IN"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK seeding stock, got %d", w.Code)
	}

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 10, Type: "OUT"})
			if w.Code == http.StatusOK {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 20 withdrawals of 10 against 100: at most 10 can be accepted, and the
	// rest must be rejected rather than driving stock negative.
	if accepted > 10 {
		t.Errorf("expected at most 10 accepted withdrawals, got %d", accepted)
	}
	stock, _ := stockOf(r, "Widget")
	if stock < 0 {
		t.Errorf("stock went negative: %d", stock)
	}
	if stock != 100-10*accepted {
		t.Errorf("expected stock %d after %d accepted withdrawals, got %d", 100-10*accepted, accepted, stock)
	}
}

func TestGetTransactions_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized without token, got %d", w.Code)
	}
}

func TestGetTransactions_Pagination(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	for i := 0; i < 5; i++ {
		w := postTransaction(r, handler.TransactionRequest{ProductName: "Widget", Quantity: 1, Type: "IN"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
	}

	w := getTransactions(r, "?limit=2&offset=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.TransactionsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got := len(resp.Data); got != 2 {
		t.Errorf("expected 2 transactions, got %d", got)
	}
	if resp.Meta.TotalCount != 5 {
		t.Errorf("expected total count 5, got %d", resp.Meta.TotalCount)
	}
}

func TestGetTransactions_InvalidQuery(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name  string
		query string
	}{
		{"Invalid since", "?since=yesterday"},
		{"Zero limit", "?limit=0"},
		{"Negative offset", "?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getTransactions(r, tt.query)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}
