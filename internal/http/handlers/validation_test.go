package handlers

import (
	"testing"
)

func fields(errs []TransactionValidationError) map[string]bool {
	out := make(map[string]bool, len(errs))
	for _, e := range errs {
		out[e.Field] = true
	}
	return out
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name    string
		payload TransactionRequest
		want    []string
	}{
		{"Valid IN", TransactionRequest{ProductName: "Widget", Quantity: 1, Type: "IN"}, nil},
		{"Valid OUT", TransactionRequest{ProductName: "Widget", Quantity: 5, Type: "OUT"}, nil},
		{"Blank name", TransactionRequest{ProductName: "  ", Quantity: 1, Type: "IN"}, []string{"ProductName"}},
		{"Zero quantity", TransactionRequest{ProductName: "Widget", Quantity: 0, Type: "IN"}, []string{"Quantity"}},
		{"Unknown type", TransactionRequest{ProductName: "Widget", Quantity: 1, Type: "MOVE"}, []string{"Type"}},
		{"Lowercase type", TransactionRequest{ProductName: "Widget", Quantity: 1, Type: "in"}, []string{"Type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateTransaction(tt.payload)
			if len(errs) != len(tt.want) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.want), len(errs), errs)
			}
			got := fields(errs)
			for _, f := range tt.want {
				if !got[f] {
					t.Errorf("expected validation error for field %q", f)
				}
			}
		})
	}
}
