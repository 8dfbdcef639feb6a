package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody OrderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode order request: %v", err)
		}
		json.NewEncoder(w).Encode(Order{
			ID:       "order_test123",
			Entity:   "order",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Receipt:  gotBody.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret", BaseURL: server.URL})

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   29900,
		Currency: "INR",
		Receipt:  "rcpt_1",
		Notes:    map[string]any{"course": "Modern Web Development"},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if gotPath != "/v1/orders" {
		t.Errorf("expected POST /v1/orders, got %s", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "rzp_test_secret" {
		t.Errorf("basic auth not sent: %s / %s", gotUser, gotPass)
	}
	if gotBody.Amount != 29900 {
		t.Errorf("expected amount 29900, got %d", gotBody.Amount)
	}
	if order.ID != "order_test123" || order.Amount != 29900 || order.Status != "created" {
		t.Errorf("unexpected order: %+v", order)
	}
}

func TestFetchPaymentKeepsRawPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/pay_abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"pay_abc","entity":"payment","order_id":"order_1","amount":29900,"currency":"INR","status":"captured","method":"upi","email":"s@example.com","vpa":"s@upi"}`))
	}))
	defer server.Close()

	client := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})

	payment, err := client.FetchPayment(context.Background(), "pay_abc")
	if err != nil {
		t.Fatalf("FetchPayment failed: %v", err)
	}

	if payment.ID != "pay_abc" || payment.Status != "captured" || payment.Method != "upi" {
		t.Errorf("unexpected payment: %+v", payment)
	}
	// Fields the struct does not model must survive in Raw.
	var raw map[string]any
	if err := json.Unmarshal(payment.Raw, &raw); err != nil {
		t.Fatalf("raw payload not valid JSON: %v", err)
	}
	if raw["vpa"] != "s@upi" {
		t.Errorf("raw payload lost unmodeled field: %v", raw)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least INR 1.00"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})

	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 0, Currency: "INR"})
	if err == nil {
		t.Fatal("expected error for rejected order")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "BAD_REQUEST_ERROR" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected api error: %+v", apiErr)
	}
}
