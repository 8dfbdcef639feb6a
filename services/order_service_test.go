package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlaunch/academy-api/services/razorpay"
)

func TestCreateOrderWithoutGateway(t *testing.T) {
	svc := NewOrderService(nil, nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 10000})
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestResolveAmountFallbacks(t *testing.T) {
	// No course reference: resolution never touches the database.
	svc := NewOrderService(nil, nil)

	amount, title, err := svc.ResolveAmount(context.Background(), 0, 15000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != 15000 {
		t.Errorf("expected client amount 15000, got %d", amount)
	}
	if title != DefaultCourseTitle {
		t.Errorf("expected default title, got %q", title)
	}

	amount, _, err = svc.ResolveAmount(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != DefaultOrderAmount {
		t.Errorf("expected default amount %d, got %d", DefaultOrderAmount, amount)
	}

	// Negative client amounts fall back to the default too.
	amount, _, err = svc.ResolveAmount(context.Background(), 0, -500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != DefaultOrderAmount {
		t.Errorf("expected default amount for negative input, got %d", amount)
	}
}

func TestCreateOrderSendsResolvedAmount(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode order request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_test123",
			"amount":   got["amount"],
			"currency": got["currency"],
			"status":   "created",
		})
	}))
	defer server.Close()

	gateway := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   server.URL,
	})

	svc := NewOrderService(nil, gateway)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.ID != "order_test123" {
		t.Errorf("unexpected order id %q", order.ID)
	}
	if order.Amount != DefaultOrderAmount {
		t.Errorf("expected amount %d, got %d", DefaultOrderAmount, order.Amount)
	}
	if got["currency"] != DefaultCurrency {
		t.Errorf("expected currency %q, got %v", DefaultCurrency, got["currency"])
	}
	if receipt, _ := got["receipt"].(string); receipt == "" {
		t.Error("expected a generated receipt, got empty")
	}
}
