package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/services/razorpay"
)

const testSecret = "test_key_secret"

func newTestApp(gateway *razorpay.Client, keySecret string) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(nil, gateway, keySecret)
	app.Post("/api/razorpay/order", h.CreateOrder)
	app.Post("/api/razorpay/verify", h.Verify)
	app.Post("/api/enroll", h.Enroll)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, decoded
}

func TestVerifyEndpoint(t *testing.T) {
	app := newTestApp(nil, testSecret)

	signature := razorpay.ComputeSignature(testSecret, "order_abc", "pay_abc")

	resp, body := postJSON(t, app, "/api/razorpay/verify", map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  signature,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
}

func TestVerifyEndpointTamperedSignature(t *testing.T) {
	app := newTestApp(nil, testSecret)

	signature := razorpay.ComputeSignature(testSecret, "order_abc", "pay_abc")

	// A mismatch is a normal negative answer, not an HTTP error.
	resp, body := postJSON(t, app, "/api/razorpay/verify", map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  signature + "00",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("expected success false, got %v", body["success"])
	}
}

func TestVerifyEndpointIncompleteTriple(t *testing.T) {
	app := newTestApp(nil, testSecret)

	resp, body := postJSON(t, app, "/api/razorpay/verify", map[string]string{
		"razorpay_order_id":  "order_abc",
		"razorpay_signature": "deadbeef",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an incomplete triple, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("expected success false, got %v", body["success"])
	}
}

func TestVerifyEndpointWithoutSecret(t *testing.T) {
	app := newTestApp(nil, "")

	signature := razorpay.ComputeSignature(testSecret, "order_abc", "pay_abc")

	// A server without its signing secret must answer with a config error,
	// never a verification verdict.
	resp, body := postJSON(t, app, "/api/razorpay/verify", map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  signature,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("expected an error message")
	}
}

func TestCreateOrderWithoutGateway(t *testing.T) {
	app := newTestApp(nil, testSecret)

	resp, body := postJSON(t, app, "/api/razorpay/order", map[string]any{
		"amount": 29900,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("expected an error message")
	}
}

func TestCreateOrderAgainstFakeGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_fake1",
			"amount":   29900,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer server.Close()

	gateway := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: testSecret,
		BaseURL:   server.URL,
	})
	app := newTestApp(gateway, testSecret)

	resp, body := postJSON(t, app, "/api/razorpay/order", map[string]any{
		"amount": 29900,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["id"] != "order_fake1" {
		t.Errorf("expected order id order_fake1, got %v", body["id"])
	}
	if body["key"] != "rzp_test_key" {
		t.Errorf("expected public key in response, got %v", body["key"])
	}
}

func TestEnrollRejectsMalformedInput(t *testing.T) {
	app := newTestApp(nil, testSecret)

	// Missing email
	resp, body := postJSON(t, app, "/api/enroll", map[string]any{
		"user": map[string]any{"name": "No Email"},
		"verification": map[string]string{
			"razorpay_order_id":   "o",
			"razorpay_payment_id": "p",
			"razorpay_signature":  "s",
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("expected an error message")
	}

	// Missing verification triple
	resp, _ = postJSON(t, app, "/api/enroll", map[string]any{
		"user": map[string]any{"email": "a@b.com"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing verification, got %d", resp.StatusCode)
	}

	// Tampered signature
	signature := razorpay.ComputeSignature(testSecret, "order_1", "pay_1")
	resp, body = postJSON(t, app, "/api/enroll", map[string]any{
		"user": map[string]any{"email": "a@b.com"},
		"verification": map[string]string{
			"razorpay_order_id":   "order_1",
			"razorpay_payment_id": "pay_1",
			"razorpay_signature":  signature + "ff",
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad signature, got %d", resp.StatusCode)
	}
	if body["error"] != "Payment verification failed" {
		t.Errorf("unexpected error message %v", body["error"])
	}
}
