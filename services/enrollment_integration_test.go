package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/devlaunch/academy-api/config"
	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services/razorpay"
)

// openTestStore connects to the database named by the DB_* environment
// variables. Integration tests are skipped unless RUN_INTEGRATION_TESTS=true.
func openTestStore(t *testing.T) *database.GORMStore {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	getEnv, err := config.Get()
	if err != nil {
		t.Fatalf("failed to read env: %v", err)
	}

	store, err := database.StartGORM(getEnv)
	if err != nil {
		t.Fatalf("failed to connect to Postgres: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

// fakeGateway serves a captured payment object for any payment id.
func fakeGateway(t *testing.T, amount int64) (*razorpay.Client, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":       r.URL.Path[len("/v1/payments/"):],
			"amount":   amount,
			"currency": "INR",
			"status":   "captured",
			"method":   "upi",
		})
	}))

	client := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: testSecret,
		BaseURL:   server.URL,
	})
	return client, server.Close
}

func TestEnrollHappyPathIntegration(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()
	db := store.DB()

	gateway, closeGateway := fakeGateway(t, 29900)
	defer closeGateway()

	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("student%d@example.com", suffix)
	user := model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Integration Student",
		Role:         "student",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	defer db.Unscoped().Delete(&user)

	orderID := fmt.Sprintf("order_it_%d", suffix)
	paymentID := fmt.Sprintf("pay_it_%d", suffix)
	signature := razorpay.ComputeSignature(testSecret, orderID, paymentID)

	svc := NewEnrollmentService(db, gateway, testSecret)
	result, err := svc.Enroll(context.Background(), EnrollmentInput{
		Email:     email,
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	if !result.User.EnrolledCourse {
		t.Error("expected user to be enrolled")
	}
	if result.User.Progress != 0 {
		t.Errorf("expected progress reset to 0, got %d", result.User.Progress)
	}
	if result.User.TransactionID == nil || *result.User.TransactionID != paymentID {
		t.Errorf("expected transaction id %q, got %v", paymentID, result.User.TransactionID)
	}
	if !result.Enrichment.PaymentFetched || !result.Enrichment.AuditRecorded {
		t.Errorf("expected payment fetched and recorded, got %+v", result.Enrichment)
	}

	var payment model.Payment
	if err := db.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		t.Fatalf("expected a payment audit row: %v", err)
	}
	defer db.Unscoped().Delete(&payment)

	if payment.Amount != 29900 {
		t.Errorf("expected audited amount 29900, got %d", payment.Amount)
	}
	if payment.Status != "captured" {
		t.Errorf("expected captured status, got %q", payment.Status)
	}

	// Replaying the same triple must succeed without duplicating the audit row.
	replay, err := svc.Enroll(context.Background(), EnrollmentInput{
		Email:     email,
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	if err != nil {
		t.Fatalf("replayed Enroll failed: %v", err)
	}
	if !replay.Enrichment.AlreadyRecorded {
		t.Errorf("expected AlreadyRecorded on replay, got %+v", replay.Enrichment)
	}

	var count int64
	db.Model(&model.Payment{}).Where("payment_id = ?", paymentID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one audit row, got %d", count)
	}
}

func TestEnrollUnknownUserIntegration(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()
	db := store.DB()

	gateway, closeGateway := fakeGateway(t, 29900)
	defer closeGateway()

	orderID := "order_missing_user"
	paymentID := fmt.Sprintf("pay_missing_%d", time.Now().UnixNano())
	signature := razorpay.ComputeSignature(testSecret, orderID, paymentID)

	svc := NewEnrollmentService(db, gateway, testSecret)
	_, err := svc.Enroll(context.Background(), EnrollmentInput{
		Email:     fmt.Sprintf("nobody%d@example.com", time.Now().UnixNano()),
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	if err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	// The audit row may exist (signature verified before the user lookup);
	// clean it up if it does.
	db.Unscoped().Where("payment_id = ?", paymentID).Delete(&model.Payment{})
}
