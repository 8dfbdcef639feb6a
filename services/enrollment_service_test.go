package services

import (
	"context"
	"errors"
	"testing"

	"github.com/devlaunch/academy-api/services/razorpay"
)

const testSecret = "test_key_secret"

func validTriple(orderID, paymentID string) (string, string, string) {
	return orderID, paymentID, razorpay.ComputeSignature(testSecret, orderID, paymentID)
}

func TestEnrollInputGates(t *testing.T) {
	svc := NewEnrollmentService(nil, nil, testSecret)

	cases := []struct {
		name  string
		input EnrollmentInput
		want  error
	}{
		{
			name:  "missing email",
			input: EnrollmentInput{OrderID: "o", PaymentID: "p", Signature: "s"},
			want:  ErrMissingEmail,
		},
		{
			name:  "missing order id",
			input: EnrollmentInput{Email: "a@b.com", PaymentID: "p", Signature: "s"},
			want:  ErrMissingVerification,
		},
		{
			name:  "missing payment id",
			input: EnrollmentInput{Email: "a@b.com", OrderID: "o", Signature: "s"},
			want:  ErrMissingVerification,
		},
		{
			name:  "missing signature",
			input: EnrollmentInput{Email: "a@b.com", OrderID: "o", PaymentID: "p"},
			want:  ErrMissingVerification,
		},
		{
			name:  "bad signature",
			input: EnrollmentInput{Email: "a@b.com", OrderID: "order_1", PaymentID: "pay_1", Signature: "deadbeef"},
			want:  ErrVerificationFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Enroll(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEnrollWithoutSecret(t *testing.T) {
	svc := NewEnrollmentService(nil, nil, "")

	_, err := svc.Enroll(context.Background(), EnrollmentInput{
		Email:     "a@b.com",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "anything",
	})
	if !errors.Is(err, ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestVerifyTriple(t *testing.T) {
	svc := NewEnrollmentService(nil, nil, testSecret)

	orderID, paymentID, signature := validTriple("order_xyz", "pay_xyz")

	ok, err := svc.VerifyTriple(orderID, paymentID, signature)
	if err != nil || !ok {
		t.Errorf("expected a well-formed triple to verify, got ok=%v err=%v", ok, err)
	}

	// A mismatch is a normal false result, not an error.
	ok, err = svc.VerifyTriple(orderID, paymentID, signature+"0")
	if err != nil {
		t.Errorf("tampered signature must not be an error, got %v", err)
	}
	if ok {
		t.Error("tampered signature must not verify")
	}

	// An incomplete triple is malformed input.
	for _, tc := range []struct {
		name                          string
		orderID, paymentID, signature string
	}{
		{"empty order id", "", paymentID, signature},
		{"empty payment id", orderID, "", signature},
		{"empty signature", orderID, paymentID, ""},
	} {
		if _, err := svc.VerifyTriple(tc.orderID, tc.paymentID, tc.signature); !errors.Is(err, ErrMissingVerification) {
			t.Errorf("%s: expected ErrMissingVerification, got %v", tc.name, err)
		}
	}

	// A missing secret is server misconfiguration, distinct from a mismatch.
	unconfigured := NewEnrollmentService(nil, nil, "")
	if _, err := unconfigured.VerifyTriple(orderID, paymentID, signature); !errors.Is(err, ErrSecretNotConfigured) {
		t.Errorf("expected ErrSecretNotConfigured, got %v", err)
	}
}
