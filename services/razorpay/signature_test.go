package razorpay

import (
	"strings"
	"testing"
)

func TestComputeSignatureDeterministic(t *testing.T) {
	secret := "test_secret"
	first := ComputeSignature(secret, "order_abc", "pay_xyz")
	second := ComputeSignature(secret, "order_abc", "pay_xyz")

	if first != second {
		t.Errorf("same inputs produced different signatures: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestComputeSignatureInputSensitivity(t *testing.T) {
	secret := "test_secret"
	base := ComputeSignature(secret, "order_abc", "pay_xyz")

	cases := map[string]string{
		"different order id":   ComputeSignature(secret, "order_abd", "pay_xyz"),
		"different payment id": ComputeSignature(secret, "order_abc", "pay_xyy"),
		"different secret":     ComputeSignature("other_secret", "order_abc", "pay_xyz"),
		"swapped arguments":    ComputeSignature(secret, "pay_xyz", "order_abc"),
	}

	for name, sig := range cases {
		if sig == base {
			t.Errorf("%s produced the same signature", name)
		}
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_MNq7YRvjvUZDHK"
	paymentID := "pay_MNq8bbFZDRnqqw"
	valid := ComputeSignature(secret, orderID, paymentID)

	if !VerifySignature(secret, orderID, paymentID, valid) {
		t.Fatal("valid signature did not verify")
	}

	if VerifySignature("wrong_secret", orderID, paymentID, valid) {
		t.Error("signature verified under wrong secret")
	}
	if VerifySignature(secret, paymentID, orderID, valid) {
		t.Error("signature verified with swapped order/payment ids")
	}
	if VerifySignature(secret, orderID, paymentID, "") {
		t.Error("empty signature verified")
	}
}

func TestVerifySignatureSingleCharacterTamper(t *testing.T) {
	secret := "test_secret"
	valid := ComputeSignature(secret, "order_abc", "pay_xyz")

	for i := 0; i < len(valid); i++ {
		tampered := []byte(valid)
		if tampered[i] == 'f' {
			tampered[i] = '0'
		} else {
			tampered[i] = 'f'
		}
		if VerifySignature(secret, "order_abc", "pay_xyz", string(tampered)) {
			t.Fatalf("signature with byte %d tampered still verified", i)
		}
	}

	// Truncation and extension must also fail.
	if VerifySignature(secret, "order_abc", "pay_xyz", valid[:len(valid)-1]) {
		t.Error("truncated signature verified")
	}
	if VerifySignature(secret, "order_abc", "pay_xyz", valid+"0") {
		t.Error("extended signature verified")
	}
	if VerifySignature(secret, "order_abc", "pay_xyz", strings.ToUpper(valid)) {
		t.Error("uppercased signature verified")
	}
}
