package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature returns the hex HMAC-SHA256 digest of "orderID|paymentID"
// under the key secret. This is the digest Razorpay attaches to a successful
// checkout; recomputing it server-side proves the confirmation triple came
// from the gateway and was not fabricated by the client.
func ComputeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the digest recomputed
// from orderID and paymentID. A mismatch is a normal outcome ("this payment
// could not be authenticated"), not an error, so the function returns a bool.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
