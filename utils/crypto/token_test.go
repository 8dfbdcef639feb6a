package crypto

import "testing"

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if len(a) != TokenLength*2 {
		t.Errorf("expected %d hex chars, got %d", TokenLength*2, len(a))
	}

	b, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if a == b {
		t.Error("two generated tokens must differ")
	}
}
