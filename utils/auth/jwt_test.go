package auth

import (
	"testing"
	"time"
)

func testManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "test-issuer",
		AccessTTL:  accessTTL,
		RefreshTTL: 7 * 24 * time.Hour,
	})
}

func TestGeneratePairRoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	pair, err := m.GeneratePair(42, "user@example.com", "student", 3)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}
	if pair.AccessJTI == "" || pair.RefreshJTI == "" {
		t.Fatal("expected JTIs on both tokens")
	}
	if pair.AccessJTI == pair.RefreshJTI {
		t.Error("access and refresh tokens must carry distinct JTIs")
	}
	if pair.ExpiresIn != 3600 {
		t.Errorf("expected ExpiresIn 3600, got %d", pair.ExpiresIn)
	}

	claims, err := m.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("expected token version 3, got %d", claims.TokenVersion)
	}
	if claims.ID != pair.AccessJTI {
		t.Errorf("claims ID %q does not match pair JTI %q", claims.ID, pair.AccessJTI)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager(time.Hour)

	pair, err := m.GeneratePair(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	claims, err := m.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("expected refresh token type, got %q", claims.TokenType)
	}
	if claims.ID != pair.RefreshJTI {
		t.Errorf("claims ID %q does not match pair JTI %q", claims.ID, pair.RefreshJTI)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	other := NewJWTManager(JWTConfig{Secret: "different-secret", AccessTTL: time.Hour})

	pair, err := m.GeneratePair(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	if _, err := other.ValidateToken(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)

	pair, err := m.GeneratePair(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	if _, err := m.ValidateToken(pair.AccessToken); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	m := testManager(time.Hour)

	pair, err := m.GeneratePair(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	expiry, err := m.GetTokenExpiry(pair.AccessToken)
	if err != nil {
		t.Fatalf("GetTokenExpiry failed: %v", err)
	}

	want := time.Now().Add(time.Hour)
	if expiry.Before(want.Add(-time.Minute)) || expiry.After(want.Add(time.Minute)) {
		t.Errorf("expiry %v not within a minute of %v", expiry, want)
	}

	if _, err := m.GetTokenExpiry("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
