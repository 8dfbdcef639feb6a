package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// TokenLength is the byte length of generated reset tokens (hex doubles it)
const TokenLength = 32

// GenerateToken returns a cryptographically secure random token, hex encoded.
// Used for password reset links.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
