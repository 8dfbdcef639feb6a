package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// bcrypt cost 12 keeps hashing around 250ms on current hardware, slow enough
// to blunt offline cracking of a leaked dump.
const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// HashPassword generates a bcrypt hash, enforcing the length policy first so
// a too-short password never reaches the hasher.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// VerifyPassword checks the password against the stored hash
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// IsPasswordValid reports whether the password meets the length policy.
func IsPasswordValid(password string) bool {
	return len(password) >= minPasswordLength
}
