// Package auth implements credential hashing and server-side sessions.
package auth

import (
	"errors"

	"github.com/theandrewmo/warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
// The result embeds its own salt; the plaintext is never recoverable.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
// A mismatch returns (false, nil). A hash that bcrypt cannot parse returns
// (false, CorruptCredential) so operators can distinguish bad data from a
// wrong password.
func CheckPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, models.NewCorruptCredentialError(err)
}
