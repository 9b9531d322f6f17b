package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used when hashing new passwords.
const BcryptCost = 10

// bcryptMinLength is the length of a complete bcrypt hash.
const bcryptMinLength = 60

// PasswordVerifier checks a submitted password against a stored value.
type PasswordVerifier interface {
	Verify(stored, password string) bool
}

// BcryptVerifier verifies bcrypt hashes.
type BcryptVerifier struct{}

// Verify reports whether password matches the bcrypt hash stored.
func (BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// LegacyPlaintextVerifier verifies rows that still carry a plaintext password.
// Both sides are trimmed and compared through fixed-size digests in constant time.
type LegacyPlaintextVerifier struct{}

// Verify reports whether the trimmed password equals the trimmed stored value.
func (LegacyPlaintextVerifier) Verify(stored, password string) bool {
	a := sha256.Sum256([]byte(strings.TrimSpace(stored)))
	b := sha256.Sum256([]byte(strings.TrimSpace(password)))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// IsBcryptHash reports whether stored has the shape of a bcrypt hash.
func IsBcryptHash(stored string) bool {
	if len(stored) < bcryptMinLength {
		return false
	}
	return strings.HasPrefix(stored, "$2y$") || strings.HasPrefix(stored, "$2a$")
}

// VerifierFor picks the verifier matching the format of stored.
func VerifierFor(stored string) PasswordVerifier {
	if IsBcryptHash(stored) {
		return BcryptVerifier{}
	}
	return LegacyPlaintextVerifier{}
}

// VerifyPassword checks password against stored using the matching verifier.
func VerifyPassword(stored, password string) bool {
	return VerifierFor(stored).Verify(stored, password)
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
