package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of password.
func HashPassword(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks password against a stored credential. A credential
// that equals the plaintext password is accepted once so accounts created
// before hashing can log in; legacy reports that case so the caller can
// rewrite the credential.
func VerifyPassword(stored string, password []byte) (ok, legacy bool) {
	digest := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1 {
		return true, false
	}
	if subtle.ConstantTimeCompare([]byte(stored), password) == 1 {
		return true, true
	}
	return false, false
}
