package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing the iteration count invalidates every
// stored hash, so it stays a constant rather than config.
const (
	pbkdf2Iterations = 100000
	saltLength       = 16
	digestLength     = 32
)

// HashPassword derives a salted PBKDF2-SHA256 digest and encodes it as
// "saltHex$digestHex".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, digestLength, sha256.New)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest), nil
}

// VerifyPassword re-derives the digest with the stored salt and
// compares in constant time. Fails closed on malformed stored values.
func VerifyPassword(password, encoded string) bool {
	saltHex, digestHex, ok := strings.Cut(encoded, "$")
	if !ok || saltHex == "" || digestHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(digest), sha256.New)

	return subtle.ConstantTimeCompare(computed, digest) == 1
}
