package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	keyLength      = 64
	hashIterations = 10000
)

// NewSalt returns a random hex encoded salt.
func NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives the hex encoded key of password with the hex encoded salt.
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), rawSalt, hashIterations, keyLength, sha512.New)
	return hex.EncodeToString(key), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, salt, hash string) bool {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
