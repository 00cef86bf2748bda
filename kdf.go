package fenc

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Iterations and the SHA-256 PRF are fixed: the sidecar format
// carries no version header, so there is no way to evolve the KDF
// without breaking every existing file.
const pbkdf2Iterations = 250_000

// DeriveMasterKey turns (password, salt) into a 32-byte master key
// using PBKDF2 with HMAC-SHA-256 as the PRF. The password is consumed
// as its UTF-8 byte representation.
func DeriveMasterKey(password string, salt []byte) (MasterKey, error) {
	var key MasterKey
	if len(password) == 0 {
		return key, ErrEmptyPassword
	}
	if len(salt) != SaltSize {
		return key, fmt.Errorf("fenc: salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	derived := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, MasterKeySize, sha256.New)
	copy(key[:], derived)
	return key, nil
}

// GenerateSalt returns a fresh 16-byte random salt for a new file.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("fenc: failed to generate salt: %w", err)
	}
	return salt, nil
}
