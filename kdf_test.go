package fenc

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func TestDeriveMasterKeyVector(t *testing.T) {
	salt, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("failed to decode salt: %v", err)
	}

	got, err := DeriveMasterKey("password", salt)
	if err != nil {
		t.Fatalf("DeriveMasterKey returned error: %v", err)
	}

	want := pbkdf2.Key([]byte("password"), salt, pbkdf2Iterations, MasterKeySize, sha256.New)
	if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
		t.Errorf("DeriveMasterKey = %x, want %x", got, want)
	}
}

func TestDeriveMasterKeyEmptyPassword(t *testing.T) {
	salt := make([]byte, SaltSize)
	if _, err := DeriveMasterKey("", salt); err != ErrEmptyPassword {
		t.Errorf("DeriveMasterKey with empty password = %v, want ErrEmptyPassword", err)
	}
}

func TestDeriveMasterKeyWrongSaltSize(t *testing.T) {
	if _, err := DeriveMasterKey("password", []byte{1, 2, 3}); err == nil {
		t.Error("DeriveMasterKey with a short salt should fail")
	}
}

func TestDeriveMasterKeyDeterministic(t *testing.T) {
	salt, _ := GenerateSalt()

	a, err := DeriveMasterKey("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("DeriveMasterKey returned error: %v", err)
	}
	b, err := DeriveMasterKey("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("DeriveMasterKey returned error: %v", err)
	}

	if a != b {
		t.Error("DeriveMasterKey is not deterministic for identical inputs")
	}
}

func TestGenerateSaltFreshness(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}

	if hex.EncodeToString(a) == hex.EncodeToString(b) {
		t.Error("two consecutive salts should not collide")
	}
	if len(a) != SaltSize {
		t.Errorf("GenerateSalt returned %d bytes, want %d", len(a), SaltSize)
	}
}
