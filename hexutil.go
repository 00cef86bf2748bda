package fenc

import (
	"encoding/hex"
	"fmt"
)

// encodeHex lowercases and hex-encodes b; every sidecar field other
// than terms is stored this way.
func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// decodeHex decodes s as hex and verifies it is exactly wantLen bytes.
func decodeHex(s string, wantLen int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("fenc: invalid hex: %w", err)
	}
	if len(b) != wantLen {
		return nil, fmt.Errorf("fenc: expected %d bytes, got %d", wantLen, len(b))
	}
	return b, nil
}
