package fenc

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// scheduleKeystreamSize is the total size of the seven 16-byte subkeys.
const scheduleKeystreamSize = NumSubkeys * SubkeySize

// DeriveSubkeys expands a 32-byte master key into the seven 16-byte
// subkey bundle. The master key is split as key = master[0:16],
// nonce = master[16:24], initial counter = master[24:32]; AES-128-CTR
// over those parameters encrypts a 112-byte zero buffer, and the
// keystream is sliced into the bundle in order. The split is
// load-bearing: sidecars are only portable between tools that derive
// the bundle from exactly these offsets.
func DeriveSubkeys(master MasterKey) (SubkeyBundle, error) {
	var bundle SubkeyBundle

	block, err := aes.NewCipher(master[0:16])
	if err != nil {
		return bundle, fmt.Errorf("fenc: failed to create AES cipher for key schedule: %w", err)
	}

	// The nonce/counter split follows crypto/cipher's CTR convention:
	// the 16-byte IV is nonce || counter, big-endian.
	iv := make([]byte, aes.BlockSize)
	copy(iv[0:8], master[16:24])
	copy(iv[8:16], master[24:32])

	stream := cipher.NewCTR(block, iv)
	keystream := make([]byte, scheduleKeystreamSize)
	stream.XORKeyStream(keystream, keystream)

	copy(bundle.Validator[:], keystream[0*SubkeySize:1*SubkeySize])
	copy(bundle.K1[:], keystream[1*SubkeySize:2*SubkeySize])
	copy(bundle.K2[:], keystream[2*SubkeySize:3*SubkeySize])
	copy(bundle.K3[:], keystream[3*SubkeySize:4*SubkeySize])
	copy(bundle.K4[:], keystream[4*SubkeySize:5*SubkeySize])
	copy(bundle.K5[:], keystream[5*SubkeySize:6*SubkeySize])
	copy(bundle.K6[:], keystream[6*SubkeySize:7*SubkeySize])

	return bundle, nil
}
