package fenc

const (
	// SaltSize is the length in bytes of the per-file salt.
	SaltSize = 16

	// MasterKeySize is the length in bytes of the derived master key.
	MasterKeySize = 32

	// SubkeySize is the length in bytes of each subkey in the schedule.
	SubkeySize = 16

	// NumSubkeys is the number of 16-byte subkeys produced by the schedule:
	// validator, k1, k2, k3, k4, k5, k6.
	NumSubkeys = 7

	// MinBlockSize is the minimum file length accepted by the Feistel
	// cipher: 16 bytes for the left half plus at least 16 for the right.
	MinBlockSize = 32

	// MinTokenLen and MaxTokenLen bound the code-point length of a
	// retained word for indexing.
	MinTokenLen = 4
	MaxTokenLen = 12

	// SidecarPrefix names the metadata file adjacent to an encrypted file.
	SidecarPrefix = ".fenc-meta."
)

// MasterKey is the 32-byte key derived from (password, salt). It is
// ephemeral and is never persisted.
type MasterKey [MasterKeySize]byte

// SubkeyBundle holds the seven 16-byte subkeys produced by the key
// schedule, in their fixed derivation order.
type SubkeyBundle struct {
	Validator [SubkeySize]byte
	K1        [SubkeySize]byte
	K2        [SubkeySize]byte
	K3        [SubkeySize]byte
	K4        [SubkeySize]byte
	K5        [SubkeySize]byte
	K6        [SubkeySize]byte
}

// Sidecar is the JSON metadata persisted next to an encrypted file.
// Every field is lowercase hex except Terms, whose entries are
// themselves lowercase hex MAC outputs.
type Sidecar struct {
	Salt      string   `json:"salt"`
	Validator string   `json:"validator"`
	MAC       string   `json:"mac"`
	Terms     []string `json:"terms"`
}
