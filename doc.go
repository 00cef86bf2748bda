// Package fenc encrypts individual files in place with a password,
// authenticates the ciphertext, and builds a searchable-encryption
// index over the plaintext's words so that a later holder of the same
// password can learn which encrypted files contain a given search
// term (including bounded prefix queries) without decrypting them.
//
// # Overview
//
// The package is organized around six components, leaves-first:
//
//   - Key Derivation (kdf.go): PBKDF2-HMAC-SHA-256, 250,000 iterations,
//     turns (password, salt) into a 32-byte master key.
//   - Key Schedule (schedule.go): expands the master key into seven
//     16-byte subkeys via an AES-128-CTR keystream.
//   - Feistel Cipher (feistel.go): a fixed four-round balanced Feistel
//     construction over the whole file, with no block-size negotiation.
//   - MAC (mac.go): HMAC-SHA-256, used both to authenticate ciphertext
//     and to blind search-index entries.
//   - Word Indexer (tokenizer.go, normalize.go, index.go): Unicode-aware
//     token extraction, prefix expansion, and normalization feeding the
//     blinded index.
//   - File Envelope (envelope.go, sidecar.go, batch.go): drives the
//     above to encrypt, decrypt, and search named files, with sidecar
//     JSON metadata persisted alongside each encrypted file.
//
// # Basic Usage
//
//	report, err := fenc.EncryptFiles([]string{"notes.txt"}, "hunter2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... later, from the same or a different process ...
//	results, err := fenc.Search(".", []string{"lorem*"}, "hunter2")
//
// # Security Considerations
//
// Protected against:
//   - Unauthorized reading of a file's contents at rest (MAC-checked
//     before any plaintext is produced).
//   - Tampering with ciphertext (detected by the MAC, file left alone).
//   - Brute-force password guessing against a single file (PBKDF2 cost).
//
// Not protected against:
//   - Traffic analysis of repeated search queries against a persistent
//     adversary who can watch many searches over time.
//   - Key rotation, format versioning, or streaming of files larger
//     than available memory; the whole plaintext is one in-memory
//     block.
//
// # Sidecar Format
//
// Each encrypted file "name" has an adjacent metadata file named
// ".fenc-meta.name" holding a JSON object:
//
//	{
//	  "salt": "<32 hex chars>",
//	  "validator": "<32 hex chars>",
//	  "mac": "<64 hex chars>",
//	  "terms": ["<64 hex chars>", ...]
//	}
//
// The sidecar's presence is the authoritative signal that a file is
// currently ciphertext; its absence means the file is plaintext.
package fenc
