package fenc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// EncryptReport carries the per-file master-key material produced by
// a batch encrypt, for the optional JSON dump.
type EncryptReport struct {
	MasterKeyHex map[string]string
}

// DecryptReport carries the per-file master-key and subkey material
// produced by a batch decrypt, for the optional JSON dump.
type DecryptReport struct {
	MasterKeyHex map[string]string
	Subkeys      map[string]SubkeyHexBundle
	Tampered     []string // files skipped due to a MAC mismatch
}

// SubkeyHexBundle is the hex-encoded form of a SubkeyBundle. The JSON
// field names are part of the dump format and must not change.
type SubkeyHexBundle struct {
	Validator string `json:"password validator"`
	K1        string `json:"1st round key"`
	K2        string `json:"2nd round key"`
	K3        string `json:"3rd round key"`
	K4        string `json:"4th round key"`
	K5        string `json:"mac key"`
	K6        string `json:"search term key"`
}

func hexBundle(sk SubkeyBundle) SubkeyHexBundle {
	return SubkeyHexBundle{
		Validator: encodeHex(sk.Validator[:]),
		K1:        encodeHex(sk.K1[:]),
		K2:        encodeHex(sk.K2[:]),
		K3:        encodeHex(sk.K3[:]),
		K4:        encodeHex(sk.K4[:]),
		K5:        encodeHex(sk.K5[:]),
		K6:        encodeHex(sk.K6[:]),
	}
}

// EncryptFiles encrypts every named file in place under password,
// building a searchable-encryption index sidecar for each. All
// pre-flight validation runs across the whole batch before any file
// is mutated: a failure here leaves every file untouched.
func EncryptFiles(paths []string, password string) (*EncryptReport, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if err := validatePaths(paths); err != nil {
		return nil, err
	}
	if err := validateMinSize(paths); err != nil {
		return nil, err
	}
	if err := validateNoSidecars(paths); err != nil {
		return nil, err
	}

	cipher := NewFeistelCipher()
	report := &EncryptReport{MasterKeyHex: make(map[string]string, len(paths))}

	for _, path := range paths {
		plaintext, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fenc: failed to read %s: %w", path, err)
		}

		salt, err := GenerateSalt()
		if err != nil {
			return nil, err
		}
		master, err := DeriveMasterKey(password, salt)
		if err != nil {
			return nil, err
		}
		subkeys, err := DeriveSubkeys(master)
		if err != nil {
			return nil, err
		}

		terms, err := BuildBlindedTerms(plaintext, subkeys.K6)
		if err != nil {
			if !IsEncodingError(err) {
				return nil, err
			}
			slog.Warn("plaintext is not valid UTF-8, term index will be empty", "path", path)
			terms = []string{}
		}

		ciphertext, err := cipher.Encrypt(subkeys.K1, subkeys.K2, subkeys.K3, subkeys.K4, plaintext)
		if err != nil {
			return nil, fmt.Errorf("fenc: failed to encrypt %s: %w", path, err)
		}

		tag := MACTag(subkeys.K5, ciphertext)

		if err := writeFileAtomic(path, ciphertext); err != nil {
			return nil, fmt.Errorf("fenc: failed to write ciphertext for %s: %w", path, err)
		}

		sc := &Sidecar{
			Salt:      encodeHex(salt),
			Validator: encodeHex(subkeys.Validator[:]),
			MAC:       encodeHex(tag[:]),
			Terms:     terms,
		}
		if err := writeSidecar(path, sc); err != nil {
			return nil, err
		}

		report.MasterKeyHex[path] = encodeHex(master[:])
		slog.Info("encrypted file", "path", path, "terms", len(terms))
	}

	return report, nil
}

// DecryptFiles decrypts every named file in place under password,
// removing its sidecar on success. Path existence, sidecar presence,
// and password validity are checked for the whole batch before any
// file is mutated; a MAC mismatch discovered while processing an
// individual file is not batch-fatal: that one file is left
// untouched and reported, and the rest of the batch proceeds.
func DecryptFiles(paths []string, password string) (*DecryptReport, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if err := validatePaths(paths); err != nil {
		return nil, err
	}
	if err := validateSidecarsPresent(paths); err != nil {
		return nil, err
	}

	plans, err := validatePasswords(paths, password)
	if err != nil {
		return nil, err
	}

	cipher := NewFeistelCipher()
	report := &DecryptReport{
		MasterKeyHex: make(map[string]string, len(plans)),
		Subkeys:      make(map[string]SubkeyHexBundle, len(plans)),
	}

	for _, plan := range plans {
		master, err := DeriveMasterKey(password, plan.salt)
		if err != nil {
			return nil, err
		}
		report.MasterKeyHex[plan.path] = encodeHex(master[:])
		report.Subkeys[plan.path] = hexBundle(plan.subkeys)

		current, err := os.ReadFile(plan.path)
		if err != nil {
			return nil, fmt.Errorf("fenc: failed to read %s: %w", plan.path, err)
		}

		expectedTag, err := decodeHex(plan.sidecar.MAC, 32)
		if err != nil {
			return nil, NewStateError(plan.path, "sidecar mac is malformed")
		}
		var tag [32]byte
		copy(tag[:], expectedTag)

		if !VerifyMAC(plan.subkeys.K5, current, tag) {
			report.Tampered = append(report.Tampered, plan.path)
			slog.Warn("tamper detected, file left untouched", "path", plan.path)
			continue
		}

		plaintext, err := cipher.Decrypt(plan.subkeys.K1, plan.subkeys.K2, plan.subkeys.K3, plan.subkeys.K4, current)
		if err != nil {
			return nil, fmt.Errorf("fenc: failed to decrypt %s: %w", plan.path, err)
		}

		if err := writeFileAtomic(plan.path, plaintext); err != nil {
			return nil, fmt.Errorf("fenc: failed to write plaintext for %s: %w", plan.path, err)
		}
		if err := removeSidecar(plan.path); err != nil {
			return nil, err
		}
		slog.Info("decrypted file", "path", plan.path)
	}

	return report, nil
}

// SearchMatch is the set of filenames whose index contains a query's
// blinded token.
type SearchMatch struct {
	Query string
	Files []string
}

// SearchReport carries the query matches and the optional per-file
// master-key JSON dump for a search invocation.
type SearchReport struct {
	Matches      []SearchMatch
	MasterKeyHex map[string]string // bare filename -> master key hex
}

// Search scans dir for sidecars, derives keys for each under password,
// and reports, per query, which original filenames' index contains
// a match. Sidecars whose password does not validate are skipped with
// a warning; Search fails overall if none validate.
func Search(dir string, queries []string, password string) (*SearchReport, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	sidecarPaths, err := listSidecars(dir)
	if err != nil {
		return nil, err
	}

	type matched struct {
		original  string
		terms     []string
		k6        [SubkeySize]byte
		masterHex string
	}
	var files []matched

	for _, sp := range sidecarPaths {
		original, ok := OriginalFromSidecar(sp)
		if !ok {
			continue
		}

		data, err := os.ReadFile(sp)
		if err != nil {
			slog.Warn("failed to read sidecar, skipping", "path", sp, "error", err)
			continue
		}
		var sc Sidecar
		if err := json.Unmarshal(data, &sc); err != nil {
			slog.Warn("failed to parse sidecar, skipping", "path", sp, "error", err)
			continue
		}

		salt, err := decodeHex(sc.Salt, SaltSize)
		if err != nil {
			slog.Warn("malformed sidecar salt, skipping", "path", sp)
			continue
		}

		master, err := DeriveMasterKey(password, salt)
		if err != nil {
			return nil, err
		}
		subkeys, err := DeriveSubkeys(master)
		if err != nil {
			return nil, err
		}

		if encodeHex(subkeys.Validator[:]) != sc.Validator {
			slog.Warn("password did not match for file, skipping", "path", original)
			continue
		}

		files = append(files, matched{
			original:  filepath.Base(original),
			terms:     sc.Terms,
			k6:        subkeys.K6,
			masterHex: encodeHex(master[:]),
		})
	}

	if len(files) == 0 {
		return nil, ErrNoSidecars
	}

	report := &SearchReport{MasterKeyHex: make(map[string]string, len(files))}
	for _, f := range files {
		report.MasterKeyHex[f.original] = f.masterHex
	}

	for _, q := range queries {
		match := SearchMatch{Query: q}
		for _, f := range files {
			blinded := BlindQuery(q, f.k6)
			if containsTerm(f.terms, blinded) {
				match.Files = append(match.Files, f.original)
			}
		}
		report.Matches = append(report.Matches, match)
	}

	return report, nil
}
