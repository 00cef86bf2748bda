package fenc

import (
	"os"
	"strings"
)

// Batch atomicity: every pre-flight validation below is run across the
// *entire* set of named files before any file is mutated. A failure
// aborts the whole batch with no file touched.

// validatePaths checks that every path exists and is a regular file.
func validatePaths(paths []string) error {
	var bad []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			bad = append(bad, p)
		}
	}
	if len(bad) > 0 {
		return NewConfigurationError("path",
			"Invalid filepaths for the following filenames: "+strings.Join(bad, ", "))
	}
	return nil
}

// validateMinSize checks that every path is at least MinBlockSize bytes.
func validateMinSize(paths []string) error {
	var bad []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			bad = append(bad, p)
			continue
		}
		if info.Size() < MinBlockSize {
			bad = append(bad, p)
		}
	}
	if len(bad) > 0 {
		return NewConfigurationError("size",
			"File size should be greater than 31 bytes for the following filenames: "+strings.Join(bad, ", "))
	}
	return nil
}

// validateNoSidecars checks that none of paths are already encrypted;
// used before a batch encrypt.
func validateNoSidecars(paths []string) error {
	var bad []string
	for _, p := range paths {
		if hasSidecar(p) {
			bad = append(bad, p)
		}
	}
	if len(bad) > 0 {
		return NewStateError("",
			strings.Join(bad, ", ")+" are already encrypted, \nNo files were encrypted")
	}
	return nil
}

// validateSidecarsPresent checks that every path is already encrypted;
// used before a batch decrypt.
func validateSidecarsPresent(paths []string) error {
	var bad []string
	for _, p := range paths {
		if !hasSidecar(p) {
			bad = append(bad, p)
		}
	}
	if len(bad) > 0 {
		return NewStateError("",
			strings.Join(bad, ", ")+" are unencrypted, \nNo files were decrypted")
	}
	return nil
}

// decryptPlan carries the salt and subkeys already derived for one
// file during decrypt pre-flight, so the mutation phase reuses them and
// never re-prompts for anything. The master key is not kept here; the
// mutation phase derives it again for the JSON dump.
type decryptPlan struct {
	path    string
	sidecar *Sidecar
	salt    []byte
	subkeys SubkeyBundle
}

// validatePasswords derives keys for every path and checks the
// validator subkey against the sidecar, returning a plan per file.
// A mismatch on any file aborts the whole batch with an AuthError
// naming every file whose password did not match.
func validatePasswords(paths []string, password string) ([]decryptPlan, error) {
	plans := make([]decryptPlan, 0, len(paths))
	var bad []string

	for _, p := range paths {
		sc, err := readSidecar(p)
		if err != nil {
			return nil, err
		}

		salt, err := decodeHex(sc.Salt, SaltSize)
		if err != nil {
			return nil, NewStateError(p, "sidecar salt is malformed")
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
			bad = append(bad, p)
			continue
		}

		plans = append(plans, decryptPlan{path: p, sidecar: sc, salt: salt, subkeys: subkeys})
	}

	if len(bad) > 0 {
		return nil, NewAuthError("",
			"The password did not match for the following filenames: "+strings.Join(bad, ", "))
	}

	return plans, nil
}
