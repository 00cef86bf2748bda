package fenc

import (
	"encoding/hex"
	"sort"
	"unicode/utf8"
)

// BuildBlindedTerms extracts indexable words and prefix variants from
// plaintext, normalizes and deduplicates them, sorts the result
// lexicographically, and blinds each entry with MACTag under k6. If
// plaintext is not valid UTF-8 the returned slice is empty and the
// error is an EncodingError: the word indexer simply does not run,
// and callers are expected to proceed without an index rather than
// fail the encryption.
func BuildBlindedTerms(plaintext []byte, k6 [SubkeySize]byte) ([]string, error) {
	if !utf8.Valid(plaintext) {
		return nil, NewEncodingError("", "plaintext is not valid UTF-8")
	}

	variants := ExtractVariants(string(plaintext))

	seen := make(map[string]struct{}, len(variants))
	normalized := make([]string, 0, len(variants))
	for _, v := range variants {
		n := NormalizeToken(v)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}
	sort.Strings(normalized)

	terms := make([]string, len(normalized))
	for i, n := range normalized {
		tag := MACTag(k6, []byte(n))
		terms[i] = hex.EncodeToString(tag[:])
	}
	return terms, nil
}

// BlindQuery normalizes a raw search term (case-fold, then ASCII
// lower, then NFC; no token extraction, no prefix expansion) and
// returns its hex-encoded MAC under k6, for equality lookup in a
// sidecar's term set.
func BlindQuery(term string, k6 [SubkeySize]byte) string {
	normalized := NormalizeToken(term)
	tag := MACTag(k6, []byte(normalized))
	return hex.EncodeToString(tag[:])
}

// containsTerm reports whether blinded is present in terms.
func containsTerm(terms []string, blinded string) bool {
	for _, t := range terms {
		if t == blinded {
			return true
		}
	}
	return false
}
