package fenc

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// folder performs Unicode case-folding; it has no per-language
// tailoring (cases.NoLower is not needed since folding already implies
// it) and is reused across every call rather than constructed per word.
var folder = cases.Fold()

// NormalizeToken canonicalizes a word or prefix variant for indexing
// or search: Unicode case-fold, then ASCII lower-casing (a near no-op
// after folding, kept for bit-compatibility with the reference
// sequence), then NFC normalization.
func NormalizeToken(s string) string {
	s = folder.String(s)
	s = asciiLower(s)
	s = norm.NFC.String(s)
	return s
}

// asciiLower lowercases only the ASCII letters in s, leaving every
// other code point untouched.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
